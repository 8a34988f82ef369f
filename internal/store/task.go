package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"meetme-api/internal/model"
)

const taskColumns = `id, user_id, title, day, priority, done, notes, created_at, updated_at`

func scanTask(row pgx.Row, t *model.Task) error {
	return row.Scan(
		&t.ID, &t.UserID, &t.Title, &t.Day, &t.Priority, &t.Done, &t.Notes,
		&t.CreatedAt, &t.UpdatedAt,
	)
}

func (s *Store) CreateTask(ctx context.Context, t *model.Task) error {
	return s.pool.QueryRow(ctx,
		`INSERT INTO tasks (id, user_id, title, day, priority, done, notes)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)
		 RETURNING created_at, updated_at`,
		t.ID, t.UserID, t.Title, t.Day, t.Priority, t.Done, t.Notes,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
}

// ListTasks returns the user's tasks sorted by day ascending, newest first
// within a day. A non-zero day filter widens to full-day bounds since the
// stored time of day is irrelevant.
func (s *Store) ListTasks(ctx context.Context, userID string, day time.Time) ([]model.Task, error) {
	q := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = $1`
	args := []any{userID}

	if !day.IsZero() {
		dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		dayEnd := dayStart.AddDate(0, 0, 1).Add(-time.Nanosecond)
		args = append(args, dayStart, dayEnd)
		q += ` AND day >= $2 AND day <= $3`
	}
	q += ` ORDER BY day, created_at DESC`

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Task
	for rows.Next() {
		var t model.Task
		if err := scanTask(rows, &t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) GetTask(ctx context.Context, id, userID string) (*model.Task, error) {
	t := &model.Task{}
	err := scanTask(s.pool.QueryRow(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = $1 AND user_id = $2`,
		id, userID,
	), t)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

// TaskPatch mirrors AppointmentPatch: nil leaves a field unchanged, non-nil
// is applied even when falsy (Done=false, empty notes).
type TaskPatch struct {
	Title    *string
	Day      *time.Time
	Priority *string
	Done     *bool
	Notes    *string
}

func (s *Store) UpdateTask(ctx context.Context, id, userID string, p *TaskPatch) (*model.Task, error) {
	t, err := s.GetTask(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Day != nil {
		t.Day = *p.Day
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Done != nil {
		t.Done = *p.Done
	}
	if p.Notes != nil {
		t.Notes = *p.Notes
	}

	err = s.pool.QueryRow(ctx,
		`UPDATE tasks
		 SET title=$1, day=$2, priority=$3, done=$4, notes=$5, updated_at=NOW()
		 WHERE id=$6 AND user_id=$7
		 RETURNING updated_at`,
		t.Title, t.Day, t.Priority, t.Done, t.Notes, t.ID, t.UserID,
	).Scan(&t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *Store) DeleteTask(ctx context.Context, id, userID string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM tasks WHERE id = $1 AND user_id = $2`, id, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
