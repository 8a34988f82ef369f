package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"meetme-api/internal/model"
)

const appointmentColumns = `id, user_id, title, client_name, client_email, client_phone,
	        start_time, end_time, location, meeting_link, notes, color, status,
	        created_at, updated_at`

func scanAppointment(row pgx.Row, a *model.Appointment) error {
	return row.Scan(
		&a.ID, &a.UserID, &a.Title, &a.ClientName, &a.ClientEmail, &a.ClientPhone,
		&a.Start, &a.End, &a.Location, &a.MeetingLink, &a.Notes, &a.Color, &a.Status,
		&a.CreatedAt, &a.UpdatedAt,
	)
}

func (s *Store) CreateAppointment(ctx context.Context, a *model.Appointment) error {
	return s.pool.QueryRow(ctx,
		`INSERT INTO appointments
		   (id, user_id, title, client_name, client_email, client_phone,
		    start_time, end_time, location, meeting_link, notes, color, status)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		 RETURNING created_at, updated_at`,
		a.ID, a.UserID, a.Title, a.ClientName, a.ClientEmail, a.ClientPhone,
		a.Start, a.End, a.Location, a.MeetingLink, a.Notes, a.Color, a.Status,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
}

// ListAppointments returns the user's appointments sorted ascending by start
// time. Zero from/to values leave the corresponding bound open; set bounds
// filter inclusively on the start timestamp.
func (s *Store) ListAppointments(ctx context.Context, userID string, from, to time.Time) ([]model.Appointment, error) {
	q := `SELECT ` + appointmentColumns + ` FROM appointments WHERE user_id = $1`
	args := []any{userID}

	if !from.IsZero() {
		args = append(args, from)
		q += fmt.Sprintf(` AND start_time >= $%d`, len(args))
	}
	if !to.IsZero() {
		args = append(args, to)
		q += fmt.Sprintf(` AND start_time <= $%d`, len(args))
	}
	q += ` ORDER BY start_time`

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Appointment
	for rows.Next() {
		var a model.Appointment
		if err := scanAppointment(rows, &a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// GetAppointment is scoped to the owning user: a foreign record reads the
// same as a missing one.
func (s *Store) GetAppointment(ctx context.Context, id, userID string) (*model.Appointment, error) {
	a := &model.Appointment{}
	err := scanAppointment(s.pool.QueryRow(ctx,
		`SELECT `+appointmentColumns+` FROM appointments WHERE id = $1 AND user_id = $2`,
		id, userID,
	), a)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

// AppointmentPatch lists the settable fields for a partial update. A nil
// pointer leaves the field unchanged; a non-nil pointer is applied even when
// it points at a zero value.
type AppointmentPatch struct {
	Title       *string
	ClientName  *string
	ClientEmail *string
	ClientPhone *string
	Start       *time.Time
	End         *time.Time
	Location    *string
	MeetingLink *string
	Notes       *string
	Color       *string
	Status      *string
}

// UpdateAppointment applies the patch field-by-field to the current record
// and persists the result. The patched record must keep end after start and
// any status change must be a legal transition. Concurrent updates are
// last-write-wins.
func (s *Store) UpdateAppointment(ctx context.Context, id, userID string, p *AppointmentPatch) (*model.Appointment, error) {
	a, err := s.GetAppointment(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if p.Status != nil && !model.CanTransition(a.Status, *p.Status) {
		return nil, ErrInvalidTransition
	}

	if p.Title != nil {
		a.Title = *p.Title
	}
	if p.ClientName != nil {
		a.ClientName = *p.ClientName
	}
	if p.ClientEmail != nil {
		a.ClientEmail = *p.ClientEmail
	}
	if p.ClientPhone != nil {
		a.ClientPhone = *p.ClientPhone
	}
	if p.Start != nil {
		a.Start = *p.Start
	}
	if p.End != nil {
		a.End = *p.End
	}
	if p.Location != nil {
		a.Location = *p.Location
	}
	if p.MeetingLink != nil {
		a.MeetingLink = *p.MeetingLink
	}
	if p.Notes != nil {
		a.Notes = *p.Notes
	}
	if p.Color != nil {
		a.Color = *p.Color
	}
	if p.Status != nil {
		a.Status = *p.Status
	}

	if !a.End.After(a.Start) {
		return nil, ErrInvalidInterval
	}

	err = s.pool.QueryRow(ctx,
		`UPDATE appointments
		 SET title=$1, client_name=$2, client_email=$3, client_phone=$4,
		     start_time=$5, end_time=$6, location=$7, meeting_link=$8,
		     notes=$9, color=$10, status=$11, updated_at=NOW()
		 WHERE id=$12 AND user_id=$13
		 RETURNING updated_at`,
		a.Title, a.ClientName, a.ClientEmail, a.ClientPhone,
		a.Start, a.End, a.Location, a.MeetingLink,
		a.Notes, a.Color, a.Status, a.ID, a.UserID,
	).Scan(&a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (s *Store) DeleteAppointment(ctx context.Context, id, userID string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM appointments WHERE id = $1 AND user_id = $2`, id, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
