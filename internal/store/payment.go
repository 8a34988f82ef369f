package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"meetme-api/internal/model"
)

const paymentColumns = `id, user_id, appointment_id, amount_cents, currency, status,
	        intent_id, paid, paid_at, created_at, updated_at`

func scanPayment(row pgx.Row, p *model.Payment) error {
	return row.Scan(
		&p.ID, &p.UserID, &p.AppointmentID, &p.AmountCents, &p.Currency, &p.Status,
		&p.IntentID, &p.Paid, &p.PaidAt, &p.CreatedAt, &p.UpdatedAt,
	)
}

func (s *Store) CreatePayment(ctx context.Context, p *model.Payment) error {
	return s.pool.QueryRow(ctx,
		`INSERT INTO payments (id, user_id, appointment_id, amount_cents, currency, status, intent_id)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)
		 RETURNING created_at, updated_at`,
		p.ID, p.UserID, p.AppointmentID, p.AmountCents, p.Currency, p.Status, p.IntentID,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
}

func (s *Store) GetPayment(ctx context.Context, id, userID string) (*model.Payment, error) {
	p := &model.Payment{}
	err := scanPayment(s.pool.QueryRow(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE id = $1 AND user_id = $2`,
		id, userID,
	), p)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *Store) MarkPaymentPaid(ctx context.Context, id, userID, intentID, status string) (*model.Payment, error) {
	p := &model.Payment{}
	err := scanPayment(s.pool.QueryRow(ctx,
		`UPDATE payments
		 SET paid = true, paid_at = NOW(), intent_id = $1, status = $2, updated_at = NOW()
		 WHERE id = $3 AND user_id = $4
		 RETURNING `+paymentColumns,
		intentID, status, id, userID,
	), p)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}
