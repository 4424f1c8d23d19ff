package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/afercon/delivery-notifier/internal/domain"
)

// NotificationRepo represents the notification inbox repository plus the
// dispatch bookkeeping used for exactly-once delivery.
type NotificationRepo struct{ db *pgxpool.Pool }

// NewNotificationRepo creates a new NotificationRepo.
func NewNotificationRepo(db *pgxpool.Pool) *NotificationRepo {
	return &NotificationRepo{db: db}
}

// Insert - persists one inbox record. CreatedAt is assigned by the database
// and written back into rec. Re-inserting an id that is already stored is a
// no-op, so a dispatch retried after a partial failure does not fail here.
func (r *NotificationRepo) Insert(ctx context.Context, rec *domain.NotificationRecord) error {
	err := r.db.QueryRow(ctx, `
        INSERT INTO notifications (id, recipient_user_id, title, body, delivery_id)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at
    `, rec.ID, rec.RecipientUserID, rec.Title, rec.Body, rec.DeliveryID).Scan(&rec.CreatedAt)
	if IsDuplicate(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("insert notification %s: %w", rec.ID, err)
	}
	return nil
}

// ListByRecipient returns a user's notifications ordered newest first.
// If limit/offset are nil, returns the full list.
func (r *NotificationRepo) ListByRecipient(ctx context.Context, userID string, limit, offset *int) ([]domain.NotificationRecord, error) {
	q := `SELECT id, recipient_user_id, title, body, delivery_id, created_at, is_read
          FROM notifications WHERE recipient_user_id = $1 ORDER BY created_at DESC, id`
	args := []any{userID}
	if limit != nil {
		q += fmt.Sprintf(" LIMIT $%d", len(args)+1)
		args = append(args, *limit)
	}
	if offset != nil {
		q += fmt.Sprintf(" OFFSET $%d", len(args)+1)
		args = append(args, *offset)
	}

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	capacity := 0
	if limit != nil && *limit > 0 {
		capacity = *limit
	}
	out := make([]domain.NotificationRecord, 0, capacity)
	for rows.Next() {
		var rec domain.NotificationRecord
		if err := rows.Scan(&rec.ID, &rec.RecipientUserID, &rec.Title, &rec.Body,
			&rec.DeliveryID, &rec.CreatedAt, &rec.IsRead); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// MarkRead marks a notification as read and returns true if a row was affected.
func (r *NotificationRepo) MarkRead(ctx context.Context, id string) (bool, error) {
	ct, err := r.db.Exec(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("mark notification %s read: %w", id, err)
	}
	return ct.RowsAffected() > 0, nil
}

// ClaimDispatch records an idempotency key. Returns false when the key was
// already claimed, meaning this intent was dispatched before.
func (r *NotificationRepo) ClaimDispatch(ctx context.Context, key string) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        INSERT INTO dispatch_log (idempotency_key)
        VALUES ($1)
        ON CONFLICT (idempotency_key) DO NOTHING
    `, key)
	if err != nil {
		return false, fmt.Errorf("claim dispatch %q: %w", key, err)
	}
	return ct.RowsAffected() > 0, nil
}

// ReleaseDispatch removes an idempotency claim after a failed dispatch so a
// redelivered event is allowed through.
func (r *NotificationRepo) ReleaseDispatch(ctx context.Context, key string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM dispatch_log WHERE idempotency_key = $1`, key); err != nil {
		return fmt.Errorf("release dispatch %q: %w", key, err)
	}
	return nil
}
