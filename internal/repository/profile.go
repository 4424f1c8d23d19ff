package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/afercon/delivery-notifier/internal/domain"
)

// ProfileRepo represents user profile repository.
type ProfileRepo struct{ db *pgxpool.Pool }

// NewProfileRepo creates a new ProfileRepo.
func NewProfileRepo(db *pgxpool.Pool) *ProfileRepo { return &ProfileRepo{db: db} }

// Get - returns a profile by its ID, or nil if it does not exist.
func (r *ProfileRepo) Get(ctx context.Context, id string) (*domain.UserProfile, error) {
	var (
		p     domain.UserProfile
		token sql.NullString
	)
	err := r.db.QueryRow(ctx,
		`SELECT id, name, is_driver, push_token FROM user_profiles WHERE id=$1`, id,
	).Scan(&p.ID, &p.Name, &p.IsDriver, &token)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile %s: %w", id, err)
	}
	p.PushToken = token.String
	return &p, nil
}

// ListDrivers returns all profiles with the driver flag set, ordered by id.
func (r *ProfileRepo) ListDrivers(ctx context.Context) ([]domain.UserProfile, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, is_driver, push_token FROM user_profiles WHERE is_driver ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}
	defer rows.Close()

	out := make([]domain.UserProfile, 0)
	for rows.Next() {
		var (
			p     domain.UserProfile
			token sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.IsDriver, &token); err != nil {
			return nil, err
		}
		p.PushToken = token.String
		out = append(out, p)
	}
	return out, rows.Err()
}

// Upsert - creates or replaces a profile mirrored from a users-collection event.
func (r *ProfileRepo) Upsert(ctx context.Context, p *domain.UserProfile) error {
	var token *string
	if p.PushToken != "" {
		token = &p.PushToken
	}
	_, err := r.db.Exec(ctx, `
        INSERT INTO user_profiles (id, name, is_driver, push_token)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (id) DO UPDATE
        SET name = EXCLUDED.name,
            is_driver = EXCLUDED.is_driver,
            push_token = EXCLUDED.push_token,
            updated_at = now()
    `, p.ID, p.Name, p.IsDriver, token)
	if err != nil {
		return fmt.Errorf("upsert profile %s: %w", p.ID, err)
	}
	return nil
}

// Delete - removes a profile. Deleting an absent profile is not an error.
func (r *ProfileRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM user_profiles WHERE id=$1`, id); err != nil {
		return fmt.Errorf("delete profile %s: %w", id, err)
	}
	return nil
}
