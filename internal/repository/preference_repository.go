package repository

import (
	"context"
	"database/sql"

	"github.com/hallbook/hallbook-api/internal/model"
)

const (
	qUpsertPreference = `INSERT INTO user_preferences (user_id, preferred_cities, preferred_hall_types, budget_min, budget_max,
	preferred_capacity_min, preferred_capacity_max) VALUES (?, ?, ?, ?, ?, ?, ?)
	ON DUPLICATE KEY UPDATE preferred_cities = VALUES(preferred_cities), preferred_hall_types = VALUES(preferred_hall_types),
	budget_min = VALUES(budget_min), budget_max = VALUES(budget_max),
	preferred_capacity_min = VALUES(preferred_capacity_min), preferred_capacity_max = VALUES(preferred_capacity_max)`
	qSelectPreferenceByUser = `SELECT id, user_id, preferred_cities, preferred_hall_types, budget_min, budget_max,
	preferred_capacity_min, preferred_capacity_max, updated_at FROM user_preferences WHERE user_id = ?`
)

// PreferenceRepo stores one preference row per user.
type PreferenceRepo struct {
	db *sql.DB
}

func NewPreferenceRepo(db *sql.DB) *PreferenceRepo { return &PreferenceRepo{db: db} }

// Upsert creates or replaces the preferences of p.UserID and reads the
// stored row back into p.
func (r *PreferenceRepo) Upsert(ctx context.Context, p *model.UserPreference) error {
	_, err := r.db.ExecContext(ctx, qUpsertPreference, p.UserID, p.PreferredCities, p.PreferredHallTypes,
		p.BudgetMin, p.BudgetMax, p.PreferredCapacityMin, p.PreferredCapacityMax)
	if err != nil {
		return mapError(err)
	}
	stored, err := r.GetByUser(ctx, p.UserID)
	if err != nil {
		return err
	}
	*p = *stored
	return nil
}

// GetByUser returns the preferences of a user or ErrNotFound.
func (r *PreferenceRepo) GetByUser(ctx context.Context, userID uint64) (*model.UserPreference, error) {
	var p model.UserPreference
	err := r.db.QueryRowContext(ctx, qSelectPreferenceByUser, userID).Scan(&p.ID, &p.UserID, &p.PreferredCities,
		&p.PreferredHallTypes, &p.BudgetMin, &p.BudgetMax, &p.PreferredCapacityMin, &p.PreferredCapacityMax, &p.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}
