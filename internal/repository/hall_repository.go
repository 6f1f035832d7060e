package repository // repository holds data access logic for domain entities

import (
	"context"
	"database/sql"

	"github.com/hallbook/hallbook-api/internal/model"
)

const hallColumns = `id, owner_id, name, description, address, city, state, pincode, latitude, longitude,
	capacity, price_per_hour, hall_type, facilities, status, is_active, rating, total_bookings, created_at, updated_at`

const (
	qInsertHall = `INSERT INTO halls (owner_id, name, description, address, city, state, pincode, latitude, longitude,
	capacity, price_per_hour, hall_type, facilities) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	qSelectHallByID   = `SELECT ` + hallColumns + ` FROM halls WHERE id = ?`
	qListHalls        = `SELECT ` + hallColumns + ` FROM halls ORDER BY id`
	qListHallsByCity  = `SELECT ` + hallColumns + ` FROM halls WHERE city = ? ORDER BY id`
	qListHallsByOwner = `SELECT ` + hallColumns + ` FROM halls WHERE owner_id = ? ORDER BY id`
)

// HallRepo provides methods to create and retrieve halls.
type HallRepo struct {
	db *sql.DB // db is the underlying database connection
}

// NewHallRepo constructs a HallRepo with the given DB handle.
func NewHallRepo(db *sql.DB) *HallRepo {
	return &HallRepo{db: db}
}

// Create inserts a new hall.  OwnerID, Name, Address, City, Capacity and
// PricePerHour must be set.  An empty HallType falls back to OTHER.  After
// insert the row is read back so that status, rating, counters and
// timestamps carry the database defaults.
func (r *HallRepo) Create(ctx context.Context, h *model.Hall) error {
	hallType := h.HallType
	if hallType == "" {
		hallType = model.HallTypeOther
	}
	id, err := insertID(r.db.ExecContext(ctx, qInsertHall,
		h.OwnerID, h.Name, h.Description, h.Address, h.City, h.State, h.Pincode, h.Latitude, h.Longitude,
		h.Capacity, h.PricePerHour, hallType, h.Facilities))
	if err != nil {
		return err
	}
	created, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	*h = *created
	return nil
}

// GetByID retrieves a hall by its ID.  It returns ErrNotFound when no row
// is found.
func (r *HallRepo) GetByID(ctx context.Context, id uint64) (*model.Hall, error) {
	return scanHall(r.db.QueryRowContext(ctx, qSelectHallByID, id))
}

// ListAll returns every hall ordered by id.
func (r *HallRepo) ListAll(ctx context.Context) ([]*model.Hall, error) {
	return r.list(ctx, qListHalls)
}

// ListByCity returns the halls located in city (exact match, as stored).
func (r *HallRepo) ListByCity(ctx context.Context, city string) ([]*model.Hall, error) {
	return r.list(ctx, qListHallsByCity, city)
}

// ListByOwner returns the halls owned by the given user.
func (r *HallRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]*model.Hall, error) {
	return r.list(ctx, qListHallsByOwner, ownerID)
}

func (r *HallRepo) list(ctx context.Context, q string, args ...any) ([]*model.Hall, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Hall{}
	for rows.Next() {
		h, err := scanHall(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanHall(row scanner) (*model.Hall, error) {
	var h model.Hall
	err := row.Scan(&h.ID, &h.OwnerID, &h.Name, &h.Description, &h.Address, &h.City, &h.State, &h.Pincode,
		&h.Latitude, &h.Longitude, &h.Capacity, &h.PricePerHour, &h.HallType, &h.Facilities, &h.Status,
		&h.IsActive, &h.Rating, &h.TotalBookings, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &h, nil
}
