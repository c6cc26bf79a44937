package user

import (
	"context"
	"errors"

	"github.com/Apserty/ADENGAPPA-NAALU-PERU/internal/database"
)

// ErrNotFound reports that no user matched the lookup.
var ErrNotFound = errors.New("user not found")

type Repository interface {
	Create(ctx context.Context, user User) error
	GetByEmail(ctx context.Context, email string) (User, error)
}

type repository struct {
	db *database.DB
}

func NewRepository(db *database.DB) Repository {
	return &repository{
		db: db,
	}
}

// Create inserts the user. Duplicate email or phone surfaces as
// database.ErrDuplicate through the unique keys; there is no read-then-write
// race window.
func (r *repository) Create(ctx context.Context, user User) error {
	query := `
		INSERT INTO users (name, email, phone, country, address, password_hash)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Insert(ctx, query,
		user.Name, user.Email, user.Phone, user.Country, user.Address, user.PasswordHash)

	return err
}

func (r *repository) GetByEmail(ctx context.Context, email string) (User, error) {
	query := `
		SELECT id, name, email, phone, country, address, password_hash, created_at
		FROM users
		WHERE email = ?
	`

	rows, err := r.db.Select(ctx, query, email)
	if err != nil {
		return User{}, err
	}

	if len(rows) == 0 {
		return User{}, ErrNotFound
	}

	row := rows[0]
	createdAt, _ := row.Time("created_at")

	return User{
		ID:           row.Int64("id"),
		Name:         row.String("name"),
		Email:        row.String("email"),
		Phone:        row.String("phone"),
		Country:      row.String("country"),
		Address:      row.String("address"),
		PasswordHash: row.String("password_hash"),
		CreatedAt:    createdAt,
	}, nil
}
