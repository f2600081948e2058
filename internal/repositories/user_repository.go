package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"ledger-backend/internal/models"
)

type UserRepository struct {
	DB *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{DB: db}
}

// GetByUsername returns ErrNotFound for unknown usernames.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := r.DB.QueryRow(ctx,
		`SELECT id, username, name, type FROM users WHERE username=$1`, username,
	).Scan(&u.ID, &u.Username, &u.Name, &u.Type)
	if err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}
