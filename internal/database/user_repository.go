package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/types"
)

// UserRepo handles the user directory
type UserRepo struct {
	db *sql.DB
}

// Upsert creates the user or refreshes its display fields
func (r *UserRepo) Upsert(ctx context.Context, u models.User) (*models.User, error) {
	if u.ID.IsZero() {
		return nil, fmt.Errorf("%w: user id cannot be empty", models.ErrValidation)
	}
	if strings.TrimSpace(u.Name) == "" {
		u.Name = string(u.ID)
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, name, avatar_url) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name, avatar_url = excluded.avatar_url`,
		string(u.ID), u.Name, u.AvatarURL,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save user %s: %w", u.ID, err)
	}
	return &u, nil
}

// GetByID loads one user
func (r *UserRepo) GetByID(ctx context.Context, id types.UserID) (*models.User, error) {
	u := &models.User{ID: id}
	err := r.db.QueryRowContext(ctx,
		`SELECT name, avatar_url FROM users WHERE id = ?`, string(id),
	).Scan(&u.Name, &u.AvatarURL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", id, err)
	}
	return u, nil
}

// GetAll lists users by name
func (r *UserRepo) GetAll(ctx context.Context) ([]*models.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, avatar_url FROM users ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var id string
		u := &models.User{}
		if err := rows.Scan(&id, &u.Name, &u.AvatarURL); err != nil {
			return nil, err
		}
		u.ID = types.UserID(id)
		users = append(users, u)
	}
	return users, rows.Err()
}
