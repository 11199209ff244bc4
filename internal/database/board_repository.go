package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/types"
)

// BoardRepo handles boards and their categories
type BoardRepo struct {
	db *sql.DB
}

// Create inserts a new board with a generated id
func (r *BoardRepo) Create(ctx context.Context, name string) (*models.Board, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: board name cannot be empty", models.ErrValidation)
	}

	board := &models.Board{
		ID:        types.NewBoardID(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO boards (id, name, created_at) VALUES (?, ?, ?)`,
		string(board.ID), board.Name, board.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}
	return board, nil
}

// GetAll lists boards, oldest first
func (r *BoardRepo) GetAll(ctx context.Context) ([]*models.Board, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, created_at FROM boards ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}
	defer rows.Close()

	var boards []*models.Board
	for rows.Next() {
		var id string
		b := &models.Board{}
		if err := rows.Scan(&id, &b.Name, &b.CreatedAt); err != nil {
			return nil, err
		}
		b.ID = types.BoardID(id)
		boards = append(boards, b)
	}
	return boards, rows.Err()
}

// GetByID loads one board
func (r *BoardRepo) GetByID(ctx context.Context, id types.BoardID) (*models.Board, error) {
	b := &models.Board{ID: id}
	err := r.db.QueryRowContext(ctx,
		`SELECT name, created_at FROM boards WHERE id = ?`, string(id),
	).Scan(&b.Name, &b.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrBoardNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get board %s: %w", id, err)
	}
	return b, nil
}

// CreateCategory adds a category to a board
func (r *BoardRepo) CreateCategory(ctx context.Context, boardID types.BoardID, name, color string) (*models.Category, error) {
	if _, err := r.GetByID(ctx, boardID); err != nil {
		return nil, err
	}
	cat := &models.Category{
		ID:    types.NewCategoryID(),
		Name:  strings.TrimSpace(name),
		Color: color,
	}
	if cat.Name == "" {
		return nil, fmt.Errorf("%w: category name cannot be empty", models.ErrValidation)
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (id, board_id, name, color) VALUES (?, ?, ?, ?)`,
		string(cat.ID), string(boardID), cat.Name, cat.Color,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return cat, nil
}

// GetCategories lists a board's categories by name
func (r *BoardRepo) GetCategories(ctx context.Context, boardID types.BoardID) ([]*models.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, color FROM categories WHERE board_id = ? ORDER BY name`,
		string(boardID),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var cats []*models.Category
	for rows.Next() {
		var id string
		c := &models.Category{}
		if err := rows.Scan(&id, &c.Name, &c.Color); err != nil {
			return nil, err
		}
		c.ID = types.CategoryID(id)
		cats = append(cats, c)
	}
	return cats, rows.Err()
}
