package database

import (
	"context"
	"database/sql"

	"github.com/thenoetrevino/lanes/internal/events"
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/types"
)

// Repository provides a unified interface to all data operations.
// It composes domain-specific repositories using struct embedding.
type Repository struct {
	*BoardRepo
	*UserRepo
	*TaskRepo
	*AssignmentRepo
}

// NewRepository creates a new Repository instance wrapping the given database
// connection. Writes publish change signals through pub; nil disables that.
func NewRepository(db *sql.DB, pub events.Publisher) *Repository {
	return &Repository{
		BoardRepo:      &BoardRepo{db: db},
		UserRepo:       &UserRepo{db: db},
		TaskRepo:       &TaskRepo{db: db, pub: pub},
		AssignmentRepo: &AssignmentRepo{db: db, pub: pub},
	}
}

// Wrapper methods for BoardRepo
func (r *Repository) CreateBoard(ctx context.Context, name string) (*models.Board, error) {
	return r.BoardRepo.Create(ctx, name)
}

func (r *Repository) ListBoards(ctx context.Context) ([]*models.Board, error) {
	return r.BoardRepo.GetAll(ctx)
}

func (r *Repository) GetBoard(ctx context.Context, id types.BoardID) (*models.Board, error) {
	return r.BoardRepo.GetByID(ctx, id)
}

// Wrapper methods for UserRepo
func (r *Repository) UpsertUser(ctx context.Context, u models.User) (*models.User, error) {
	return r.UserRepo.Upsert(ctx, u)
}

func (r *Repository) GetUser(ctx context.Context, id types.UserID) (*models.User, error) {
	return r.UserRepo.GetByID(ctx, id)
}

func (r *Repository) ListUsers(ctx context.Context) ([]*models.User, error) {
	return r.UserRepo.GetAll(ctx)
}

// Wrapper methods for TaskRepo
func (r *Repository) ListTasks(ctx context.Context, boardID types.BoardID) ([]*models.Task, error) {
	return r.TaskRepo.ListByBoard(ctx, boardID)
}

func (r *Repository) GetTask(ctx context.Context, id types.TaskID) (*models.Task, error) {
	return r.TaskRepo.GetByID(ctx, id)
}

func (r *Repository) CreateTask(ctx context.Context, boardID types.BoardID, nt models.NewTask) (*models.Task, error) {
	return r.TaskRepo.Create(ctx, boardID, nt)
}

func (r *Repository) UpdateTaskFields(ctx context.Context, id types.TaskID, fields models.TaskFields) error {
	return r.TaskRepo.UpdateFields(ctx, id, fields)
}

func (r *Repository) DeleteTask(ctx context.Context, id types.TaskID) error {
	return r.TaskRepo.Delete(ctx, id)
}

// Wrapper methods for AssignmentRepo
func (r *Repository) CreateAssignment(ctx context.Context, taskID types.TaskID, userID types.UserID) error {
	return r.AssignmentRepo.Create(ctx, taskID, userID)
}

func (r *Repository) DeleteAssignment(ctx context.Context, taskID types.TaskID, userID types.UserID) error {
	return r.AssignmentRepo.Delete(ctx, taskID, userID)
}
