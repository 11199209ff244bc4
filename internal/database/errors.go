package database

import "errors"

var (
	// ErrBoardNotFound is returned when a board id has no row
	ErrBoardNotFound = errors.New("board not found")

	// ErrUserNotFound is returned when a user id has no row
	ErrUserNotFound = errors.New("user not found")

	// ErrCategoryNotFound is returned when a category is not part of the board
	ErrCategoryNotFound = errors.New("category not found")
)
