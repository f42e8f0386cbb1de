package db

import (
	"context"
	"database/sql"
	"errors"

	"taskboard/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// Repository defines a common interface for all repositories
type Repository interface {
	Close() error
}

// UserRepository defines the interface for user operations
type UserRepository interface {
	Repository
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByID(ctx context.Context, id int) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

// TaskRepository defines the interface for task operations
type TaskRepository interface {
	Repository
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	FindByID(ctx context.Context, id int) (*models.Task, error)
	FindAllByUserID(ctx context.Context, userID int) ([]*models.Task, error)
	Update(ctx context.Context, task *models.Task) (*models.Task, error)
	Delete(ctx context.Context, id int) error
}

// RepositoryFactory creates repositories bound to the configured store
type RepositoryFactory struct {
	SQLiteDB *sql.DB
	DBName   string
}

// NewRepositoryFactory creates a new repository factory
func NewRepositoryFactory(sqliteDB *sql.DB, dbName string) *RepositoryFactory {
	return &RepositoryFactory{
		SQLiteDB: sqliteDB,
		DBName:   dbName,
	}
}

// NewUserRepository creates a new user repository
func (f *RepositoryFactory) NewUserRepository() UserRepository {
	return NewSQLiteUserRepository(f.SQLiteDB)
}

// NewTaskRepository creates a new task repository
func (f *RepositoryFactory) NewTaskRepository() TaskRepository {
	return NewSQLiteTaskRepository(f.SQLiteDB)
}
