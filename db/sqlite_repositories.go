package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"taskboard/models"

	"github.com/mattn/go-sqlite3"
)

// isUniqueViolation reports whether err is a sqlite unique-constraint failure
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

// SQLiteUserRepository implements the UserRepository interface for SQLite
type SQLiteUserRepository struct {
	db *sql.DB
}

// NewSQLiteUserRepository creates a new SQLiteUserRepository
func NewSQLiteUserRepository(db *sql.DB) *SQLiteUserRepository {
	return &SQLiteUserRepository{db: db}
}

// Close closes the database connection
func (r *SQLiteUserRepository) Close() error {
	return r.db.Close()
}

// Create inserts a new user and fills in the generated id
func (r *SQLiteUserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query := `INSERT INTO users (username, password, created_at) VALUES (?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query, user.Username, user.Password, user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("error inserting user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("error reading user id: %w", err)
	}
	user.ID = int(id)

	return user, nil
}

// FindByID finds a user by ID
func (r *SQLiteUserRepository) FindByID(ctx context.Context, id int) (*models.User, error) {
	query := `SELECT id, username, password, created_at FROM users WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return scanUser(row)
}

// FindByUsername finds a user by its unique username
func (r *SQLiteUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT id, username, password, created_at FROM users WHERE username = ?`
	row := r.db.QueryRowContext(ctx, query, username)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	var createdAt sql.NullTime

	err := row.Scan(&user.ID, &user.Username, &user.Password, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error scanning user: %w", err)
	}

	if createdAt.Valid {
		user.CreatedAt = createdAt.Time
	}

	return &user, nil
}

// SQLiteTaskRepository implements the TaskRepository interface for SQLite
type SQLiteTaskRepository struct {
	db *sql.DB
}

// NewSQLiteTaskRepository creates a new SQLiteTaskRepository
func NewSQLiteTaskRepository(db *sql.DB) *SQLiteTaskRepository {
	return &SQLiteTaskRepository{db: db}
}

// Close closes the database connection
func (r *SQLiteTaskRepository) Close() error {
	return r.db.Close()
}

// Create inserts a new task and fills in the generated id
func (r *SQLiteTaskRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	query := `INSERT INTO tasks (title, description, is_complete, user_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query,
		task.Title, task.Description, task.IsComplete, task.UserID, task.CreatedAt, task.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("error inserting task: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("error reading task id: %w", err)
	}
	task.ID = int(id)

	return task, nil
}

// FindByID finds a task by ID
func (r *SQLiteTaskRepository) FindByID(ctx context.Context, id int) (*models.Task, error) {
	query := `SELECT id, title, description, is_complete, user_id, created_at, updated_at
		FROM tasks WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	task, err := scanTask(row)
	if err != nil {
		return nil, err
	}
	return task, nil
}

// FindAllByUserID finds all tasks owned by the given user, in insertion order
func (r *SQLiteTaskRepository) FindAllByUserID(ctx context.Context, userID int) ([]*models.Task, error) {
	query := `SELECT id, title, description, is_complete, user_id, created_at, updated_at
		FROM tasks WHERE user_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		var task models.Task
		var description sql.NullString
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(&task.ID, &task.Title, &description, &task.IsComplete,
			&task.UserID, &createdAt, &updatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning task: %w", err)
		}

		if description.Valid {
			task.Description = &description.String
		}
		if createdAt.Valid {
			task.CreatedAt = createdAt.Time
		}
		if updatedAt.Valid {
			task.UpdatedAt = updatedAt.Time
		}

		tasks = append(tasks, &task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tasks: %w", err)
	}

	return tasks, nil
}

// Update persists the task's mutable fields
func (r *SQLiteTaskRepository) Update(ctx context.Context, task *models.Task) (*models.Task, error) {
	query := `UPDATE tasks SET title = ?, description = ?, is_complete = ?, updated_at = ? WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query,
		task.Title, task.Description, task.IsComplete, task.UpdatedAt, task.ID)
	if err != nil {
		return nil, fmt.Errorf("error updating task: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("error reading affected rows: %w", err)
	}
	if affected == 0 {
		return nil, ErrNotFound
	}

	return task, nil
}

// Delete removes a task by ID
func (r *SQLiteTaskRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM tasks WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("error deleting task: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func scanTask(row *sql.Row) (*models.Task, error) {
	var task models.Task
	var description sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(&task.ID, &task.Title, &description, &task.IsComplete,
		&task.UserID, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error scanning task: %w", err)
	}

	if description.Valid {
		task.Description = &description.String
	}
	if createdAt.Valid {
		task.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		task.UpdatedAt = updatedAt.Time
	}

	return &task, nil
}
