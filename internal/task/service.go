package task

import (
	"context"
	"errors"
	"time"

	"taskboard/db"
	"taskboard/models"
)

var (
	ErrTitleRequired = errors.New("title is required")
	ErrNotAuthorized = errors.New("not authorized")
)

// UpdateInput carries a partial update; nil fields are left unchanged
type UpdateInput struct {
	Title       *string
	Description *string
	IsComplete  *bool
}

// Service implements ownership-scoped task CRUD
type Service struct {
	tasks     db.TaskRepository
	dbManager *db.DBManager
}

// NewService creates a new task service
func NewService(tasks db.TaskRepository, dbManager *db.DBManager) *Service {
	return &Service{tasks: tasks, dbManager: dbManager}
}

// ListForUser returns all tasks owned by the given user
func (s *Service) ListForUser(ctx context.Context, userID int) ([]*models.Task, error) {
	return s.tasks.FindAllByUserID(ctx, userID)
}

// Create persists a new incomplete task owned by the given user
func (s *Service) Create(ctx context.Context, userID int, title string, description *string) (*models.Task, error) {
	if title == "" {
		return nil, ErrTitleRequired
	}

	now := time.Now()
	task := &models.Task{
		Title:       title,
		Description: description,
		IsComplete:  false,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	return s.dbManager.CreateTask(s.tasks, ctx, task)
}

// Update applies a partial update to a task owned by the given user.
// Absent and foreign tasks answer identically so task ids cannot be
// probed across accounts.
func (s *Service) Update(ctx context.Context, userID, id int, input UpdateInput) (*models.Task, error) {
	task, err := s.findOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrTitleRequired
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = input.Description
	}
	if input.IsComplete != nil {
		task.IsComplete = *input.IsComplete
	}
	task.UpdatedAt = time.Now()

	updated, err := s.dbManager.UpdateTask(s.tasks, ctx, task)
	if err != nil {
		// Deleted between the ownership check and the write
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrNotAuthorized
		}
		return nil, err
	}

	return updated, nil
}

// Delete permanently removes a task owned by the given user
func (s *Service) Delete(ctx context.Context, userID, id int) error {
	if _, err := s.findOwned(ctx, userID, id); err != nil {
		return err
	}

	err := s.dbManager.DeleteTask(s.tasks, ctx, id)
	if errors.Is(err, db.ErrNotFound) {
		return ErrNotAuthorized
	}
	return err
}

func (s *Service) findOwned(ctx context.Context, userID, id int) (*models.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrNotAuthorized
		}
		return nil, err
	}
	if task.UserID != userID {
		return nil, ErrNotAuthorized
	}
	return task, nil
}
