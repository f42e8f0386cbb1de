package db

import (
	"context"
	"log"

	"taskboard/models"
)

// Operation represents a database operation that needs to be executed
type Operation struct {
	Execute func() error
	Result  chan error
}

// OperationWithResult represents a database operation that returns a result
type OperationWithResult struct {
	Execute func() (interface{}, error)
	Result  chan OperationResult
}

// OperationResult contains the result of an operation
type OperationResult struct {
	Data  interface{}
	Error error
}

// DBManager serializes write access to the database. SQLite allows a single
// writer at a time; funneling mutations through one worker avoids busy errors
// under concurrent requests.
type DBManager struct {
	opQueue       chan Operation
	resultOpQueue chan OperationWithResult
	stopping      chan struct{}
}

// NewDBManager creates a new database manager
func NewDBManager() *DBManager {
	m := &DBManager{
		opQueue:       make(chan Operation, 100),
		resultOpQueue: make(chan OperationWithResult, 100),
		stopping:      make(chan struct{}),
	}

	go m.worker()
	log.Println("Database access manager started")

	return m
}

// worker processes operations one at a time
func (m *DBManager) worker() {
	for {
		select {
		case op := <-m.opQueue:
			err := op.Execute()
			op.Result <- err
		case op := <-m.resultOpQueue:
			data, err := op.Execute()
			op.Result <- OperationResult{Data: data, Error: err}
		case <-m.stopping:
			return
		}
	}
}

// ExecuteOperation executes a database operation on the worker
func (m *DBManager) ExecuteOperation(execute func() error) error {
	resultChan := make(chan error, 1)
	m.opQueue <- Operation{
		Execute: execute,
		Result:  resultChan,
	}
	return <-resultChan
}

// ExecuteOperationWithResult executes a database operation that returns a result
func (m *DBManager) ExecuteOperationWithResult(execute func() (interface{}, error)) (interface{}, error) {
	resultChan := make(chan OperationResult, 1)
	m.resultOpQueue <- OperationWithResult{
		Execute: execute,
		Result:  resultChan,
	}
	result := <-resultChan
	return result.Data, result.Error
}

// Stop stops the database manager
func (m *DBManager) Stop() {
	close(m.stopping)
}

// Methods for specific repository operations

// CreateUser serializes access to user creation
func (m *DBManager) CreateUser(repo UserRepository, ctx context.Context, user *models.User) (*models.User, error) {
	result, err := m.ExecuteOperationWithResult(func() (interface{}, error) {
		return repo.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.User), nil
}

// CreateTask serializes access to task creation
func (m *DBManager) CreateTask(repo TaskRepository, ctx context.Context, task *models.Task) (*models.Task, error) {
	result, err := m.ExecuteOperationWithResult(func() (interface{}, error) {
		return repo.Create(ctx, task)
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.Task), nil
}

// UpdateTask serializes access to task updates
func (m *DBManager) UpdateTask(repo TaskRepository, ctx context.Context, task *models.Task) (*models.Task, error) {
	result, err := m.ExecuteOperationWithResult(func() (interface{}, error) {
		return repo.Update(ctx, task)
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.Task), nil
}

// DeleteTask serializes access to task deletion
func (m *DBManager) DeleteTask(repo TaskRepository, ctx context.Context, id int) error {
	return m.ExecuteOperation(func() error {
		return repo.Delete(ctx, id)
	})
}
