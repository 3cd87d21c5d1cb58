package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "todolist/internal/errors"
	"todolist/internal/model"
	"todolist/internal/repository"
	"todolist/internal/validation"
)

// TodoParams carries the permitted todo attributes of a request. A nil
// field means the key was absent and the attribute is left unchanged.
type TodoParams struct {
	Title     *string
	Completed *bool
	// CompletedInvalid is set when completed was present but not a boolean.
	CompletedInvalid bool
}

// TodoService handles todo operations. Every call is scoped to ownerID.
type TodoService interface {
	List(ctx context.Context, ownerID uint) ([]model.Todo, error)
	Get(ctx context.Context, ownerID, id uint) (*model.Todo, error)
	Create(ctx context.Context, ownerID uint, params TodoParams) (*model.Todo, error)
	// Update applies params to a todo previously resolved by Get.
	Update(ctx context.Context, todo *model.Todo, params TodoParams) (*model.Todo, error)
	Delete(ctx context.Context, ownerID, id uint) error
}

type todoService struct {
	repo repository.TodoRepository
}

// NewTodoService creates a new todo service.
func NewTodoService(repo repository.TodoRepository) TodoService {
	return &todoService{repo: repo}
}

// List returns the owner's todos, newest first.
func (s *todoService) List(ctx context.Context, ownerID uint) ([]model.Todo, error) {
	todos, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return todos, nil
}

// Get returns the todo only when ownerID owns it. Absent and foreign todos
// both yield ErrRecordNotFound.
func (s *todoService) Get(ctx context.Context, ownerID, id uint) (*model.Todo, error) {
	todo, err := s.repo.FindByOwner(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRecordNotFound
		}
		return nil, fmt.Errorf("get todo: %w", err)
	}
	return todo, nil
}

func (s *todoService) Create(ctx context.Context, ownerID uint, params TodoParams) (*model.Todo, error) {
	todo := &model.Todo{OwnerID: ownerID}
	applyTodoParams(todo, params)

	if errs := validation.ValidateTodo(todo.Title, !params.CompletedInvalid); len(errs) > 0 {
		return nil, errs
	}

	if err := s.repo.Create(ctx, todo); err != nil {
		return nil, fmt.Errorf("create todo: %w", err)
	}
	return todo, nil
}

func (s *todoService) Update(ctx context.Context, current *model.Todo, params TodoParams) (*model.Todo, error) {
	todo := *current
	applyTodoParams(&todo, params)
	if errs := validation.ValidateTodo(todo.Title, !params.CompletedInvalid); len(errs) > 0 {
		return nil, errs
	}

	if err := s.repo.Update(ctx, &todo); err != nil {
		return nil, fmt.Errorf("update todo: %w", err)
	}
	return &todo, nil
}

func (s *todoService) Delete(ctx context.Context, ownerID, id uint) error {
	if _, err := s.Get(ctx, ownerID, id); err != nil {
		return err
	}
	err := s.repo.Delete(ctx, ownerID, id)
	// a concurrent delete of the same todo already reached the end state
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("delete todo: %w", err)
	}
	return nil
}

func applyTodoParams(todo *model.Todo, params TodoParams) {
	if params.Title != nil {
		todo.Title = *params.Title
	}
	if params.Completed != nil {
		todo.Completed = *params.Completed
	}
}
