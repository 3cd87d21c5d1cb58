package repository

import (
	"context"

	"gorm.io/gorm"

	"todolist/internal/model"
)

// TodoRepository defines todo persistence operations. Every method takes the
// owner id and filters on it, so rows of other users are never visible.
type TodoRepository interface {
	ListByOwner(ctx context.Context, ownerID uint) ([]model.Todo, error)
	FindByOwner(ctx context.Context, ownerID, id uint) (*model.Todo, error)
	Create(ctx context.Context, todo *model.Todo) error
	Update(ctx context.Context, todo *model.Todo) error
	Delete(ctx context.Context, ownerID, id uint) error
}

type todoRepository struct {
	db *gorm.DB
}

// NewTodoRepository creates a new todo repository.
func NewTodoRepository(db *gorm.DB) TodoRepository {
	return &todoRepository{db: db}
}

// ListByOwner returns the owner's todos, newest first.
func (r *todoRepository) ListByOwner(ctx context.Context, ownerID uint) ([]model.Todo, error) {
	todos := []model.Todo{}
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").Order("id DESC").
		Find(&todos).Error; err != nil {
		return nil, err
	}
	return todos, nil
}

// FindByOwner finds a todo by ID within the owner's scope.
func (r *todoRepository) FindByOwner(ctx context.Context, ownerID, id uint) (*model.Todo, error) {
	var todo model.Todo
	if err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&todo).Error; err != nil {
		return nil, err
	}
	return &todo, nil
}

// Create creates a new todo.
func (r *todoRepository) Create(ctx context.Context, todo *model.Todo) error {
	return r.db.WithContext(ctx).Create(todo).Error
}

// Update writes the mutable fields of todo, stamping updated_at from the
// connection's clock. The owner predicate is repeated so only the owner's
// row can be written.
func (r *todoRepository) Update(ctx context.Context, todo *model.Todo) error {
	todo.UpdatedAt = r.db.NowFunc()
	return r.db.WithContext(ctx).Model(&model.Todo{}).
		Where("id = ? AND owner_id = ?", todo.ID, todo.OwnerID).
		Updates(map[string]interface{}{
			"title":      todo.Title,
			"completed":  todo.Completed,
			"updated_at": todo.UpdatedAt,
		}).Error
}

// Delete removes a todo within the owner's scope.
func (r *todoRepository) Delete(ctx context.Context, ownerID, id uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&model.Todo{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
