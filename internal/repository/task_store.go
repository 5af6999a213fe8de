package repository

import (
	"context"

	"github.com/iliyamo/nsm-example/internal/model"
)

// TaskStore is the persistence contract for tasks.  Implementations return
// ErrTaskNotFound when an ID does not exist.
type TaskStore interface {
	List(ctx context.Context) ([]model.Task, error)
	Get(ctx context.Context, id string) (*model.Task, error)
	Create(ctx context.Context, t *model.Task) error
	Update(ctx context.Context, t *model.Task) error
	Delete(ctx context.Context, id string) error
}
