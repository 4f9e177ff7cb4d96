package services

import (
	"context"

	"github.com/todo-app/apiserver/types"
)

// ItemRepository defines persistence operations for todo items.
type ItemRepository interface {
	List(ctx context.Context) ([]types.Item, error)
	Create(ctx context.Context, item types.Item) (types.Item, error)
	Update(ctx context.Context, item types.Item) error
	Delete(ctx context.Context, id int) error
}

// ItemService encapsulates item use-cases.
type ItemService struct {
	repo ItemRepository
}

func NewItemService(repo ItemRepository) *ItemService {
	return &ItemService{repo: repo}
}

func (s *ItemService) List(ctx context.Context) ([]types.Item, error) {
	return s.repo.List(ctx)
}

func (s *ItemService) Create(ctx context.Context, item types.Item) (types.Item, error) {
	return s.repo.Create(ctx, item)
}

func (s *ItemService) Update(ctx context.Context, item types.Item) error {
	return s.repo.Update(ctx, item)
}

func (s *ItemService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
