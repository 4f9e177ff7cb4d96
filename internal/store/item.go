package store

import (
	"context"
	"database/sql"

	"github.com/todo-app/apiserver/types"
)

// ItemRepository handles persistence for todo items.
type ItemRepository struct {
	db *sql.DB
}

func NewItemRepository(db *sql.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) List(ctx context.Context) ([]types.Item, error) {
	const query = `
		SELECT id, name, is_complete
		FROM items
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]types.Item, 0)
	for rows.Next() {
		var item types.Item
		if err := rows.Scan(&item.ID, &item.Name, &item.IsComplete); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *ItemRepository) Create(ctx context.Context, item types.Item) (types.Item, error) {
	const query = `
		INSERT INTO items (name, is_complete)
		VALUES ($1, $2)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		item.Name,
		item.IsComplete,
	).Scan(&item.ID); err != nil {
		return types.Item{}, err
	}
	return item, nil
}

func (r *ItemRepository) Update(ctx context.Context, item types.Item) error {
	const query = `
		UPDATE items
		SET name = $1,
			is_complete = $2
		WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, item.Name, item.IsComplete, item.ID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ItemRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM items WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
