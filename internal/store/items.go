package store

import (
	"context"
	"database/sql"

	"suitcase-cli/internal/model"
)

// CreateItem inserts a new record with purchased=false and returns the
// store-assigned id. Ids are monotonically increasing and never reused
// within the store's lifetime (AUTOINCREMENT).
func (s Store) CreateItem(ctx context.Context, name string, price float64, description string, image []byte) (int64, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	res, err := db.ExecContext(ctx,
		`INSERT INTO items(name, price, description, image, purchased) VALUES(?, ?, ?, ?, 0)`,
		name, price, description, image)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Items returns a snapshot of all records in id order. The caller owns the
// result; later mutations do not affect it.
func (s Store) Items(ctx context.Context) ([]model.Item, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx,
		`SELECT id, name, price, description, image, purchased FROM items ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Item is a point lookup. ok=false means no record with that id exists;
// err is reserved for medium failures.
func (s Store) Item(ctx context.Context, id int64) (model.Item, bool, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return model.Item{}, false, err
	}
	defer db.Close()

	row := db.QueryRowContext(ctx,
		`SELECT id, name, price, description, image, purchased FROM items WHERE id = ?`, id)
	it, err := scanItem(row)
	if err == sql.ErrNoRows {
		return model.Item{}, false, nil
	}
	if err != nil {
		return model.Item{}, false, err
	}
	return it, true, nil
}

// UpdateItem replaces all mutable fields of an existing record, leaving the
// purchase flag alone. Returns whether a record with that id existed.
func (s Store) UpdateItem(ctx context.Context, id int64, name string, price float64, description string, image []byte) (bool, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return false, err
	}
	defer db.Close()

	res, err := db.ExecContext(ctx,
		`UPDATE items SET name = ?, price = ?, description = ?, image = ? WHERE id = ?`,
		name, price, description, image, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// SetPurchased flips only the purchase flag. Returns whether the id existed.
func (s Store) SetPurchased(ctx context.Context, id int64, purchased bool) (bool, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return false, err
	}
	defer db.Close()

	res, err := db.ExecContext(ctx,
		`UPDATE items SET purchased = ? WHERE id = ?`, boolToInt(purchased), id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteItem removes the record. Deleting a missing id is a no-op, not an
// error: callers treat delete as idempotent.
func (s Store) DeleteItem(ctx context.Context, id int64) error {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(r rowScanner) (model.Item, error) {
	var it model.Item
	var image []byte
	var purchased int
	if err := r.Scan(&it.ID, &it.Name, &it.Price, &it.Description, &image, &purchased); err != nil {
		return model.Item{}, err
	}
	it.Image = image
	it.Purchased = purchased == 1
	return it, nil
}
