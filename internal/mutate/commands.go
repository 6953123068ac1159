// Package mutate implements the view-driven item commands. Every command
// follows the same protocol: validate input, write to the store, and patch
// the projection only after the write is confirmed. A failed store write
// leaves the projection untouched, so the view never shows state that was
// not actually persisted.
package mutate

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"suitcase-cli/internal/model"
	"suitcase-cli/internal/projection"
	"suitcase-cli/internal/store"
)

// Commands binds a store to its projection. The mutex makes each
// "store write + projection patch" pair one critical section, which is all
// the locking this working set needs when the host dispatches concurrently.
type Commands struct {
	mu    sync.Mutex
	store store.Store
	list  *projection.List
}

func New(s store.Store, l *projection.List) *Commands {
	return &Commands{store: s, list: l}
}

// List exposes the projection for rendering. Callers get patch operations
// and copies only, never the raw backing slice.
func (c *Commands) List() *projection.List { return c.list }

// Reload replaces the projection with a fresh store snapshot. Called at
// startup and whenever the view regains focus.
func (c *Commands) Reload(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.store.Items(ctx)
	if err != nil {
		return err
	}
	c.list.Reload(items)
	return nil
}

// ParsePrice parses user price input. Shared by the CLI flags and the TUI
// form so both reject the same strings.
func ParsePrice(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ValidationError{Field: "price", Reason: "must not be empty"}
	}
	p, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ValidationError{Field: "price", Reason: "not a number"}
	}
	// Negative and zero prices are accepted; the source app never range-checked.
	return p, nil
}

// Add validates and creates a new item. All four fields are mandatory by
// product rule, even though the store itself would accept partial data.
func (c *Commands) Add(ctx context.Context, name, price, description string, image []byte) (model.Item, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if name == "" {
		return model.Item{}, ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if description == "" {
		return model.Item{}, ValidationError{Field: "description", Reason: "must not be empty"}
	}
	if len(image) == 0 {
		return model.Item{}, ValidationError{Field: "image", Reason: "an image is required"}
	}
	p, err := ParsePrice(price)
	if err != nil {
		return model.Item{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	id, err := c.store.CreateItem(ctx, name, p, description, image)
	if err != nil {
		return model.Item{}, err
	}
	it := model.Item{ID: id, Name: name, Price: p, Description: description, Image: image}
	c.list.Append(it)
	return it, nil
}

// Update replaces the mutable fields of an existing item. The purchase flag
// is untouched. Position is re-derived from the id at patch time.
func (c *Commands) Update(ctx context.Context, id int64, name, price, description string, image []byte) (model.Item, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if name == "" {
		return model.Item{}, ValidationError{Field: "name", Reason: "must not be empty"}
	}
	p, err := ParsePrice(price)
	if err != nil {
		return model.Item{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	ok, err := c.store.UpdateItem(ctx, id, name, p, description, image)
	if err != nil {
		return model.Item{}, err
	}
	if !ok {
		return model.Item{}, NotFoundError{ID: id}
	}

	idx := c.list.IndexOf(id)
	if idx < 0 {
		// Persisted but not in the projection (edited from another screen
		// before a reload). The next Reload picks it up.
		return model.Item{ID: id, Name: name, Price: p, Description: description, Image: image}, nil
	}
	prev, err := c.list.At(idx)
	if err != nil {
		return model.Item{}, err
	}
	it := model.Item{ID: id, Name: name, Price: p, Description: description, Image: image, Purchased: prev.Purchased}
	if err := c.list.ReplaceAt(idx, it); err != nil {
		return model.Item{}, err
	}
	return it, nil
}

// Delete removes an item by identity. The store no-ops on a missing id, so
// delete always succeeds; the projection is only patched when the id is
// still present in it.
func (c *Commands) Delete(ctx context.Context, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.DeleteItem(ctx, id); err != nil {
		return err
	}
	if idx := c.list.IndexOf(id); idx >= 0 {
		return c.list.RemoveAt(idx)
	}
	return nil
}

// TogglePurchased negates the item's cached purchase flag, persists it, and
// patches the projection in place.
func (c *Commands) TogglePurchased(ctx context.Context, id int64) (model.Item, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.list.IndexOf(id)
	if idx < 0 {
		return model.Item{}, NotFoundError{ID: id}
	}
	it, err := c.list.At(idx)
	if err != nil {
		return model.Item{}, err
	}

	ok, err := c.store.SetPurchased(ctx, id, !it.Purchased)
	if err != nil {
		return model.Item{}, err
	}
	if !ok {
		return model.Item{}, NotFoundError{ID: id}
	}
	if err := c.list.ToggleAt(idx); err != nil {
		return model.Item{}, err
	}
	it.Purchased = !it.Purchased
	return it, nil
}
