package mutate

import "fmt"

// ValidationError means caller-supplied input violated a precondition. The
// command aborts before touching the store.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError means a command referenced an id that no longer exists
// (typically a race between the view snapshot and the backing data). The
// projection is left untouched.
type NotFoundError struct {
	ID int64
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("item not found: %d", e.ID)
}
