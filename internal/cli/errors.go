package cli

import "fmt"

type notFoundError struct {
	id int64
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("item not found: %d", e.id)
}

func errNotFound(id int64) error {
	return notFoundError{id: id}
}

type invalidIDError struct {
	arg string
}

func (e invalidIDError) Error() string {
	return fmt.Sprintf("invalid item id: %q", e.arg)
}

func errInvalidID(arg string) error {
	return invalidIDError{arg: arg}
}
