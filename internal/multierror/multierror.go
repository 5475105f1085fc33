// Package multierror contains code to manage multiple errors. We use
// it to aggregate the failures observed across a fallback chain, so we
// can log a single message describing everything that went wrong.
package multierror

import (
	"errors"
	"fmt"
	"strings"
)

// Union is the logical union of a root error, used to classify the
// overall failure, and the individual errors that caused it.
type Union struct {
	// Children contains the accumulated errors.
	Children []error

	// Root is the root error.
	Root error
}

// New creates a new [Union] with the given root error.
func New(root error) *Union {
	return &Union{
		Children: nil,
		Root:     root,
	}
}

// Add adds an error to the union.
func (u *Union) Add(err error) {
	u.Children = append(u.Children, err)
}

// AsError returns nil if the union is empty and the union itself otherwise.
func (u *Union) AsError() error {
	if len(u.Children) <= 0 {
		return nil
	}
	return u
}

// Error implements error.
func (u *Union) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s:", u.Root.Error())
	for _, child := range u.Children {
		fmt.Fprintf(&sb, " [%s];", child.Error())
	}
	return sb.String()
}

// Is allows errors.Is to classify the union using its root error.
func (u *Union) Is(target error) bool {
	return errors.Is(u.Root, target)
}

// Unwrap returns the accumulated child errors.
func (u *Union) Unwrap() []error {
	return u.Children
}
