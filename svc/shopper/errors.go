package shopper

import "errors"

var (
	// ErrNoVisitor is returned by Registry.Acquire when the device or session id
	// is missing.
	ErrNoVisitor = errors.New("shopper.no_visitor")

	// ErrInvalidPath is returned by RememberReturnPath for paths that are not
	// site-local.
	ErrInvalidPath = errors.New("shopper.invalid_return_path")

	// ErrReturnPathStore wraps session storage failures while saving the
	// return path.
	ErrReturnPathStore = errors.New("shopper.return_path_storage")
)
