package errs

import "errors"

// Sentinel errors shared across usecase layers
var (
	// Access errors
	ErrNotAdministrator = errors.New("sender is not the administrator")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
	ErrTransportFailed         = errors.New("transport operation failed")
)
