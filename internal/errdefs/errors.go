package errdefs

import "errors"

var (
	ErrValidation       = errors.New("validation error")
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotFound         = errors.New("not found")
	ErrAlreadyExists    = errors.New("already exists")

	// ErrStaleState marks a transition whose expected current status no
	// longer matches the persisted row. Callers should re-fetch and may
	// retry once.
	ErrStaleState = errors.New("stale assignment state")

	ErrStoreUnavailable = errors.New("record store unavailable")
	ErrBlobUnavailable  = errors.New("blob store unavailable")
	ErrFileNotFound     = errors.New("file not found")
)
