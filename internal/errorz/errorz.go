package errorz

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrRemoteNotConfigured = errors.New("remote backend not configured")
	ErrRemoteRejected      = errors.New("remote backend rejected the write")
)
