package client

import "errors"

var (
	// ErrDaemonNotRunning is returned when the daemon socket does not exist.
	ErrDaemonNotRunning = errors.New("daemon not running")

	// ErrPermissionDenied is returned when the daemon socket is not accessible to the current user.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotFound is returned when the daemon does not know the requested path, usually because it is older than the client.
	ErrNotFound = errors.New("404 not found")

	// ErrBadRequest is returned when the daemon rejected the value sent to it.
	ErrBadRequest = errors.New("rejected by daemon")
)
