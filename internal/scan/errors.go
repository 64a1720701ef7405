package scan

import "errors"

var (
	// ErrUnreadable indicates a file could not be opened or read
	// (permissions, broken symlink). Callers skip the file and record
	// the reason; it is never fatal to a run.
	ErrUnreadable = errors.New("file is unreadable")

	// ErrNoFiles indicates the walk finished without finding any
	// processable file. This is fatal to the run.
	ErrNoFiles = errors.New("no files found in workspace")

	// ErrInvalidRoot indicates the root path does not exist or is not
	// a directory.
	ErrInvalidRoot = errors.New("invalid workspace root")
)
