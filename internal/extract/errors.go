package extract

import "errors"

// ErrUnreadable indicates the file could not be opened or read. Callers
// skip the file and record the reason; extraction errors are never fatal
// to a run.
var ErrUnreadable = errors.New("file is unreadable")
