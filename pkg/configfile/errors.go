package configfile

import (
	"errors"
	"fmt"
)

var errNotAnObject = errors.New("root value is not a JSON object")

// NotFoundError indicates the configuration file does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("configuration file not found: %s", e.Path)
}

// MalformedError indicates the configuration file is not a valid JSON
// object. Offset is the byte position of the syntax error when known.
type MalformedError struct {
	Path   string
	Offset int64
	Err    error
}

func (e *MalformedError) Error() string {
	if e.Offset > 0 {
		return fmt.Sprintf("invalid JSON in %s at offset %d: %v", e.Path, e.Offset, e.Err)
	}
	return fmt.Sprintf("invalid JSON in %s: %v", e.Path, e.Err)
}

func (e *MalformedError) Unwrap() error { return e.Err }

// BackupError indicates the backup snapshot could not be written. The
// original file is untouched when this is returned.
type BackupError struct {
	Path string
	Err  error
}

func (e *BackupError) Error() string {
	return fmt.Sprintf("cannot write backup %s: %v", e.Path, e.Err)
}

func (e *BackupError) Unwrap() error { return e.Err }

// WriteError indicates the cleaned document could not be persisted. The
// write is staged in a temporary file and renamed into place, so the
// original file is still intact when this is returned.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("cannot write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
