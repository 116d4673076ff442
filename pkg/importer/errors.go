package importer

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFileType rejects uploads whose extension the pipeline does
// not understand, before any bytes are read.
var ErrUnsupportedFileType = errors.New("unsupported file type")

// SizeLimitError aborts a run before parsing when the reported file size
// exceeds the configured cap.
type SizeLimitError struct {
	Size  int64
	Limit int64
}

func (e *SizeLimitError) Error() string {
	return fmt.Sprintf("file size %d bytes exceeds the %d byte limit", e.Size, e.Limit)
}

// ParseError aborts a run when the file cannot be interpreted at all.
// No partial result is produced in that case.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse file: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
