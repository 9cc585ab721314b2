package tool

import (
	"errors"
	"fmt"
)

// InitializationError reports a tool whose descriptor could not be loaded.
type InitializationError struct {
	Name string
	Err  error
}

func (e *InitializationError) Error() string {
	return fmt.Sprintf("initialize tool %s: %v", e.Name, e.Err)
}

func (e *InitializationError) Unwrap() error {
	return e.Err
}

// DownloadErrorKind distinguishes a missing remote artifact from any other
// fault during fetch, extraction, or cache placement.
type DownloadErrorKind string

const (
	DownloadNotFound DownloadErrorKind = "not found"
	DownloadFailed   DownloadErrorKind = "download failed"
)

// DownloadError is fatal to Download; callers must treat tool setup as
// failed for that tool.
type DownloadError struct {
	Tool string
	URL  string
	Kind DownloadErrorKind
	Err  error
}

func (e *DownloadError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("tool %s: %s: %s", e.Tool, e.Kind, e.URL)
	}
	return fmt.Sprintf("tool %s: %s", e.Tool, e.Kind)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a DownloadError for a missing remote
// artifact.
func IsNotFound(err error) bool {
	var dlErr *DownloadError
	return errors.As(err, &dlErr) && dlErr.Kind == DownloadNotFound
}
