package sync

import (
	"errors"
	"fmt"
)

// FailureKind classifies a per-file pipeline failure. These are
// contained at the file boundary: the run continues and the failed file
// stays eligible for the next invocation.
type FailureKind string

const (
	FailureDownload      FailureKind = "download_failed"
	FailureCompression   FailureKind = "compression_failed"
	FailureTooLarge      FailureKind = "still_too_large"
	FailureTranscription FailureKind = "transcription_failed"
	FailureUpload        FailureKind = "upload_failed"
	FailureArchive       FailureKind = "archive_failed"
)

// FileError tags an underlying error with the failing stage and file.
type FileError struct {
	Kind FailureKind
	Name string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Name, e.Kind, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

func fileErr(kind FailureKind, name string, err error) *FileError {
	return &FileError{Kind: kind, Name: name, Err: err}
}

// asFileError extracts the tagged failure from an error chain, falling
// back to a download failure for untagged errors.
func asFileError(name string, err error) *FileError {
	var fe *FileError
	if errors.As(err, &fe) {
		return fe
	}
	return fileErr(FailureDownload, name, err)
}
