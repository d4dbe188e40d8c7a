package sync

import (
	"context"

	"drive-transcribe-go/internal/types"
)

// Storage is the slice of the remote file store the pipeline depends
// on. Two independent instances are used: one for the source account,
// one for the destination account.
type Storage interface {
	ListAudio(ctx context.Context, folderID string) ([]types.AudioFile, error)
	FindByName(ctx context.Context, folderID, name, mimeType string) (*types.StoredFile, error)
	Download(ctx context.Context, fileID, destPath string) error
	Upload(ctx context.Context, localPath, folderID, name string) (string, error)
	Move(ctx context.Context, fileID, addParent, removeParent string) error
	EnsureChildFolder(ctx context.Context, parentID, name string) (string, error)
}

// Transcriber turns a local audio file into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}
