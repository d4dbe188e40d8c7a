package sync

import (
	"context"
	"time"

	"drive-transcribe-go/internal/types"
)

const transcriptMimeType = "text/plain"

// NeedsTranscription decides whether one candidate still has to be
// transcribed.
//
// Files older than the threshold are rejected before the destination is
// ever queried, so an aged-out backlog costs no remote calls. A missing
// or unparsable created time never filters a file by age; it falls
// through to the transcript check.
func NeedsTranscription(ctx context.Context, dest Storage, destFolderID string, f types.AudioFile, thresholdDays int, now time.Time) (bool, error) {
	if thresholdDays > 0 {
		if created, err := time.Parse(time.RFC3339, f.CreatedTime); err == nil {
			cutoff := now.In(created.Location()).AddDate(0, 0, -thresholdDays)
			if created.Before(cutoff) {
				return false, nil
			}
		}
	}

	existing, err := dest.FindByName(ctx, destFolderID, types.TranscriptName(f.Name), transcriptMimeType)
	if err != nil {
		return false, err
	}
	return existing == nil, nil
}
