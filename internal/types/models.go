package types

import (
	"path/filepath"
	"strings"
)

// AudioFile is the remote metadata for one source recording as returned
// by the Drive listing. Timestamps stay in Drive's RFC3339 form; the
// sync never mutates a listed record, it only re-fetches fresh listings.
type AudioFile struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	MimeType     string `json:"mime_type"`
	Size         int64  `json:"size"`
	CreatedTime  string `json:"created_time"`
	ModifiedTime string `json:"modified_time,omitempty"`
}

// StoredFile is the minimal metadata for an existing remote file, used
// when checking the destination folder for a transcript.
type StoredFile struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ModifiedTime string `json:"modified_time,omitempty"`
}

// AudioMimeTypes is the set of recognized source recording types.
var AudioMimeTypes = []string{"audio/mpeg", "audio/mp3", "audio/wav", "audio/m4a"}

// Stem returns the display name with its final extension removed.
func Stem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// TranscriptName derives the expected transcript file name for an audio
// display name. This naming rule is the only idempotence tracking the
// sync has; any change to it re-transcribes everything or wrongly marks
// files as done.
func TranscriptName(name string) string {
	return Stem(name) + ".txt"
}
