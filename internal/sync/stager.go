package sync

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"drive-transcribe-go/internal/logger"
	"drive-transcribe-go/internal/types"
)

// MaxUploadBytes is the transcription provider's hard request ceiling.
const MaxUploadBytes = 25 * 1024 * 1024

// Stager produces a local, size-compliant copy of a remote recording.
// Speech stays intelligible at far lower bitrate and sample rate than
// music, so oversized files are re-encoded to mono 16 kHz at 32 kbps
// before being rejected as too large.
type Stager struct {
	ScratchDir string
	MaxBytes   int64
	FFmpegPath string
}

func NewStager(scratchDir string) *Stager {
	return &Stager{
		ScratchDir: scratchDir,
		MaxBytes:   MaxUploadBytes,
		FFmpegPath: "ffmpeg",
	}
}

// Stage downloads the remote file and returns the path that should be
// sent to the transcription provider, plus a cleanup function removing
// every local byproduct of the stage. On failure the stager has already
// removed its byproducts; the returned cleanup is then a no-op. The
// source remote file is never touched.
func (s *Stager) Stage(ctx context.Context, src Storage, f types.AudioFile) (string, func(), error) {
	log := logger.New().WithField("component", "sync.stager").WithField("file", f.Name)
	noop := func() {}

	if err := os.MkdirAll(s.ScratchDir, 0755); err != nil {
		return "", noop, fileErr(FailureDownload, f.Name, err)
	}

	audioPath := filepath.Join(s.ScratchDir, f.Name)
	if err := src.Download(ctx, f.ID, audioPath); err != nil {
		removeIfExists(audioPath)
		return "", noop, fileErr(FailureDownload, f.Name, err)
	}
	cleanup := func() { removeIfExists(audioPath) }

	info, err := os.Stat(audioPath)
	if err != nil {
		cleanup()
		return "", noop, fileErr(FailureDownload, f.Name, err)
	}
	if info.Size() <= s.MaxBytes {
		return audioPath, cleanup, nil
	}

	log.WithField("size_bytes", info.Size()).Info("file exceeds upload ceiling, compressing")
	compressedPath := filepath.Join(s.ScratchDir, "compressed_"+types.Stem(f.Name)+".mp3")
	if err := s.compress(ctx, audioPath, compressedPath); err != nil {
		removeIfExists(compressedPath)
		cleanup()
		return "", noop, fileErr(FailureCompression, f.Name, err)
	}

	fullCleanup := func() {
		removeIfExists(compressedPath)
		removeIfExists(audioPath)
	}

	compressedInfo, err := os.Stat(compressedPath)
	if err != nil {
		fullCleanup()
		return "", noop, fileErr(FailureCompression, f.Name, err)
	}
	if compressedInfo.Size() > s.MaxBytes {
		fullCleanup()
		return "", noop, fileErr(FailureTooLarge, f.Name,
			fmt.Errorf("still %d bytes after compression (limit %d)", compressedInfo.Size(), s.MaxBytes))
	}

	log.WithField("compressed_bytes", compressedInfo.Size()).Info("compression complete")
	return compressedPath, fullCleanup, nil
}

// compress re-encodes for speech: mono, 16 kHz sample rate, 32 kbps.
func (s *Stager) compress(ctx context.Context, inputPath, outputPath string) error {
	cmd := exec.CommandContext(ctx, s.FFmpegPath,
		"-i", inputPath,
		"-ar", "16000",
		"-ac", "1",
		"-b:a", "32k",
		"-y",
		outputPath,
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w: %s", s.FFmpegPath, err, lastLine(out))
	}
	return nil
}

func lastLine(out []byte) string {
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	return lines[len(lines)-1]
}

func removeIfExists(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.New().WithField("component", "sync.stager").WithError(err).Warn("could not remove scratch file")
	}
}
