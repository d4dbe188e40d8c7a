package sync

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"drive-transcribe-go/internal/logger"
	"drive-transcribe-go/internal/types"
)

// ProcessedFolderName is the archive subfolder lazily created under the
// source folder.
const ProcessedFolderName = "processed"

// Pipeline wires the collaborators for one folder pair. Every remote
// handle is an explicit dependency so tests can substitute fakes.
// Processing is strictly sequential; a single shared scratch directory
// is safe because no two files are in flight at once.
type Pipeline struct {
	Source         Storage
	Dest           Storage
	SourceFolderID string
	DestFolderID   string
	Transcriber    Transcriber
	Stager         *Stager
	ThresholdDays  int

	now func() time.Time
}

func NewPipeline(source, dest Storage, sourceFolderID, destFolderID string, tr Transcriber, st *Stager, thresholdDays int) *Pipeline {
	return &Pipeline{
		Source:         source,
		Dest:           dest,
		SourceFolderID: sourceFolderID,
		DestFolderID:   destFolderID,
		Transcriber:    tr,
		Stager:         st,
		ThresholdDays:  thresholdDays,
		now:            time.Now,
	}
}

// FileOutcome records what happened to one candidate during a run.
type FileOutcome struct {
	File         types.AudioFile
	TranscriptID string
	Skipped      bool
	Failure      *FileError
}

// Summary aggregates one run. It lives only for that invocation; the
// durable state is whatever is visible in the remote folders (uploaded
// transcripts and the processed subfolder).
type Summary struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time
	Total      int
	Skipped    int
	Processed  int
	Errored    int
	Outcomes   []FileOutcome
}

// Run executes one full sync. Per-file failures are contained, counted
// and logged; the failed file simply stays eligible for the next run.
// Only folder setup and listing failures abort the invocation.
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	runID := logger.NewRunID()
	log := logger.New().WithRun(runID).WithField("component", "sync.pipeline")

	sum := &Summary{RunID: runID, StartedAt: p.now()}
	log.WithField("threshold_days", p.ThresholdDays).Info("sync starting")

	processedFolderID, err := p.Source.EnsureChildFolder(ctx, p.SourceFolderID, ProcessedFolderName)
	if err != nil {
		return nil, fmt.Errorf("ensure processed folder: %w", err)
	}

	candidates, err := p.Source.ListAudio(ctx, p.SourceFolderID)
	if err != nil {
		return nil, fmt.Errorf("list source folder: %w", err)
	}
	sum.Total = len(candidates)
	log.WithField("total", len(candidates)).Info("source listing complete")

	for _, f := range candidates {
		needed, err := NeedsTranscription(ctx, p.Dest, p.DestFolderID, f, p.ThresholdDays, p.now())
		if err != nil {
			return nil, fmt.Errorf("check transcript for %q: %w", f.Name, err)
		}
		if !needed {
			sum.Skipped++
			sum.Outcomes = append(sum.Outcomes, FileOutcome{File: f, Skipped: true})
			continue
		}

		outcome := p.processFile(ctx, log, processedFolderID, f)
		if outcome.Failure != nil {
			sum.Errored++
		} else {
			sum.Processed++
		}
		sum.Outcomes = append(sum.Outcomes, outcome)
	}

	sum.FinishedAt = p.now()
	log.WithFields(logrus.Fields{
		"processed": sum.Processed,
		"errors":    sum.Errored,
		"skipped":   sum.Skipped,
	}).Info("sync complete")
	return sum, nil
}

// processFile walks one candidate through download, staging,
// transcription, upload and archive. The transcript upload strictly
// precedes the archive move: archiving first would make the source
// invisible to later runs with no transcript ever produced.
func (p *Pipeline) processFile(ctx context.Context, log *logrus.Entry, processedFolderID string, f types.AudioFile) FileOutcome {
	fileLog := log.WithField("file", f.Name).WithField("size_bytes", f.Size)
	fileLog.Info("processing file")

	stagedPath, cleanup, err := p.Stager.Stage(ctx, p.Source, f)
	if err != nil {
		return p.failed(fileLog, f, asFileError(f.Name, err))
	}
	defer cleanup()

	text, err := p.Transcriber.Transcribe(ctx, stagedPath)
	if err != nil {
		return p.failed(fileLog, f, fileErr(FailureTranscription, f.Name, err))
	}
	fileLog.WithField("chars", len(text)).Info("transcription complete")

	transcriptName := types.TranscriptName(f.Name)
	transcriptPath := filepath.Join(p.Stager.ScratchDir, transcriptName)
	if err := os.WriteFile(transcriptPath, []byte(text), 0644); err != nil {
		return p.failed(fileLog, f, fileErr(FailureUpload, f.Name, err))
	}
	defer removeIfExists(transcriptPath)

	transcriptID, err := p.Dest.Upload(ctx, transcriptPath, p.DestFolderID, transcriptName)
	if err != nil {
		return p.failed(fileLog, f, fileErr(FailureUpload, f.Name, err))
	}
	fileLog.WithField("transcript_id", transcriptID).Info("transcript uploaded")

	if err := p.Source.Move(ctx, f.ID, processedFolderID, p.SourceFolderID); err != nil {
		return p.failed(fileLog, f, fileErr(FailureArchive, f.Name, err))
	}
	fileLog.Info("source archived")

	return FileOutcome{File: f, TranscriptID: transcriptID}
}

func (p *Pipeline) failed(log *logrus.Entry, f types.AudioFile, fe *FileError) FileOutcome {
	log.WithError(fe.Err).WithField("kind", string(fe.Kind)).Warn("file failed, continuing")
	return FileOutcome{File: f, Failure: fe}
}
