package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"drive-transcribe-go/internal/config"
	"drive-transcribe-go/internal/drive"
	"drive-transcribe-go/internal/logger"
	"drive-transcribe-go/internal/report"
	"drive-transcribe-go/internal/scheduler"
	"drive-transcribe-go/internal/sync"
	"drive-transcribe-go/internal/transcribe"
)

func main() {
	_ = godotenv.Load() // loads .env

	days := flag.Int("days", 7, "only process audio files created in the last N days (0 = all files)")
	resetAuth := flag.Bool("reset-auth", false, "drop cached tokens and re-authenticate both accounts")
	interval := flag.Duration("interval", 0, "re-run the sync on this interval (0 = run once and exit, minimum 2h)")
	flag.Parse()

	log := logger.New().WithField("service", "drive-transcribe-go")

	if *days < 0 {
		log.Fatal("-days must be >= 0")
	}

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	if *resetAuth {
		removed := drive.ResetAuth(cfg.SourceTokenFile, cfg.DestTokenFile)
		if len(removed) > 0 {
			log.WithField("removed", strings.Join(removed, ", ")).Info("cached tokens removed, both accounts will re-authenticate")
		} else {
			log.Info("no cached tokens found")
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	source, err := drive.Authenticate(ctx, cfg.SourceCredentialsFile, cfg.SourceTokenFile)
	if err != nil {
		log.WithError(err).Fatal("source account authentication failed")
	}
	log.Info("source account authenticated")

	dest, err := drive.Authenticate(ctx, cfg.DestCredentialsFile, cfg.DestTokenFile)
	if err != nil {
		log.WithError(err).Fatal("destination account authentication failed")
	}
	log.Info("destination account authenticated")

	pipeline := sync.NewPipeline(
		source, dest,
		cfg.SourceFolderID, cfg.DestFolderID,
		transcribe.NewGroqClient(cfg.GroqAPIKey),
		sync.NewStager(cfg.ScratchDir),
		*days,
	)

	runOnce := func(ctx context.Context) bool {
		sum, err := pipeline.Run(ctx)
		if err != nil {
			log.WithError(err).Error("sync aborted")
			return false
		}
		if cfg.ReportPath != "" {
			if err := report.Write(reportPath(cfg.ReportPath, sum.RunID), sum); err != nil {
				log.WithError(err).Warn("could not write run report")
			}
		}
		return true
	}

	if *interval == 0 {
		if !runOnce(ctx) {
			os.Exit(1)
		}
		return
	}

	sched, err := scheduler.New(*interval, func(ctx context.Context) { runOnce(ctx) })
	if err != nil {
		log.WithError(err).Fatal("invalid interval")
	}
	if err := sched.Start(ctx); err != nil {
		log.WithError(err).Fatal("scheduler failed")
	}
}

// reportPath keeps report files unique per run when syncing on an
// interval.
func reportPath(base, runID string) string {
	const ext = ".xlsx"
	if strings.HasSuffix(base, ext) {
		return strings.TrimSuffix(base, ext) + "_" + runID[:8] + ext
	}
	return base + "_" + runID[:8] + ext
}
