package report

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"drive-transcribe-go/internal/logger"
	"drive-transcribe-go/internal/sync"
)

// Write saves a per-run outcome workbook: one row per candidate with
// its outcome, failure kind and transcript id. Nothing else records why
// a file was skipped or failed once the run ends.
func Write(path string, sum *sync.Summary) error {
	log := logger.New().WithRun(sum.RunID).WithField("component", "report")

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Run"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"File", "Size (bytes)", "Created", "Outcome", "Failure Kind", "Detail", "Transcript ID"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for i, o := range sum.Outcomes {
		outcome := "processed"
		kind := ""
		detail := ""
		switch {
		case o.Skipped:
			outcome = "skipped"
		case o.Failure != nil:
			outcome = "failed"
			kind = string(o.Failure.Kind)
			detail = o.Failure.Err.Error()
		}
		values := []interface{}{o.File.Name, o.File.Size, o.File.CreatedTime, outcome, kind, detail, o.TranscriptID}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("write row: %w", err)
			}
		}
	}

	summaryCell, _ := excelize.CoordinatesToCellName(1, len(sum.Outcomes)+3)
	_ = f.SetCellValue(sheet, summaryCell, fmt.Sprintf("run %s: %d processed, %d errors, %d skipped in %s",
		sum.RunID, sum.Processed, sum.Errored, sum.Skipped,
		sum.FinishedAt.Sub(sum.StartedAt).Round(time.Millisecond)))

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	log.WithField("path", path).WithField("rows", len(sum.Outcomes)).Info("run report written")
	return nil
}
