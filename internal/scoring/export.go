package scoring

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"
)

// ExportRow is one submission resolved with its student's identity for the
// teacher-facing results export.
type ExportRow struct {
	StudentName    string
	StudentEmail   string
	SubmittedAt    time.Time
	Score          int
	TotalQuestions int
}

var exportHeader = []string{"Student Name", "Email", "Submission Date", "Score", "Percentage"}

// WriteCSV writes the results table for a quiz. Free-text fields such as the
// student name are escaped per RFC 4180, so names containing commas or
// quotes stay in one column.
func WriteCSV(w io.Writer, rows []ExportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}

	for _, row := range rows {
		record := []string{
			row.StudentName,
			row.StudentEmail,
			row.SubmittedAt.Format("2006-01-02 15:04:05"),
			fmt.Sprintf("%d/%d", row.Score, row.TotalQuestions),
			fmt.Sprintf("%d%%", Percentage(row.Score, row.TotalQuestions)),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
