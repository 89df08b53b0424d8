package scoring

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestWriteCSV(t *testing.T) {
	submittedAt := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	rows := []ExportRow{
		{StudentName: "A", StudentEmail: "a@x.com", SubmittedAt: submittedAt, Score: 3, TotalQuestions: 4},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), buf.String())
	}
	if lines[0] != "Student Name,Email,Submission Date,Score,Percentage" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "A,a@x.com,2024-03-15 10:30:00,3/4,75%" {
		t.Errorf("row = %q", lines[1])
	}
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(buf.String()); got != "Student Name,Email,Submission Date,Score,Percentage" {
		t.Errorf("output = %q, want header only", got)
	}
}

// The original export concatenated fields with commas and never escaped
// them, so a student named "Doe, Jane" broke the column layout. We write
// through encoding/csv instead, which quotes such fields.
func TestWriteCSVEscapesDelimiters(t *testing.T) {
	rows := []ExportRow{
		{StudentName: `Doe, Jane "JD"`, StudentEmail: "jd@x.com", SubmittedAt: time.Unix(0, 0).UTC(), Score: 1, TotalQuestions: 2},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[1], `"Doe, Jane ""JD""",jd@x.com,`) {
		t.Errorf("row not escaped: %q", lines[1])
	}
	if !strings.HasSuffix(lines[1], ",1/2,50%") {
		t.Errorf("row = %q, want 1/2 and 50%% columns", lines[1])
	}
}
