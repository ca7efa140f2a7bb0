package analyzer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
)

// ScanMetrics is one recorded duplicate scan, kept in the history file so
// duplication can be tracked over time.
type ScanMetrics struct {
	Timestamp       time.Time `json:"timestamp"`
	Root            string    `json:"root"`
	FilesScanned    int       `json:"files_scanned"`
	WindowsHashed   int       `json:"windows_hashed"`
	DuplicateGroups int       `json:"duplicate_groups"`
	DuplicationRate float64   `json:"duplication_rate"`
	WindowSize      int       `json:"window_size"`
	MinChars        int       `json:"min_chars"`
	Comment         string    `json:"comment,omitempty"`
}

// ScanHistory is the on-disk shape of the monitoring file.
type ScanHistory struct {
	Metrics []ScanMetrics `json:"metrics"`
}

// SaveScanMetrics appends one scan's metrics to the history file, creating
// it if needed. A corrupted history file is replaced rather than failing
// the run.
func SaveScanMetrics(metrics ScanMetrics, monitorFile string) error {
	var history ScanHistory

	if data, err := os.ReadFile(monitorFile); err == nil {
		if err := json.Unmarshal(data, &history); err != nil {
			history = ScanHistory{}
		}
	}

	history.Metrics = append(history.Metrics, metrics)

	data, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling monitoring data: %w", err)
	}
	if err := os.WriteFile(monitorFile, data, 0644); err != nil {
		return fmt.Errorf("error writing monitoring file: %w", err)
	}
	return nil
}

// PrintScanTrend prints the last few recorded scans as a small table.
func PrintScanTrend(w io.Writer, monitorFile string) error {
	data, err := os.ReadFile(monitorFile)
	if err != nil {
		return fmt.Errorf("error reading monitoring file: %w", err)
	}

	var history ScanHistory
	if err := json.Unmarshal(data, &history); err != nil {
		return fmt.Errorf("error parsing monitoring file: %w", err)
	}

	if len(history.Metrics) < 2 {
		fmt.Fprintln(w, color.YellowString("Not enough data points to show a trend. Run with --monitor multiple times."))
		return nil
	}

	fmt.Fprintln(w, color.CyanString("\nDuplication trend:"))
	fmt.Fprintf(w, "%-18s %8s %8s %8s\n", "Date", "Files", "Groups", "Rate")

	start := 0
	if len(history.Metrics) > 5 {
		start = len(history.Metrics) - 5
	}
	for i := start; i < len(history.Metrics); i++ {
		m := history.Metrics[i]
		rate := fmt.Sprintf("%.4f", m.DuplicationRate)
		if i > start {
			prev := history.Metrics[i-1].DuplicationRate
			switch {
			case m.DuplicationRate > prev:
				rate = color.RedString(rate)
			case m.DuplicationRate < prev:
				rate = color.GreenString(rate)
			}
		}
		fmt.Fprintf(w, "%-18s %8d %8d %8s\n",
			m.Timestamp.Format("2006-01-02 15:04"), m.FilesScanned, m.DuplicateGroups, rate)
	}
	return nil
}
