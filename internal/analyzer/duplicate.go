package analyzer

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/vitruves/dupscan/internal/utils"
	"golang.org/x/sync/semaphore"
)

// Options contains options for a duplicate scan. Defaults are filled in by
// the command layer; Options itself is never mutated once the scan starts.
type Options struct {
	// Scan scope
	Root        string   // Root directory to scan
	Extensions  []string // File extensions to include (case-insensitive suffixes)
	ExcludeDirs []string // Directory names to prune at any depth

	// Windowing
	WindowSize int // Normalized lines per block
	MinChars   int // Minimum joined-block character length

	// Processing options
	Jobs int // Number of concurrent per-file scanners

	// Output options
	Top        int    // Maximum number of groups to render
	OutputFile string // Path to output file for the report ("" = stdout)
	Format     string // Report format: "text" or "yaml"
	Verbose    bool   // Whether to enable diagnostic output

	// Monitoring options
	Monitor        bool   // Whether to record this run in the history file
	MonitorFile    string // Path to the monitoring history file
	MonitorComment string // Optional comment for this monitoring run
}

// FindDuplicates scans the tree under options.Root and writes the duplicate
// block report. Per-file read failures contribute zero windows and the scan
// continues; a directory listing failure aborts the run.
func FindDuplicates(options Options) error {
	if options.Jobs <= 0 {
		options.Jobs = 1
	}

	root, err := filepath.Abs(options.Root)
	if err != nil {
		return fmt.Errorf("error resolving root %s: %w", options.Root, err)
	}

	startTime := time.Now()

	files, err := utils.CollectFiles(root, options.Extensions, options.ExcludeDirs)
	if err != nil {
		return err
	}

	if options.Verbose {
		fmt.Fprintln(os.Stderr, color.CyanString("Found %d files to scan under %s", len(files), root))
	}

	index := scanFiles(root, files, options)
	report := BuildReport(root, len(files), index.Groups(), options.Top)

	writer, closeWriter, err := openReportWriter(options.OutputFile)
	if err != nil {
		return err
	}

	switch options.Format {
	case "", "text":
		err = report.WriteText(writer)
	case "yaml":
		err = report.WriteYAML(writer)
	default:
		err = fmt.Errorf("unknown report format: %s", options.Format)
	}
	if flushErr := closeWriter(); err == nil {
		err = flushErr
	}
	if err != nil {
		return err
	}

	elapsed := time.Since(startTime)
	fmt.Fprintln(os.Stderr, color.GreenString("Scan completed in %s", utils.FormatDuration(elapsed)))
	fmt.Fprintf(os.Stderr, "Scanned %s files, found %s duplicate groups, showing %s\n",
		color.YellowString("%d", report.FilesScanned),
		color.YellowString("%d", report.TotalGroups),
		color.YellowString("%d", len(report.Groups)))

	if options.Monitor {
		metrics := ScanMetrics{
			Timestamp:       time.Now(),
			Root:            root,
			FilesScanned:    report.FilesScanned,
			WindowsHashed:   index.WindowCount(),
			DuplicateGroups: report.TotalGroups,
			WindowSize:      options.WindowSize,
			MinChars:        options.MinChars,
			Comment:         options.MonitorComment,
		}
		if metrics.WindowsHashed > 0 {
			metrics.DuplicationRate = float64(metrics.DuplicateGroups) / float64(metrics.WindowsHashed)
		}
		if err := SaveScanMetrics(metrics, options.MonitorFile); err != nil {
			fmt.Fprintln(os.Stderr, color.RedString("Error saving monitoring data: %v", err))
		} else {
			fmt.Fprintf(os.Stderr, "Monitoring data saved to %s\n", color.CyanString(options.MonitorFile))
			if err := PrintScanTrend(os.Stderr, options.MonitorFile); err != nil {
				fmt.Fprintln(os.Stderr, color.YellowString("Could not print duplication trend: %v", err))
			}
		}
	}

	return nil
}

// scanFiles hashes every file's windows into a shared index. Files are
// independent, so they are scanned concurrently; only the index insert is
// synchronized. Report ordering does not depend on completion order.
func scanFiles(root string, files []string, options Options) *Index {
	index := NewIndex()

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription("Scanning files"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetWriter(os.Stderr),
	)

	sem := semaphore.NewWeighted(int64(options.Jobs))
	var wg sync.WaitGroup

	for _, file := range files {
		wg.Add(1)
		go func(filePath string) {
			defer wg.Done()
			sem.Acquire(context.Background(), 1)
			defer sem.Release(1)

			windows := ScanFile(filePath, options.WindowSize, options.MinChars)
			if windows == nil && options.Verbose {
				fmt.Fprintln(os.Stderr, color.YellowString("No windows from %s (unreadable or too short)", filePath))
			}

			rel, err := filepath.Rel(root, filePath)
			if err != nil {
				rel = filePath
			}
			index.Add(rel, windows)
			bar.Add(1)
		}(file)
	}

	wg.Wait()
	bar.Finish()

	return index
}

func openReportWriter(outputFile string) (*bufio.Writer, func() error, error) {
	if outputFile == "" {
		writer := bufio.NewWriter(os.Stdout)
		return writer, writer.Flush, nil
	}
	f, err := os.Create(outputFile)
	if err != nil {
		return nil, nil, fmt.Errorf("error creating output file: %w", err)
	}
	writer := bufio.NewWriter(f)
	return writer, func() error {
		if err := writer.Flush(); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}, nil
}
