package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/vitruves/dupscan/internal/analyzer"
	"github.com/vitruves/dupscan/internal/utils"
)

// Fixed defaults matching common source suffixes and build/VCS directories.
const (
	defaultExtensions  = ".cs,.go,.java,.js,.jsx,.php,.py,.rb,.rs,.ts,.tsx"
	defaultExcludeDirs = ".git,__pycache__,build,coverage,dist,node_modules,vendor"
)

var (
	rootDir        string
	windowSize     int
	minChars       int
	extensions     string
	excludeDirs    string
	top            int
	outputFile     string
	format         string
	jobs           int
	verbose        bool
	monitorEnabled bool
	monitorFile    string
	monitorComment string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dupscan",
		Short: "Find duplicate code blocks across a source tree",
		Long: color.GreenString(`dupscan`) + ` scans a directory tree for byte-identical runs of normalized
source lines and reports the locations that share them, as candidates for
refactoring review.

Detection is a heuristic: lines are stripped of //- and #-style comment
suffixes and all whitespace, then hashed in fixed-size sliding windows.
Results should be reviewed before refactoring.

Examples:
  # Scan the current directory with defaults
  dupscan

  # Larger blocks only, top 10 groups
  dupscan --window 12 --min-chars 200 --top 10

  # Scan a specific tree and track duplication over time
  dupscan --root /path/to/project --monitor`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if windowSize < 1 {
				return fmt.Errorf("--window must be >= 1, got %d", windowSize)
			}
			if minChars < 0 {
				return fmt.Errorf("--min-chars must be >= 0, got %d", minChars)
			}
			if top < 0 {
				return fmt.Errorf("--top must be >= 0, got %d", top)
			}
			if format != "text" && format != "yaml" {
				return fmt.Errorf("--format must be text or yaml, got %q", format)
			}

			options := analyzer.Options{
				Root:           rootDir,
				Extensions:     utils.SplitList(extensions),
				ExcludeDirs:    utils.SplitList(excludeDirs),
				WindowSize:     windowSize,
				MinChars:       minChars,
				Jobs:           jobs,
				Top:            top,
				OutputFile:     outputFile,
				Format:         format,
				Verbose:        verbose,
				Monitor:        monitorEnabled,
				MonitorFile:    monitorFile,
				MonitorComment: monitorComment,
			}
			return analyzer.FindDuplicates(options)
		},
	}

	rootCmd.Flags().StringVar(&rootDir, "root", ".", "Project root to scan")
	rootCmd.Flags().IntVar(&windowSize, "window", 8, "Normalized lines per block (must be >= 1)")
	rootCmd.Flags().IntVar(&minChars, "min-chars", 120, "Minimum normalized characters per block")
	rootCmd.Flags().StringVar(&extensions, "extensions", defaultExtensions, "Comma-separated file extensions to scan")
	rootCmd.Flags().StringVar(&excludeDirs, "exclude-dirs", defaultExcludeDirs, "Comma-separated directory names to exclude")
	rootCmd.Flags().IntVar(&top, "top", 50, "Maximum duplicate groups to print")
	rootCmd.Flags().StringVarP(&outputFile, "output-file", "o", "", "Write the report to a file instead of stdout")
	rootCmd.Flags().StringVar(&format, "format", "text", "Report format (text, yaml)")
	rootCmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "Number of concurrent jobs for scanning")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.Flags().BoolVar(&monitorEnabled, "monitor", false, "Record this run in the duplication history file")
	rootCmd.Flags().StringVar(&monitorFile, "monitor-file", "duplication_history.json", "Path to the monitoring history file")
	rootCmd.Flags().StringVar(&monitorComment, "monitor-comment", "", "Optional comment for this monitoring run")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number of dupscan",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(color.GreenString("dupscan version 1.0.0"))
		},
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error:"), err)
		os.Exit(1)
	}
}
