package cli

import (
	"fmt"
	"os"

	"github.com/citelens/citelens/internal/model"
	"github.com/citelens/citelens/internal/pipeline"
	"github.com/spf13/cobra"
)

// classifyCmd represents the classify command
var classifyCmd = &cobra.Command{
	Use:   "classify <records.json>",
	Short: "Classify existing verification records without fetching",
	Long: `Classify takes verification records produced by an earlier search
(this tool's or another's) and derives status flags, trust levels, and
validated page images for each record. No network access is performed.

Example:
  citelens classify records.json
  citelens classify records.json --json report.json --md report.md`,
	Args: cobra.ExactArgs(1),
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)

	classifyCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	classifyCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	classifyCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
}

func runClassify(cmd *cobra.Command, args []string) error {
	path := args[0]

	file, err := pipeline.LoadRecordsFile(path)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Classifying: %s (%d records)\n", path, len(file.Records))
		fmt.Fprintln(os.Stderr)
	}

	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = false
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	p := pipeline.NewPipeline(cfg)

	report, err := p.ClassifyRecords(file)
	if err != nil {
		return fmt.Errorf("classify failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Classified %d records\n", report.Summary.Total)
		fmt.Fprintf(os.Stderr, "✓ Verified: %d, partial: %d, missed: %d, pending: %d\n",
			report.Summary.Verified, report.Summary.Partial, report.Summary.Missed, report.Summary.Pending)
		fmt.Fprintln(os.Stderr)
	}

	if err := p.RenderReport(report, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}
