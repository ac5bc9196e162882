package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/citelens/citelens/internal/model"
	"github.com/citelens/citelens/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	outJSON     string
	outMD       string
	timeout     time.Duration
	userAgent   string
	maxBytes    int64
	noCache     bool
	noFooter    bool
	noRobots    bool
	httpProxy   string
	httpsProxy  string
	llmEnabled  bool
	llmProvider string
	llmModel    string
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <citations.json>",
	Short: "Verify citations against their cited sources",
	Long: `Verify fetches each citation's source document and searches for the
cited phrase at the cited location:
- Try the exact phrase, then a normalized form, at the cited page/line
- Fall back to anchor text, other pages, other lines, partial matches
- Record every attempt so the outcome is explainable
- Classify each citation (verified, partial, miss, pending) with a
  trust level derived from how the text matched
- Resolve a validated page image for each verified citation

Example:
  citelens verify citations.json
  citelens verify citations.json --json report.json --md report.md
  citelens verify citations.json --llm --llm-provider openai`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	// Output flags
	verifyCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	verifyCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")

	// HTTP flags
	verifyCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall verification timeout (increase for inputs with many sources)")
	verifyCmd.Flags().StringVar(&userAgent, "ua", "Citelens/0.1 (+https://github.com/citelens/citelens)", "HTTP User-Agent")
	verifyCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read")
	verifyCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetch)")
	verifyCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	verifyCmd.Flags().BoolVar(&noRobots, "no-robots", false, "ignore robots.txt when fetching sources")
	verifyCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	verifyCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")

	// LLM flags
	verifyCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM summary generation")
	verifyCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	verifyCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runVerify(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	file, err := pipeline.LoadCitationsFile(path)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Verifying: %s (%d citations)\n", path, len(file.Citations))
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", timeout)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", !noCache)
		fmt.Fprintln(os.Stderr)
	}

	cfg := buildConfig()

	if err := configureLLM(cfg); err != nil {
		return err
	}

	p := pipeline.NewPipeline(cfg)

	if verbose {
		fmt.Fprintf(os.Stderr, "⚙️  Fetching sources...\n")
	}

	report, err := p.VerifyCitations(ctx, file)
	if err != nil {
		return fmt.Errorf("verify failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Checked %d citations\n", report.Summary.Total)
		fmt.Fprintf(os.Stderr, "✓ Verified: %d, partial: %d, missed: %d, pending: %d\n",
			report.Summary.Verified, report.Summary.Partial, report.Summary.Missed, report.Summary.Pending)
		if report.LLM != nil && report.LLM.Enabled {
			fmt.Fprintf(os.Stderr, "✓ Generated LLM summary using %s/%s\n", report.LLM.Provider, report.LLM.Model)
		}
		fmt.Fprintln(os.Stderr)
	}

	if err := p.RenderReport(report, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}

// buildConfig merges defaults with the flag values shared by verify
// and batch.
func buildConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.HTTP.Timeout = timeout
	cfg.HTTP.UserAgent = userAgent
	cfg.HTTP.MaxBodyBytes = maxBytes
	cfg.HTTP.HTTPProxy = httpProxy
	cfg.HTTP.HTTPSProxy = httpsProxy
	cfg.HTTP.RespectRobots = !noRobots
	cfg.Cache.Enabled = !noCache
	if cfg.Cache.Enabled && cfg.Cache.Dir == "" {
		cfg.Cache.Dir = defaultCacheDir()
	}
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter
	return cfg
}

// configureLLM fills the LLM section from flags and environment.
func configureLLM(cfg *model.Config) error {
	if !llmEnabled {
		cfg.LLM.Provider = ""
		return nil
	}

	cfg.LLM.Provider = llmProvider
	cfg.LLM.Model = llmModel
	cfg.LLM.StrictEvidence = true // Always enforce

	// Get API key from environment
	switch llmProvider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		baseURL := os.Getenv("OLLAMA_BASE_URL")
		if baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}

	return nil
}
