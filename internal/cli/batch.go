package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ppiankov/opinionsplit/internal/ingest"
	"github.com/ppiankov/opinionsplit/internal/logging"
	"github.com/ppiankov/opinionsplit/internal/model"
	"github.com/ppiankov/opinionsplit/internal/pipeline"
	"github.com/ppiankov/opinionsplit/internal/worker"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	batchOut     string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <path>...",
	Short: "Split many decisions in parallel",
	Long: `Batch splits every decision found in the given inputs concurrently:
- Files are read with the matching adapter (.json CourtListener, .txt plain text)
- Directories are walked for readable files
- @list reads paths from a file (one per line, # comments)
- Dismissals and documents with no majority opinion are skipped and counted

Example:
  opinionsplit batch ./opinions --out opinions.jsonl
  opinionsplit batch @cases.txt --workers 16 --no-concurring
  opinionsplit batch a.json b.json --format json --no-cache`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().Int("workers", 0, "number of concurrent workers (default: number of CPUs)")
	batchCmd.Flags().String("format", model.FormatJSONL, "output format (jsonl, json)")
	batchCmd.Flags().StringVar(&batchOut, "out", "-", "output path (- for stdout)")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 30*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().Bool("no-concurring", false, "omit concurring opinions")
	batchCmd.Flags().Bool("no-second-dissent", false, "omit second dissenting opinions")
	batchCmd.Flags().Bool("no-cache", false, "disable the result cache")
}

func runBatch(cmd *cobra.Command, args []string) error {
	v := viper.GetViper()
	if err := v.BindPFlag("output.format", cmd.Flags().Lookup("format")); err != nil {
		return err
	}
	if cmd.Flags().Changed("workers") {
		if err := v.BindPFlag("concurrency.workers", cmd.Flags().Lookup("workers")); err != nil {
			return err
		}
	}
	cfg, err := loadConfig(v)
	if err != nil {
		return err
	}
	applySplitFlags(cmd, cfg)

	logger := logging.NewOrNop(cfg.Output.Verbose)
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	registry := ingest.NewRegistry(false)
	paths, err := worker.ExpandInputs(args, registry.CanHandle)
	if err != nil {
		return fmt.Errorf("resolve inputs: %w", err)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Opinion Split Batch\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Inputs:     %d files\n", len(paths))
	fmt.Fprintf(os.Stderr, "  Workers:    %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "  Cache:      %v\n", cfg.Cache.Enabled)
	fmt.Fprintf(os.Stderr, "  Concurring: %v\n", cfg.Split.IncludeConcurring)
	fmt.Fprintf(os.Stderr, "  2nd dissent: %v\n", cfg.Split.IncludeSecondDissent)
	fmt.Fprintf(os.Stderr, "\n")

	p := pipeline.NewPipeline(cfg, registry, logger)
	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers)
	results := processor.ProcessPaths(ctx, paths)

	summary := pipeline.NewSummary()
	var decisions []model.Decision
	for _, result := range results {
		if result.Error != nil {
			summary.Files++
			summary.Failed++
			logger.Warn("file failed", zap.String("path", result.Path), zap.Error(result.Error))
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, result.Error)
			continue
		}
		summary.Add(result.Decisions)
		decisions = append(decisions, result.Decisions...)
	}

	renderer := pipeline.NewRenderer(cfg.Output.Format)
	records := renderer.Records(decisions)
	summary.Records = len(records)
	if err := renderer.WriteFile(batchOut, records); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	pipeline.RenderSummary(os.Stderr, summary)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("batch incomplete: %w", err)
	}
	return nil
}
