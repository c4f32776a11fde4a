package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/ppiankov/opinionsplit/internal/ingest"
	"github.com/ppiankov/opinionsplit/internal/logging"
	"github.com/ppiankov/opinionsplit/internal/model"
	"github.com/ppiankov/opinionsplit/internal/pipeline"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	perCuriam bool
	outPath   string
	useCache  bool
)

// splitCmd represents the split command
var splitCmd = &cobra.Command{
	Use:   "split <file>",
	Short: "Split a single decision into its opinions",
	Long: `Split reads one decision and prints one record per opinion.

CourtListener opinion JSON (.json) carries its own per curiam flag; any other
file is read as plain text and --per-curiam marks it as unsigned.

Example:
  opinionsplit split 12345.json
  opinionsplit split decision.txt --per-curiam
  opinionsplit split decision.txt --no-concurring --format json --out opinions.json`,
	Args: cobra.ExactArgs(1),
	RunE: runSplit,
}

func init() {
	rootCmd.AddCommand(splitCmd)

	splitCmd.Flags().BoolVar(&perCuriam, "per-curiam", false, "treat plain text input as a per curiam decision")
	splitCmd.Flags().StringVar(&outPath, "out", "-", "output path (- for stdout)")
	splitCmd.Flags().String("format", model.FormatJSONL, "output format (jsonl, json)")
	splitCmd.Flags().Bool("no-concurring", false, "omit the concurring opinion")
	splitCmd.Flags().Bool("no-second-dissent", false, "omit the second dissenting opinion")
	splitCmd.Flags().BoolVar(&useCache, "cache", false, "read and write the result cache")
}

func runSplit(cmd *cobra.Command, args []string) error {
	path := args[0]

	v := viper.GetViper()
	if err := v.BindPFlag("output.format", cmd.Flags().Lookup("format")); err != nil {
		return err
	}
	cfg, err := loadConfig(v)
	if err != nil {
		return err
	}
	applySplitFlags(cmd, cfg)
	// Single files are cheap; only cache when asked to
	cfg.Cache.Enabled = useCache && cfg.Cache.Enabled

	logger := logging.NewOrNop(cfg.Output.Verbose)
	defer func() { _ = logger.Sync() }()

	registry := ingest.NewRegistry(perCuriam)
	registry.SetFallback(ingest.NewPlainTextAdapter(perCuriam))

	p := pipeline.NewPipeline(cfg, registry, logger)
	decisions, err := p.SplitFile(context.Background(), path)
	if err != nil {
		return fmt.Errorf("split failed: %w", err)
	}

	renderer := pipeline.NewRenderer(cfg.Output.Format)
	records := renderer.Records(decisions)
	if err := renderer.WriteFile(outPath, records); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	for _, d := range decisions {
		if d.Skipped {
			fmt.Fprintf(os.Stderr, "✗ %s: not a decision (%s)\n", d.Document.ID, d.Reason)
		}
	}

	if cfg.Output.Verbose {
		summary := pipeline.NewSummary()
		summary.Add(decisions)
		summary.Records = len(records)
		pipeline.RenderSummary(os.Stderr, summary)
	}

	return nil
}
