package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/fitscore/internal/observability"
	"github.com/jonathan/fitscore/internal/types"
)

var batchFlags struct {
	file       string
	role       string
	configPath string
	workers    int
	verify     bool
	apiKey     string
	jsonOut    bool
	verbose    bool
	jsonLogs   bool
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Score a batch of candidate profiles concurrently",
	Long: `Batch reads candidates as JSON Lines, one object per line with
"identifier" and "text" fields, and evaluates them concurrently against a
single role benchmark. Output preserves input order; a malformed candidate
occupies its slot as an error without failing the batch.`,
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVarP(&batchFlags.file, "file", "f", "", "Path to JSONL candidates file (required)")
	batchCmd.Flags().StringVarP(&batchFlags.role, "role", "r", "", "Target role for all candidates (required)")
	batchCmd.Flags().StringVarP(&batchFlags.configPath, "config", "c", "", "Path to config JSON")
	batchCmd.Flags().IntVarP(&batchFlags.workers, "workers", "w", 0, "Concurrent evaluation workers (default 10)")
	batchCmd.Flags().BoolVar(&batchFlags.verify, "verify", false, "Escalate borderline results to the verifier")
	batchCmd.Flags().StringVar(&batchFlags.apiKey, "api-key", "", "Gemini API key (or GEMINI_API_KEY)")
	batchCmd.Flags().BoolVar(&batchFlags.jsonOut, "json", false, "Emit results as a JSON array")
	batchCmd.Flags().BoolVarP(&batchFlags.verbose, "verbose", "v", false, "Enable debug logging")
	batchCmd.Flags().BoolVar(&batchFlags.jsonLogs, "json-logs", false, "Emit logs as JSON")

	for _, name := range []string{"file", "role"} {
		if err := batchCmd.MarkFlagRequired(name); err != nil {
			panic(err)
		}
	}

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadRuntimeConfig(batchFlags.configPath)
	if err != nil {
		return err
	}
	if batchFlags.verify {
		cfg.Verify = true
	}
	if batchFlags.apiKey != "" {
		cfg.APIKey = batchFlags.apiKey
	}
	if batchFlags.workers > 0 {
		cfg.BatchWorkers = batchFlags.workers
	}
	if batchFlags.verbose {
		cfg.Verbose = true
	}
	if batchFlags.jsonLogs {
		cfg.JSONLogs = true
	}

	log, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	items, err := readBatchItems(batchFlags.file)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return fmt.Errorf("no candidates found in %s", batchFlags.file)
	}

	ctx := context.Background()
	eval, cleanup, err := buildEvaluator(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	role := strings.ToLower(strings.TrimSpace(batchFlags.role))
	results := eval.EvaluateBatch(ctx, items, role)

	stats := eval.CacheStats()
	log.Debug("batch cache counters",
		zap.Int("size", stats.Size),
		zap.Int64("hits", stats.Hits),
		zap.Int64("misses", stats.Misses))

	if batchFlags.jsonOut {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to serialize results: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	observability.NewPrinter(os.Stdout).PrintBatchSummary(results)
	return nil
}

// readBatchItems parses a JSON Lines file into batch items. Blank lines are
// skipped; a line that is not valid JSON fails the whole read so a truncated
// file is caught before any evaluation starts.
func readBatchItems(path string) ([]types.BatchItem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open candidates file: %w", err)
	}
	defer f.Close()

	var items []types.BatchItem
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var item types.BatchItem
		if err := json.Unmarshal([]byte(line), &item); err != nil {
			return nil, fmt.Errorf("invalid candidate on line %d: %w", lineNo, err)
		}
		items = append(items, item)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read candidates file: %w", err)
	}
	return items, nil
}
