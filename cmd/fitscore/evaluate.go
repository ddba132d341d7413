package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/fitscore/internal/observability"
	"github.com/jonathan/fitscore/internal/types"
)

var evaluateFlags struct {
	file       string
	role       string
	configPath string
	verify     bool
	apiKey     string
	model      string
	jsonOut    bool
	verbose    bool
	jsonLogs   bool
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Score one candidate profile against a role benchmark",
	Long: `Evaluate reads candidate text from a file or stdin, extracts elite
signals, and scores the candidate against the requested role's benchmark.
With --verify, borderline results are escalated to a Gemini model for
corroboration.`,
	RunE: runEvaluate,
}

func init() {
	evaluateCmd.Flags().StringVarP(&evaluateFlags.file, "file", "f", "", "Path to candidate text (default: stdin)")
	evaluateCmd.Flags().StringVarP(&evaluateFlags.role, "role", "r", "", "Target role (required)")
	evaluateCmd.Flags().StringVarP(&evaluateFlags.configPath, "config", "c", "", "Path to config JSON")
	evaluateCmd.Flags().BoolVar(&evaluateFlags.verify, "verify", false, "Escalate borderline results to the verifier")
	evaluateCmd.Flags().StringVar(&evaluateFlags.apiKey, "api-key", "", "Gemini API key (or GEMINI_API_KEY)")
	evaluateCmd.Flags().StringVar(&evaluateFlags.model, "model", "", "Verification model override")
	evaluateCmd.Flags().BoolVar(&evaluateFlags.jsonOut, "json", false, "Emit the result as JSON")
	evaluateCmd.Flags().BoolVarP(&evaluateFlags.verbose, "verbose", "v", false, "Enable debug logging")
	evaluateCmd.Flags().BoolVar(&evaluateFlags.jsonLogs, "json-logs", false, "Emit logs as JSON")

	if err := evaluateCmd.MarkFlagRequired("role"); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	cfg, err := loadRuntimeConfig(evaluateFlags.configPath)
	if err != nil {
		return err
	}
	if evaluateFlags.verify {
		cfg.Verify = true
	}
	if evaluateFlags.apiKey != "" {
		cfg.APIKey = evaluateFlags.apiKey
	}
	if evaluateFlags.model != "" {
		cfg.VerifyModel = evaluateFlags.model
	}
	if evaluateFlags.verbose {
		cfg.Verbose = true
	}
	if evaluateFlags.jsonLogs {
		cfg.JSONLogs = true
	}

	log, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	text, err := readCandidateText(evaluateFlags.file)
	if err != nil {
		return err
	}

	ctx := context.Background()
	eval, cleanup, err := buildEvaluator(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := eval.Evaluate(ctx, types.CandidateInput{
		Text: text,
		Role: strings.ToLower(strings.TrimSpace(evaluateFlags.role)),
	})
	if err != nil {
		return err
	}

	if evaluateFlags.jsonOut {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to serialize result: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	observability.NewPrinter(os.Stdout).PrintResult(result)

	if result.Decision == types.DecisionNoHire {
		log.Debug("candidate below hire bands", zap.Float64("overall", result.Overall))
	}
	return nil
}

// readCandidateText reads the candidate profile from a file, or from stdin
// when no path is given.
func readCandidateText(path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read candidate text from stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read candidate file: %w", err)
	}
	return string(data), nil
}
