package cli

import (
	"context"
	"fmt"

	"atscan/internal/common"
	"atscan/internal/pipeline"
	"atscan/internal/types"

	"github.com/spf13/cobra"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest [cv-file]",
	Short: "List deterministic improvement suggestions for a CV",
	Long: `Suggest improvements for a CV without calling any LLM. Suggestions cover
quantification of bullet points, action-verb strength and missing sections,
each with concrete examples.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if suggestConfig.OutputFormat == "" {
			suggestConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(suggestConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runSuggest,
}

var suggestConfig common.CommandConfig

func init() {
	suggestCmd.Flags().StringVarP(&suggestConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	suggestCmd.Flags().StringVar(&suggestConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	// Add completion for format flag
	_ = suggestCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runSuggest(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())
	suggestConfig.MaxFileSize = cfg.App.MaxFileSize

	svc, err := pipeline.New(cmd.Context(), cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}

	createInput := func(contents []string) (string, error) {
		return contents[0], nil
	}

	logDetails := func(input string, cfg common.CommandConfig) {
		logger.Info("Generating CV suggestions",
			"cv_chars", len(input),
			"output_format", cfg.OutputFormat)
	}

	suggestOperation := func(ctx context.Context, content string) ([]types.Suggestion, error) {
		return svc.Suggest(ctx, content), nil
	}

	err = common.RunCommand(
		cmd.Context(),
		logger,
		suggestConfig,
		args,
		createInput,
		suggestOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to generate suggestions: %w", err)
	}
	logger.Info("CV suggestions generated successfully")
	return nil
}
