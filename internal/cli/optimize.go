package cli

import (
	"context"
	"fmt"

	"atscan/internal/common"
	"atscan/internal/pipeline"
	"atscan/internal/types"

	"github.com/spf13/cobra"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize [cv-file]",
	Short: "Rewrite a CV for better ATS scores",
	Long: `Optimize a CV using the configured LLM. When the endpoint is unreachable
or returns an unusable response, a deterministic rule-based rewrite is applied
instead; the command never fails because of the model.

Optimization levels:
- conservative: at most 2 changes per section, structure preserved
- balanced: moderate changes including keywords and impact (default)
- aggressive: full rewrite allowed, structure may change`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if optimizeConfig.OutputFormat == "" {
			optimizeConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(optimizeConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runOptimize,
}

var (
	optimizeConfig  common.CommandConfig
	optimizeJobFile string
	optimizeLevel   string
)

func init() {
	optimizeCmd.Flags().StringVarP(&optimizeConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	optimizeCmd.Flags().StringVar(&optimizeConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	optimizeCmd.Flags().StringVarP(&optimizeJobFile, "job", "j", "", "Job description file to optimize against")
	optimizeCmd.Flags().StringVarP(&optimizeLevel, "level", "l", "", "Optimization level: conservative, balanced, aggressive (default from config)")

	// Add completion for format flag
	_ = optimizeCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
	_ = optimizeCmd.RegisterFlagCompletionFunc("level", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"conservative", "balanced", "aggressive"}, cobra.ShellCompDirectiveNoFileComp
	})
}

func runOptimize(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())
	optimizeConfig.MaxFileSize = cfg.App.MaxFileSize

	svc, err := pipeline.New(cmd.Context(), cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}

	files := args
	if optimizeJobFile != "" {
		files = append(files, optimizeJobFile)
	}

	createInput := func(contents []string) (types.OptimizeInput, error) {
		input := types.OptimizeInput{
			Content: contents[0],
			Level:   optimizeLevel,
		}
		if len(contents) > 1 {
			input.JobDescription = contents[1]
		}
		return input, nil
	}

	logDetails := func(input types.OptimizeInput, cfg common.CommandConfig) {
		logger.Info("Starting CV optimization",
			"cv_chars", len(input.Content),
			"job_chars", len(input.JobDescription),
			"level", input.Level,
			"output_format", cfg.OutputFormat)
	}

	optimizeOperation := func(ctx context.Context, input types.OptimizeInput) (*types.OptimizeResult, error) {
		return svc.Optimize(ctx, input), nil
	}

	err = common.RunCommand(
		cmd.Context(),
		logger,
		optimizeConfig,
		files,
		createInput,
		optimizeOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to optimize CV: %w", err)
	}
	logger.Info("CV optimization completed successfully")
	return nil
}
