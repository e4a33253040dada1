package cli

import (
	"context"
	"fmt"

	"atscan/internal/common"
	"atscan/internal/pipeline"
	"atscan/internal/report"
	"atscan/internal/types"

	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan [cv-file]",
	Short: "Score a CV for ATS compatibility",
	Long: `Score a CV against ATS criteria: keyword coverage, formatting, content
quality, ATS parseability and quantification. Scoring is deterministic and
needs no network access.

Supply a job description with --job to include job-match scoring, and a
target role with --role for role-alignment analysis. Use --report for the
full assembled report with benchmarks and prioritized recommendations.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if scanConfig.OutputFormat == "" {
			scanConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(scanConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runScan,
}

var (
	scanConfig  common.CommandConfig
	scanJobFile string
	scanRole    string
	scanReport  bool
)

func init() {
	scanCmd.Flags().StringVarP(&scanConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	scanCmd.Flags().StringVar(&scanConfig.OutputFormat, "format", "", "Output format: json, text, markdown, or csv")
	scanCmd.Flags().StringVarP(&scanJobFile, "job", "j", "", "Job description file for job-match scoring")
	scanCmd.Flags().StringVarP(&scanRole, "role", "r", "", "Target role for alignment analysis (e.g. devops, developer)")
	scanCmd.Flags().BoolVar(&scanReport, "report", false, "Produce the full assembled report")

	// Add completion for format flag
	_ = scanCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())
	scanConfig.MaxFileSize = cfg.App.MaxFileSize

	svc, err := pipeline.New(cmd.Context(), cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}

	files := args
	if scanJobFile != "" {
		files = append(files, scanJobFile)
	}

	createInput := func(contents []string) (types.ScanInput, error) {
		input := types.ScanInput{
			Content:    contents[0],
			TargetRole: scanRole,
			Source:     args[0],
		}
		if len(contents) > 1 {
			input.JobDescription = contents[1]
		}
		return input, nil
	}

	logDetails := func(input types.ScanInput, cfg common.CommandConfig) {
		logger.Info("Starting CV scan",
			"cv_chars", len(input.Content),
			"job_chars", len(input.JobDescription),
			"target_role", input.TargetRole,
			"output_format", cfg.OutputFormat)
	}

	if scanReport {
		reportOperation := func(ctx context.Context, input types.ScanInput) (*report.Report, error) {
			return svc.BuildReport(ctx, input, nil), nil
		}
		err = common.RunCommand(cmd.Context(), logger, scanConfig, files, createInput, reportOperation, logDetails)
	} else {
		scanOperation := func(ctx context.Context, input types.ScanInput) (*types.ScanResult, error) {
			return svc.Scan(ctx, input), nil
		}
		err = common.RunCommand(cmd.Context(), logger, scanConfig, files, createInput, scanOperation, logDetails)
	}

	if err != nil {
		return fmt.Errorf("failed to scan CV: %w", err)
	}
	logger.Info("CV scan completed successfully")
	return nil
}
