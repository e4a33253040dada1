package cli

import (
	"fmt"

	"atscan/internal/pipeline"

	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the models the configured LLM endpoint advertises",
	Long: `Query the configured LLM endpoint for its available models. Uses the
short list timeout (5s by default) so an unreachable endpoint fails fast.`,
	RunE: runModels,
}

func runModels(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	svc, err := pipeline.New(cmd.Context(), cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}

	models, err := svc.ListModels(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list models from %s: %w", svc.ProviderName(), err)
	}

	fmt.Printf("Available models (%s):\n", svc.ProviderName())
	for _, model := range models {
		fmt.Printf("  - %s\n", model)
	}
	if len(models) == 0 {
		fmt.Println("  (none)")
	}
	return nil
}
