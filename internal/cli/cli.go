package cli

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/aerostock/aerostock/config"
	"github.com/aerostock/aerostock/internal/core/blueprint"
	"github.com/aerostock/aerostock/internal/core/inventory"
	"github.com/aerostock/aerostock/internal/core/validation"
	"github.com/aerostock/aerostock/internal/logger"
	"github.com/aerostock/aerostock/internal/storage/upstream"
)

const sourceFlag = "source"

// New builds the invq command tree.
func New() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "invq <command> [flags]",
		Short:         "Query the aircraft inventory",
		Long:          "Search, filter, sort and page airplanes and components from the source API.",
		SilenceErrors: true,
		SilenceUsage:  true,
		Example: heredoc.Doc(`
			$ invq query --search cessna
			$ invq query --filter finished --filter airplane --sort cost --dir desc
			$ invq filters
			$ invq facilities 2
		`),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.InitTo(cmd.ErrOrStderr(), logger.Config{Level: "WARN", Format: "text"})
		},
	}

	rootCmd.PersistentFlags().String(sourceFlag, "", "Source API base URL, overrides configuration (e.g. http://localhost:5000 or https://host/api/v1)")

	rootCmd.AddCommand(
		queryCommand(),
		filtersCommand(),
		facilitiesCommand(),
	)

	return rootCmd
}

// newService wires an inventory service against the configured source API.
func newService(cmd *cobra.Command) (*inventory.Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if raw, _ := cmd.Flags().GetString(sourceFlag); raw != "" {
		if err := applySourceURL(&cfg.Source, raw); err != nil {
			return nil, err
		}
	}

	client, err := upstream.NewClient(&cfg.Source)
	if err != nil {
		return nil, err
	}

	return inventory.NewService(
		inventory.NewRepository(client),
		blueprint.NewService(),
		validation.NewValidator(),
		&cfg.Inventory,
	), nil
}

func applySourceURL(src *config.SourceConfig, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid --%s: %w", sourceFlag, err)
	}
	if u.Scheme == "" || u.Hostname() == "" {
		return fmt.Errorf("invalid --%s %q: scheme and host required", sourceFlag, raw)
	}
	src.Scheme = u.Scheme
	src.Host = u.Hostname()
	src.Port = u.Port()
	src.BasePath = strings.TrimSuffix(u.Path, "/")
	return nil
}
