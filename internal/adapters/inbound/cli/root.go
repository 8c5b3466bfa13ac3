package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/modcheck/modcheck/internal/adapters/outbound/catalog"
	"github.com/modcheck/modcheck/internal/adapters/outbound/config"
	"github.com/modcheck/modcheck/internal/domain"
)

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "modcheck",
		Short: "Validate mod packages before publishing",
		Long: "modcheck inspects a mod archive and checks that its manifest matches the declared " +
			"project type, loaders and game versions, and whether it may be the project's primary file.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides config)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newValidatorsCmd())
	cmd.AddCommand(newMCPCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}

// loadConfig reads .modcheck.yaml and the environment, then applies any
// flags the user set explicitly.
func loadConfig(cmd *cobra.Command) (domain.ProjectConfig, error) {
	cfg, err := config.New().Load(".")
	if err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("loading config: %w", err)
	}

	if f := cmd.Flags().Lookup("log-level"); f != nil && f.Changed {
		cfg.LogLevel = f.Value.String()
	}
	if f := cmd.Flags().Lookup("catalog"); f != nil && f.Changed {
		cfg.Catalog = f.Value.String()
	}
	if err := cfg.Validate(); err != nil {
		return domain.ProjectConfig{}, err
	}
	return cfg, nil
}

func newLogger(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix: "modcheck",
	})
	if lvl, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	} else {
		logger.SetLevel(log.WarnLevel)
	}
	return logger
}

// loadCatalog reads the configured catalog, falling back to the bundled one.
func loadCatalog(path string, logger *log.Logger) ([]domain.GameVersion, error) {
	if path == "" {
		logger.Debug("using bundled catalog")
		return catalog.Default(), nil
	}
	versions, err := catalog.New().Load(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("catalog loaded", "path", path, "versions", len(versions))
	return versions, nil
}
