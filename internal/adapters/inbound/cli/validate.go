package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/modcheck/modcheck/internal/adapters/outbound/archive"
	"github.com/modcheck/modcheck/internal/adapters/outbound/tui"
	"github.com/modcheck/modcheck/internal/application"
	"github.com/modcheck/modcheck/internal/domain"
	"github.com/modcheck/modcheck/internal/domain/loader"
)

func newValidateCmd() *cobra.Command {
	var (
		projectType  string
		loaders      []string
		gameVersions []string
		ext          string
		jsonOut      bool
		explain      bool
	)

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a mod archive against its declared metadata",
		Long: "Open the archive, pick the validator matching the declared project type, loaders, " +
			"game versions and extension, and check its manifest. Exits non-zero on a validation error; " +
			"a warning means the file is accepted but must not be marked primary.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)

			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			if ext == "" {
				ext = filepath.Ext(path)
			}

			versions, err := loadCatalog(cfg.Catalog, logger)
			if err != nil {
				return err
			}

			svc := application.NewValidateService(archive.New(), loader.Registry(), logger)
			report, verr := svc.Report(path, domain.FileInput{
				Data:         data,
				Extension:    ext,
				ProjectType:  projectType,
				Loaders:      loaders,
				GameVersions: gameVersions,
			}, versions, explain)

			if jsonOut || cfg.Output == domain.OutputJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(report))
			}

			if verr != nil {
				return fmt.Errorf("validation failed: %w", verr)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&projectType, "type", "mod", "Declared project type (mod, modpack, resourcepack, datapack, plugin)")
	cmd.Flags().StringSliceVar(&loaders, "loader", nil, "Declared loader; repeat or comma-separate for several")
	cmd.Flags().StringSliceVar(&gameVersions, "game-version", nil, "Declared game version; repeat or comma-separate for several")
	cmd.Flags().String("catalog", "", "Game version catalog file (YAML or JSON); defaults to the bundled catalog")
	cmd.Flags().StringVar(&ext, "ext", "", "Declared file extension (defaults to the file's extension)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&explain, "explain", false, "List the validators whose preconditions matched")

	return cmd
}
