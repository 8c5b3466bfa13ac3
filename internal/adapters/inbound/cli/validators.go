package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/modcheck/modcheck/internal/adapters/outbound/tui"
	"github.com/modcheck/modcheck/internal/domain"
	"github.com/modcheck/modcheck/internal/domain/loader"
)

func newValidatorsCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "validators",
		Short: "List registered validators in dispatch order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			infos := describeRegistry()
			if jsonOut || cfg.Output == domain.OutputJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(infos)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderValidators(infos))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func describeRegistry() []domain.ValidatorInfo {
	validators := loader.Registry()
	infos := make([]domain.ValidatorInfo, 0, len(validators))
	for _, v := range validators {
		infos = append(infos, domain.Describe(v))
	}
	return infos
}
