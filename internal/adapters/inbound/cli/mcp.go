package cli

import (
	mcpadapter "github.com/modcheck/modcheck/internal/adapters/inbound/mcp"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the modcheck MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd())
	return cmd
}

func newMCPServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start modcheck MCP server (stdio)",
		Long:  "Start the modcheck MCP server using stdio transport. This lets AI assistants validate mod archives and inspect the validator registry.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			// stdout carries the protocol; logs go to stderr only.
			logger := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)

			versions, err := loadCatalog(cfg.Catalog, logger)
			if err != nil {
				return err
			}
			s := mcpadapter.NewModcheckMCPServer(versions, logger)
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().String("catalog", "", "Game version catalog file (YAML or JSON); defaults to the bundled catalog")

	return cmd
}
