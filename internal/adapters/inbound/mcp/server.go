package mcp

import (
	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/server"

	"github.com/modcheck/modcheck/internal/adapters/outbound/archive"
	"github.com/modcheck/modcheck/internal/application"
	"github.com/modcheck/modcheck/internal/domain"
	"github.com/modcheck/modcheck/internal/domain/loader"
)

// NewModcheckMCPServer creates a new MCP server with all modcheck tools and
// resources registered. Game versions declared in tool calls are resolved
// against catalog.
func NewModcheckMCPServer(catalog []domain.GameVersion, logger *log.Logger) *server.MCPServer {
	s := server.NewMCPServer(
		"modcheck",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	svc := application.NewValidateService(archive.New(), loader.Registry(), logger)
	registerTools(s, svc, catalog)
	registerResources(s, svc, catalog)

	return s
}
