package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/modcheck/modcheck/internal/application"
	"github.com/modcheck/modcheck/internal/domain"
)

// registerTools registers all modcheck MCP tools on the given server.
func registerTools(s *server.MCPServer, svc *application.ValidateService, catalog []domain.GameVersion) {
	// 1. modcheck_validate
	s.AddTool(
		mcplib.NewTool("modcheck_validate",
			mcplib.WithDescription("Validates a mod archive on disk against its declared project type, loaders and game versions. "+
				"Returns a JSON report whose status is pass, warning or error; only pass may be marked primary."),
			mcplib.WithString("path",
				mcplib.Required(),
				mcplib.Description("Path to the archive to validate"),
			),
			mcplib.WithString("project_type",
				mcplib.Required(),
				mcplib.Description("Declared project type (mod, modpack, resourcepack, datapack, plugin)"),
			),
			mcplib.WithString("loaders",
				mcplib.Required(),
				mcplib.Description("Comma-separated declared loaders (e.g. fabric,quilt)"),
			),
			mcplib.WithString("game_versions",
				mcplib.Description("Comma-separated declared game versions (e.g. 1.20.1,1.20.4)"),
			),
			mcplib.WithString("extension",
				mcplib.Description("Declared file extension; defaults to the path's extension"),
			),
			mcplib.WithBoolean("explain",
				mcplib.Description("Include the validators whose preconditions matched"),
			),
		),
		handleValidate(svc, catalog),
	)

	// 2. modcheck_list_validators
	s.AddTool(
		mcplib.NewTool("modcheck_list_validators",
			mcplib.WithDescription("Returns the registered validators in dispatch order with their extensions, project types, loaders and game version policy"),
		),
		handleListValidators(svc),
	)
}

func handleValidate(svc *application.ValidateService, catalog []domain.GameVersion) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		path, err := request.RequireString("path")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		projectType, err := request.RequireString("project_type")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		loadersStr, err := request.RequireString("loaders")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		args := request.GetArguments()
		var gameVersions []string
		if v, ok := args["game_versions"].(string); ok && v != "" {
			gameVersions = splitAndTrim(v)
		}
		ext := filepath.Ext(path)
		if v, ok := args["extension"].(string); ok && v != "" {
			ext = v
		}
		explain, _ := args["explain"].(bool)

		data, err := os.ReadFile(path)
		if err != nil {
			return errorResult(fmt.Sprintf("reading %s: %v", path, err)), nil
		}

		// Validation errors are part of the report, not tool failures.
		report, _ := svc.Report(path, domain.FileInput{
			Data:         data,
			Extension:    ext,
			ProjectType:  projectType,
			Loaders:      splitAndTrim(loadersStr),
			GameVersions: gameVersions,
		}, catalog, explain)
		return jsonResult(report)
	}
}

func handleListValidators(svc *application.ValidateService) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		return jsonResult(describe(svc.Validators()))
	}
}

func describe(validators []domain.Validator) []domain.ValidatorInfo {
	infos := make([]domain.ValidatorInfo, 0, len(validators))
	for _, v := range validators {
		infos = append(infos, domain.Describe(v))
	}
	return infos
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v any) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
