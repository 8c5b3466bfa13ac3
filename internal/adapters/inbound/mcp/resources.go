package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/modcheck/modcheck/internal/application"
	"github.com/modcheck/modcheck/internal/domain"
	"github.com/modcheck/modcheck/internal/domain/loader"
)

// registerResources registers all modcheck MCP resources on the given server.
func registerResources(s *server.MCPServer, svc *application.ValidateService, catalog []domain.GameVersion) {
	// 1. modcheck://validators - registry in dispatch order
	s.AddResource(
		mcplib.NewResource(
			"modcheck://validators",
			"Validators",
			mcplib.WithResourceDescription("Registered validators in dispatch order"),
			mcplib.WithMIMEType("application/json"),
		),
		func(_ context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
			return jsonContents(request.Params.URI, describe(svc.Validators()))
		},
	)

	// 2. modcheck://catalog - game versions used for date lookups
	s.AddResource(
		mcplib.NewResource(
			"modcheck://catalog",
			"Game Version Catalog",
			mcplib.WithResourceDescription("Known game versions with release dates"),
			mcplib.WithMIMEType("application/json"),
		),
		func(_ context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
			return jsonContents(request.Params.URI, catalog)
		},
	)

	// 3. modcheck://validators/{name} - a single validator (resource template)
	s.AddResourceTemplate(
		mcplib.NewResourceTemplate(
			"modcheck://validators/{name}",
			"Validator",
			mcplib.WithTemplateDescription("Descriptor of a single validator"),
			mcplib.WithTemplateMIMEType("application/json"),
		),
		handleValidatorResource,
	)
}

func handleValidatorResource(_ context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
	name := templateArg(request.Params.Arguments["name"])
	if name == "" {
		return nil, fmt.Errorf("validator name is required")
	}
	v, ok := loader.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown validator %q", name)
	}
	return jsonContents(request.Params.URI, domain.Describe(v))
}

// templateArg accepts both plain strings and the single-element slices the
// template matcher may produce.
func templateArg(v any) string {
	switch a := v.(type) {
	case string:
		return a
	case []string:
		if len(a) > 0 {
			return a[0]
		}
	}
	return ""
}

func jsonContents(uri string, v any) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", uri, err)
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
