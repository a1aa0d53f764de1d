package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/shellmarks/catalog/internal/catalog"
	"github.com/shellmarks/catalog/internal/sectionmenu"
)

// handleListSections lists every section file in the catalog.
func (s *Server) handleListSections(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sections, err := s.catalog.Sections()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing sections failed: %v", err)), nil
	}
	if len(sections) == 0 {
		return mcp.NewToolResultText("No sections found. Use edit_section to create one."), nil
	}
	return mcp.NewToolResultText(formatSections(sections)), nil
}

// handleGetSection returns the markdown source of a section.
func (s *Server) handleGetSection(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: name"), nil
	}

	_, content, err := s.catalog.Read(name)
	if err != nil {
		if errors.Is(err, catalog.ErrSectionNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf(
				"No section named %q. Use list_sections to see what exists, or edit_section to create it.",
				name,
			)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("failed to read section: %v", err)), nil
	}

	return mcp.NewToolResultText(string(content)), nil
}

// handleEditSection gets or creates a section and records the request.
func (s *Server) handleEditSection(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: name"), nil
	}

	res, err := s.host.EditSection(ctx, name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("edit_section failed: %v", err)), nil
	}

	if res.Created {
		return mcp.NewToolResultText(fmt.Sprintf("Created section %q from the template at %s", name, res.Path)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Section %q is at %s", name, res.Path)), nil
}

// handleDecorateHTML runs the section menu injector over an HTML document.
func (s *Server) handleDecorateHTML(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc, err := request.RequireString("html")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: html"), nil
	}

	levels := sectionmenu.LevelRange{
		Min: request.GetInt("min_level", sectionmenu.DefaultLevels.Min),
		Max: request.GetInt("max_level", sectionmenu.DefaultLevels.Max),
	}
	if levels.Min < 0 || levels.Max < levels.Min {
		return mcp.NewToolResultError(fmt.Sprintf("invalid level range %d..%d", levels.Min, levels.Max)), nil
	}

	var out strings.Builder
	n, err := sectionmenu.New(sectionmenu.WithLevels(levels)).InjectHTML(strings.NewReader(doc), &out)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("decorate_html failed: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("<!-- %d section menu(s) injected -->\n%s", n, out.String())), nil
}

// formatSections renders the section list for agent consumption.
func formatSections(sections []catalog.Section) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d section(s):\n", len(sections)))
	for _, sec := range sections {
		sb.WriteString(fmt.Sprintf("\n- %s (%s)\n  File: %s\n", sec.Name, catalog.Label(sec.Name), sec.Path))
	}
	return sb.String()
}
