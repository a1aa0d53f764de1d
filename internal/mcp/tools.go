package mcp

import "github.com/mark3labs/mcp-go/mcp"

// listSectionsTool defines the list_sections MCP tool.
var listSectionsTool = mcp.NewTool("list_sections",
	mcp.WithDescription("List the section files of the script catalog with their names, labels and paths."),
)

// getSectionTool defines the get_section MCP tool.
var getSectionTool = mcp.NewTool("get_section",
	mcp.WithDescription("Get the markdown source of one catalog section."),
	mcp.WithString("name",
		mcp.Required(),
		mcp.Description("Section name: the file name without extension, as used in editSection: links"),
	),
)

// editSectionTool defines the edit_section MCP tool.
var editSectionTool = mcp.NewTool("edit_section",
	mcp.WithDescription("Resolve a section for editing, creating it from the section template when it does not exist. Returns the file path to edit."),
	mcp.WithString("name",
		mcp.Required(),
		mcp.Description("Section name"),
	),
)

// decorateHTMLTool defines the decorate_html MCP tool.
var decorateHTMLTool = mcp.NewTool("decorate_html",
	mcp.WithDescription("Add section menus with an Edit Section action to every div.sect0 to div.sect7 of an HTML document."),
	mcp.WithString("html",
		mcp.Required(),
		mcp.Description("HTML document to decorate"),
	),
	mcp.WithNumber("min_level",
		mcp.Description("Lowest section level to decorate (default 0)"),
	),
	mcp.WithNumber("max_level",
		mcp.Description("Highest section level to decorate (default 7)"),
	),
)
