// Package mcp exposes the section catalog to AI agents over the Model
// Context Protocol.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/shellmarks/catalog/internal/catalog"
	"github.com/shellmarks/catalog/internal/linkrouter"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes section catalog tools.
type Server struct {
	catalog *catalog.Catalog
	host    *linkrouter.Host
	mcp     *server.MCPServer
}

// NewServer creates a new MCP server. Edit requests go through host, which
// should carry history.SourceMCP as its source.
func NewServer(cat *catalog.Catalog, host *linkrouter.Host) *Server {
	s := &Server{
		catalog: cat,
		host:    host,
	}

	s.mcp = server.NewMCPServer(
		"shellmarks",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(listSectionsTool, s.handleListSections)
	s.mcp.AddTool(getSectionTool, s.handleGetSection)
	s.mcp.AddTool(editSectionTool, s.handleEditSection)
	s.mcp.AddTool(decorateHTMLTool, s.handleDecorateHTML)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
