// Package mcp exposes the documentation knowledge base to AI assistants as
// Model Context Protocol tools.
package mcp

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/fwojciec/docdex"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is the MCP server version.
const Version = "0.1.0"

var serverNameRe = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// Server exposes a docdex.SearchService over MCP.
type Server struct {
	search docdex.SearchService
	server *mcp.Server
}

// NewServer creates an MCP server serving the given search service. The
// project name becomes part of the server name after sanitization.
func NewServer(project string, search docdex.SearchService) (*Server, error) {
	if search == nil {
		return nil, docdex.Errorf(docdex.EINVALID, "search service is required")
	}

	impl := &mcp.Implementation{
		Name:    serverName(project),
		Version: Version,
	}

	s := &Server{
		search: search,
		server: mcp.NewServer(impl, nil),
	}
	s.registerTools()
	return s, nil
}

// serverName derives a protocol-safe server name from a project name.
func serverName(project string) string {
	name := serverNameRe.ReplaceAllString(strings.TrimSpace(project), "-")
	name = strings.Trim(name, "-")
	if name == "" {
		return "docdex"
	}
	return "docdex-" + strings.ToLower(name)
}

// Run starts the MCP server over stdio.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP starts the MCP server over streamable HTTP on the given address.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background()) //nolint:errcheck
	}()

	err := httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
