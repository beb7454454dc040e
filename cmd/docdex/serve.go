package main

import (
	"fmt"

	"github.com/fwojciec/docdex"
	"github.com/fwojciec/docdex/mcp"
)

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	project, err := deps.Projects.Project(deps.Ctx, c.Name)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
		return err
	}
	if project == nil {
		return fmt.Errorf("project %q not found. Run 'docdex generate %s <url>' first", c.Name, c.Name)
	}

	server, err := mcp.NewServer(c.Name, deps.Search)
	if err != nil {
		return err
	}

	if c.HTTP != "" {
		fmt.Fprintf(deps.Stderr, "Serving project %q over HTTP on %s\n", c.Name, c.HTTP)
		return server.RunHTTP(deps.Ctx, c.HTTP)
	}
	fmt.Fprintf(deps.Stderr, "Serving project %q over stdio\n", c.Name)
	return server.Run(deps.Ctx)
}
