package main

import (
	"fmt"

	"github.com/fwojciec/docdex"
)

// Run executes the projects command.
func (c *ProjectsCmd) Run(deps *Dependencies) error {
	projects, err := deps.Projects.Projects(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
		return err
	}

	if len(projects) == 0 {
		fmt.Fprintln(deps.Stdout, "No projects found. Use 'docdex generate' to create one.")
		return nil
	}

	for _, p := range projects {
		groups, err := deps.Groups.ContentGroups(deps.Ctx, p.Name)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %d groups\n", p.Name, p.RootURL, len(groups))
	}

	return nil
}
