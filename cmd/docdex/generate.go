package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/docdex"
	"github.com/fwojciec/docdex/crawl"
)

// Run executes the generate command: discover links, crawl pages, process
// them into groups, and store everything under the project.
func (c *GenerateCmd) Run(deps *Dependencies) error {
	project := docdex.Project{
		Name:      c.Name,
		RootURL:   c.URL,
		CreatedAt: time.Now().UTC(),
	}
	if c.Vector {
		config := docdex.DefaultEmbeddingConfig()
		project.EmbeddingModel = config.Model
		project.EmbeddingDimension = 0 // adopted from the first stored vector
	}
	if err := deps.Projects.CreateProject(deps.Ctx, project); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
		return err
	}

	links, err := deps.Discoverer.Discover(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
		return err
	}
	if len(links) == 0 {
		return fmt.Errorf("no documentation links found at %s", c.URL)
	}
	fmt.Fprintf(deps.Stdout, "Found %d links\n", len(links))

	deps.Crawler.Progress = func(ev crawl.ProgressEvent) {
		if ev.Err != nil {
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", ev.URL, ev.Err)
			return
		}
		fmt.Fprintf(deps.Stdout, "  [%d/%d] %s\n", ev.Index+1, ev.Total, ev.URL)
	}
	pages, err := deps.Crawler.CrawlPages(deps.Ctx, links)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error crawling: %v\n", err)
		return err
	}
	if len(pages) == 0 {
		return fmt.Errorf("no pages could be fetched from %s", c.URL)
	}
	fmt.Fprintf(deps.Stdout, "Crawled %d pages\n", len(pages))

	groups, err := deps.Processor.Process(deps.Ctx, c.Name, pages)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error processing: %v\n", err)
		return err
	}

	for _, pg := range groups {
		if err := deps.Groups.StoreContentGroup(deps.Ctx, c.Name, pg.Group); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
			return err
		}
		if c.Vector {
			if err := deps.Embeddings.StoreDocument(deps.Ctx, pg.Document, pg.Embedding); err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
				return err
			}
			if err := deps.Embeddings.StoreSections(deps.Ctx, pg.Document.Slug, pg.Sections); err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
				return err
			}
		}
		fmt.Fprintf(deps.Stdout, "  group %q: %d pages\n", pg.Group.Name, len(pg.Group.Pages))
	}

	fmt.Fprintf(deps.Stdout, "Stored %d content groups for project %q\n", len(groups), c.Name)
	return nil
}
