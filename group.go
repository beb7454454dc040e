package docdex

import "context"

// ContentGroup is a named cluster of topically related pages backed by one
// generated markdown summary. Every crawled page belongs to exactly one
// group.
type ContentGroup struct {
	Name        string
	Description string
	Summary     string
	Pages       []PageContent
}

// GroupAssignment is the external model's answer to the grouping prompt:
// a named group plus the indices of the pages assigned to it. Indices refer
// to the original crawled page slice.
type GroupAssignment struct {
	Name        string `json:"name"`
	PageIndices []int  `json:"page_indices"`
	Description string `json:"description"`
}

// Grouper partitions pages into topical groups using an external model.
// An error signals the caller to apply the deterministic fallback grouping;
// it never aborts the pipeline.
type Grouper interface {
	GroupPages(ctx context.Context, pages []PageContent) ([]GroupAssignment, error)
}

// Summarizer writes a markdown summary for a group of pages. Implementations
// guarantee the result begins with a heading, synthesizing one when the model
// omits it.
type Summarizer interface {
	Summarize(ctx context.Context, name, description string, pages []PageContent) (string, error)
}

// GroupStore persists content groups and their pages.
type GroupStore interface {
	// StoreContentGroup writes a group and its pages in one transaction,
	// replacing any existing group with the same name in the project.
	StoreContentGroup(ctx context.Context, project string, group ContentGroup) error

	// ContentGroups returns all groups for a project. A missing project
	// yields an empty slice, not an error.
	ContentGroups(ctx context.Context, project string) ([]ContentGroup, error)

	// ContentGroupByName returns one group by name, or nil when the
	// project or group does not exist.
	ContentGroupByName(ctx context.Context, project, name string) (*ContentGroup, error)
}
