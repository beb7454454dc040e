package mcp

import (
	"context"

	"github.com/fwojciec/docdex"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SearchInput is the input schema for the search_documentation tool.
type SearchInput struct {
	Query    string `json:"query" jsonschema:"free-text query to search the documentation for"`
	Project  string `json:"project,omitempty" jsonschema:"restrict results to one project"`
	Category string `json:"category,omitempty" jsonschema:"restrict results to one category"`
	Limit    int    `json:"limit,omitempty" jsonschema:"maximum number of results (default 5, max 20)"`
}

// SearchOutput is the output schema for the search_documentation tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
	Error   *ToolError           `json:"error,omitempty"`
}

// SearchResultOutput is a single ranked hit.
type SearchResultOutput struct {
	Slug     string          `json:"slug"`
	Title    string          `json:"title"`
	Category string          `json:"category"`
	Summary  string          `json:"summary"`
	Score    float64         `json:"score"`
	Sections []SectionOutput `json:"sections,omitempty"`
}

// SectionOutput is a section-level match within a hit.
type SectionOutput struct {
	SectionID string  `json:"section_id"`
	Title     string  `json:"title"`
	Snippet   string  `json:"snippet"`
	Score     float64 `json:"score"`
}

// GetDocumentInput is the input schema for the get_document tool.
type GetDocumentInput struct {
	Slug            string `json:"slug" jsonschema:"document slug returned by search_documentation or list_documents"`
	IncludeSections bool   `json:"include_sections,omitempty" jsonschema:"include per-section content"`
}

// GetDocumentOutput is the output schema for the get_document tool.
type GetDocumentOutput struct {
	Slug       string            `json:"slug,omitempty"`
	Title      string            `json:"title,omitempty"`
	Category   string            `json:"category,omitempty"`
	Summary    string            `json:"summary,omitempty"`
	Keywords   []string          `json:"keywords,omitempty"`
	SourceURLs []string          `json:"source_urls,omitempty"`
	Sections   []DocumentSection `json:"sections,omitempty"`
	Error      *ToolError        `json:"error,omitempty"`
}

// DocumentSection is one ordered section of a loaded document.
type DocumentSection struct {
	SectionID string `json:"section_id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
}

// ListDocumentsInput is the input schema for the list_documents tool.
type ListDocumentsInput struct {
	Project  string `json:"project,omitempty" jsonschema:"restrict listing to one project"`
	Category string `json:"category,omitempty" jsonschema:"restrict listing to one category"`
	SortBy   string `json:"sort_by,omitempty" jsonschema:"sort key within categories: title, category, or date"`
}

// ListDocumentsOutput is the output schema for the list_documents tool.
type ListDocumentsOutput struct {
	Categories map[string][]DocumentListing `json:"categories"`
	Count      int                          `json:"count"`
	Error      *ToolError                   `json:"error,omitempty"`
}

// DocumentListing is one document in a category listing.
type DocumentListing struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

// ToolError is a structured error payload. Invalid input and missing
// documents are normal tool outcomes for an AI caller, so they surface here
// with actionable guidance rather than as protocol errors.
type ToolError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// toolError converts a domain error to a payload. Internal errors pass
// through as real errors so the SDK reports them.
func toolError(err error, suggestion string) (*ToolError, error) {
	code := docdex.ErrorCode(err)
	if code == docdex.EINVALID || code == docdex.ENOTFOUND {
		return &ToolError{
			Code:       string(code),
			Message:    docdex.ErrorMessage(err),
			Suggestion: suggestion,
		}, nil
	}
	return nil, err
}

// registerTools registers the three retrieval tools with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_documentation",
		Description: "Search the local documentation knowledge base. Returns ranked documents with section-level matches.",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_document",
		Description: "Load a full documentation document by slug, optionally with its sections.",
	}, s.handleGetDocument)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_documents",
		Description: "List stored documentation documents grouped by category.",
	}, s.handleListDocuments)
}

func (s *Server) handleSearch(ctx context.Context, _ *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, SearchOutput, error) {
	results, err := s.search.Search(ctx, input.Query, docdex.SearchOptions{
		Project:  input.Project,
		Category: input.Category,
		Limit:    input.Limit,
	})
	if err != nil {
		toolErr, hard := toolError(err, "provide a non-empty query, for example a feature name or an error message")
		if hard != nil {
			return nil, SearchOutput{}, hard
		}
		return nil, SearchOutput{Error: toolErr}, nil
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}
	for i, r := range results {
		out := SearchResultOutput{
			Slug:     r.Document.Slug,
			Title:    r.Document.Title,
			Category: r.Document.Category,
			Summary:  r.Document.Summary,
			Score:    r.Score,
		}
		for _, sec := range r.Sections {
			out.Sections = append(out.Sections, SectionOutput{
				SectionID: sec.SectionID,
				Title:     sec.Title,
				Snippet:   sec.Snippet,
				Score:     sec.Score,
			})
		}
		output.Results[i] = out
	}
	return nil, output, nil
}

func (s *Server) handleGetDocument(ctx context.Context, _ *mcp.CallToolRequest, input GetDocumentInput) (*mcp.CallToolResult, GetDocumentOutput, error) {
	result, err := s.search.LoadDocument(ctx, input.Slug, input.IncludeSections)
	if err != nil {
		toolErr, hard := toolError(err, "call list_documents to see available slugs")
		if hard != nil {
			return nil, GetDocumentOutput{}, hard
		}
		return nil, GetDocumentOutput{Error: toolErr}, nil
	}

	output := GetDocumentOutput{
		Slug:       result.Document.Slug,
		Title:      result.Document.Title,
		Category:   result.Document.Category,
		Summary:    result.Document.Summary,
		Keywords:   result.Document.Keywords,
		SourceURLs: result.Document.SourceURLs,
	}
	for _, sec := range result.Sections {
		output.Sections = append(output.Sections, DocumentSection{
			SectionID: sec.SectionID,
			Title:     sec.Title,
			Content:   sec.Content,
		})
	}
	return nil, output, nil
}

func (s *Server) handleListDocuments(ctx context.Context, _ *mcp.CallToolRequest, input ListDocumentsInput) (*mcp.CallToolResult, ListDocumentsOutput, error) {
	grouped, err := s.search.ListDocuments(ctx, docdex.ListOptions{
		Project:  input.Project,
		Category: input.Category,
		SortBy:   input.SortBy,
	})
	if err != nil {
		toolErr, hard := toolError(err, "")
		if hard != nil {
			return nil, ListDocumentsOutput{}, hard
		}
		return nil, ListDocumentsOutput{Error: toolErr}, nil
	}

	output := ListDocumentsOutput{
		Categories: make(map[string][]DocumentListing, len(grouped)),
	}
	for category, docs := range grouped {
		listings := make([]DocumentListing, len(docs))
		for i, doc := range docs {
			listings[i] = DocumentListing{Slug: doc.Slug, Title: doc.Title}
		}
		output.Categories[category] = listings
		output.Count += len(docs)
	}
	return nil, output, nil
}
