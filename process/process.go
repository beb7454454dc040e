package process

import (
	"context"
	"log/slog"
	"strings"

	"github.com/fwojciec/docdex"
)

// ProcessedGroup is the full output for one content group: the group itself
// plus the retrieval artifacts derived in vector mode.
type ProcessedGroup struct {
	Group docdex.ContentGroup

	// Document and the fields below are populated only in vector mode.
	Document  docdex.DocumentSummary
	Embedding []float64
	Sections  []docdex.DocumentSection
}

// Processor turns crawled pages into summarized content groups. Grouping and
// summarization delegate to the external model with deterministic local
// fallbacks; processing never fails on model errors.
type Processor struct {
	Grouper    docdex.Grouper
	Summarizer docdex.Summarizer
	Embedder   docdex.Embedder // nil disables vector mode
	Logger     *slog.Logger
}

// Process partitions pages into groups, deduplicates each group, generates
// summaries, and, when an embedder is configured, derives keywords,
// sections, category, and embeddings for every group.
func (p *Processor) Process(ctx context.Context, project string, pages []docdex.PageContent) ([]ProcessedGroup, error) {
	if len(pages) == 0 {
		return nil, nil
	}

	assignments := p.groupPages(ctx, pages)

	var out []ProcessedGroup
	for _, assignment := range assignments {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		grouped := pagesForIndices(pages, assignment.PageIndices)
		if len(grouped) == 0 {
			continue
		}
		deduped := DeduplicateGroup(grouped)
		for i := range deduped {
			deduped[i].CodeBlocks = PrioritizeCodeBlocks(deduped[i].CodeBlocks)
		}

		summary, err := p.Summarizer.Summarize(ctx, assignment.Name, assignment.Description, deduped)
		if err != nil {
			// Summarize implementations degrade internally; an error
			// here is a hard failure like cancellation.
			return nil, err
		}

		pg := ProcessedGroup{
			Group: docdex.ContentGroup{
				Name:        assignment.Name,
				Description: assignment.Description,
				Summary:     summary,
				Pages:       grouped,
			},
		}

		if p.Embedder != nil {
			if err := p.deriveRetrievalArtifacts(ctx, project, &pg, deduped); err != nil {
				return nil, err
			}
		}
		out = append(out, pg)
	}
	return out, nil
}

// groupPages asks the model for group assignments and falls back to
// path-segment grouping on any failure or malformed partition.
func (p *Processor) groupPages(ctx context.Context, pages []docdex.PageContent) []docdex.GroupAssignment {
	assignments, err := p.Grouper.GroupPages(ctx, pages)
	if err != nil {
		p.logWarn("model grouping failed, using path-segment fallback", "error", err)
		return FallbackGrouping(pages)
	}
	if !isValidPartition(assignments, len(pages)) {
		p.logWarn("model grouping is not a partition, using path-segment fallback")
		return FallbackGrouping(pages)
	}
	return assignments
}

// isValidPartition verifies every page index appears in exactly one group.
func isValidPartition(assignments []docdex.GroupAssignment, n int) bool {
	seen := make(map[int]bool, n)
	total := 0
	for _, a := range assignments {
		if a.Name == "" {
			return false
		}
		for _, idx := range a.PageIndices {
			if idx < 0 || idx >= n || seen[idx] {
				return false
			}
			seen[idx] = true
			total++
		}
	}
	return total == n
}

func (p *Processor) deriveRetrievalArtifacts(ctx context.Context, project string, pg *ProcessedGroup, deduped []docdex.PageContent) error {
	keywords := docdex.ExtractKeywords(deduped)
	sections := docdex.ExtractSections(pg.Group.Summary, keywords)

	urls := make([]string, 0, len(pg.Group.Pages))
	for _, page := range pg.Group.Pages {
		urls = append(urls, page.URL)
	}

	pg.Document = docdex.DocumentSummary{
		Slug:       docdex.Slugify(project + "-" + pg.Group.Name),
		Project:    project,
		Title:      documentTitle(pg.Group.Summary, pg.Group.Name),
		Summary:    pg.Group.Summary,
		Category:   docdex.InferCategory(pg.Group.Name, pg.Group.Pages),
		Keywords:   keywords,
		SourceURLs: urls,
	}

	embedding, err := p.Embedder.Embed(ctx, pg.Group.Summary)
	if err != nil {
		return err
	}
	pg.Embedding = embedding

	texts := make([]string, len(sections))
	for i, s := range sections {
		texts[i] = s.Title + "\n" + s.Content
	}
	vectors, err := p.Embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return err
	}
	for i := range sections {
		sections[i].Embedding = vectors[i]
	}
	pg.Sections = sections
	return nil
}

// documentTitle takes the leading markdown heading, falling back to the
// group name.
func documentTitle(summary, name string) string {
	for _, line := range strings.Split(summary, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") {
			return strings.TrimSpace(strings.TrimLeft(line, "#"))
		}
		if line != "" {
			break
		}
	}
	return name
}

func pagesForIndices(pages []docdex.PageContent, indices []int) []docdex.PageContent {
	var out []docdex.PageContent
	for _, idx := range indices {
		if idx >= 0 && idx < len(pages) {
			out = append(out, pages[idx])
		}
	}
	return out
}

func (p *Processor) logWarn(msg string, args ...any) {
	if p.Logger != nil {
		p.Logger.Warn(msg, args...)
	}
}
