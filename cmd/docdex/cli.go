package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/docdex"
	"github.com/fwojciec/docdex/crawl"
	"github.com/fwojciec/docdex/process"
	"github.com/fwojciec/docdex/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	DB         *sqlite.DB
	Projects   docdex.ProjectStore
	Groups     docdex.GroupStore
	Embeddings docdex.EmbeddingStore
	Search     docdex.SearchService

	Discoverer *crawl.Discoverer
	Crawler    *crawl.Crawler
	Processor  *process.Processor
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Generate GenerateCmd `cmd:"" help:"Convert a documentation site into a local knowledge base"`
	Serve    ServeCmd    `cmd:"" help:"Serve a project's knowledge base over MCP"`
	Projects ProjectsCmd `cmd:"" help:"List stored projects"`
}

// GenerateCmd is the "generate" subcommand.
type GenerateCmd struct {
	Name   string `arg:"" help:"Project name (letters, digits, hyphens, underscores)"`
	URL    string `arg:"" help:"Documentation root URL"`
	Vector bool   `help:"Also derive embeddings and retrieval artifacts"`
	Static bool   `help:"Skip browser rendering; static fetches only"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Name string `arg:"" help:"Project name"`
	HTTP string `help:"Serve over streamable HTTP on this address instead of stdio"`
}

// ProjectsCmd is the "projects" subcommand.
type ProjectsCmd struct{}
