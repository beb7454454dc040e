package docdex

import (
	"context"
	"net/url"
	"regexp"
	"time"
)

// Project is the root of the storage hierarchy. Name is unique and is the
// join key for every downstream query. Projects are created on first
// generate and never deleted by the pipeline.
type Project struct {
	Name               string
	RootURL            string
	CreatedAt          time.Time
	EmbeddingModel     string
	EmbeddingDimension int
}

// ProjectStore persists projects.
type ProjectStore interface {
	// CreateProject inserts or updates a project record.
	CreateProject(ctx context.Context, project Project) error

	// Project returns a project by name, or nil when it does not exist.
	Project(ctx context.Context, name string) (*Project, error)

	// Projects returns all stored projects.
	Projects(ctx context.Context) ([]Project, error)
}

var projectNameRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidateProjectName rejects names containing anything other than letters,
// digits, hyphens, and underscores. Validation happens before any I/O.
func ValidateProjectName(name string) error {
	if name == "" {
		return Errorf(EINVALID, "project name is required")
	}
	if !projectNameRe.MatchString(name) {
		return Errorf(EINVALID, "project name %q may only contain letters, digits, hyphens, and underscores", name)
	}
	return nil
}

// ValidateURL rejects anything that is not an absolute http(s) URL with a
// host.
func ValidateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return Errorf(EINVALID, "invalid URL %q", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Errorf(EINVALID, "URL %q must use http or https", raw)
	}
	if u.Host == "" {
		return Errorf(EINVALID, "URL %q is missing a host", raw)
	}
	return nil
}
