// Package catalog holds the static, read-only list of job postings.
//
// Postings are loaded once at startup from the embedded JSON file, a JSON
// file on disk, or the job_postings table in PostgreSQL. They are never
// mutated afterwards, so a Catalog is safe to share between goroutines.
package catalog

import (
	"errors"
	"fmt"
)

// HelpfulLink is an informational link shown on the job detail page.
type HelpfulLink struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// JobPosting is one graduate role.
type JobPosting struct {
	Slug            string        `json:"slug"`
	Company         string        `json:"company"`
	Role            string        `json:"role"`
	Location        string        `json:"location"`
	Industry        string        `json:"industry"`
	Salary          string        `json:"salary"`
	PostedLabel     string        `json:"posted"`
	ReleaseDate     Date          `json:"releaseDate"`
	Deadline        string        `json:"deadline,omitempty"`
	Description     string        `json:"description,omitempty"`
	RoleSummaryHTML string        `json:"roleSummaryHtml,omitempty"`
	ApplyURL        string        `json:"applyUrl,omitempty"`
	HelpfulLinks    []HelpfulLink `json:"helpfulLinks,omitempty"`
	FilterTags      []string      `json:"filterTags"`
	LogoRef         string        `json:"logoSrc,omitempty"`
}

// ErrDuplicateSlug is returned by New when two postings share a slug.
var ErrDuplicateSlug = errors.New("duplicate job slug")

// Catalog is an ordered, immutable set of postings keyed by slug.
type Catalog struct {
	jobs   []JobPosting
	bySlug map[string]int
}

// New builds a Catalog, preserving the order of postings.
func New(postings []JobPosting) (*Catalog, error) {
	c := &Catalog{
		jobs:   make([]JobPosting, 0, len(postings)),
		bySlug: make(map[string]int, len(postings)),
	}
	for _, p := range postings {
		if p.Slug == "" {
			return nil, fmt.Errorf("posting for %q has an empty slug", p.Company)
		}
		if _, dup := c.bySlug[p.Slug]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSlug, p.Slug)
		}
		c.bySlug[p.Slug] = len(c.jobs)
		c.jobs = append(c.jobs, p)
	}
	return c, nil
}

// Lookup returns the posting for slug. A missing slug is reported through
// ok, never as an error.
func (c *Catalog) Lookup(slug string) (JobPosting, bool) {
	i, ok := c.bySlug[slug]
	if !ok {
		return JobPosting{}, false
	}
	return c.jobs[i], true
}

// List returns every posting in insertion order.
func (c *Catalog) List() []JobPosting {
	out := make([]JobPosting, len(c.jobs))
	copy(out, c.jobs)
	return out
}

// Len returns the number of postings.
func (c *Catalog) Len() int { return len(c.jobs) }
