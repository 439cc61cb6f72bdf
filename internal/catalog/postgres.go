package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSchema is the DDL for the job_postings table read by LoadPostgres.
// The service never writes to it; it exists for provisioning and tests.
const PostgresSchema = `
CREATE TABLE IF NOT EXISTS job_postings (
	slug              TEXT PRIMARY KEY,
	position          INTEGER NOT NULL DEFAULT 0,
	company           TEXT NOT NULL,
	role              TEXT NOT NULL,
	location          TEXT NOT NULL DEFAULT '',
	industry          TEXT NOT NULL DEFAULT '',
	salary            TEXT NOT NULL DEFAULT '',
	posted_label      TEXT NOT NULL DEFAULT '',
	release_date      DATE NOT NULL,
	deadline          TEXT,
	description       TEXT,
	role_summary_html TEXT,
	apply_url         TEXT,
	helpful_links     JSONB,
	filter_tags       TEXT[] NOT NULL DEFAULT '{}',
	logo_ref          TEXT
)`

// Querier is the subset of pgxpool.Pool used by LoadPostgres.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

var _ Querier = (*pgxpool.Pool)(nil)

// LoadPostgres reads every row of job_postings ordered by position.
func LoadPostgres(ctx context.Context, db Querier) (*Catalog, error) {
	rows, err := db.Query(ctx,
		`SELECT slug, company, role, location, industry, salary, posted_label,
		        release_date, COALESCE(deadline, ''), COALESCE(description, ''),
		        COALESCE(role_summary_html, ''), COALESCE(apply_url, ''),
		        COALESCE(helpful_links, '[]'::jsonb), filter_tags, COALESCE(logo_ref, '')
		 FROM job_postings
		 ORDER BY position, slug`,
	)
	if err != nil {
		return nil, fmt.Errorf("query job_postings: %w", err)
	}
	defer rows.Close()

	var postings []JobPosting
	for rows.Next() {
		var (
			p       JobPosting
			release time.Time
			links   []byte
		)
		if err := rows.Scan(
			&p.Slug, &p.Company, &p.Role, &p.Location, &p.Industry, &p.Salary, &p.PostedLabel,
			&release, &p.Deadline, &p.Description,
			&p.RoleSummaryHTML, &p.ApplyURL,
			&links, &p.FilterTags, &p.LogoRef,
		); err != nil {
			return nil, fmt.Errorf("scan job_postings: %w", err)
		}
		p.ReleaseDate = DateOf(release)
		if err := json.Unmarshal(links, &p.HelpfulLinks); err != nil {
			return nil, fmt.Errorf("helpful_links for %s: %w", p.Slug, err)
		}
		postings = append(postings, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate job_postings: %w", err)
	}

	return New(postings)
}
