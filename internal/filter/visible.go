package filter

import (
	"sort"
	"time"

	"gradjobs/internal/catalog"
)

// Visible returns the jobs whose tags intersect selected, in catalog order.
func Visible(jobs []catalog.JobPosting, selected map[string]struct{}) []catalog.JobPosting {
	out := make([]catalog.JobPosting, 0, len(jobs))
	for _, j := range jobs {
		for _, tag := range j.FilterTags {
			if _, ok := selected[tag]; ok {
				out = append(out, j)
				break
			}
		}
	}
	return out
}

// IsReleasedOn reports whether job opened on day.
func IsReleasedOn(job catalog.JobPosting, day catalog.Date) bool {
	return job.ReleaseDate == day
}

// TodaysReleases keeps the jobs released on now's local calendar date.
func TodaysReleases(jobs []catalog.JobPosting, now time.Time) []catalog.JobPosting {
	today := catalog.DateOf(now)
	out := make([]catalog.JobPosting, 0)
	for _, j := range jobs {
		if IsReleasedOn(j, today) {
			out = append(out, j)
		}
	}
	return out
}

// DateGroup is every job released on one date.
type DateGroup struct {
	Date catalog.Date         `json:"date"`
	Jobs []catalog.JobPosting `json:"jobs"`
}

// GroupByReleaseDate buckets jobs by release date, newest first. Catalog
// order is kept within a bucket.
func GroupByReleaseDate(jobs []catalog.JobPosting) []DateGroup {
	idx := make(map[catalog.Date]int)
	var out []DateGroup
	for _, j := range jobs {
		i, ok := idx[j.ReleaseDate]
		if !ok {
			i = len(out)
			idx[j.ReleaseDate] = i
			out = append(out, DateGroup{Date: j.ReleaseDate})
		}
		out[i].Jobs = append(out[i].Jobs, j)
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[b].Date.Before(out[a].Date)
	})
	return out
}
