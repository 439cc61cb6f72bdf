// Package filter derives the visible job set from a segment and a set of
// selected sector tags.
package filter

import "strings"

// Segment is a top-level grouping of industries shown as the board's tabs.
type Segment string

const (
	SegmentFinance     Segment = "finance"
	SegmentTechnology  Segment = "technology"
	SegmentEngineering Segment = "engineering"
)

// DefaultSegment is the segment a new session starts on.
const DefaultSegment = SegmentFinance

// Tag is one selectable sub-filter.
type Tag struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Group is a named set of tags inside a segment.
type Group struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Tags  []Tag  `json:"tags"`
}

var groups = []Group{
	{
		ID:    "finance",
		Label: "Finance",
		Tags: []Tag{
			{"finance-investment-banking", "Investment Banking (IB)"},
			{"finance-sales-trading", "Sales & Trading"},
			{"finance-asset-management", "Asset Management"},
			{"finance-private-equity", "Private Equity (PE)"},
			{"finance-venture-capital", "Venture Capital (VC)"},
			{"finance-hedge-funds", "Hedge Funds"},
			{"finance-wealth-banking", "Wealth / Private Banking"},
			{"finance-corporate-banking", "Corporate Banking"},
			{"finance-risk", "Risk"},
			{"finance-quant-finance", "Quantitative Finance / Research"},
			{"finance-fintech", "Fintech"},
		},
	},
	{
		ID:    "consulting",
		Label: "Consulting",
		Tags: []Tag{
			{"consulting-strategy", "Strategy Consulting"},
			{"consulting-management", "Management Consulting"},
			{"consulting-economic", "Economic Consulting"},
			{"consulting-technology", "Technology / Digital Consulting"},
			{"consulting-healthcare", "Healthcare Consulting"},
			{"consulting-public-sector", "Public Sector Consulting"},
		},
	},
	{
		ID:    "technology",
		Label: "Technology",
		Tags: []Tag{
			{"technology-swe", "Software Engineering (SWE)"},
			{"technology-data-science", "Data Science / ML"},
			{"technology-data-analyst", "Data Analyst / BI"},
			{"technology-cybersecurity", "Cybersecurity"},
			{"technology-product", "Product Management (Tech)"},
			{"technology-cloud-devops", "Cloud / DevOps / Infrastructure"},
			{"technology-quant-engineering", "Quant Engineering"},
		},
	},
	{
		ID:    "engineering",
		Label: "Engineering",
		Tags: []Tag{
			{"engineering-mechanical", "Mechanical Engineering"},
			{"engineering-electrical", "Electrical Engineering"},
			{"engineering-civil", "Civil & Structural Engineering"},
			{"engineering-aerospace", "Aerospace Engineering"},
			{"engineering-automotive", "Automotive"},
			{"engineering-energy", "Energy & Utilities"},
			{"engineering-chemical", "Chemical Engineering"},
		},
	},
}

var segmentGroups = map[Segment][]string{
	SegmentFinance:     {"finance", "consulting"},
	SegmentTechnology:  {"technology"},
	SegmentEngineering: {"engineering"},
}

// Segments returns the segments in tab order.
func Segments() []Segment {
	return []Segment{SegmentFinance, SegmentTechnology, SegmentEngineering}
}

// ParseSegment validates a segment name.
func ParseSegment(s string) (Segment, bool) {
	seg := Segment(s)
	_, ok := segmentGroups[seg]
	return seg, ok
}

// Label is the tab caption, e.g. "Finance".
func (s Segment) Label() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// GroupsFor returns the groups shown under seg, in hierarchy order.
func GroupsFor(seg Segment) []Group {
	ids := segmentGroups[seg]
	var out []Group
	for _, g := range groups {
		for _, id := range ids {
			if g.ID == id {
				out = append(out, g)
			}
		}
	}
	return out
}

// TagIDsFor returns every tag ID under seg.
func TagIDsFor(seg Segment) []string {
	var ids []string
	for _, g := range GroupsFor(seg) {
		for _, t := range g.Tags {
			ids = append(ids, t.ID)
		}
	}
	return ids
}

// LookupGroup finds a group by ID anywhere in the hierarchy.
func LookupGroup(id string) (Group, bool) {
	for _, g := range groups {
		if g.ID == id {
			return g, true
		}
	}
	return Group{}, false
}
