package filter

import (
	"sort"
	"sync"
)

// Selection is a session's filter state: the active segment and the set of
// selected tags within it. Tags outside the segment are never selected.
type Selection struct {
	mu       sync.RWMutex
	segment  Segment
	selected map[string]struct{}
}

// NewSelection starts on seg with every tag in it selected. An unknown
// segment falls back to DefaultSegment.
func NewSelection(seg Segment) *Selection {
	s := &Selection{}
	s.reset(seg)
	return s
}

func (s *Selection) reset(seg Segment) {
	if _, ok := segmentGroups[seg]; !ok {
		seg = DefaultSegment
	}
	s.segment = seg
	s.selected = make(map[string]struct{})
	for _, id := range TagIDsFor(seg) {
		s.selected[id] = struct{}{}
	}
}

func (s *Selection) inSegment(tag string) bool {
	for _, id := range TagIDsFor(s.segment) {
		if id == tag {
			return true
		}
	}
	return false
}

func (s *Selection) groupInSegment(id string) (Group, bool) {
	for _, g := range GroupsFor(s.segment) {
		if g.ID == id {
			return g, true
		}
	}
	return Group{}, false
}

// SetSegment switches segment and resets the selection to all of its tags,
// discarding whatever was selected before. It reports false for an unknown
// segment, leaving the selection untouched.
func (s *Selection) SetSegment(seg Segment) bool {
	if _, ok := segmentGroups[seg]; !ok {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset(seg)
	return true
}

// ToggleTag flips one tag. Tags outside the segment are ignored.
func (s *Selection) ToggleTag(tag string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.inSegment(tag) {
		return false
	}
	if _, on := s.selected[tag]; on {
		delete(s.selected, tag)
	} else {
		s.selected[tag] = struct{}{}
	}
	return true
}

// ToggleGroup deselects every tag in the group when all are selected and
// selects them all otherwise.
func (s *Selection) ToggleGroup(groupID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.groupInSegment(groupID)
	if !ok {
		return false
	}
	all := true
	for _, t := range g.Tags {
		if _, on := s.selected[t.ID]; !on {
			all = false
			break
		}
	}
	for _, t := range g.Tags {
		if all {
			delete(s.selected, t.ID)
		} else {
			s.selected[t.ID] = struct{}{}
		}
	}
	return true
}

// SelectAll selects every tag in the segment.
func (s *Selection) SelectAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset(s.segment)
}

// DeselectAll clears the selection.
func (s *Selection) DeselectAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = make(map[string]struct{})
}

// ToggleAll is the "Select all / Deselect all" button.
func (s *Selection) ToggleAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.selected) == len(TagIDsFor(s.segment)) {
		s.selected = make(map[string]struct{})
		return
	}
	s.reset(s.segment)
}

// Segment returns the active segment.
func (s *Selection) Segment() Segment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.segment
}

// Has reports whether tag is selected.
func (s *Selection) Has(tag string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.selected[tag]
	return ok
}

// Selected returns the selected tag IDs, sorted.
func (s *Selection) Selected() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.selected))
	for id := range s.selected {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Set returns a copy of the selected tags for use with Visible.
func (s *Selection) Set() map[string]struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]struct{}, len(s.selected))
	for id := range s.selected {
		out[id] = struct{}{}
	}
	return out
}

// AllSelected reports whether every tag in the segment is selected.
func (s *Selection) AllSelected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.selected) == len(TagIDsFor(s.segment))
}

// GroupState summarises one group for the filter menu.
type GroupState struct {
	Group
	Selected int  `json:"selected"`
	Total    int  `json:"total"`
	All      bool `json:"all"`
	Partial  bool `json:"partial"`
	// Flatten is set when the segment has a single group; its tags are
	// rendered directly instead of under a collapsible header.
	Flatten bool `json:"flatten"`
}

// VisibleGroups returns the state of every group in the segment.
func (s *Selection) VisibleGroups() []GroupState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	gs := GroupsFor(s.segment)
	out := make([]GroupState, 0, len(gs))
	for _, g := range gs {
		out = append(out, s.stateOf(g, len(gs) == 1))
	}
	return out
}

// GroupState reports the state of one group in the segment.
func (s *Selection) GroupState(groupID string) (GroupState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.groupInSegment(groupID)
	if !ok {
		return GroupState{}, false
	}
	return s.stateOf(g, len(GroupsFor(s.segment)) == 1), true
}

func (s *Selection) stateOf(g Group, flatten bool) GroupState {
	st := GroupState{Group: g, Total: len(g.Tags), Flatten: flatten}
	for _, t := range g.Tags {
		if _, on := s.selected[t.ID]; on {
			st.Selected++
		}
	}
	st.All = st.Selected == st.Total
	st.Partial = st.Selected > 0 && !st.All
	return st
}
