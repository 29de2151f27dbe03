// Package nav models the current browsing location inside the hosted file
// tree as a normalized slash-separated path and derives breadcrumb trails
// from it. Paths always start with "/" and carry no trailing slash except
// for the root itself.
package nav

import "strings"

const Root = "/"

// Path is a directory location. The zero value is not valid; use NewPath.
type Path struct {
	value string
}

func NewPath() Path {
	return Path{value: Root}
}

func (p Path) String() string {
	if p.value == "" {
		return Root
	}

	return p.value
}

func (p Path) IsRoot() bool {
	return p.String() == Root
}

// Segments returns the ordered directory names from root to the current
// location. Splitting on "/" and discarding empty segments is the defining
// invariant: it reproduces exactly the names navigated through.
func (p Path) Segments() []string {
	parts := strings.Split(p.String(), "/")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		segments = append(segments, part)
	}

	return segments
}

// Into appends name as a new trailing segment. Names are passed through
// unvalidated; the backend is the authority on name rules.
func (p Path) Into(name string) Path {
	if p.IsRoot() {
		return Path{value: Root + name}
	}

	return Path{value: p.String() + "/" + name}
}

// Up removes the last segment. Up from root is a no-op.
func (p Path) Up() Path {
	if p.IsRoot() {
		return p
	}

	segments := p.Segments()
	segments = segments[:len(segments)-1]

	return fromSegments(segments)
}

// ToBreadcrumb truncates the path to the first index+1 segments. Indexes
// outside the breadcrumb are a no-op; so is selecting the last segment,
// which renders as plain text rather than a link.
func (p Path) ToBreadcrumb(index int) Path {
	segments := p.Segments()
	if index < 0 || index >= len(segments) {
		return p
	}

	return fromSegments(segments[:index+1])
}

func fromSegments(segments []string) Path {
	if len(segments) == 0 {
		return Path{value: Root}
	}

	return Path{value: Root + strings.Join(segments, "/")}
}

// Crumb is one breadcrumb entry. Target is the full path reconstructed from
// the prefix ending at this segment; Last marks the non-interactive tail.
type Crumb struct {
	Name   string
	Index  int
	Target string
	Last   bool
}

// Breadcrumbs derives the ordered trail for the current path. The root is
// rendered separately ("Home") and is not part of the trail.
func (p Path) Breadcrumbs() []Crumb {
	segments := p.Segments()
	crumbs := make([]Crumb, 0, len(segments))
	for i, name := range segments {
		crumbs = append(crumbs, Crumb{
			Name:   name,
			Index:  i,
			Target: fromSegments(segments[:i+1]).String(),
			Last:   i == len(segments)-1,
		})
	}

	return crumbs
}
