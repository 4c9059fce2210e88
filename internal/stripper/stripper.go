// Package stripper removes a fixed set of member names from every object
// of a JSON value tree, at every depth.
package stripper

import (
	"sort"

	"github.com/mcncl/jsonstrip/internal/models"
)

// DefaultFields are the members removed when no field set is configured.
var DefaultFields = []string{"parentIds", "parentNames", "fullName"}

// FieldSet is a set of object member names.
type FieldSet map[string]struct{}

// NewFieldSet builds a FieldSet from names
func NewFieldSet(names ...string) FieldSet {
	set := make(FieldSet, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

// Contains reports whether name is in the set
func (s FieldSet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// Names returns the members of the set in sorted order
func (s FieldSet) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Stats describes a single traversal
type Stats struct {
	Objects int // object nodes visited
	Arrays  int // array nodes visited
	Removed int // members dropped
}

// Stripper removes the members of its field set from JSON objects.
// A Stripper is immutable and safe to share.
type Stripper struct {
	fields FieldSet
}

// New creates a Stripper removing fields, or DefaultFields when none are given
func New(fields ...string) *Stripper {
	if len(fields) == 0 {
		fields = DefaultFields
	}
	return &Stripper{fields: NewFieldSet(fields...)}
}

// Fields returns the names this Stripper removes, sorted
func (s *Stripper) Fields() []string {
	return s.fields.Names()
}

// Strip returns a copy of v with every forbidden member removed from
// every object at every depth. Scalars are returned unchanged. v is not modified.
func (s *Stripper) Strip(v models.Value) models.Value {
	return s.strip(v, nil)
}

// StripWithStats is Strip that also counts what the traversal touched
func (s *Stripper) StripWithStats(v models.Value) (models.Value, Stats) {
	var stats Stats
	out := s.strip(v, &stats)
	return out, stats
}

func (s *Stripper) strip(v models.Value, stats *Stats) models.Value {
	switch v.Kind() {
	case models.KindArray:
		if stats != nil {
			stats.Arrays++
		}
		items := v.Items()
		out := make([]models.Value, len(items))
		for i, item := range items {
			out[i] = s.strip(item, stats)
		}
		return models.Array(out...)

	case models.KindObject:
		if stats != nil {
			stats.Objects++
		}
		members := v.Members()
		out := make([]models.Member, 0, len(members))
		for _, m := range members {
			if s.fields.Contains(m.Key) {
				if stats != nil {
					stats.Removed++
				}
				continue
			}
			out = append(out, models.Member{Key: m.Key, Value: s.strip(m.Value, stats)})
		}
		return models.Object(out...)

	case models.KindNull, models.KindBool, models.KindNumber, models.KindString:
		return v
	}
	return v
}
