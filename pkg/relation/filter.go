package relation

// Selection is an optional set of categories restricting which relations are
// visible in a build.
//
// The nil/empty distinction is load-bearing:
//   - a nil Selection means no filtering was requested; every relation is
//     visible
//   - a non-nil empty Selection hides every relation, rendering the focal
//     entity alone
//
// Membership is tested against the cleaned category, so a Selection
// containing Trade matches both "trader" and "sold_by" records.
type Selection map[Category]struct{}

// NewSelection builds a Selection from display category names.
// Calling it with no arguments returns an empty (hide-everything) Selection,
// not nil.
func NewSelection(categories ...string) Selection {
	s := make(Selection, len(categories))
	for _, c := range categories {
		s[Category(c)] = struct{}{}
	}
	return s
}

// Visible reports whether a relation of the given raw kind passes the filter.
func (s Selection) Visible(kind string) bool {
	if s == nil {
		return true
	}
	_, ok := s[Clean(kind)]
	return ok
}

// Categories returns the selected categories in unspecified order.
func (s Selection) Categories() []Category {
	if s == nil {
		return nil
	}
	out := make([]Category, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	return out
}
