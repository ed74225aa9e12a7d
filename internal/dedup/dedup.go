// Package dedup holds the seen-set abstraction and the pure filter that
// decides which fetched posts are new.
package dedup

import "annwatch/internal/board"

// Set is an in-memory set of topic ids that have already been recorded.
type Set map[int64]struct{}

// NewSet builds a Set from the given ids.
func NewSet(ids ...int64) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is in the set.
func (s Set) Has(id int64) bool {
	_, ok := s[id]
	return ok
}

// Add inserts id into the set.
func (s Set) Add(id int64) {
	s[id] = struct{}{}
}

// Len returns the number of ids in the set.
func (s Set) Len() int {
	return len(s)
}

// Union returns a new Set containing every id from both sets. Neither
// input is modified.
func Union(a, b Set) Set {
	out := make(Set, len(a)+len(b))
	for id := range a {
		out[id] = struct{}{}
	}
	for id := range b {
		out[id] = struct{}{}
	}
	return out
}

// Filter returns the posts whose topic ids are absent from seen, in the
// same relative order as the input. The input slice is not modified.
func Filter(posts []board.Post, seen Set) []board.Post {
	var fresh []board.Post
	for _, p := range posts {
		if !seen.Has(p.TopicID) {
			fresh = append(fresh, p)
		}
	}
	return fresh
}
