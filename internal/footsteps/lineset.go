package footsteps

import (
	"sort"
	"strconv"
	"strings"
)

// LineSet is a sorted set of zero-based line numbers without duplicates.
type LineSet []int

// NewLineSet builds a LineSet from lines in any order.
func NewLineSet(lines ...int) LineSet {
	if len(lines) == 0 {
		return nil
	}
	set := make(LineSet, len(lines))
	copy(set, lines)
	sort.Ints(set)
	return set.compact()
}

// LineRange returns the set {start, start+1, ..., start+count-1}.
func LineRange(start, count int) LineSet {
	if count <= 0 {
		return nil
	}
	set := make(LineSet, count)
	for i := range set {
		set[i] = start + i
	}
	return set
}

// compact removes adjacent duplicates from a sorted set in place.
func (s LineSet) compact() LineSet {
	if len(s) < 2 {
		return s
	}
	out := s[:1]
	for _, l := range s[1:] {
		if l != out[len(out)-1] {
			out = append(out, l)
		}
	}
	return out
}

// Len returns the number of lines in the set.
func (s LineSet) Len() int { return len(s) }

// IsEmpty reports whether the set holds no lines.
func (s LineSet) IsEmpty() bool { return len(s) == 0 }

// Min returns the smallest line, or 0 for an empty set.
func (s LineSet) Min() int {
	if len(s) == 0 {
		return 0
	}
	return s[0]
}

// Max returns the largest line, or 0 for an empty set.
func (s LineSet) Max() int {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1]
}

// Contains reports whether line is a member of the set.
func (s LineSet) Contains(line int) bool {
	i := sort.SearchInts(s, line)
	return i < len(s) && s[i] == line
}

// Touches reports whether any line of other is in s or directly above or
// below a line of s.
func (s LineSet) Touches(other LineSet) bool {
	for _, l := range other {
		if s.Contains(l) || s.Contains(l-1) || s.Contains(l+1) {
			return true
		}
	}
	return false
}

// Union returns a new set holding the lines of both sets.
func (s LineSet) Union(other LineSet) LineSet {
	merged := make(LineSet, 0, len(s)+len(other))
	merged = append(merged, s...)
	merged = append(merged, other...)
	return NewLineSet(merged...)
}

// consistent reports whether the set is in ascending order. A set that is
// not cannot be remapped safely.
func (s LineSet) consistent() bool {
	return len(s) == 0 || s[len(s)-1] >= s[0]
}

// Clone returns a copy that shares no memory with s.
func (s LineSet) Clone() LineSet {
	if s == nil {
		return nil
	}
	out := make(LineSet, len(s))
	copy(out, s)
	return out
}

// String renders the set as compressed ranges, e.g. "3-5,9".
func (s LineSet) String() string {
	if len(s) == 0 {
		return "-"
	}
	var b strings.Builder
	start := s[0]
	prev := s[0]
	flush := func() {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(start))
		if prev != start {
			b.WriteByte('-')
			b.WriteString(strconv.Itoa(prev))
		}
	}
	for _, l := range s[1:] {
		if l == prev+1 {
			prev = l
			continue
		}
		flush()
		start, prev = l, l
	}
	flush()
	return b.String()
}
