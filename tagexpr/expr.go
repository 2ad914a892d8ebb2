package tagexpr

import (
	"strconv"
	"strings"
)

// TagSet is the set of tags attached to a single test item
type TagSet map[string]struct{}

// NewTagSet builds a TagSet from a tag list. Duplicates are inert.
func NewTagSet(tags ...string) TagSet {
	set := make(TagSet, len(tags))
	for _, tag := range tags {
		set[tag] = struct{}{}
	}
	return set
}

// Contains reports whether tag is a member of the set (exact match)
func (s TagSet) Contains(tag string) bool {
	_, ok := s[tag]
	return ok
}

// Term is one atomic tag test such as @foo, ~@bar or @foo:3
type Term struct {
	Name     string // tag name including its sigil, e.g. "@foo"
	Negated  bool   // true for ~@foo
	Limit    int    // value of the :N suffix, meaningful only when HasLimit is set
	HasLimit bool
}

// Matches reports whether the tag set satisfies the term.
// The limit never takes part in matching.
func (t Term) Matches(tags TagSet) bool {
	if t.Negated {
		return !tags.Contains(t.Name)
	}
	return tags.Contains(t.Name)
}

// String renders the term in its input syntax
func (t Term) String() string {
	var sb strings.Builder
	if t.Negated {
		sb.WriteByte('~')
	}
	sb.WriteString(t.Name)
	if t.HasLimit {
		sb.WriteByte(':')
		sb.WriteString(strconv.Itoa(t.Limit))
	}
	return sb.String()
}

// Clause is a disjunction of terms
type Clause []Term

// Matches implements OR semantics over the clause's terms
func (c Clause) Matches(tags TagSet) bool {
	for _, term := range c {
		if term.Matches(tags) {
			return true
		}
	}
	return false
}

func (c Clause) String() string {
	parts := make([]string, len(c))
	for i, term := range c {
		parts[i] = term.String()
	}
	return "(" + strings.Join(parts, " || ") + ")"
}

// Expression is a conjunction of clauses. An expression without clauses
// matches every tag set, including the empty one.
type Expression struct {
	clauses []Clause
}

// Evaluate implements AND semantics over the clauses
func (e *Expression) Evaluate(tags TagSet) bool {
	if e == nil {
		return true
	}
	for _, clause := range e.clauses {
		if !clause.Matches(tags) {
			return false
		}
	}
	return true
}

// Len returns the number of clauses
func (e *Expression) Len() int {
	if e == nil {
		return 0
	}
	return len(e.clauses)
}

// Clauses returns a deep copy of the compiled clauses
func (e *Expression) Clauses() []Clause {
	if e == nil {
		return nil
	}
	out := make([]Clause, len(e.clauses))
	for i, clause := range e.clauses {
		out[i] = append(Clause(nil), clause...)
	}
	return out
}

// String renders the expression, e.g. "(@foo:3 || ~@bar) && (@zap:5)".
// The empty expression renders as "true".
func (e *Expression) String() string {
	if e.Len() == 0 {
		return "true"
	}
	parts := make([]string, len(e.clauses))
	for i, clause := range e.clauses {
		parts[i] = clause.String()
	}
	return strings.Join(parts, " && ")
}

// LimitMap maps a positively stated tag to its declared occurrence limit
type LimitMap map[string]int

// Clone returns an independent copy of the map
func (m LimitMap) Clone() LimitMap {
	out := make(LimitMap, len(m))
	for name, limit := range m {
		out[name] = limit
	}
	return out
}
