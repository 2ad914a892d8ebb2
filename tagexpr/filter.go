// Package tagexpr compiles --tags style filter clauses into a reusable
// predicate over a set of tags.
//
// Each clause is a comma separated list of terms combined with OR; the
// clauses themselves are combined with AND. A term is a tag name, optionally
// negated with '~' and optionally annotated with an occurrence limit:
//
//	@fast,@smoke     @fast OR @smoke
//	~@wip            NOT @wip
//	@slow:3          @slow, at most 3 occurrences
//
// A compiled Filter is immutable and may be evaluated concurrently.
package tagexpr

// Filter is a compiled tag expression plus the limits it declares
type Filter struct {
	expr   *Expression
	limits LimitMap
}

// New compiles the raw clauses into a Filter. Construction is atomic: on
// error no Filter is returned.
func New(raw []string) (*Filter, error) {
	expr, limits, err := Compile(raw)
	if err != nil {
		return nil, err
	}
	return &Filter{expr: expr, limits: limits}, nil
}

// MustNew is like New but panics on a malformed clause
func MustNew(raw ...string) *Filter {
	f, err := New(raw)
	if err != nil {
		panic(err)
	}
	return f
}

// Evaluate reports whether the tags satisfy the filter
func (f *Filter) Evaluate(tags []string) bool {
	return f.Matches(NewTagSet(tags...))
}

// Matches is Evaluate for a prebuilt tag set
func (f *Filter) Matches(tags TagSet) bool {
	if f == nil {
		return true
	}
	return f.expr.Evaluate(tags)
}

// Limits returns a copy of the declared tag limits
func (f *Filter) Limits() map[string]int {
	if f == nil {
		return map[string]int{}
	}
	return f.limits.Clone()
}

// Clauses returns a copy of the compiled clauses
func (f *Filter) Clauses() []Clause {
	if f == nil {
		return nil
	}
	return f.expr.Clauses()
}

// Empty reports whether the filter has no clauses and therefore matches everything
func (f *Filter) Empty() bool {
	return f == nil || f.expr.Len() == 0
}

func (f *Filter) String() string {
	if f == nil {
		return "true"
	}
	return f.expr.String()
}
