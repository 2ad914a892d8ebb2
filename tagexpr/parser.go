package tagexpr

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
)

// ParseTerm parses a single tag token such as "@foo", "~@bar" or "@foo:3".
// Surrounding whitespace, and whitespace after '~' or around ':', is ignored.
// The '@' sigil is conventional and not validated.
func ParseTerm(raw string) (Term, error) {
	token := strings.TrimSpace(raw)

	var term Term
	if rest, ok := strings.CutPrefix(token, "~"); ok {
		term.Negated = true
		token = strings.TrimSpace(rest)
	}

	name, limit, hasLimit := strings.Cut(token, ":")
	name = strings.TrimSpace(name)
	if name == "" {
		return Term{}, &MalformedTermError{Raw: raw, Reason: ErrEmptyTerm}
	}
	// a single '~' negates; "~~@foo" is not a double negation
	if strings.ContainsFunc(name, unicode.IsSpace) || strings.HasPrefix(name, "~") {
		return Term{}, &MalformedTermError{Raw: raw, Reason: ErrInvalidName}
	}
	term.Name = name

	if hasLimit {
		n, ok := parseLimit(strings.TrimSpace(limit))
		if !ok {
			return Term{}, &MalformedTermError{Raw: raw, Reason: ErrInvalidLimit}
		}
		term.Limit = n
		term.HasLimit = true
	}

	return term, nil
}

// parseLimit accepts base-10 digits only; signs and overflow are rejected
func parseLimit(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// SplitClause splits a raw clause on ',' and returns the trimmed tokens.
// Individual tokens are not validated here; blank tokens are left for
// ParseTerm to reject.
func SplitClause(raw string) ([]string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, &MalformedClauseError{Index: -1, Raw: raw, Err: ErrEmptyClause}
	}

	tokens := strings.Split(trimmed, ",")
	for i, token := range tokens {
		tokens[i] = strings.TrimSpace(token)
	}
	return tokens, nil
}

// ParseClause splits a raw clause and parses each of its terms
func ParseClause(raw string) (Clause, error) {
	tokens, err := SplitClause(raw)
	if err != nil {
		return nil, err
	}

	clause := make(Clause, 0, len(tokens))
	for _, token := range tokens {
		term, err := ParseTerm(token)
		if err != nil {
			return nil, &MalformedClauseError{Index: -1, Raw: raw, Err: err}
		}
		clause = append(clause, term)
	}
	return clause, nil
}

// Compile builds the conjunction of all raw clauses together with the limits
// declared on positive terms. Each raw string becomes exactly one clause.
//
// Example input, as collected from repeated --tags options:
//   - ["@foo,@bar", "~@zap"]      (@foo OR @bar) AND NOT @zap
//   - ["@foo:3,~@bar", "@zap:5"]  limits {"@foo": 3, "@zap": 5}
//
// An empty list compiles to the always-true expression. Negated terms may
// carry a limit, which is parsed and then ignored. When a tag is given more
// than one limit, the last one wins.
func Compile(raw []string) (*Expression, LimitMap, error) {
	expr := &Expression{clauses: make([]Clause, 0, len(raw))}
	limits := make(LimitMap)

	for i, r := range raw {
		clause, err := ParseClause(r)
		if err != nil {
			var ce *MalformedClauseError
			if errors.As(err, &ce) {
				ce.Index = i
			}
			return nil, nil, err
		}

		for _, term := range clause {
			if !term.Negated && term.HasLimit {
				limits[term.Name] = term.Limit
			}
		}
		expr.clauses = append(expr.clauses, clause)
	}

	return expr, limits, nil
}
