package tagexpr

import (
	"sync"
	"testing"
)

func TestTermMatches(t *testing.T) {
	tags := NewTagSet("@foo", "@bar")

	tests := []struct {
		term   Term
		expect bool
	}{
		{Term{Name: "@foo"}, true},
		{Term{Name: "@zap"}, false},
		{Term{Name: "@foo", Negated: true}, false},
		{Term{Name: "@zap", Negated: true}, true},
		// limits play no part in matching
		{Term{Name: "@foo", Limit: 0, HasLimit: true}, true},
		{Term{Name: "@zap", Negated: true, Limit: 1, HasLimit: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.term.String(), func(t *testing.T) {
			if got := tt.term.Matches(tags); got != tt.expect {
				t.Errorf("Matches = %v, want %v", got, tt.expect)
			}
		})
	}
}

func TestClauseMatchesEmpty(t *testing.T) {
	// unreachable from parsed input, but OR over nothing is false
	if Clause(nil).Matches(NewTagSet("@foo")) {
		t.Error("empty clause should not match")
	}
}

func TestNilExpression(t *testing.T) {
	var e *Expression
	if !e.Evaluate(nil) {
		t.Error("nil expression should match")
	}
	if e.Len() != 0 || e.Clauses() != nil || e.String() != "true" {
		t.Error("nil expression should behave as empty")
	}
}

func TestEvaluateIdempotent(t *testing.T) {
	f := MustNew("@foo,@bar", "~@zap")
	tags := []string{"@foo"}

	first := f.Evaluate(tags)
	for i := 0; i < 100; i++ {
		if got := f.Evaluate(tags); got != first {
			t.Fatalf("iteration %d: got %v, first result was %v", i, got, first)
		}
	}
	if !first {
		t.Error("expected match")
	}
}

func TestEvaluateConcurrent(t *testing.T) {
	f := MustNew("@foo:3,~@bar", "@zap:5")

	inputs := []struct {
		tags   []string
		expect bool
	}{
		{[]string{"@foo", "@zap"}, true},
		{[]string{"@bar", "@zap"}, false},
		{[]string{"@zap"}, true},
		{nil, false},
	}

	var wg sync.WaitGroup
	errs := make(chan string, 64)
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				in := inputs[i%len(inputs)]
				if got := f.Evaluate(in.tags); got != in.expect {
					errs <- "unexpected result"
					return
				}
				_ = f.Limits()
			}
		}()
	}
	wg.Wait()
	close(errs)

	for msg := range errs {
		t.Error(msg)
	}
}
