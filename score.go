package main

// ── Token sets ──────────────────────────────────────────────────────

// TokenSet is a candidate selection of item tokens. Membership is a flat
// slice indexed by token, which the dense numbering makes cheap.
type TokenSet struct {
	in []bool
	n  int
}

func newTokenSet(maxToken int) *TokenSet {
	return &TokenSet{in: make([]bool, maxToken+1)}
}

func (s *TokenSet) grow(t Token) {
	if int(t) >= len(s.in) {
		in := make([]bool, int(t)+1)
		copy(in, s.in)
		s.in = in
	}
}

// Add reports whether t was newly inserted.
func (s *TokenSet) Add(t Token) bool {
	s.grow(t)
	if s.in[t] {
		return false
	}
	s.in[t] = true
	s.n++
	return true
}

// Remove reports whether t was present.
func (s *TokenSet) Remove(t Token) bool {
	if !s.Has(t) {
		return false
	}
	s.in[t] = false
	s.n--
	return true
}

func (s *TokenSet) Has(t Token) bool {
	return t > 0 && int(t) < len(s.in) && s.in[t]
}

func (s *TokenSet) Len() int { return s.n }

// Tokens lists the members in ascending order.
func (s *TokenSet) Tokens() []Token {
	out := make([]Token, 0, s.n)
	for t, ok := range s.in {
		if ok {
			out = append(out, Token(t))
		}
	}
	return out
}

func (s *TokenSet) Clone() *TokenSet {
	in := make([]bool, len(s.in))
	copy(in, s.in)
	return &TokenSet{in: in, n: s.n}
}

// ── Measure ─────────────────────────────────────────────────────────

// SatisfyRule decides when a client counts as satisfied by a selection.
type SatisfyRule int

const (
	// LikesOnly requires every liked item to be selected. Construction
	// scores with this rule.
	LikesOnly SatisfyRule = iota
	// LikesAndDislikes additionally requires no disliked item to be selected.
	LikesAndDislikes
)

func satisfies(c *Client, set *TokenSet, rule SatisfyRule) bool {
	for _, t := range c.Likes.Tokens {
		if !set.Has(t) {
			return false
		}
	}
	if rule == LikesAndDislikes {
		for _, t := range c.Dislikes.Tokens {
			if set.Has(t) {
				return false
			}
		}
	}
	return true
}

// Measure counts the clients satisfied by set under rule.
func Measure(clients []Client, set *TokenSet, rule SatisfyRule) int {
	n := 0
	for i := range clients {
		if satisfies(&clients[i], set, rule) {
			n++
		}
	}
	return n
}

// ── Plan evaluation ─────────────────────────────────────────────────

// PlanOutcome is the replayed timing and award of one committed plan.
type PlanOutcome struct {
	Project string
	Start   int
	End     int
	Award   int
}

// EvaluatePlans replays plans in order. A project starts once every one of
// its contributors is free, runs for Days, and loses one point per day it
// ends after BestBefore, never dropping below zero.
func EvaluatePlans(r *Registry, plans []Plan) ([]PlanOutcome, int) {
	freeAt := make(map[string]int)
	outcomes := make([]PlanOutcome, 0, len(plans))
	total := 0
	for _, pl := range plans {
		p := r.Project(pl.Project)
		if p == nil {
			continue
		}
		start := 0
		for _, name := range pl.Contributors {
			start = max(start, freeAt[name])
		}
		end := start + p.Days
		for _, name := range pl.Contributors {
			freeAt[name] = end
		}
		award := max(0, p.Score-max(0, end-p.BestBefore))
		total += award
		outcomes = append(outcomes, PlanOutcome{Project: p.Name, Start: start, End: end, Award: award})
	}
	return outcomes, total
}
