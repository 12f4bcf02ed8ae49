package main

import (
	"cmp"
	"slices"
	"time"

	"go.uber.org/zap"
)

// ── Preference store ────────────────────────────────────────────────

// PreferenceStore holds every client and the per-item like/dislike counts
// gathered while they were read.
type PreferenceStore struct {
	Items   *Interner
	Clients []Client
	Counts  SimpleCount
}

func NewPreferenceStore() *PreferenceStore {
	return &PreferenceStore{
		Items: NewInterner(),
		Counts: SimpleCount{
			Likes:    make(map[Token]int),
			Dislikes: make(map[Token]int),
		},
	}
}

// AddClient interns both label lists and records one client.
func (p *PreferenceStore) AddClient(likes, dislikes []string) {
	p.Clients = append(p.Clients, Client{
		Likes:    p.ingest(likes, p.Counts.Likes),
		Dislikes: p.ingest(dislikes, p.Counts.Dislikes),
	})
}

func (p *PreferenceStore) ingest(labels []string, counts map[Token]int) ItemSet {
	tokens := make([]Token, 0, len(labels))
	for _, l := range labels {
		t := p.Items.Intern(l)
		counts[t]++
		tokens = append(tokens, t)
	}
	return newItemSet(tokens)
}

// ── Optimizer ───────────────────────────────────────────────────────

// Selection is the outcome of the set-selection search.
type Selection struct {
	Items  *TokenSet
	Score  int // clients satisfied under LikesAndDislikes
	Simple int // same measure for the construction set
}

// SetOptimizer builds a selection greedily from net like counts, then refines
// it with single-token removal and addition moves that must strictly raise
// the number of satisfied clients.
type SetOptimizer struct {
	store *PreferenceStore
	cfg   Config
	log   *zap.Logger

	// touched[t] lists the clients whose likes or dislikes contain t; only
	// those can change status when t moves in or out of the set.
	touched   [][]int
	set       *TokenSet
	satisfied []bool
	score     int
	scratch   []bool
}

func NewSetOptimizer(store *PreferenceStore, cfg Config, log *zap.Logger) *SetOptimizer {
	o := &SetOptimizer{store: store, cfg: cfg, log: orNop(log)}
	o.buildIndex()
	return o
}

func (o *SetOptimizer) buildIndex() {
	o.touched = make([][]int, o.store.Items.Len()+1)
	for ci := range o.store.Clients {
		c := &o.store.Clients[ci]
		for _, t := range c.Likes.Tokens {
			o.touched[t] = append(o.touched[t], ci)
		}
		for _, t := range c.Dislikes.Tokens {
			if l := o.touched[t]; len(l) > 0 && l[len(l)-1] == ci {
				continue
			}
			o.touched[t] = append(o.touched[t], ci)
		}
	}
}

// SimpleSolution selects every liked token whose net score is not negative.
func (o *SetOptimizer) SimpleSolution() *TokenSet {
	set := newTokenSet(o.store.Items.Len())
	for t := range o.store.Counts.Likes {
		if o.store.Counts.Net(t) >= 0 {
			set.Add(t)
		}
	}
	return set
}

func (o *SetOptimizer) reset(set *TokenSet) {
	o.set = set
	o.satisfied = make([]bool, len(o.store.Clients))
	o.scratch = make([]bool, len(o.store.Clients))
	o.score = 0
	for ci := range o.store.Clients {
		if satisfies(&o.store.Clients[ci], set, LikesAndDislikes) {
			o.satisfied[ci] = true
			o.score++
		}
	}
}

// try toggles t and keeps the move only if the score strictly improves.
func (o *SetOptimizer) try(t Token, add bool) bool {
	if add {
		o.set.Add(t)
	} else {
		o.set.Remove(t)
	}
	delta := 0
	for _, ci := range o.touched[t] {
		now := satisfies(&o.store.Clients[ci], o.set, LikesAndDislikes)
		o.scratch[ci] = now
		switch {
		case now && !o.satisfied[ci]:
			delta++
		case !now && o.satisfied[ci]:
			delta--
		}
	}
	if delta <= 0 {
		if add {
			o.set.Remove(t)
		} else {
			o.set.Add(t)
		}
		return false
	}
	for _, ci := range o.touched[t] {
		o.satisfied[ci] = o.scratch[ci]
	}
	o.score += delta
	return true
}

// removalOrder lists the selected tokens by dislike count, highest first.
func (o *SetOptimizer) removalOrder() []Token {
	order := o.set.Tokens()
	dislikes := o.store.Counts.Dislikes
	// Stable over ascending tokens: equal counts keep the lower token first.
	slices.SortStableFunc(order, func(a, b Token) int {
		return cmp.Compare(dislikes[b], dislikes[a])
	})
	return order
}

func (o *SetOptimizer) climbRemovals() int {
	accepted := 0
	for _, t := range o.removalOrder() {
		before := o.score
		if o.try(t, false) {
			accepted++
			o.log.Debug("removed item", zap.Int("token", int(t)),
				zap.Int("before", before), zap.Int("after", o.score))
		}
	}
	return accepted
}

// climbAdditions walks the complement in ascending token order.
func (o *SetOptimizer) climbAdditions() int {
	accepted := 0
	for t := Token(1); int(t) <= o.store.Items.Len(); t++ {
		if o.set.Has(t) {
			continue
		}
		before := o.score
		if o.try(t, true) {
			accepted++
			o.log.Debug("added item", zap.Int("token", int(t)),
				zap.Int("before", before), zap.Int("after", o.score))
		}
	}
	return accepted
}

// Optimize runs construction then the configured refinement sweeps.
func (o *SetOptimizer) Optimize() (Selection, time.Duration) {
	start := time.Now()

	o.reset(o.SimpleSolution())
	simple := o.score
	o.log.Info("[simple] construction done",
		zap.Int("items", o.set.Len()),
		zap.Int("score", simple),
		zap.Int("likesOnly", Measure(o.store.Clients, o.set, LikesOnly)))

	if o.cfg.Refine.Remove {
		n := o.climbRemovals()
		o.log.Info("[refine] removal sweep", zap.Int("accepted", n), zap.Int("score", o.score))
	}
	if o.cfg.Refine.Add {
		n := o.climbAdditions()
		o.log.Info("[refine] addition sweep", zap.Int("accepted", n), zap.Int("score", o.score))
	}

	elapsed := time.Since(start)
	o.log.Info("[done] selection", zap.Int("score", o.score), zap.Duration("elapsed", elapsed))
	return Selection{Items: o.set.Clone(), Score: o.score, Simple: simple}, elapsed
}
