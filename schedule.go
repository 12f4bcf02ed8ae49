package main

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"
)

// ── Skill registry ──────────────────────────────────────────────────

// Registry holds contributors, projects and the skill index. Skill names are
// interned so role checks compare integers.
type Registry struct {
	Skills       *Interner
	Contributors []Contributor
	Projects     []Project

	byContributor map[string]int
	byProject     map[string]int
	index         [][]int // index[skill] = contributor indices holding skill, by name
	indexed       bool
}

func NewRegistry() *Registry {
	return &Registry{
		Skills:        NewInterner(),
		byContributor: make(map[string]int),
		byProject:     make(map[string]int),
	}
}

// SkillLevel is a (name, level) pair as read from input.
type SkillLevel struct {
	Name  string
	Level int
}

func (r *Registry) AddContributor(name string, skills []SkillLevel) error {
	if _, dup := r.byContributor[name]; dup {
		return fmt.Errorf("duplicate contributor %q", name)
	}
	c := Contributor{Name: name, Skills: make(map[Token]int, len(skills))}
	for _, s := range skills {
		if s.Level < 0 {
			return fmt.Errorf("contributor %q: negative level %d for %q", name, s.Level, s.Name)
		}
		c.Skills[r.Skills.Intern(s.Name)] = s.Level
	}
	r.byContributor[name] = len(r.Contributors)
	r.Contributors = append(r.Contributors, c)
	r.indexed = false
	return nil
}

func (r *Registry) AddProject(name string, days, score, bestBefore int, roles []SkillLevel) error {
	if _, dup := r.byProject[name]; dup {
		return fmt.Errorf("duplicate project %q", name)
	}
	p := Project{Name: name, Days: days, Score: score, BestBefore: bestBefore,
		Roles: make([]Role, 0, len(roles))}
	for _, s := range roles {
		if s.Level < 0 {
			return fmt.Errorf("project %q: negative level %d for %q", name, s.Level, s.Name)
		}
		p.Roles = append(p.Roles, Role{Skill: r.Skills.Intern(s.Name), Level: s.Level})
	}
	r.byProject[name] = len(r.Projects)
	r.Projects = append(r.Projects, p)
	return nil
}

// Project returns the named project, or nil.
func (r *Registry) Project(name string) *Project {
	if i, ok := r.byProject[name]; ok {
		return &r.Projects[i]
	}
	return nil
}

func (r *Registry) contributorIdx(name string) (int, bool) {
	i, ok := r.byContributor[name]
	return i, ok
}

func (r *Registry) buildIndex() {
	if r.indexed {
		return
	}
	byName := make([]int, len(r.Contributors))
	for i := range byName {
		byName[i] = i
	}
	slices.SortFunc(byName, func(a, b int) int {
		return cmp.Compare(r.Contributors[a].Name, r.Contributors[b].Name)
	})
	r.index = make([][]int, r.Skills.Len()+1)
	for _, ci := range byName {
		for skill := range r.Contributors[ci].Skills {
			r.index[skill] = append(r.index[skill], ci)
		}
	}
	r.indexed = true
}

// Holders lists the contributors holding skill at any level, ordered by name.
func (r *Registry) Holders(skill Token) []int {
	r.buildIndex()
	if skill < 1 || int(skill) >= len(r.index) {
		return nil
	}
	return r.index[skill]
}

// ── Load counter ────────────────────────────────────────────────────

// LoadCounter counts, per contributor index, the plans committed so far in
// one scheduling run.
type LoadCounter []int

func newLoadCounter(n int) LoadCounter { return make(LoadCounter, n) }

// Commit returns a counter with every contributor of plan incremented. The
// receiver is left untouched.
func (l LoadCounter) Commit(r *Registry, plan Plan) LoadCounter {
	next := slices.Clone(l)
	for _, name := range plan.Contributors {
		if ci, ok := r.contributorIdx(name); ok {
			next[ci]++
		}
	}
	return next
}

// Of returns the load of a contributor by name.
func (l LoadCounter) Of(r *Registry, name string) int {
	if ci, ok := r.contributorIdx(name); ok && ci < len(l) {
		return l[ci]
	}
	return 0
}

// ── Scheduler ───────────────────────────────────────────────────────

// Project orderings accepted by Config.Order.
const (
	OrderDensity = "density"
	OrderScore   = "score"
)

// Schedule is the result of one scheduling run.
type Schedule struct {
	Plans     []Plan
	Load      LoadCounter
	Discarded int
}

// Scheduler matches contributors to project roles greedily, project by
// project, preferring the least-loaded qualified contributor for each role.
// Not reentrant: one Schedule call at a time per Registry.
type Scheduler struct {
	reg *Registry
	cfg Config
	log *zap.Logger
}

func NewScheduler(reg *Registry, cfg Config, log *zap.Logger) *Scheduler {
	return &Scheduler{reg: reg, cfg: cfg, log: orNop(log)}
}

// projectOrder returns project indices by descending priority, ties by name.
func (s *Scheduler) projectOrder() []int {
	order := make([]int, len(s.reg.Projects))
	for i := range order {
		order[i] = i
	}
	ps := s.reg.Projects
	slices.SortFunc(order, func(a, b int) int {
		pa, pb := &ps[a], &ps[b]
		var c int
		if s.cfg.Order == OrderScore {
			c = cmp.Compare(pb.Score, pa.Score)
		} else {
			c = cmp.Compare(densityRank(pa), densityRank(pb))
			if c == 0 && pa.Days > 0 {
				// score/days compared without division
				c = cmp.Compare(pb.Score*pa.Days, pa.Score*pb.Days)
			}
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(pa.Name, pb.Name)
	})
	return order
}

// densityRank buckets projects whose density has no finite ratio: zero-day
// projects with a score come first, zero-day projects without one come last.
func densityRank(p *Project) int {
	switch {
	case p.Days > 0:
		return 1
	case p.Score > 0:
		return 0
	}
	return 2
}

// Match fills the roles of p in order using load as the tie-break state. It
// does not modify load. The plan is only usable when ok is true.
func (s *Scheduler) Match(p *Project, load LoadCounter) (plan Plan, ok bool) {
	chosen := make(map[int]bool, len(p.Roles))
	picked := make([]int, 0, len(p.Roles))
	for _, role := range p.Roles {
		best := -1
		for _, ci := range s.reg.Holders(role.Skill) {
			if chosen[ci] || s.reg.Contributors[ci].Skills[role.Skill] < role.Level {
				continue
			}
			if best < 0 || load[ci] < load[best] {
				best = ci
			}
		}
		if best < 0 {
			continue
		}
		chosen[best] = true
		picked = append(picked, best)
	}
	if len(picked) != len(p.Roles) {
		return Plan{}, false
	}
	plan = Plan{Project: p.Name, Contributors: make([]string, len(picked))}
	for i, ci := range picked {
		plan.Contributors[i] = s.reg.Contributors[ci].Name
	}
	return plan, true
}

// Run visits every project once in priority order and commits the ones whose
// roles can all be filled.
func (s *Scheduler) Run() (Schedule, time.Duration) {
	start := time.Now()
	s.reg.buildIndex()

	out := Schedule{Load: newLoadCounter(len(s.reg.Contributors))}
	s.log.Info("[schedule] start",
		zap.Int("contributors", len(s.reg.Contributors)),
		zap.Int("projects", len(s.reg.Projects)),
		zap.String("order", s.cfg.Order))

	for _, pi := range s.projectOrder() {
		p := &s.reg.Projects[pi]
		plan, ok := s.Match(p, out.Load)
		if !ok {
			out.Discarded++
			s.log.Debug("project discarded", zap.String("project", p.Name))
			continue
		}
		out.Load = out.Load.Commit(s.reg, plan)
		out.Plans = append(out.Plans, plan)
		s.log.Debug("project committed", zap.String("project", p.Name),
			zap.Strings("contributors", plan.Contributors))
	}

	elapsed := time.Since(start)
	s.log.Info("[done] schedule",
		zap.Int("committed", len(out.Plans)),
		zap.Int("discarded", out.Discarded),
		zap.Duration("elapsed", elapsed))
	return out, elapsed
}
