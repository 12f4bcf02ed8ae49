package main

import (
	"slices"
	"strconv"
	"strings"
)

// ProblemKind selects which of the two optimizers an input belongs to.
type ProblemKind int

const (
	ProblemUnknown    ProblemKind = iota
	ProblemSelection              // format A: clients with likes/dislikes
	ProblemAssignment             // format B: contributors and projects
)

func (k ProblemKind) String() string {
	switch k {
	case ProblemSelection:
		return "selection"
	case ProblemAssignment:
		return "assignment"
	}
	return "unknown"
}

func parseProblemKind(s string) ProblemKind {
	switch s {
	case "selection", "a", "A":
		return ProblemSelection
	case "assignment", "b", "B":
		return ProblemAssignment
	}
	return ProblemUnknown
}

// Token is a dense identifier for an interned label. The zero Token is never
// handed out.
type Token int

// ItemSet is one client's likes or dislikes. Tokens are kept sorted ascending.
type ItemSet struct {
	Tokens []Token
}

func newItemSet(tokens []Token) ItemSet {
	s := slices.Clone(tokens)
	slices.Sort(s)
	return ItemSet{Tokens: slices.Compact(s)}
}

// Key is a content fingerprint: the tokens joined by '-' in ascending order.
func (s ItemSet) Key() string {
	var b strings.Builder
	for i, t := range s.Tokens {
		if i > 0 {
			b.WriteByte('-')
		}
		b.WriteString(strconv.Itoa(int(t)))
	}
	return b.String()
}

func (s ItemSet) Len() int { return len(s.Tokens) }

type Client struct {
	Likes    ItemSet
	Dislikes ItemSet
}

// SimpleCount holds per-token occurrence counts over every client line read.
type SimpleCount struct {
	Likes    map[Token]int
	Dislikes map[Token]int
}

// Net is like occurrences minus dislike occurrences.
func (c *SimpleCount) Net(t Token) int {
	return c.Likes[t] - c.Dislikes[t]
}

// Role is one requirement slot of a project.
type Role struct {
	Skill Token
	Level int
}

// Contributor is a worker and the level they hold for each skill.
type Contributor struct {
	Name   string
	Skills map[Token]int
}

// Level reports the contributor's level for skill and whether they hold it.
func (c *Contributor) Level(skill Token) (int, bool) {
	lvl, ok := c.Skills[skill]
	return lvl, ok
}

type Project struct {
	Name       string
	Days       int
	Score      int
	BestBefore int
	Roles      []Role // order is significant
}

// Plan is a committed project with one contributor per role, in role order.
type Plan struct {
	Project      string
	Contributors []string
}
