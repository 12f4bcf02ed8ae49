package main

import (
	"reflect"
	"strings"
	"testing"
)

const sampleAssignment = `3 3
Anna 1
C++ 2
Bob 2
HTML 5
CSS 5
Maria 1
Python 3
Logging 5 10 5 1
C++ 3
WebServer 7 10 7 2
HTML 3
C++ 2
WebChat 10 20 20 2
Python 3
HTML 3
`

func registryFrom(t *testing.T, text string) *Registry {
	t.Helper()
	reg, err := ParseAssignment(strings.NewReader(text))
	if err != nil {
		t.Fatalf("ParseAssignment: %v", err)
	}
	return reg
}

func runSchedule(t *testing.T, reg *Registry, cfg Config) Schedule {
	t.Helper()
	s, _ := NewScheduler(reg, cfg, nil).Run()
	for _, p := range s.Plans {
		proj := reg.Project(p.Project)
		if proj == nil {
			t.Fatalf("plan for unknown project %q", p.Project)
		}
		if len(p.Contributors) != len(proj.Roles) {
			t.Fatalf("plan %s has %d contributors for %d roles", p.Project, len(p.Contributors), len(proj.Roles))
		}
	}
	return s
}

func TestSchedule_SingleMatch(t *testing.T) {
	reg := registryFrom(t, "1 1\nAnn 1\nC++ 3\nP1 1 10 5 1\nC++ 2\n")
	s := runSchedule(t, reg, DefaultConfig())
	want := []Plan{{Project: "P1", Contributors: []string{"Ann"}}}
	if !reflect.DeepEqual(s.Plans, want) {
		t.Fatalf("plans = %+v, want %+v", s.Plans, want)
	}
	if got := s.Load.Of(reg, "Ann"); got != 1 {
		t.Fatalf("Ann load = %d, want 1", got)
	}
}

func TestSchedule_Unfillable(t *testing.T) {
	reg := registryFrom(t, "1 1\nAnn 1\nC++ 1\nP1 1 10 5 1\nC++ 2\n")
	s := runSchedule(t, reg, DefaultConfig())
	if len(s.Plans) != 0 || s.Discarded != 1 {
		t.Fatalf("plans=%d discarded=%d, want 0 and 1", len(s.Plans), s.Discarded)
	}
	if got := s.Load.Of(reg, "Ann"); got != 0 {
		t.Fatalf("discarded project changed load: Ann=%d", got)
	}
	if out := FormatSchedule(s.Plans); out != "" {
		t.Fatalf("output = %q, want empty", out)
	}
}

func TestSchedule_Sample(t *testing.T) {
	reg := registryFrom(t, sampleAssignment)
	s := runSchedule(t, reg, DefaultConfig())
	want := []Plan{
		{Project: "WebChat", Contributors: []string{"Maria", "Bob"}},
		{Project: "WebServer", Contributors: []string{"Bob", "Anna"}},
	}
	if !reflect.DeepEqual(s.Plans, want) {
		t.Fatalf("plans = %+v, want %+v", s.Plans, want)
	}
	if s.Discarded != 1 {
		t.Fatalf("discarded = %d, want 1", s.Discarded)
	}
	wantLoad := map[string]int{"Anna": 1, "Bob": 2, "Maria": 1}
	for name, n := range wantLoad {
		if got := s.Load.Of(reg, name); got != n {
			t.Errorf("load[%s] = %d, want %d", name, got, n)
		}
	}
}

func TestMatch_OneContributorPerProject(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
		ok    bool
	}{
		{
			name:  "single holder cannot fill two roles",
			input: "1 1\nAnn 1\nGo 5\nP 1 1 1 2\nGo 1\nGo 1\n",
			ok:    false,
		},
		{
			name:  "two holders split by name",
			input: "2 1\nBob 1\nGo 5\nAnn 1\nGo 5\nP 1 1 1 2\nGo 1\nGo 1\n",
			want:  []string{"Ann", "Bob"},
			ok:    true,
		},
		{
			name:  "level filter",
			input: "2 1\nAnn 1\nGo 1\nBob 1\nGo 3\nP 1 1 1 1\nGo 2\n",
			want:  []string{"Bob"},
			ok:    true,
		},
		{
			name:  "unfilled slot does not stop later slots",
			input: "1 1\nAnn 1\nGo 1\nP 1 1 1 2\nRust 1\nGo 1\n",
			ok:    false,
		},
		{
			name:  "skill not held at all",
			input: "1 1\nAnn 1\nGo 1\nP 1 1 1 1\nCSS 0\n",
			ok:    false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := registryFrom(t, tt.input)
			s := NewScheduler(reg, DefaultConfig(), nil)
			plan, ok := s.Match(&reg.Projects[0], newLoadCounter(len(reg.Contributors)))
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v (plan %+v)", ok, tt.ok, plan)
			}
			if ok && !reflect.DeepEqual(plan.Contributors, tt.want) {
				t.Fatalf("contributors = %v, want %v", plan.Contributors, tt.want)
			}
		})
	}
}

func TestMatch_PrefersLeastLoaded(t *testing.T) {
	reg := registryFrom(t, "2 1\nAnn 1\nGo 5\nBob 1\nGo 5\nP 1 1 1 1\nGo 1\n")
	s := NewScheduler(reg, DefaultConfig(), nil)

	load := newLoadCounter(2)
	load = load.Commit(reg, Plan{Project: "x", Contributors: []string{"Ann"}})
	plan, ok := s.Match(&reg.Projects[0], load)
	if !ok || !reflect.DeepEqual(plan.Contributors, []string{"Bob"}) {
		t.Fatalf("plan = %+v ok=%v, want Bob", plan, ok)
	}
}

func TestSchedule_FairnessSpreadsLoad(t *testing.T) {
	reg := registryFrom(t, "2 3\nAnn 1\nGo 5\nBob 1\nGo 5\nP1 1 5 9 1\nGo 1\nP2 1 5 9 1\nGo 1\nP3 1 5 9 1\nGo 1\n")
	s := runSchedule(t, reg, DefaultConfig())
	var got []string
	for _, p := range s.Plans {
		got = append(got, p.Contributors[0])
	}
	if want := []string{"Ann", "Bob", "Ann"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("assignment order = %v, want %v", got, want)
	}
}

func TestLoadCounter_CommitIsPure(t *testing.T) {
	reg := registryFrom(t, "1 0\nAnn 1\nGo 1\n")
	before := newLoadCounter(1)
	after := before.Commit(reg, Plan{Project: "P", Contributors: []string{"Ann"}})
	if before[0] != 0 || after[0] != 1 {
		t.Fatalf("before=%v after=%v", before, after)
	}
}

func TestProjectOrder(t *testing.T) {
	reg := NewRegistry()
	mustAdd(t, reg.AddProject("A", 10, 50, 0, nil))
	mustAdd(t, reg.AddProject("C", 2, 20, 0, nil))
	mustAdd(t, reg.AddProject("B", 1, 10, 0, nil))
	mustAdd(t, reg.AddProject("Z", 0, 1, 0, nil))

	names := func(cfg Config) []string {
		var out []string
		for _, i := range NewScheduler(reg, cfg, nil).projectOrder() {
			out = append(out, reg.Projects[i].Name)
		}
		return out
	}

	cfg := DefaultConfig()
	if got, want := names(cfg), []string{"Z", "B", "C", "A"}; !reflect.DeepEqual(got, want) {
		t.Errorf("density order = %v, want %v", got, want)
	}
	cfg.Order = OrderScore
	if got, want := names(cfg), []string{"A", "C", "B", "Z"}; !reflect.DeepEqual(got, want) {
		t.Errorf("score order = %v, want %v", got, want)
	}
}

func TestProjectOrder_ZeroDayZeroScore(t *testing.T) {
	reg := NewRegistry()
	mustAdd(t, reg.AddProject("M", 0, 0, 0, nil))
	mustAdd(t, reg.AddProject("A", 1, 1, 0, nil))
	mustAdd(t, reg.AddProject("Z", 1, 10, 0, nil))
	mustAdd(t, reg.AddProject("K", 0, 3, 0, nil))
	mustAdd(t, reg.AddProject("B", 2, 0, 0, nil))

	var got []string
	for _, i := range NewScheduler(reg, DefaultConfig(), nil).projectOrder() {
		got = append(got, reg.Projects[i].Name)
	}
	want := []string{"K", "Z", "A", "B", "M"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("density order = %v, want %v", got, want)
	}
}

func TestRegistry_Duplicates(t *testing.T) {
	reg := NewRegistry()
	mustAdd(t, reg.AddContributor("Ann", nil))
	if err := reg.AddContributor("Ann", nil); err == nil {
		t.Error("duplicate contributor accepted")
	}
	mustAdd(t, reg.AddProject("P", 1, 1, 1, nil))
	if err := reg.AddProject("P", 1, 1, 1, nil); err == nil {
		t.Error("duplicate project accepted")
	}
}

func TestRegistry_HoldersByName(t *testing.T) {
	reg := registryFrom(t, "3 0\nCid 1\nGo 1\nAnn 1\nGo 2\nBob 1\nCSS 1\n")
	goTok, _ := reg.Skills.Lookup("Go")
	var got []string
	for _, ci := range reg.Holders(goTok) {
		got = append(got, reg.Contributors[ci].Name)
	}
	if want := []string{"Ann", "Cid"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("holders = %v, want %v", got, want)
	}
}
