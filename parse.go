package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrMalformedInput wraps every error caused by input content.
var ErrMalformedInput = errors.New("malformed input")

// Input is a parsed problem. Exactly one of Prefs and Registry is set.
type Input struct {
	Kind     ProblemKind
	Prefs    *PreferenceStore
	Registry *Registry
}

// LoadInput reads path and parses it as kind. ProblemUnknown detects the kind
// from the content. Files ending in .json use the JSON layout.
func LoadInput(path string, kind ProblemKind) (*Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		in, err := loadJSON(string(data), kind)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return in, nil
	}
	in, err := parseText(data, kind)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return in, nil
}

func parseText(data []byte, kind ProblemKind) (*Input, error) {
	if kind == ProblemUnknown {
		var err error
		if kind, err = DetectProblem(data); err != nil {
			return nil, err
		}
	}
	in := &Input{Kind: kind}
	var err error
	switch kind {
	case ProblemSelection:
		in.Prefs, err = ParseSelection(bytes.NewReader(data))
	case ProblemAssignment:
		in.Registry, err = ParseAssignment(bytes.NewReader(data))
	default:
		err = fmt.Errorf("unsupported problem kind %v", kind)
	}
	if err != nil {
		return nil, err
	}
	return in, nil
}

// DetectProblem looks at the header line: one count means format A, two
// counts mean format B.
func DetectProblem(data []byte) (ProblemKind, error) {
	lr := newLineReader(bytes.NewReader(data))
	fields, err := lr.next()
	if err != nil {
		return ProblemUnknown, err
	}
	switch len(fields) {
	case 1:
		return ProblemSelection, nil
	case 2:
		return ProblemAssignment, nil
	}
	return ProblemUnknown, lr.errorf("header has %d fields, want 1 or 2", len(fields))
}

// ── Line reader ─────────────────────────────────────────────────────

type lineReader struct {
	sc   *bufio.Scanner
	line int
}

func newLineReader(r io.Reader) *lineReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	return &lineReader{sc: sc}
}

func (lr *lineReader) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", ErrMalformedInput, lr.line, fmt.Sprintf(format, args...))
}

// next returns the whitespace-separated fields of the next line.
func (lr *lineReader) next() ([]string, error) {
	if !lr.sc.Scan() {
		if err := lr.sc.Err(); err != nil {
			return nil, fmt.Errorf("read line %d: %w", lr.line+1, err)
		}
		lr.line++
		return nil, lr.errorf("unexpected end of input")
	}
	lr.line++
	return strings.Fields(lr.sc.Text()), nil
}

// nextN reads a line that must have exactly n fields.
func (lr *lineReader) nextN(n int, what string) ([]string, error) {
	fields, err := lr.next()
	if err != nil {
		return nil, err
	}
	if len(fields) != n {
		return nil, lr.errorf("%s: got %d fields, want %d", what, len(fields), n)
	}
	return fields, nil
}

func (lr *lineReader) atoi(s, what string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, lr.errorf("%s: %q is not an integer", what, s)
	}
	if v < 0 {
		return 0, lr.errorf("%s: %d is negative", what, v)
	}
	return v, nil
}

// counted reads "K w1 ... wK" and returns the K labels.
func (lr *lineReader) counted(what string) ([]string, error) {
	fields, err := lr.next()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, lr.errorf("%s: empty line", what)
	}
	k, err := lr.atoi(fields[0], what+" count")
	if err != nil {
		return nil, err
	}
	if len(fields)-1 != k {
		return nil, lr.errorf("%s: count %d but %d labels", what, k, len(fields)-1)
	}
	return fields[1:], nil
}

// ── Format A ────────────────────────────────────────────────────────

// ParseSelection reads format A: a client count, then a likes line and a
// dislikes line per client.
func ParseSelection(r io.Reader) (*PreferenceStore, error) {
	lr := newLineReader(r)
	header, err := lr.nextN(1, "client count")
	if err != nil {
		return nil, err
	}
	n, err := lr.atoi(header[0], "client count")
	if err != nil {
		return nil, err
	}
	store := NewPreferenceStore()
	for i := 0; i < n; i++ {
		likes, err := lr.counted(fmt.Sprintf("client %d likes", i+1))
		if err != nil {
			return nil, err
		}
		dislikes, err := lr.counted(fmt.Sprintf("client %d dislikes", i+1))
		if err != nil {
			return nil, err
		}
		store.AddClient(likes, dislikes)
	}
	return store, nil
}

// ── Format B ────────────────────────────────────────────────────────

// ParseAssignment reads format B: contributors with their skills, then
// projects with their ordered roles.
func ParseAssignment(r io.Reader) (*Registry, error) {
	lr := newLineReader(r)
	header, err := lr.nextN(2, "header")
	if err != nil {
		return nil, err
	}
	nc, err := lr.atoi(header[0], "contributor count")
	if err != nil {
		return nil, err
	}
	np, err := lr.atoi(header[1], "project count")
	if err != nil {
		return nil, err
	}

	reg := NewRegistry()
	for i := 0; i < nc; i++ {
		f, err := lr.nextN(2, "contributor")
		if err != nil {
			return nil, err
		}
		k, err := lr.atoi(f[1], "skill count")
		if err != nil {
			return nil, err
		}
		skills, err := lr.skillLines(k)
		if err != nil {
			return nil, err
		}
		if err := reg.AddContributor(f[0], skills); err != nil {
			return nil, lr.errorf("%v", err)
		}
	}
	for i := 0; i < np; i++ {
		f, err := lr.nextN(5, "project")
		if err != nil {
			return nil, err
		}
		var nums [4]int
		for j, what := range []string{"days", "score", "best before", "role count"} {
			if nums[j], err = lr.atoi(f[j+1], what); err != nil {
				return nil, err
			}
		}
		roles, err := lr.skillLines(nums[3])
		if err != nil {
			return nil, err
		}
		if err := reg.AddProject(f[0], nums[0], nums[1], nums[2], roles); err != nil {
			return nil, lr.errorf("%v", err)
		}
	}
	return reg, nil
}

func (lr *lineReader) skillLines(k int) ([]SkillLevel, error) {
	out := make([]SkillLevel, 0, k)
	for j := 0; j < k; j++ {
		f, err := lr.nextN(2, "skill")
		if err != nil {
			return nil, err
		}
		lvl, err := lr.atoi(f[1], "skill level")
		if err != nil {
			return nil, err
		}
		out = append(out, SkillLevel{Name: f[0], Level: lvl})
	}
	return out, nil
}
