package main

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// loadJSON parses the JSON layouts of both problems:
//
//	{"clients":[{"likes":["a"],"dislikes":["b"]}]}
//	{"contributors":[{"name":"Ann","skills":{"C++":3}}],
//	 "projects":[{"name":"P1","days":1,"score":10,"bestBefore":5,
//	              "roles":[{"skill":"C++","level":2}]}]}
func loadJSON(doc string, kind ProblemKind) (*Input, error) {
	if !gjson.Valid(doc) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformedInput)
	}
	if kind == ProblemUnknown {
		kind = detectJSON(doc)
	}
	in := &Input{Kind: kind}
	var err error
	switch kind {
	case ProblemSelection:
		in.Prefs, err = parseSelectionJSON(doc)
	case ProblemAssignment:
		in.Registry, err = parseAssignmentJSON(doc)
	default:
		err = fmt.Errorf("%w: JSON has neither clients nor contributors", ErrMalformedInput)
	}
	if err != nil {
		return nil, err
	}
	return in, nil
}

func detectJSON(doc string) ProblemKind {
	switch {
	case gjson.Get(doc, "clients").IsArray():
		return ProblemSelection
	case gjson.Get(doc, "contributors").IsArray(), gjson.Get(doc, "projects").IsArray():
		return ProblemAssignment
	}
	return ProblemUnknown
}

func readStrings(v gjson.Result, path string) ([]string, error) {
	if !v.Exists() {
		return nil, nil
	}
	if !v.IsArray() {
		return nil, fmt.Errorf("%w: %s: want array", ErrMalformedInput, path)
	}
	var out []string
	var bad error
	v.ForEach(func(i, item gjson.Result) bool {
		if item.Type != gjson.String {
			bad = fmt.Errorf("%w: %s[%d]: want string", ErrMalformedInput, path, i.Int())
			return false
		}
		out = append(out, item.Str)
		return true
	})
	return out, bad
}

func readInt(v gjson.Result, path string) (int, error) {
	if v.Type != gjson.Number || v.Num != float64(int(v.Num)) {
		return 0, fmt.Errorf("%w: %s: want integer", ErrMalformedInput, path)
	}
	if v.Int() < 0 {
		return 0, fmt.Errorf("%w: %s: %d is negative", ErrMalformedInput, path, v.Int())
	}
	return int(v.Int()), nil
}

func readName(v gjson.Result, path string) (string, error) {
	if v.Type != gjson.String || v.Str == "" {
		return "", fmt.Errorf("%w: %s: want non-empty string", ErrMalformedInput, path)
	}
	return v.Str, nil
}

func parseSelectionJSON(doc string) (*PreferenceStore, error) {
	store := NewPreferenceStore()
	var err error
	gjson.Get(doc, "clients").ForEach(func(i, c gjson.Result) bool {
		path := fmt.Sprintf("clients[%d]", i.Int())
		var likes, dislikes []string
		if likes, err = readStrings(c.Get("likes"), path+".likes"); err != nil {
			return false
		}
		if dislikes, err = readStrings(c.Get("dislikes"), path+".dislikes"); err != nil {
			return false
		}
		store.AddClient(likes, dislikes)
		return true
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

func parseAssignmentJSON(doc string) (*Registry, error) {
	reg := NewRegistry()
	var err error
	gjson.Get(doc, "contributors").ForEach(func(i, c gjson.Result) bool {
		path := fmt.Sprintf("contributors[%d]", i.Int())
		var name string
		if name, err = readName(c.Get("name"), path+".name"); err != nil {
			return false
		}
		var skills []SkillLevel
		c.Get("skills").ForEach(func(name, lvl gjson.Result) bool {
			var n int
			if n, err = readInt(lvl, path+".skills."+name.String()); err != nil {
				return false
			}
			skills = append(skills, SkillLevel{Name: name.String(), Level: n})
			return true
		})
		if err != nil {
			return false
		}
		if err = reg.AddContributor(name, skills); err != nil {
			err = fmt.Errorf("%w: %s: %v", ErrMalformedInput, path, err)
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}

	gjson.Get(doc, "projects").ForEach(func(i, p gjson.Result) bool {
		path := fmt.Sprintf("projects[%d]", i.Int())
		var name string
		if name, err = readName(p.Get("name"), path+".name"); err != nil {
			return false
		}
		var nums [3]int
		for j, key := range []string{"days", "score", "bestBefore"} {
			if nums[j], err = readInt(p.Get(key), path+"."+key); err != nil {
				return false
			}
		}
		var roles []SkillLevel
		p.Get("roles").ForEach(func(k, role gjson.Result) bool {
			rp := fmt.Sprintf("%s.roles[%d]", path, k.Int())
			var skill string
			if skill, err = readName(role.Get("skill"), rp+".skill"); err != nil {
				return false
			}
			var n int
			if n, err = readInt(role.Get("level"), rp+".level"); err != nil {
				return false
			}
			roles = append(roles, SkillLevel{Name: skill, Level: n})
			return true
		})
		if err != nil {
			return false
		}
		if err = reg.AddProject(name, nums[0], nums[1], nums[2], roles); err != nil {
			err = fmt.Errorf("%w: %s: %v", ErrMalformedInput, path, err)
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return reg, nil
}
