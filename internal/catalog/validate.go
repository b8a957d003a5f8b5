package catalog

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
)

var moduleIDPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

var validQuestionTypes = map[string]bool{"bool": true, "select": true}

// Validate checks a parsed catalog file for structural errors before
// compilation. All problems found are reported together.
func Validate(file *File) error {
	var errs []error

	if file.MaxSessionMinutes <= 0 {
		errs = append(errs, fmt.Errorf("max_session_minutes must be positive"))
	}
	if len(file.Modules) == 0 {
		errs = append(errs, fmt.Errorf("at least one module is required"))
	}
	if len(file.Cadence) == 0 {
		errs = append(errs, fmt.Errorf("cadence table is required"))
	}
	for urgency, perWeek := range file.Cadence {
		if perWeek < 1 {
			errs = append(errs, fmt.Errorf("cadence.%s: sessions per week must be at least 1", urgency))
		}
	}

	groups := make(map[string]bool, len(file.AffinityGroups))
	for _, g := range file.AffinityGroups {
		if groups[g] {
			errs = append(errs, fmt.Errorf("affinity_groups: duplicate group %q", g))
		}
		groups[g] = true
	}

	questions := make(map[string]bool, len(file.Questions))
	for _, q := range file.Questions {
		errs = append(errs, validateQuestion(q, questions)...)
	}

	ids := make(map[string]bool, len(file.Modules))
	locked := make(map[string]bool)
	for _, m := range file.Modules {
		errs = append(errs, validateModule(m, ids, groups, questions)...)
		if m.Locked {
			locked[m.ID] = true
		}
	}
	prereqs := make(map[string][]string, len(file.Modules))
	for _, m := range file.Modules {
		prereqs[m.ID] = m.Prerequisites
		for _, pre := range m.Prerequisites {
			if pre == m.ID {
				errs = append(errs, fmt.Errorf("module %s: prerequisite on itself", m.ID))
			} else if !ids[pre] {
				errs = append(errs, fmt.Errorf("module %s: unknown prerequisite %q", m.ID, pre))
			} else if locked[m.ID] && !locked[pre] {
				// Locked modules open the plan, so everything they depend on
				// must sit in that first session too.
				errs = append(errs, fmt.Errorf("module %s: locked module cannot depend on non-locked %q", m.ID, pre))
			}
		}
	}
	errs = append(errs, findPrerequisiteCycles(prereqs)...)

	return errors.Join(errs...)
}

// findPrerequisiteCycles walks the prerequisite graph and reports one error
// per module whose chain loops back on itself.
func findPrerequisiteCycles(prereqs map[string][]string) []error {
	const (
		visiting = 1
		done     = 2
	)
	state := make(map[string]int, len(prereqs))

	var errs []error
	var walk func(id string) bool
	walk = func(id string) bool {
		switch state[id] {
		case visiting:
			return true
		case done:
			return false
		}
		state[id] = visiting
		for _, pre := range prereqs[id] {
			// Self-references and unknown modules are reported separately.
			if pre == id {
				continue
			}
			if _, known := prereqs[pre]; !known {
				continue
			}
			if walk(pre) {
				state[id] = done
				return true
			}
		}
		state[id] = done
		return false
	}

	// Deterministic order so repeated runs report the same module.
	ids := make([]string, 0, len(prereqs))
	for id := range prereqs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if state[id] == 0 && walk(id) {
			errs = append(errs, fmt.Errorf("module %s: prerequisite cycle", id))
		}
	}
	return errs
}

func validateQuestion(q QuestionSpec, seen map[string]bool) []error {
	var errs []error

	if q.ID == "" {
		errs = append(errs, fmt.Errorf("question id is required"))
		return errs
	}
	if seen[q.ID] {
		errs = append(errs, fmt.Errorf("question %s: duplicate id", q.ID))
	}
	seen[q.ID] = true
	if q.Prompt == "" {
		errs = append(errs, fmt.Errorf("question %s: prompt is required", q.ID))
	}
	if !validQuestionTypes[q.Type] {
		errs = append(errs, fmt.Errorf("question %s: type must be bool or select, got %q", q.ID, q.Type))
	}
	if q.Type == "select" && len(q.Options) == 0 {
		errs = append(errs, fmt.Errorf("question %s: select questions need options", q.ID))
	}

	return errs
}

func validateModule(m ModuleSpec, seen, groups, questions map[string]bool) []error {
	var errs []error

	if m.ID == "" {
		errs = append(errs, fmt.Errorf("module id is required"))
		return errs
	}
	if !moduleIDPattern.MatchString(m.ID) {
		errs = append(errs, fmt.Errorf("module %s: id must be lowercase letters, digits and underscores", m.ID))
	}
	if seen[m.ID] {
		errs = append(errs, fmt.Errorf("module %s: duplicate id", m.ID))
	}
	seen[m.ID] = true

	if m.Name == "" {
		errs = append(errs, fmt.Errorf("module %s: name is required", m.ID))
	}
	if m.LiveMinutes <= 0 {
		errs = append(errs, fmt.Errorf("module %s: live_minutes must be positive", m.ID))
	}
	if m.OnlineMinutes < 0 {
		errs = append(errs, fmt.Errorf("module %s: online_minutes must not be negative", m.ID))
	}
	if m.AffinityGroup != "" && !groups[m.AffinityGroup] {
		errs = append(errs, fmt.Errorf("module %s: affinity group %q not in affinity_groups", m.ID, m.AffinityGroup))
	}

	if m.Locked && m.Rule != nil {
		errs = append(errs, fmt.Errorf("module %s: locked modules are always live and cannot carry a rule", m.ID))
	}
	if m.Rule != nil {
		if m.Rule.Question == "" {
			errs = append(errs, fmt.Errorf("module %s: rule.question is required", m.ID))
		} else if len(questions) > 0 && !questions[m.Rule.Question] {
			errs = append(errs, fmt.Errorf("module %s: rule references unknown question %q", m.ID, m.Rule.Question))
		}
		set := 0
		if m.Rule.Equals != nil {
			set++
		}
		if len(m.Rule.In) > 0 {
			set++
		}
		if m.Rule.Exists {
			set++
		}
		if set > 1 {
			errs = append(errs, fmt.Errorf("module %s: rule must use exactly one of equals, in, exists", m.ID))
		}
	}

	return errs
}
