package catalog

import (
	"fmt"
	"os"

	"github.com/beaconcs/beacon/internal/domain"
	"github.com/beaconcs/beacon/internal/planning"
	"gopkg.in/yaml.v3"
)

// Catalog is the validated, compiled configuration the engine consumes.
type Catalog struct {
	Modules       []domain.Module
	GroupOrder    []string
	Cadence       planning.CadenceTable
	MaxSessionMin int
	Questions     []QuestionSpec

	rules planning.RuleSet
}

// Rules returns the compiled classification rule set.
func (c *Catalog) Rules() planning.RuleSet {
	return c.rules
}

// Module looks up a catalog module by ID.
func (c *Catalog) Module(id string) (domain.Module, bool) {
	for _, m := range c.Modules {
		if m.ID == id {
			return m, true
		}
	}
	return domain.Module{}, false
}

// Question looks up a questionnaire field by ID.
func (c *Catalog) Question(id string) (QuestionSpec, bool) {
	for _, q := range c.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return QuestionSpec{}, false
}

// Load reads, validates and compiles a catalog YAML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return Parse(data)
}

// Parse validates and compiles a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if err := Validate(&file); err != nil {
		return nil, err
	}
	return compile(&file), nil
}

func compile(file *File) *Catalog {
	cat := &Catalog{
		GroupOrder:    file.AffinityGroups,
		MaxSessionMin: file.MaxSessionMinutes,
		Questions:     file.Questions,
		Cadence:       make(planning.CadenceTable, len(file.Cadence)),
		rules:         make(planning.RuleSet),
	}
	for urgency, perWeek := range file.Cadence {
		cat.Cadence[domain.Urgency(urgency)] = perWeek
	}
	for _, spec := range file.Modules {
		cat.Modules = append(cat.Modules, domain.Module{
			ID:            spec.ID,
			Name:          spec.Name,
			LiveMinutes:   spec.LiveMinutes,
			OnlineMinutes: spec.OnlineMinutes,
			Locked:        spec.Locked,
			Prerequisites: spec.Prerequisites,
			AffinityGroup: spec.AffinityGroup,
			FirstValue:    spec.FirstValue,
		})
		if spec.Rule != nil {
			cat.rules[spec.ID] = compileRule(*spec.Rule)
		}
	}
	return cat
}

// compileRule turns a declarative rule into a pure predicate over answers.
func compileRule(rule RuleSpec) planning.Predicate {
	switch {
	case rule.Exists:
		return func(a domain.Answers) bool {
			v, ok := a[rule.Question]
			return ok && v != nil && v != false && v != ""
		}
	case len(rule.In) > 0:
		allowed := make([]any, len(rule.In))
		copy(allowed, rule.In)
		return func(a domain.Answers) bool {
			got, ok := a[rule.Question]
			if !ok {
				return false
			}
			for _, want := range allowed {
				if got == want {
					return true
				}
			}
			return false
		}
	default:
		want := rule.Equals
		return func(a domain.Answers) bool {
			got, ok := a[rule.Question]
			return ok && got == want
		}
	}
}
