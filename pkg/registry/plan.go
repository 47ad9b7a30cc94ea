package registry

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Plan is a list of test cases to preload into a registry.
type Plan struct {
	Tests []PlanEntry `yaml:"tests"`
}

// PlanEntry is one test case in a Plan.
type PlanEntry struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	Expected    string `yaml:"expected,omitempty"`
}

// LoadPlan decodes a YAML plan. Unknown fields are rejected; an empty
// document yields an empty plan.
func LoadPlan(r io.Reader) (*Plan, error) {
	var p Plan
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return &p, nil
		}
		return nil, fmt.Errorf("decoding plan: %w", err)
	}
	return &p, nil
}

// LoadPlanFile reads and decodes the plan at path.
func LoadPlanFile(path string) (*Plan, error) {
	// #nosec G304 -- path is supplied by the user on the command line
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening plan: %w", err)
	}
	defer f.Close()
	p, err := LoadPlan(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Validate checks that every entry has a title.
func (p *Plan) Validate() error {
	for i, e := range p.Tests {
		if strings.TrimSpace(e.Title) == "" {
			return fmt.Errorf("plan entry %d: %w", i+1, ErrEmptyTitle)
		}
	}
	return nil
}

// Apply validates the plan and adds its entries so that the first entry
// ends up at the top of the registry. Nothing is added if validation fails.
func (p *Plan) Apply(r *Registry) (int, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	added := 0
	for i := len(p.Tests) - 1; i >= 0; i-- {
		e := p.Tests[i]
		if _, err := r.Add(e.Title, e.Description, e.Expected); err != nil {
			return added, fmt.Errorf("plan entry %d: %w", i+1, err)
		}
		added++
	}
	return added, nil
}
