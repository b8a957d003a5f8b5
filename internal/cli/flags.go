package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/pflag"
)

// enumValue is a flag value restricted to a fixed set of strings. Bad values
// are rejected at parse time, before any command logic runs.
type enumValue struct {
	target  *string
	allowed map[string]bool
}

var _ pflag.Value = (*enumValue)(nil)

func newEnumValue(target *string, def string, allowed map[string]bool) *enumValue {
	*target = def
	return &enumValue{target: target, allowed: allowed}
}

func (e *enumValue) String() string { return *e.target }

func (e *enumValue) Set(v string) error {
	if !e.allowed[v] {
		opts := make([]string, 0, len(e.allowed))
		for o := range e.allowed {
			opts = append(opts, o)
		}
		sort.Strings(opts)
		return fmt.Errorf("must be one of %s", strings.Join(opts, ", "))
	}
	*e.target = v
	return nil
}

func (e *enumValue) Type() string { return "string" }
