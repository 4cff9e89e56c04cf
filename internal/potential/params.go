package potential

import (
	"fmt"
	"sort"
	"strings"

	"github.com/san-kum/pairforce/internal/md"
)

// FieldSpec describes one coefficient a family reads from configuration.
type FieldSpec struct {
	Name     string
	Required bool
	Default  float64
}

func (f FieldSpec) String() string {
	if f.Required {
		return f.Name
	}
	return fmt.Sprintf("%s=%g", f.Name, f.Default)
}

// coeffReader pulls named coefficients out of a config map, tracking which
// keys were consumed and which required ones are absent so a single error
// reports every problem with one assignment.
type coeffReader struct {
	family  string
	m       map[string]float64
	used    map[string]bool
	missing []string
}

func newCoeffReader(family string, m map[string]float64) *coeffReader {
	return &coeffReader{family: family, m: m, used: make(map[string]bool, len(m))}
}

func (c *coeffReader) required(name string) float64 {
	v, ok := c.m[name]
	if !ok {
		c.missing = append(c.missing, name)
		return 0
	}
	c.used[name] = true
	return v
}

func (c *coeffReader) optional(name string, def float64) float64 {
	v, ok := c.m[name]
	if !ok {
		return def
	}
	c.used[name] = true
	return v
}

func (c *coeffReader) finish() error {
	if len(c.missing) > 0 {
		return fmt.Errorf("%w: %s coeffs need %s", md.ErrMissingParams,
			c.family, strings.Join(c.missing, ", "))
	}
	var extra []string
	for k := range c.m {
		if !c.used[k] {
			extra = append(extra, k)
		}
	}
	if len(extra) > 0 {
		sort.Strings(extra)
		return fmt.Errorf("potential %s: unknown coeff(s) %s", c.family, strings.Join(extra, ", "))
	}
	return nil
}
