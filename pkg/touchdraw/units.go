package touchdraw

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownUnit is returned when a unit name is not in the unit table
var ErrUnknownUnit = errors.New("unknown unit")

// UnitTable maps unit names to the number of meters per unit. Map units are
// assumed to be meters.
type UnitTable map[string]float64

// DefaultUnits is used when no unit table is configured
var DefaultUnits = UnitTable{
	"m":  1,
	"cm": 0.01,
	"ft": 0.3048,
	"in": 0.0254,
	"yd": 0.9144,
}

// DefaultUnit is the unit selected when none is configured
const DefaultUnit = "m"

// Factor returns the meters per unit of name
func (u UnitTable) Factor(name string) (float64, error) {
	factor, ok := u[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, name)
	}
	return factor, nil
}

// Names returns the unit names sorted by factor, smallest first
func (u UnitTable) Names() []string {
	names := make([]string, 0, len(u))
	for name := range u {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if u[names[i]] == u[names[j]] {
			return names[i] < names[j]
		}
		return u[names[i]] < u[names[j]]
	})
	return names
}

// Validate checks that every factor is a positive number
func (u UnitTable) Validate() error {
	if len(u) == 0 {
		return errors.New("unit table is empty")
	}
	for name, factor := range u {
		if !(factor > 0) {
			return fmt.Errorf("unit %q: meters per unit must be positive, got %v", name, factor)
		}
	}
	return nil
}
