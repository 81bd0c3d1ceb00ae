package kernel

import (
	"fmt"
	"strings"

	"livestock/internal/pkg/errs"
)

// Species is the closed set of animal species handled by a site.
// Holding capacity is configured per species; none shares another's quota.
type Species int

const (
	UnknownSpecies Species = iota
	Bovine
	Ovine
	Caprine
	OtherSpecies
)

var speciesNames = map[Species]string{
	Bovine:       "BOVINE",
	Ovine:        "OVINE",
	Caprine:      "CAPRINE",
	OtherSpecies: "OTHER",
}

// AllSpecies lists the valid species in declaration order.
func AllSpecies() []Species {
	return []Species{Bovine, Ovine, Caprine, OtherSpecies}
}

// ParseSpecies accepts the persisted names, case-insensitively.
func ParseSpecies(s string) (Species, error) {
	wanted := strings.ToUpper(strings.TrimSpace(s))
	for species, name := range speciesNames {
		if name == wanted {
			return species, nil
		}
	}
	return UnknownSpecies, errs.NewValueIsInvalidErrorWithCause("species", fmt.Errorf("%q is not a known species", s))
}

func (s Species) String() string {
	if name, ok := speciesNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

func (s Species) Validate() error {
	if _, ok := speciesNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("species", fmt.Errorf("%d is not a valid species", s))
	}
	return nil
}

func (s Species) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Species) UnmarshalText(data []byte) error {
	parsed, err := ParseSpecies(string(data))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
