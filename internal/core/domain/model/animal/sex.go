package animal

import (
	"fmt"
	"strings"

	"livestock/internal/pkg/errs"
)

type Sex int

const (
	UnknownSex Sex = iota
	Male
	Female
)

func ParseSex(s string) (Sex, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "M", "MALE":
		return Male, nil
	case "F", "FEMALE":
		return Female, nil
	case "", "UNKNOWN":
		return UnknownSex, nil
	}
	return UnknownSex, errs.NewValueIsInvalidErrorWithCause("sex", fmt.Errorf("%q is not a valid sex", s))
}

func (s Sex) String() string {
	switch s {
	case Male:
		return "MALE"
	case Female:
		return "FEMALE"
	case UnknownSex:
	}
	return "UNKNOWN"
}

func (s Sex) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
