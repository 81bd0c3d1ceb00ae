package order

import (
	"fmt"
	"math"
	"strings"

	"livestock/internal/pkg/errs"
)

// QuantityKind disambiguates Order.quantity: a head count or a mass in kilograms.
type QuantityKind int

const (
	UnknownQuantityKind QuantityKind = iota
	Head
	Kilograms
)

// ProductForm is what the client receives: live animals or carcasses.
type ProductForm int

const (
	UnknownProductForm ProductForm = iota
	Live
	Carcass
)

func ParseQuantityKind(s string) (QuantityKind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "HEAD":
		return Head, nil
	case "KG":
		return Kilograms, nil
	}
	return UnknownQuantityKind, errs.NewValueIsInvalidErrorWithCause("quantity_kind", fmt.Errorf("%q is not HEAD or KG", s))
}

func (k QuantityKind) String() string {
	switch k {
	case Head:
		return "HEAD"
	case Kilograms:
		return "KG"
	case UnknownQuantityKind:
	}
	return "UNKNOWN"
}

func (k QuantityKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func ParseProductForm(s string) (ProductForm, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LIVE":
		return Live, nil
	case "CARCASS":
		return Carcass, nil
	}
	return UnknownProductForm, errs.NewValueIsInvalidErrorWithCause("product_form", fmt.Errorf("%q is not LIVE or CARCASS", s))
}

func (f ProductForm) String() string {
	switch f {
	case Live:
		return "LIVE"
	case Carcass:
		return "CARCASS"
	case UnknownProductForm:
	}
	return "UNKNOWN"
}

func (f ProductForm) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

// Quantity is a positive amount. Head counts are whole numbers.
type Quantity struct {
	amount float64
	kind   QuantityKind
}

func NewQuantity(amount float64, kind QuantityKind) (Quantity, error) {
	switch kind {
	case Head:
		if amount != math.Trunc(amount) {
			return Quantity{}, errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%v is not a whole head count", amount))
		}
	case Kilograms:
	case UnknownQuantityKind:
		return Quantity{}, errs.NewValueIsRequiredError("quantity_kind")
	default:
		return Quantity{}, errs.NewValueIsInvalidError("quantity_kind")
	}
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Quantity{}, errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%v is not greater than 0", amount))
	}
	return Quantity{amount: amount, kind: kind}, nil
}

func (q Quantity) Amount() float64    { return q.amount }
func (q Quantity) Kind() QuantityKind { return q.kind }
