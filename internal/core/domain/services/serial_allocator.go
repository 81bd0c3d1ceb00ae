package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"livestock/internal/pkg/errs"
)

// SerialKind selects the prefix of an allocated serial.
type SerialKind int

const (
	UnknownSerial SerialKind = iota
	HoldingSerial
	TransferSerial
	ReceptionSerial
	OrderSerial
	PostSlaughterTag
)

var serialPrefixes = map[SerialKind]string{
	HoldingSerial:    "STAB",
	TransferSerial:   "TRF",
	ReceptionSerial:  "REC",
	OrderSerial:      "BC",
	PostSlaughterTag: "PA",
}

// Prefix returns the serial prefix, or an empty string for an unknown kind.
func (k SerialKind) Prefix() string {
	return serialPrefixes[k]
}

const defaultMaxSequence = 9999

var ErrSerialSpaceExhausted = errors.New("no free serial left for this second")

// SerialExistsFunc reports whether serial is already taken by a record of the same kind.
type SerialExistsFunc func(ctx context.Context, serial string) (bool, error)

// SerialAllocator generates identifiers of the form PREFIX-YYYYMMDD-HHMMSS-NNN,
// where NNN is the smallest integer from 1 that makes the serial unique.
// Run it inside the transaction that inserts the record; the store's unique
// index settles any race between concurrent allocators.
type SerialAllocator struct {
	maxSequence int
}

func NewSerialAllocator() SerialAllocator {
	return SerialAllocator{maxSequence: defaultMaxSequence}
}

// Allocate returns the first free serial of kind for the second containing at.
func (a SerialAllocator) Allocate(ctx context.Context, kind SerialKind, at time.Time, exists SerialExistsFunc) (string, error) {
	prefix := kind.Prefix()
	if prefix == "" {
		return "", errs.NewValueIsInvalidErrorWithCause("serial kind", fmt.Errorf("%d has no prefix", kind))
	}
	if exists == nil {
		return "", errs.NewValueIsRequiredError("exists")
	}

	maxSequence := a.maxSequence
	if maxSequence <= 0 {
		maxSequence = defaultMaxSequence
	}

	stamp := at.UTC().Format("20060102-150405")
	for n := 1; n <= maxSequence; n++ {
		serial := fmt.Sprintf("%s-%s-%03d", prefix, stamp, n)
		taken, err := exists(ctx, serial)
		if err != nil {
			return "", err
		}
		if !taken {
			return serial, nil
		}
	}
	return "", fmt.Errorf("%w: %s-%s", ErrSerialSpaceExhausted, prefix, stamp)
}
