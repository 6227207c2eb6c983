package data

import "errors"

var (
	ErrCapacityOverflow = errors.New("attribute statistics capacity exceeded")
	ErrEmpty            = errors.New("dataset has no records")
	ErrAttributeCount   = errors.New("record attribute count mismatch")
	ErrInvalidLabel     = errors.New("label must be +1 or -1")
	ErrInvalidRatio     = errors.New("feature ratio must be positive")
	ErrIndexRange       = errors.New("record index out of range")
)

func IsCapacityOverflow(err error) bool {
	return errors.Is(err, ErrCapacityOverflow)
}

func IsEmpty(err error) bool {
	return errors.Is(err, ErrEmpty)
}

func IsInvalidLabel(err error) bool {
	return errors.Is(err, ErrInvalidLabel)
}
