package slic

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter is wrapped by every *ParamError.
	ErrInvalidParameter = errors.New("slic: invalid parameter")

	// ErrDimensionMismatch is returned when two grids that must share a size do not.
	ErrDimensionMismatch = errors.New("slic: dimension mismatch")
)

// ParamError reports the offending field and value of a rejected configuration.
type ParamError struct {
	Name  string
	Value any
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("slic: invalid parameter %s=%v", e.Name, e.Value)
}

func (e *ParamError) Unwrap() error { return ErrInvalidParameter }
