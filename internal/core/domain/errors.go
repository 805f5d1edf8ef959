package domain

import (
	"errors"
	"fmt"
	"strings"
)

// InvalidCityMessage accompanies the empty result of an unknown location.
const InvalidCityMessage = "Invalid city"

var (
	// ErrValidation marks a request rejected before any external call.
	ErrValidation = errors.New("validation failed")
	// ErrPersist marks a failed append to the row store.
	ErrPersist = errors.New("persist rows")
	// ErrMalformedResponse marks an upstream payload missing required fields.
	ErrMalformedResponse = errors.New("malformed upstream response")
	// ErrJobNotFound is returned when no search job has the given ID.
	ErrJobNotFound = errors.New("search job not found")
)

// ValidationError describes which part of a request was rejected.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Is lets errors.Is(err, ErrValidation) match any ValidationError.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// PartialPersistError reports a batch that reached some row stores and not
// others. Stored and Failed hold store names.
type PartialPersistError struct {
	Stored []string
	Failed []string
	Err    error
}

func (e *PartialPersistError) Error() string {
	return fmt.Sprintf("stored in %s, failed in %s: %v",
		strings.Join(e.Stored, ", "), strings.Join(e.Failed, ", "), e.Err)
}

func (e *PartialPersistError) Unwrap() error { return e.Err }
