package console

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPosition is returned when a buffer position has no fragment.
	ErrInvalidPosition = errors.New("console: invalid buffer position")

	// ErrInvalidSpliceKind is returned for an unknown splice operation.
	ErrInvalidSpliceKind = errors.New("console: invalid splice kind")

	// ErrPrecondition is the parent of all errors caused by calling an
	// operation on an object that is not in a usable state.
	ErrPrecondition = errors.New("console: precondition violation")

	// ErrSectionNotPlaced is returned by Section methods called before
	// Section.PlaceHere.
	ErrSectionNotPlaced = fmt.Errorf("%w: section has not been placed", ErrPrecondition)

	// ErrNotInteractive is returned when raw key input is requested from a
	// device that is not a terminal.
	ErrNotInteractive = fmt.Errorf("%w: input device is not interactive", ErrPrecondition)

	// ErrInvalidAutocompleteSource is returned when configuring an
	// autocomplete source that has neither candidates nor a resolver.
	ErrInvalidAutocompleteSource = errors.New("console: invalid autocomplete source")

	// ErrUnknownStyle is returned when selecting an unregistered question style.
	ErrUnknownStyle = errors.New("console: unknown question style")
)
