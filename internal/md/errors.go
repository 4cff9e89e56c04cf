package md

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors for potential configuration and attachment.
var (
	// ErrMissingParams indicates an active type pair resolves to no value.
	ErrMissingParams = errors.New("md: type pair has no explicit value and no default")

	// ErrUnsupportedMode indicates a shaping mode a potential cannot honor.
	ErrUnsupportedMode = errors.New("md: shaping mode not supported by this potential")

	// ErrMalformedTable indicates an invalid tabulated-potential file.
	ErrMalformedTable = errors.New("md: malformed table file")

	// ErrCrossContext indicates a neighbor source bound to a different system.
	ErrCrossContext = errors.New("md: neighbor source belongs to a different system")

	// ErrAttached indicates mutation or re-attachment of an attached potential.
	ErrAttached = errors.New("md: potential is attached")

	// ErrNotAttached indicates evaluation of a potential before attachment.
	ErrNotAttached = errors.New("md: potential is not attached")

	// ErrUnknownType indicates a type name outside the system's type set.
	ErrUnknownType = errors.New("md: unknown particle type")
)

// MissingParamsError aggregates every unresolved type pair found during the
// pre-attach verification pass, so one failure reports all gaps at once.
type MissingParamsError struct {
	Table string   // which per-pair table is incomplete
	Pairs []string // one entry per unresolved pair, "A-B" or "A-B: field"
}

func (e *MissingParamsError) Error() string {
	return fmt.Sprintf("md: %s unset for %d type pair(s): %s",
		e.Table, len(e.Pairs), strings.Join(e.Pairs, ", "))
}

func (e *MissingParamsError) Unwrap() error { return ErrMissingParams }

// TableFormatError reports a malformed table file, naming the offending
// line when one is identifiable (1-based, 0 means the file as a whole).
type TableFormatError struct {
	Path   string
	Line   int
	Reason string
}

func (e *TableFormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("md: table file %s line %d: %s", e.Path, e.Line, e.Reason)
	}
	return fmt.Sprintf("md: table file %s: %s", e.Path, e.Reason)
}

func (e *TableFormatError) Unwrap() error { return ErrMalformedTable }
