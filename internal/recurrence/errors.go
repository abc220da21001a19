package recurrence

import "errors"

var (
	// ErrInvalidArgument reports an out-of-range month, weekday or ordinal
	// passed to one of the calendar functions.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidRule reports a structurally incomplete or contradictory
	// recurrence rule. Expansion of an invalid rule yields zero occurrences
	// alongside this error, never a silently truncated list.
	ErrInvalidRule = errors.New("invalid recurrence rule")

	// ErrTemplateCompletionForbidden reports an attempt to mark a recurring
	// template as done. Only concrete occurrences can be completed.
	ErrTemplateCompletionForbidden = errors.New("recurring template cannot be completed")

	// ErrAmbiguousTemplateMatch reports that more than one template is an
	// equally eligible parent for an occurrence.
	ErrAmbiguousTemplateMatch = errors.New("ambiguous template match")
)
