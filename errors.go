package ason

import "github.com/RembrandtK/ason/reporter"

// Error is ASON's public error type: a closed three-way tagged variant
// (spec.md §7). Every error returned from Parse, ParseString, Unmarshal and
// Marshal is an *Error.
type Error = reporter.Error

// Kind tags which of the three shapes an Error holds.
type Kind = reporter.Kind

const (
	KindMessage                 = reporter.KindMessage
	KindMessageWithLocation     = reporter.KindMessageWithLocation
	KindUnexpectedEndOfDocument = reporter.KindUnexpectedEndOfDocument
)
