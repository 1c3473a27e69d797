// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the otioframe project

// Package registry defines the single error type shared across every
// package in this module, along with the kinds of failure it can carry.
package registry

import "fmt"

// ErrorKind enumerates the failure modes surfaced by the core.
type ErrorKind int

const (
	// KindOk is the zero value; CoreError is never constructed with it.
	KindOk ErrorKind = iota
	KindNotImplemented
	KindIllegalIndex
	KindKeyNotFound
	KindInternalError
	KindUnresolvedObjectReference
	KindDuplicateObjectReference
	KindMalformedSchema
	KindJSONParseError
	KindFileOpenFailed
	KindFileWriteFailed
	KindSchemaVersionUnsupported
	KindNotAChildOf
	KindNotAChild
	KindNotDescendedFrom
	KindInvalidRate
	KindInvalidTimecodeRate
	KindNonDropframeRate
	KindInvalidTimecodeString
	KindTimecodeRateMismatch
	KindInvalidTimeString
	KindNegativeValue
	KindObjectCycle
	KindTypeMismatch
	KindNonStandardFps
	KindSchemaConflict
	KindNoDowngradePath
	KindIteratorInvalidated
)

var kindNames = map[ErrorKind]string{
	KindOk:                        "Ok",
	KindNotImplemented:            "NotImplemented",
	KindIllegalIndex:              "IllegalIndex",
	KindKeyNotFound:               "KeyNotFound",
	KindInternalError:             "InternalError",
	KindUnresolvedObjectReference: "UnresolvedObjectReference",
	KindDuplicateObjectReference:  "DuplicateObjectReference",
	KindMalformedSchema:           "MalformedSchema",
	KindJSONParseError:            "JsonParseError",
	KindFileOpenFailed:            "FileOpenFailed",
	KindFileWriteFailed:           "FileWriteFailed",
	KindSchemaVersionUnsupported:  "SchemaVersionUnsupported",
	KindNotAChildOf:               "NotAChildOf",
	KindNotAChild:                 "NotAChild",
	KindNotDescendedFrom:          "NotDescendedFrom",
	KindInvalidRate:               "InvalidRate",
	KindInvalidTimecodeRate:       "InvalidTimecodeRate",
	KindNonDropframeRate:          "NonDropframeRate",
	KindInvalidTimecodeString:     "InvalidTimecodeString",
	KindTimecodeRateMismatch:      "TimecodeRateMismatch",
	KindInvalidTimeString:         "InvalidTimeString",
	KindNegativeValue:             "NegativeValue",
	KindObjectCycle:               "ObjectCycle",
	KindTypeMismatch:              "TypeMismatch",
	KindNonStandardFps:            "NonStandardFps",
	KindSchemaConflict:            "SchemaConflict",
	KindNoDowngradePath:           "NoDowngradePath",
	KindIteratorInvalidated:       "IteratorInvalidated",
}

// String returns the kind's wire/diagnostic name.
func (k ErrorKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown"
}

// CoreError is the single error type returned by every fallible operation
// in this module. It carries a Kind, a human-readable Detail, and an
// optional pointer to the offending entity for richer diagnostics.
type CoreError struct {
	Kind    ErrorKind
	Detail  string
	Subject any
}

// NewError constructs a CoreError with no subject.
func NewError(kind ErrorKind, detail string) *CoreError {
	return &CoreError{Kind: kind, Detail: detail}
}

// NewErrorWithSubject constructs a CoreError naming the offending entity.
func NewErrorWithSubject(kind ErrorKind, detail string, subject any) *CoreError {
	return &CoreError{Kind: kind, Detail: detail, Subject: subject}
}

func (e *CoreError) Error() string {
	if e.Detail == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind.String(), e.Detail)
}

// Is supports errors.Is comparisons against a bare ErrorKind sentinel via
// errors.Is(err, registry.Sentinel(KindX)).
func (e *CoreError) Is(target error) bool {
	other, ok := target.(*CoreError)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

// Sentinel returns a CoreError usable as an errors.Is comparison target
// for a given kind, ignoring Detail/Subject.
func Sentinel(kind ErrorKind) error {
	return &CoreError{Kind: kind}
}
