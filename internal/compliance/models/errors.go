package models

import (
	"errors"
	"fmt"
)

// ErrorKind is the normalized failure taxonomy for the compliance core.
type ErrorKind string

const (
	// KindSanctionsCheck covers malformed screening input and unknown list updates.
	KindSanctionsCheck ErrorKind = "sanctions_check"

	// KindComplianceReport covers invalid report periods and aggregation failures.
	KindComplianceReport ErrorKind = "compliance_report"

	// KindDocumentVerification covers missing mandatory document fields.
	KindDocumentVerification ErrorKind = "document_verification"

	// KindConfiguration covers inconsistent engine configuration.
	KindConfiguration ErrorKind = "configuration"
)

// Error wraps compliance failures with a kind and the operation that failed.
type Error struct {
	Kind       ErrorKind
	Op         string
	Message    string
	Underlying error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s [%s]: %s: %v", e.Op, e.Kind, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s [%s]: %s", e.Op, e.Kind, e.Message)
}

// Unwrap supports error unwrapping
func (e *Error) Unwrap() error {
	return e.Underlying
}

func NewSanctionsCheckError(op, message string, underlying error) *Error {
	return &Error{Kind: KindSanctionsCheck, Op: op, Message: message, Underlying: underlying}
}

func NewComplianceReportError(op, message string, underlying error) *Error {
	return &Error{Kind: KindComplianceReport, Op: op, Message: message, Underlying: underlying}
}

func NewDocumentVerificationError(op, message string, underlying error) *Error {
	return &Error{Kind: KindDocumentVerification, Op: op, Message: message, Underlying: underlying}
}

func NewConfigurationError(op, message string, underlying error) *Error {
	return &Error{Kind: KindConfiguration, Op: op, Message: message, Underlying: underlying}
}

// IsKind checks whether err is a compliance Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind == kind
	}
	return false
}
