// Package sqlerr translates PostgreSQL driver errors into client errors.
//
// SQLSTATE codes are mapped into a small set of categories so callers can
// switch on them, and HandleError turns a driver error into an
// *errs.HTTPError that is safe to return from a handler.
package sqlerr

import "fmt"

// Code is a coarse category for a database error.
type Code string

const (
	Other            Code = "other"
	NotNullViolation Code = "not_null_violation"
	CheckViolation   Code = "check_violation"
)

// MapCode maps a SQLSTATE onto a Code. Only the constraints the drinks
// schema declares get their own category.
func MapCode(sqlState string) Code {
	switch sqlState {
	case "23502":
		return NotNullViolation
	case "23514":
		return CheckViolation
	default:
		return Other
	}
}

// Severity mirrors the severity levels PostgreSQL reports.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityNotice  Severity = "NOTICE"
	SeverityDebug   Severity = "DEBUG"
	SeverityInfo    Severity = "INFO"
	SeverityLog     Severity = "LOG"
)

// MapSeverity maps the server's severity string onto a Severity, defaulting to ERROR.
func MapSeverity(severity string) Severity {
	switch Severity(severity) {
	case SeverityFatal, SeverityPanic, SeverityWarning, SeverityNotice,
		SeverityDebug, SeverityInfo, SeverityLog:
		return Severity(severity)
	default:
		return SeverityError
	}
}

// Error is a normalized database error.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string

	driverErr error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Severity, e.DatabaseCode, e.Message)
}

func (e *Error) Unwrap() error {
	return e.driverErr
}
