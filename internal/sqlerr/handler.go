package sqlerr

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/deppfellow/drinks/internal/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var checkFieldPattern = regexp.MustCompile(`^[a-z0-9]+_([a-z0-9_]+?)_(?:present|check)$`)

// ConvertPgError normalizes a *pgconn.PgError.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// generateErrorCode builds codes such as DRINK_INVALID from the table name.
func generateErrorCode(tableName string, errType Code) string {
	if tableName == "" {
		tableName = "RECORD"
	}

	domain := strings.ToUpper(tableName)
	if strings.HasSuffix(domain, "S") && len(domain) > 1 {
		domain = domain[:len(domain)-1]
	}

	action := "ERROR"
	switch errType {
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

func formatUserFriendlyMessage(sqlErr *Error) string {
	switch sqlErr.Code {
	case NotNullViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)
	case CheckViolation:
		if fieldName := humanizeText(checkViolationField(sqlErr)); fieldName != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", fieldName)
		}
		return "One or more values do not meet required conditions"
	default:
		return "An error occurred while processing your request"
	}
}

func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// checkViolationField returns the column a CHECK constraint guards. The
// server leaves ColumnName empty for table constraints, so constraint names
// such as drinks_name_present are parsed instead.
func checkViolationField(sqlErr *Error) string {
	if sqlErr.ColumnName != "" {
		return strings.ToLower(sqlErr.ColumnName)
	}
	if matches := checkFieldPattern.FindStringSubmatch(sqlErr.ConstraintName); len(matches) > 1 {
		return matches[1]
	}
	return ""
}

// HandleError converts a database error into an *errs.HTTPError.
//
// HTTP errors pass through untouched. Constraint violations become 400s
// with a generated code; anything else is a 500 that never exposes driver
// text. Missing rows never get here: repositories report them as
// repository.ErrNotFound.
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var pgerr *pgconn.PgError
	if !errors.As(err, &pgerr) {
		return errs.NewInternalServerError()
	}

	sqlErr := ConvertPgError(pgerr)
	errorCode := generateErrorCode(sqlErr.TableName, sqlErr.Code)
	userMessage := formatUserFriendlyMessage(sqlErr)

	switch sqlErr.Code {
	case NotNullViolation:
		fieldErrors := []errs.FieldError{{
			Field: strings.ToLower(sqlErr.ColumnName),
			Error: "is required",
		}}
		return errs.NewBadRequestError(userMessage, true, &errorCode, fieldErrors, nil)

	case CheckViolation:
		var fieldErrors []errs.FieldError
		if field := checkViolationField(sqlErr); field != "" {
			fieldErrors = []errs.FieldError{{Field: field, Error: "can't be blank"}}
		}
		return errs.NewBadRequestError(userMessage, true, &errorCode, fieldErrors, nil)

	default:
		return errs.NewInternalServerError()
	}
}
