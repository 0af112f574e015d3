package sqlerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/drinks/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	return httpErr
}

func TestMapCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, NotNullViolation, MapCode("23502"))
	assert.Equal(t, CheckViolation, MapCode("23514"))
	assert.Equal(t, Other, MapCode("42P01"))
	assert.Equal(t, Other, MapCode("23505"))
}

func TestMapSeverity(t *testing.T) {
	t.Parallel()

	assert.Equal(t, SeverityFatal, MapSeverity("FATAL"))
	assert.Equal(t, SeverityError, MapSeverity("ERROR"))
	assert.Equal(t, SeverityError, MapSeverity("unknown"))
}

func TestConvertPgError_UnwrapsToDriverError(t *testing.T) {
	t.Parallel()

	converted := ConvertPgError(&pgconn.PgError{Code: "23514", Severity: "ERROR", ConstraintName: "drinks_name_present"})
	assert.Equal(t, CheckViolation, converted.Code)
	assert.Equal(t, SeverityError, converted.Severity)

	var pgErr *pgconn.PgError
	assert.True(t, errors.As(fmt.Errorf("insert: %w", converted), &pgErr))
}

func TestHandleError_CheckViolationOnDrinks(t *testing.T) {
	t.Parallel()

	err := HandleError(&pgconn.PgError{
		Code:           "23514",
		TableName:      "drinks",
		ConstraintName: "drinks_description_present",
		Message:        "new row violates check constraint",
	})

	httpErr := asHTTPError(t, err)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "DRINK_INVALID", httpErr.Code)
	assert.Equal(t, "The Description value does not meet required conditions", httpErr.Message)
	assert.Equal(t, []errs.FieldError{{Field: "description", Error: "can't be blank"}}, httpErr.Errors)
}

func TestHandleError_NotNullViolation(t *testing.T) {
	t.Parallel()

	err := HandleError(&pgconn.PgError{Code: "23502", TableName: "drinks", ColumnName: "name"})

	httpErr := asHTTPError(t, err)
	assert.Equal(t, "DRINK_REQUIRED", httpErr.Code)
	assert.Equal(t, []errs.FieldError{{Field: "name", Error: "is required"}}, httpErr.Errors)
}

func TestHandleError_PassThroughAndFallback(t *testing.T) {
	t.Parallel()

	original := errs.NewForbiddenError("nope", true)
	assert.Same(t, original, HandleError(original))

	internal := asHTTPError(t, HandleError(errors.New("connection reset")))
	assert.Equal(t, http.StatusInternalServerError, internal.Status)
	assert.NotContains(t, internal.Message, "connection reset")

	other := asHTTPError(t, HandleError(&pgconn.PgError{Code: "42P01"}))
	assert.Equal(t, http.StatusInternalServerError, other.Status)

	noRows := asHTTPError(t, HandleError(pgx.ErrNoRows))
	assert.Equal(t, http.StatusInternalServerError, noRows.Status)
}
