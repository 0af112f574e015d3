package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "NOT_FOUND", MakeUpperCaseWithUnderscores("Not Found"))
	assert.Equal(t, "UNPROCESSABLE_ENTITY", MakeUpperCaseWithUnderscores(http.StatusText(http.StatusUnprocessableEntity)))
}

func TestHTTPError_IsMatchesWrappedType(t *testing.T) {
	t.Parallel()

	code := CodeDrinkNotFound
	err := fmt.Errorf("loading drink: %w", NewNotFoundError("Drink not found", true, &code))

	assert.True(t, errors.Is(err, &HTTPError{}))

	var httpErr *HTTPError
	assert.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, CodeDrinkNotFound, httpErr.Code)
}

func TestHTTPError_WithMessageCopies(t *testing.T) {
	t.Parallel()

	base := NewBadRequestError("bad", false, nil, []FieldError{{Field: "name", Error: "is required"}}, nil)
	changed := base.WithMessage("worse")

	assert.Equal(t, "bad", base.Message)
	assert.Equal(t, "worse", changed.Error())
	assert.Equal(t, base.Errors, changed.Errors)
	assert.Equal(t, "BAD_REQUEST", changed.Code)
}

func TestConstructors_Statuses(t *testing.T) {
	t.Parallel()

	assert.Equal(t, http.StatusUnauthorized, NewUnauthorizedError("x", false).Status)
	assert.Equal(t, http.StatusForbidden, NewForbiddenError("x", false).Status)
	assert.Equal(t, http.StatusTooManyRequests, NewTooManyRequestsError("x").Status)
	assert.Equal(t, http.StatusUnprocessableEntity, NewUnprocessableEntityError("x", nil, nil).Status)

	internal := NewInternalServerError()
	assert.Equal(t, http.StatusInternalServerError, internal.Status)
	assert.Equal(t, "Internal Server Error", internal.Message)
	assert.False(t, internal.Override)

	v := ValidationError(errors.New("letter too long"))
	assert.Equal(t, http.StatusBadRequest, v.Status)
	assert.Equal(t, "Validation failed: letter too long", v.Message)
}
