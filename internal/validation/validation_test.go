package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/deppfellow/drinks/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	ID    int64  `param:"id"`
	Label string `json:"label" query:"label"`
	Title string `json:"-"`
}

func (r *sampleRequest) Validate() error {
	if r.Label == "bad" {
		return CustomValidationErrors{{Field: "label", Message: "is not allowed"}}
	}
	return nil
}

func (r *sampleRequest) BindForm(form url.Values) error {
	if v, ok := form["sample[title]"]; ok && len(v) > 0 {
		r.Title = v[0]
	}
	return nil
}

type taggedModel struct {
	Name        string `json:"name" validate:"present,max=5"`
	Description string `json:"description" validate:"present"`
}

func newContext(method, target, contentType, body string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	return e.NewContext(req, httptest.NewRecorder())
}

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	return httpErr
}

func TestBindAndValidate_BindsPathQueryAndBracketedForm(t *testing.T) {
	t.Parallel()

	c := newContext(http.MethodPost, "/samples/7", echo.MIMEApplicationForm, "sample%5Btitle%5D=Hello")
	c.SetParamNames("id")
	c.SetParamValues("7")

	req := &sampleRequest{}
	require.NoError(t, BindAndValidate(c, req))
	assert.Equal(t, int64(7), req.ID)
	assert.Equal(t, "Hello", req.Title)
}

func TestBindAndValidate_SkipsFormBinderWithoutFormBody(t *testing.T) {
	t.Parallel()

	c := newContext(http.MethodGet, "/samples?label=ok&sample%5Btitle%5D=ignored", "", "")

	req := &sampleRequest{}
	require.NoError(t, BindAndValidate(c, req))
	assert.Equal(t, "ok", req.Label)
	assert.Empty(t, req.Title)
}

func TestBindAndValidate_BadPathParam(t *testing.T) {
	t.Parallel()

	c := newContext(http.MethodGet, "/samples/abc", "", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")

	httpErr := asHTTPError(t, BindAndValidate(c, &sampleRequest{}))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Contains(t, httpErr.Message, "abc")
}

func TestBindAndValidate_MalformedJSON(t *testing.T) {
	t.Parallel()

	c := newContext(http.MethodPost, "/samples", echo.MIMEApplicationJSON, `{"label":`)

	httpErr := asHTTPError(t, BindAndValidate(c, &sampleRequest{}))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.NotEmpty(t, httpErr.Message)
}

func TestBindAndValidate_CustomErrors(t *testing.T) {
	t.Parallel()

	c := newContext(http.MethodPost, "/samples", echo.MIMEApplicationJSON, `{"label":"bad"}`)

	httpErr := asHTTPError(t, BindAndValidate(c, &sampleRequest{}))
	assert.True(t, httpErr.Override)
	assert.Equal(t, []errs.FieldError{{Field: "label", Error: "is not allowed"}}, httpErr.Errors)
}

func TestStruct_PresentAndMax(t *testing.T) {
	t.Parallel()

	assert.Nil(t, Struct(taggedModel{Name: "Tea", Description: "Hot"}))

	got := Struct(taggedModel{Name: "   ", Description: ""})
	assert.Equal(t, []errs.FieldError{
		{Field: "name", Error: "can't be blank"},
		{Field: "description", Error: "can't be blank"},
	}, got)

	got = Struct(taggedModel{Name: "Espresso", Description: "Strong"})
	assert.Equal(t, []errs.FieldError{{Field: "name", Error: "is too long (maximum is 5 characters)"}}, got)
}
