package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/drinks/internal/errs"
	"github.com/deppfellow/drinks/internal/model"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedirect_Defaults(t *testing.T) {
	t.Parallel()

	d := Redirect("/drinks/1")
	assert.Equal(t, DirectiveRedirect, d.Kind)
	assert.Equal(t, http.StatusSeeOther, d.Status)
	assert.Equal(t, http.StatusOK, d.JSONStatus)
	assert.Equal(t, "/drinks/1", d.Location)
	assert.Equal(t, "redirect", d.Kind.String())
}

func TestJSONBindings(t *testing.T) {
	t.Parallel()

	fieldErrors := []errs.FieldError{{Field: "name", Error: "can't be blank"}}
	got := jsonBindings(map[string]any{
		"drink":   &model.Drink{Name: "tea"},
		"errors":  &model.ValidationError{Errors: fieldErrors},
		"missing": (*model.ValidationError)(nil),
		"letter":  "",
	})

	assert.Equal(t, fieldErrors, got["errors"])
	assert.NotContains(t, got, "missing")
	assert.Contains(t, got, "letter")
	assert.Contains(t, got, "drink")
}

func TestViewResponseHandler_RejectsOtherResults(t *testing.T) {
	t.Parallel()

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	err := ViewResponseHandler{}.Handle(c, "not a directive")
	require.Error(t, err)
}

func TestViewResponseHandler_HTMLRedirect(t *testing.T) {
	t.Parallel()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/drinks", nil)
	req.Header.Set(echo.HeaderAccept, echo.MIMETextHTML)
	rec := httptest.NewRecorder()

	err := ViewResponseHandler{}.Handle(e.NewContext(req, rec), Redirect("/drinks/3").WithJSONStatus(http.StatusCreated))
	require.NoError(t, err)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/drinks/3", rec.Header().Get(echo.HeaderLocation))
}

func TestPaths(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/drinks", DrinksPath())
	assert.Equal(t, "/drinks/new", NewDrinkPath())
	assert.Equal(t, "/drinks/12", DrinkPath(12))
	assert.Equal(t, "/drinks/12/edit", EditDrinkPath(12))

	funcs := PathFuncs()
	for _, name := range []string{"drinksPath", "newDrinkPath", "drinkPath", "editDrinkPath"} {
		assert.Contains(t, funcs, name)
	}
}
