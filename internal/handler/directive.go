package handler

import (
	"fmt"
	"net/http"

	"github.com/deppfellow/drinks/internal/middleware"
	"github.com/deppfellow/drinks/internal/model"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// DirectiveKind tells the response handler what to do with a Directive.
type DirectiveKind int

const (
	DirectiveRender DirectiveKind = iota
	DirectiveRedirect
)

func (k DirectiveKind) String() string {
	if k == DirectiveRedirect {
		return "redirect"
	}
	return "render"
}

// Directive is the outcome of a resource action: render View with
// Bindings, or redirect to Location.
//
// Browsers get the view or a 303 redirect. JSON clients get the bindings
// as an object; for redirects JSONStatus replaces the 303 and Location is
// sent as a header.
type Directive struct {
	Kind       DirectiveKind
	View       string
	Status     int
	Location   string
	JSONStatus int
	Bindings   map[string]any
}

// Render renders view with status.
func Render(view string, status int) *Directive {
	return &Directive{
		Kind:     DirectiveRender,
		View:     view,
		Status:   status,
		Bindings: make(map[string]any),
	}
}

// Redirect sends the client to location with 303 See Other.
func Redirect(location string) *Directive {
	return &Directive{
		Kind:       DirectiveRedirect,
		Status:     http.StatusSeeOther,
		Location:   location,
		JSONStatus: http.StatusOK,
		Bindings:   make(map[string]any),
	}
}

// Bind sets a value the view (or the JSON body) can read under key.
func (d *Directive) Bind(key string, value any) *Directive {
	d.Bindings[key] = value
	return d
}

// WithJSONStatus sets the status a redirect answers JSON clients with.
func (d *Directive) WithJSONStatus(status int) *Directive {
	d.JSONStatus = status
	return d
}

// ViewResponseHandler writes a *Directive as HTML or JSON depending on
// what the client accepts.
type ViewResponseHandler struct{}

func (h ViewResponseHandler) Handle(c echo.Context, result interface{}) error {
	d, ok := result.(*Directive)
	if !ok || d == nil {
		return fmt.Errorf("view handler returned %T, want *Directive", result)
	}

	if middleware.WantsJSON(c) {
		return writeJSON(c, d)
	}

	if d.Kind == DirectiveRedirect {
		return c.Redirect(d.Status, d.Location)
	}
	return c.Render(d.Status, d.View, d.Bindings)
}

func (h ViewResponseHandler) GetOperation() string {
	return "handler_view"
}

func (h ViewResponseHandler) AddAttributes(txn *newrelic.Transaction, result interface{}) {
	d, ok := result.(*Directive)
	if !ok || d == nil {
		return
	}
	txn.AddAttribute("directive.kind", d.Kind.String())
	if d.View != "" {
		txn.AddAttribute("directive.view", d.View)
	}
}

func writeJSON(c echo.Context, d *Directive) error {
	body := jsonBindings(d.Bindings)

	if d.Kind == DirectiveRender {
		return c.JSON(d.Status, body)
	}

	c.Response().Header().Set(echo.HeaderLocation, d.Location)
	if d.JSONStatus == http.StatusNoContent {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(d.JSONStatus, body)
}

// jsonBindings drops absent validation errors and flattens present ones to
// their field error list.
func jsonBindings(bindings map[string]any) map[string]any {
	out := make(map[string]any, len(bindings))
	for k, v := range bindings {
		if vErr, ok := v.(*model.ValidationError); ok {
			if vErr == nil {
				continue
			}
			out[k] = vErr.Errors
			continue
		}
		out[k] = v
	}
	return out
}
