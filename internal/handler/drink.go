package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/deppfellow/drinks/internal/errs"
	"github.com/deppfellow/drinks/internal/model"
	"github.com/deppfellow/drinks/internal/server"
	"github.com/deppfellow/drinks/internal/service"
	"github.com/deppfellow/drinks/internal/validation"
	"github.com/labstack/echo/v4"
)

// Drink views.
const (
	ViewDrinksIndex = "drinks/index"
	ViewDrinkShow   = "drinks/show"
	ViewDrinkNew    = "drinks/new"
	ViewDrinkEdit   = "drinks/edit"
)

// Form keys for drink attributes.
const (
	formDrinkName        = "drink[name]"
	formDrinkDescription = "drink[description]"
)

// DrinkHandler implements the seven drink resource actions.
type DrinkHandler struct {
	Handler
	drinks *service.DrinkService
}

func NewDrinkHandler(s *server.Server, drinks *service.DrinkService) *DrinkHandler {
	return &DrinkHandler{
		Handler: NewHandler(s),
		drinks:  drinks,
	}
}

// IndexDrinksRequest filters the index by the text names start with. The
// index page links single letters, but any prefix is accepted.
type IndexDrinksRequest struct {
	Letter string `query:"letter" json:"letter" validate:"max=255"`
}

func (r *IndexDrinksRequest) Validate() error {
	return validation.Validator().Struct(r)
}

// DrinkIDRequest addresses a single drink. The id is kept as text so an id
// that can never match a drink, such as "abc", is reported as not found
// like any other missing drink.
type DrinkIDRequest struct {
	ID string `param:"id" json:"-"`
}

func (r *DrinkIDRequest) Validate() error {
	return nil
}

type NewDrinkRequest struct{}

func (r *NewDrinkRequest) Validate() error {
	return nil
}

// DrinkParamsRequest carries the submitted attributes for create and
// update, as drink[name] form keys or a {"drink": {...}} JSON body.
type DrinkParamsRequest struct {
	ID    string                `param:"id" json:"-"`
	Drink model.DrinkAttributes `json:"drink"`
}

// Attribute rules belong to the drink itself, so a rejected drink can be
// shown again with its errors.
func (r *DrinkParamsRequest) Validate() error {
	return nil
}

func (r *DrinkParamsRequest) BindForm(form url.Values) error {
	if v, ok := form[formDrinkName]; ok && len(v) > 0 {
		name := v[0]
		r.Drink.Name = &name
	}
	if v, ok := form[formDrinkDescription]; ok && len(v) > 0 {
		description := v[0]
		r.Drink.Description = &description
	}
	return nil
}

// Index lists every drink, or those starting with letter.
func (h *DrinkHandler) Index(c echo.Context, req *IndexDrinksRequest) (*Directive, error) {
	drinks, err := h.drinks.List(c.Request().Context(), req.Letter)
	if err != nil {
		return nil, err
	}
	if drinks == nil {
		drinks = []model.Drink{}
	}

	return Render(ViewDrinksIndex, http.StatusOK).
		Bind("drinks", drinks).
		Bind("letter", req.Letter), nil
}

func (h *DrinkHandler) Show(c echo.Context, req *DrinkIDRequest) (*Directive, error) {
	id, err := parseDrinkID(req.ID)
	if err != nil {
		return nil, err
	}

	drink, err := h.drinks.Get(c.Request().Context(), id)
	if err != nil {
		return nil, err
	}

	return Render(ViewDrinkShow, http.StatusOK).Bind("drink", drink), nil
}

func (h *DrinkHandler) New(c echo.Context, req *NewDrinkRequest) (*Directive, error) {
	return drinkForm(ViewDrinkNew, http.StatusOK, h.drinks.Build(), nil), nil
}

// Create stores a new drink and redirects to it. An invalid drink renders
// the new form again with 422.
func (h *DrinkHandler) Create(c echo.Context, req *DrinkParamsRequest) (*Directive, error) {
	drink, err := h.drinks.Create(c.Request().Context(), req.Drink)
	if err != nil {
		var vErr *model.ValidationError
		if errors.As(err, &vErr) {
			return drinkForm(ViewDrinkNew, http.StatusUnprocessableEntity, drink, vErr), nil
		}
		return nil, err
	}

	return Redirect(DrinkPath(drink.ID)).
		WithJSONStatus(http.StatusCreated).
		Bind("drink", drink), nil
}

func (h *DrinkHandler) Edit(c echo.Context, req *DrinkIDRequest) (*Directive, error) {
	id, err := parseDrinkID(req.ID)
	if err != nil {
		return nil, err
	}

	drink, err := h.drinks.Find(c.Request().Context(), id)
	if err != nil {
		return nil, err
	}

	return drinkForm(ViewDrinkEdit, http.StatusOK, drink, nil), nil
}

// Update applies the submitted attributes and redirects to the drink. An
// invalid result renders the edit form with the attempted values and
// leaves the stored drink untouched.
func (h *DrinkHandler) Update(c echo.Context, req *DrinkParamsRequest) (*Directive, error) {
	ctx := c.Request().Context()

	id, err := parseDrinkID(req.ID)
	if err != nil {
		return nil, err
	}

	drink, err := h.drinks.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := h.drinks.Update(ctx, drink, req.Drink)
	if err != nil {
		var vErr *model.ValidationError
		if errors.As(err, &vErr) {
			return drinkForm(ViewDrinkEdit, http.StatusUnprocessableEntity, updated, vErr), nil
		}
		return nil, err
	}

	return Redirect(DrinkPath(updated.ID)).
		WithJSONStatus(http.StatusOK).
		Bind("drink", updated), nil
}

func (h *DrinkHandler) Destroy(c echo.Context, req *DrinkIDRequest) (*Directive, error) {
	ctx := c.Request().Context()

	id, err := parseDrinkID(req.ID)
	if err != nil {
		return nil, err
	}

	drink, err := h.drinks.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := h.drinks.Delete(ctx, drink); err != nil {
		return nil, err
	}

	return Redirect(DrinksPath()).WithJSONStatus(http.StatusNoContent), nil
}

// parseDrinkID turns a path id into a drink id. Text that is not a valid
// id names no drink, so it is a not found error.
func parseDrinkID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		code := errs.CodeDrinkNotFound
		return 0, errs.NewNotFoundError("Drink not found", true, &code)
	}
	return id, nil
}

func drinkForm(view string, status int, drink *model.Drink, vErr *model.ValidationError) *Directive {
	return Render(view, status).
		Bind("drink", drink).
		Bind("errors", vErr)
}
