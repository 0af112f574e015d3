package model

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/deppfellow/drinks/internal/errs"
	"github.com/deppfellow/drinks/internal/validation"
)

// Drink is a named beverage with a description.
//
// A Drink with a zero ID has never been persisted.
type Drink struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name" validate:"present,max=255"`
	Description string    `json:"description" db:"description" validate:"present"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// IsNew reports whether the drink has not been stored yet.
func (d *Drink) IsNew() bool {
	return d.ID == 0
}

// Validate checks the persisted-drink invariants and returns a
// *ValidationError listing every failing field.
func (d *Drink) Validate() error {
	if fieldErrors := validation.Struct(d); fieldErrors != nil {
		return &ValidationError{Errors: fieldErrors}
	}
	return nil
}

// WithAttributes returns a copy of d with the present attributes applied.
func (d Drink) WithAttributes(attrs DrinkAttributes) Drink {
	if attrs.Name != nil {
		d.Name = *attrs.Name
	}
	if attrs.Description != nil {
		d.Description = *attrs.Description
	}
	return d
}

// DrinkAttributes is a partial set of drink fields taken from a request.
// A nil field was not submitted and leaves the drink unchanged. A field
// that was submitted, even as null or empty, is set and then validated.
type DrinkAttributes struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// UnmarshalJSON records which keys are present. A present null becomes
// an empty string so it replaces the field instead of being ignored.
func (a *DrinkAttributes) UnmarshalJSON(data []byte) error {
	var raw map[string]*string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if v, ok := raw["name"]; ok {
		a.Name = submitted(v)
	}
	if v, ok := raw["description"]; ok {
		a.Description = submitted(v)
	}
	return nil
}

func submitted(v *string) *string {
	if v == nil {
		empty := ""
		return &empty
	}
	return v
}

// DrinkFilter narrows the drink index. The zero value matches everything.
type DrinkFilter struct {
	// Prefix is the leading text a name must start with.
	Prefix string

	CaseInsensitive bool
}

// Matches reports whether name passes the filter.
func (f DrinkFilter) Matches(name string) bool {
	if f.Prefix == "" {
		return true
	}
	if f.CaseInsensitive {
		return strings.HasPrefix(strings.ToLower(name), strings.ToLower(f.Prefix))
	}
	return strings.HasPrefix(name, f.Prefix)
}

// ValidationError reports why a candidate drink was rejected.
type ValidationError struct {
	Errors []errs.FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fe.Field+" "+fe.Error)
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Message returns the first error recorded for field, or "".
func (e *ValidationError) Message(field string) string {
	if e == nil {
		return ""
	}
	for _, fe := range e.Errors {
		if fe.Field == field {
			return fe.Error
		}
	}
	return ""
}

// FullMessages returns "Name can't be blank" style sentences for display.
func (e *ValidationError) FullMessages() []string {
	if e == nil {
		return nil
	}
	messages := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		field := fe.Field
		if field != "" {
			field = strings.ToUpper(field[:1]) + field[1:]
		}
		messages = append(messages, field+" "+fe.Error)
	}
	return messages
}
