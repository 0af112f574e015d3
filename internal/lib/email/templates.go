package email

// Template names an embedded email template.
type Template string

const (
	// TemplateDrinkChanged is templates/drink_changed.html.
	TemplateDrinkChanged Template = "drink_changed"
)

// File returns the template's file name inside the embedded set.
func (t Template) File() string {
	return string(t) + ".html"
}
