package email

import (
	"fmt"
	"sort"
	"time"
)

// PreviewData holds sample data for rendering each template locally.
var PreviewData = map[Template]any{
	TemplateDrinkChanged: DrinkChangedData{
		Event:       "updated",
		DrinkID:     1,
		Name:        "Kopi Jahe",
		Description: "Coffee brewed with ginger",
		URL:         "http://localhost:8080/drinks/1",
		OccurredAt:  time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC),
	},
}

// Preview renders templateName with its sample data.
func Preview(templateName Template) (string, error) {
	data, ok := PreviewData[templateName]
	if !ok {
		return "", fmt.Errorf("no preview data for template %q", templateName)
	}
	return Render(templateName, data)
}

// PreviewTemplates lists the templates that can be previewed.
func PreviewTemplates() []string {
	names := make([]string, 0, len(PreviewData))
	for name := range PreviewData {
		names = append(names, string(name))
	}
	sort.Strings(names)
	return names
}
