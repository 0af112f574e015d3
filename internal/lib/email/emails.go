package email

import (
	"fmt"
	"time"
)

// DrinkChangedData feeds the drink_changed template.
type DrinkChangedData struct {
	Event       string
	DrinkID     int64
	Name        string
	Description string
	URL         string
	OccurredAt  time.Time
}

// Subject is the email subject line for the change.
func (d DrinkChangedData) Subject() string {
	return fmt.Sprintf("Drink %s: %s", d.Event, d.Name)
}

// SendDrinkChangedEmail tells to that a drink was created, updated or destroyed.
func (c *Client) SendDrinkChangedEmail(to string, data DrinkChangedData) error {
	return c.SendEmail(to, data.Subject(), TemplateDrinkChanged, data)
}
