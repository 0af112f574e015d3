package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/deppfellow/drinks/internal/lib/email"
	"github.com/hibiken/asynq"
)

// handleDrinkChangedTask emails the configured recipient about a drink change.
func (j *JobService) handleDrinkChangedTask(ctx context.Context, t *asynq.Task) error {
	var p DrinkEventPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		// A payload that cannot be decoded will never succeed.
		return fmt.Errorf("failed to unmarshal drink event payload: %v: %w", err, asynq.SkipRetry)
	}

	logger := j.logger.With().
		Str("type", TaskDrinkChanged).
		Str("event", p.Event).
		Int64("drink_id", p.DrinkID).
		Logger()

	logger.Info().Msg("processing drink notification")

	data := email.DrinkChangedData{
		Event:       p.Event,
		DrinkID:     p.DrinkID,
		Name:        p.Name,
		Description: p.Description,
		OccurredAt:  p.OccurredAt,
	}
	if j.baseURL != "" && p.Event != EventDestroyed {
		data.URL = fmt.Sprintf("%s/drinks/%d", j.baseURL, p.DrinkID)
	}

	if err := j.mailer.SendDrinkChangedEmail(j.recipient, data); err != nil {
		logger.Error().Err(err).Msg("failed to send drink notification")
		return err
	}

	j.metrics.IncNotificationSent()
	logger.Info().Msg("sent drink notification")
	return nil
}
