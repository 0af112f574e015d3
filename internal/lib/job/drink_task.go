package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// TaskDrinkChanged is the asynq task type for drink change notifications.
const TaskDrinkChanged = "drink:changed"

// Drink change events.
const (
	EventCreated   = "created"
	EventUpdated   = "updated"
	EventDestroyed = "destroyed"
)

// DrinkEventPayload is the JSON payload of a drink:changed task.
type DrinkEventPayload struct {
	Event       string    `json:"event"`
	DrinkID     int64     `json:"drink_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// NewDrinkChangedTask builds a drink:changed task. Notifications are not
// urgent, so they go to the low queue.
func NewDrinkChangedTask(p DrinkEventPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskDrinkChanged,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("low"),
		asynq.Timeout(30*time.Second),
	), nil
}

// EnqueueDrinkEvent queues a notification for p.
func (j *JobService) EnqueueDrinkEvent(ctx context.Context, p DrinkEventPayload) error {
	task, err := NewDrinkChangedTask(p)
	if err != nil {
		return fmt.Errorf("failed to build %s task: %w", TaskDrinkChanged, err)
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		j.metrics.IncJobEnqueued(TaskDrinkChanged, "error")
		return fmt.Errorf("failed to enqueue %s task: %w", TaskDrinkChanged, err)
	}
	j.metrics.IncJobEnqueued(TaskDrinkChanged, "success")

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Str("event", p.Event).
		Int64("drink_id", p.DrinkID).
		Msg("enqueued drink notification")

	return nil
}
