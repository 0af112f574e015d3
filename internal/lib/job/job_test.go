package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/deppfellow/drinks/internal/lib/email"
	"github.com/deppfellow/drinks/internal/metrics"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	to   string
	data email.DrinkChangedData
	err  error
	sent int
}

func (f *fakeMailer) SendDrinkChangedEmail(to string, data email.DrinkChangedData) error {
	f.sent++
	f.to = to
	f.data = data
	return f.err
}

func newTestService(mailer Mailer) *JobService {
	logger := zerolog.Nop()
	return &JobService{
		logger:    &logger,
		metrics:   metrics.New(),
		mailer:    mailer,
		recipient: "bar@example.com",
		baseURL:   "http://drinks.test",
	}
}

func TestNewDrinkChangedTask(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 3, 4, 5, 6, 7, 0, time.UTC)
	task, err := NewDrinkChangedTask(DrinkEventPayload{Event: EventCreated, DrinkID: 9, Name: "coffe", OccurredAt: at})
	require.NoError(t, err)
	assert.Equal(t, TaskDrinkChanged, task.Type())

	var decoded DrinkEventPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &decoded))
	assert.Equal(t, int64(9), decoded.DrinkID)
	assert.Equal(t, EventCreated, decoded.Event)
	assert.True(t, at.Equal(decoded.OccurredAt))
}

func TestHandleDrinkChangedTask_SendsEmail(t *testing.T) {
	t.Parallel()

	mailer := &fakeMailer{}
	j := newTestService(mailer)

	task, err := NewDrinkChangedTask(DrinkEventPayload{Event: EventUpdated, DrinkID: 3, Name: "Kopi Jahe"})
	require.NoError(t, err)

	require.NoError(t, j.Mux().ProcessTask(context.Background(), task))
	assert.Equal(t, 1, mailer.sent)
	assert.Equal(t, "bar@example.com", mailer.to)
	assert.Equal(t, "Kopi Jahe", mailer.data.Name)
	assert.Equal(t, "http://drinks.test/drinks/3", mailer.data.URL)
	assert.Equal(t, 1.0, testutil.ToFloat64(j.metrics.NotificationsOK))
}

func TestHandleDrinkChangedTask_DestroyedHasNoLink(t *testing.T) {
	t.Parallel()

	mailer := &fakeMailer{}
	j := newTestService(mailer)

	task, err := NewDrinkChangedTask(DrinkEventPayload{Event: EventDestroyed, DrinkID: 3, Name: "juicy"})
	require.NoError(t, err)

	require.NoError(t, j.handleDrinkChangedTask(context.Background(), task))
	assert.Empty(t, mailer.data.URL)
}

func TestHandleDrinkChangedTask_Errors(t *testing.T) {
	t.Parallel()

	mailer := &fakeMailer{err: errors.New("provider down")}
	j := newTestService(mailer)

	task, err := NewDrinkChangedTask(DrinkEventPayload{Event: EventCreated, DrinkID: 1})
	require.NoError(t, err)
	assert.Error(t, j.handleDrinkChangedTask(context.Background(), task))
	assert.Equal(t, 0.0, testutil.ToFloat64(j.metrics.NotificationsOK))

	bad := asynq.NewTask(TaskDrinkChanged, []byte("{not json"))
	err = j.handleDrinkChangedTask(context.Background(), bad)
	require.Error(t, err)
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}
