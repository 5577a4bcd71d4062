package adapters

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"job_portal_backend/internal/feature/applications/domain/entity"
)

type recordingPublisher struct {
	msgType, key string
	payload      any
	err          error
}

func (r *recordingPublisher) Publish(_ context.Context, msgType, key string, payload any) error {
	r.msgType, r.key, r.payload = msgType, key, payload
	return r.err
}

func TestEventPublisher_Publish(t *testing.T) {
	rec := &recordingPublisher{}
	ev := entity.ApplicationEvent{
		Type:          entity.EventStatusChanged,
		ApplicationID: 42,
		Status:        entity.StatusAccepted,
		OccurredAt:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	assert.NoError(t, NewEventPublisher(rec).Publish(context.Background(), ev))
	assert.Equal(t, "application.status_changed", rec.msgType)
	assert.Equal(t, "42", rec.key)
	assert.Equal(t, ev, rec.payload)

	rec.err = errors.New("closed")
	assert.EqualError(t, NewEventPublisher(rec).Publish(context.Background(), ev), "closed")
}
