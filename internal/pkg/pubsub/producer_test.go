package pubsub

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/debook/internal/pkg/event"
	"github.com/qs3c/debook/internal/pkg/logger"
)

type recordingPublisher struct {
	keys   []string
	values [][]byte
	err    error
}

func (p *recordingPublisher) Start(context.Context) error { return nil }
func (p *recordingPublisher) Ping(context.Context) error  { return p.err }
func (p *recordingPublisher) Close() error                { return nil }

func (p *recordingPublisher) Publish(_ context.Context, key string, value []byte) error {
	if p.err != nil {
		return p.err
	}
	p.keys = append(p.keys, key)
	p.values = append(p.values, value)
	return nil
}

func TestInteractionProducer_Emit(t *testing.T) {
	pub := &recordingPublisher{}
	producer := NewInteractionProducer(pub, logger.Discard())

	ev := &event.InteractionEvent{
		ID:        "interaction-1",
		OwnerID:   "owner",
		ActorID:   "actor",
		PostID:    "post-42",
		Type:      "like",
		CreatedAt: time.Now().UTC(),
	}

	require.NoError(t, producer.Emit(context.Background(), ev))

	require.Len(t, pub.keys, 1)
	assert.Equal(t, "post-42", pub.keys[0], "post id is the partition key")

	decoded, err := event.Parse(pub.values[0])
	require.NoError(t, err)
	assert.Equal(t, ev.ID, decoded.ID)
	assert.Equal(t, ev.OwnerID, decoded.OwnerID)
}

func TestInteractionProducer_EmitError(t *testing.T) {
	publishErr := errors.New("broker down")
	producer := NewInteractionProducer(&recordingPublisher{err: publishErr}, logger.Discard())

	err := producer.Emit(context.Background(), &event.InteractionEvent{ID: "1", PostID: "p"})
	assert.True(t, errors.Is(err, publishErr))
	assert.True(t, errors.Is(producer.Ping(context.Background()), publishErr))
}
