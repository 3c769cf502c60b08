package reminder

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

// fakeChannel records sends and fails specific recipients.
type fakeChannel struct {
	sent    []int64
	failFor map[int64]error
}

func (c *fakeChannel) SendMessage(ctx context.Context, recipientID int64, text string, actions []Action) error {
	if err := c.failFor[recipientID]; err != nil {
		return err
	}
	c.sent = append(c.sent, recipientID)
	return nil
}

func newTestDelivery(q *Queue, ch Channel) *DeliveryLoop {
	return NewDeliveryLoop(q, func() Channel { return ch }, nil, nil, zerolog.Nop())
}

func TestDrainSendsEverything(t *testing.T) {
	q := NewQueue()
	for _, id := range []int64{10, 20, 30} {
		q.Enqueue(Request{RecipientID: id})
	}
	ch := &fakeChannel{}

	newTestDelivery(q, ch).Drain(context.Background())

	assert.Equal(t, []int64{10, 20, 30}, ch.sent)
	assert.Equal(t, 0, q.Len())
}

func TestDrainFailureIsolatedAndDropped(t *testing.T) {
	q := NewQueue()
	for _, id := range []int64{10, 20, 30} {
		q.Enqueue(Request{RecipientID: id})
	}
	ch := &fakeChannel{failFor: map[int64]error{20: errors.New("blocked by user")}}

	d := newTestDelivery(q, ch)
	d.Drain(context.Background())

	assert.Equal(t, []int64{10, 30}, ch.sent, "failure must not block later sends")
	assert.Equal(t, 0, q.Len(), "failed request is dropped, not requeued")

	// A second drain retries nothing.
	d.Drain(context.Background())
	assert.Equal(t, []int64{10, 30}, ch.sent)
}

func TestDrainNoChannelLeavesQueue(t *testing.T) {
	q := NewQueue()
	q.Enqueue(Request{RecipientID: 10})

	NewDeliveryLoop(q, func() Channel { return nil }, nil, nil, zerolog.Nop()).Drain(context.Background())

	assert.Equal(t, 1, q.Len(), "queue grows until the channel connects")
}

func TestDrainStopsOnCancel(t *testing.T) {
	q := NewQueue()
	for i := int64(1); i <= 5; i++ {
		q.Enqueue(Request{RecipientID: i})
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	newTestDelivery(q, &fakeChannel{}).Drain(ctx)

	assert.Equal(t, 5, q.Len(), "cancelled drain touches nothing")
}
