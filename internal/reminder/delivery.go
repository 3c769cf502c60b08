package reminder

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// DeliveryLoop drains the queue toward the channel. It never shares a lock
// with the scanner, so a slow delivery batch cannot delay the next tick.
type DeliveryLoop struct {
	queue   *Queue
	channel func() Channel
	limiter *rate.Limiter
	metrics *Metrics
	logger  zerolog.Logger
}

// NewDeliveryLoop wires a delivery loop. channel is a getter because the
// outbound channel can connect after the engine starts; it returns nil while
// the channel is unavailable.
func NewDeliveryLoop(queue *Queue, channel func() Channel, limiter *rate.Limiter, metrics *Metrics, logger zerolog.Logger) *DeliveryLoop {
	return &DeliveryLoop{
		queue:   queue,
		channel: channel,
		limiter: limiter,
		metrics: metrics,
		logger:  logger,
	}
}

// Drain attempts every queued request once. While the channel is unset the
// call is a no-op and the queue simply grows; it self-heals on reconnect.
// A failed request is logged and dropped, never retried: a stale reminder
// delivered late is low-value.
func (d *DeliveryLoop) Drain(ctx context.Context) {
	ch := d.channel()
	if ch == nil {
		return
	}

	pending := d.queue.Len()
	if pending == 0 {
		return
	}
	d.logger.Debug().Int("pending", pending).Msg("delivery: draining queue")

	for {
		if ctx.Err() != nil {
			return
		}
		req, ok := d.queue.Dequeue()
		if !ok {
			break
		}
		if d.limiter != nil {
			if err := d.limiter.Wait(ctx); err != nil {
				// Shutdown mid-drain: put nothing back, the queue is
				// best-effort and the next tick supersedes it.
				return
			}
		}

		sendCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		err := ch.SendMessage(sendCtx, req.RecipientID, req.Text, req.Actions)
		cancel()
		if err != nil {
			d.metrics.IncDelivered("failed")
			d.logger.Error().Err(err).
				Int64("recipient", req.RecipientID).
				Int64("family_id", req.FamilyID).
				Msg("delivery: send failed, dropping request")
			continue
		}
		d.metrics.IncDelivered("sent")
		d.logger.Debug().
			Int64("recipient", req.RecipientID).
			Int64("family_id", req.FamilyID).
			Msg("delivery: reminder sent")
	}
	d.metrics.SetQueueSize(d.queue.Len())
}
