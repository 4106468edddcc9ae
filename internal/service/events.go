package service

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/queue"
)

// emitter publishes best effort: a broker outage is logged and never fails
// the request that produced the event.
type emitter struct {
	pub EventPublisher
	log echo.Logger
}

func (e emitter) emit(ctx context.Context, ev queue.Event) {
	if e.pub == nil {
		return
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	if err := e.pub.Publish(ctx, ev); err != nil && e.log != nil {
		e.log.Warnf("publish %s: %v", ev.Type, err)
	}
}
