package audit

import (
	"context"
	"log/slog"
)

// Emitter publishes one audit event.
type Emitter interface {
	Emit(ctx context.Context, event Event) error
}

// Router dispatches events to a per-category emitter, so compliance events
// can fail closed while operations events stay best-effort.
type Router struct {
	emitters map[EventCategory]Emitter
	fallback Emitter
	logger   *slog.Logger
}

// NewRouter creates a router with an optional fallback for unregistered
// categories.
func NewRouter(logger *slog.Logger, fallback Emitter) *Router {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Router{
		emitters: make(map[EventCategory]Emitter),
		fallback: fallback,
		logger:   logger,
	}
}

func (r *Router) Register(category EventCategory, emitter Emitter) {
	r.emitters[category] = emitter
}

// Emit routes on event.Category, derived from the action when unset.
func (r *Router) Emit(ctx context.Context, event Event) error {
	if event.Category == "" {
		event.Category = AuditEvent(event.Action).Category()
	}
	emitter, ok := r.emitters[event.Category]
	if !ok {
		if r.fallback != nil {
			return r.fallback.Emit(ctx, event)
		}
		r.logger.WarnContext(ctx, "no emitter for audit category, dropping event",
			"category", event.Category,
			"action", event.Action,
		)
		return nil
	}
	return emitter.Emit(ctx, event)
}
