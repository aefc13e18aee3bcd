package engine

import (
	"context"
	"fmt"
	"log/slog"

	"selector-bot/internal/bus"
	"selector-bot/internal/store"
)

// Engine consumes gateway events from the bus, keeps the store's guild
// caches reconciled, and turns reactions on bound messages into role
// grant/revoke actions.
type Engine struct {
	store  *store.Store
	bus    *bus.Bus
	logger *slog.Logger
}

func New(st *store.Store, eventBus *bus.Bus, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		store:  st,
		bus:    eventBus,
		logger: logger,
	}
}

func Start(ctx context.Context, st *store.Store, eventBus *bus.Bus, logger *slog.Logger) {
	if eventBus == nil {
		return
	}
	engine := New(st, eventBus, logger)
	go engine.run(ctx)
}

func (e *Engine) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-e.bus.Events:
			if !ok {
				return
			}
			e.handle(event)
		}
	}
}

func (e *Engine) handle(event bus.Event) {
	switch payload := event.(type) {
	case bus.GuildSnapshot:
		e.handleGuildSnapshot(payload)
	case bus.RoleCreated:
		e.handleRoleCreated(payload)
	case bus.RoleUpdated:
		e.handleRoleUpdated(payload)
	case bus.ReactionAdded:
		e.handleReactionAdded(payload)
	case bus.ReactionRemoved:
		e.handleReactionRemoved(payload)
	default:
		e.logger.Warn("unknown bus event", slog.String("type", fmt.Sprintf("%T", event)))
	}
}
