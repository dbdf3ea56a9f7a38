// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

package eventprocessor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/tomtom215/utilitrack/internal/config"
	"github.com/tomtom215/utilitrack/internal/logging"
)

// Processor owns the bus, its publisher and the consumer router.
// Serve builds a fresh router on every call so a supervisor can restart it.
type Processor struct {
	routerCfg RouterConfig
	pubSub    *gochannel.GoChannel
	publisher *Publisher
	handlers  *Handlers
	logger    watermill.LoggerAdapter

	running   atomic.Bool
	ready     chan struct{}
	readyOnce sync.Once
}

// New creates a processor whose consumers invalidate invalidator and
// broadcast through broadcaster. Either may be nil.
func New(cfg config.EventsConfig, invalidator CacheInvalidator, broadcaster WebSocketBroadcaster) (*Processor, error) {
	logger := watermill.LoggerAdapter(logging.NewWatermillAdapter())
	pubSub := NewBus(cfg, logger)

	publisher, err := NewPublisher(pubSub)
	if err != nil {
		return nil, err
	}

	routerCfg := DefaultRouterConfig()
	if cfg.RouterCloseTimeout > 0 {
		routerCfg.CloseTimeout = cfg.RouterCloseTimeout
	}
	if cfg.RetryCount >= 0 {
		routerCfg.RetryMaxRetries = cfg.RetryCount
	}

	return &Processor{
		routerCfg: routerCfg,
		pubSub:    pubSub,
		publisher: publisher,
		handlers:  NewHandlers(invalidator, broadcaster),
		logger:    logger,
		ready:     make(chan struct{}),
	}, nil
}

// Publisher returns the publisher writers use.
func (p *Processor) Publisher() *Publisher {
	return p.publisher
}

// Handlers returns the consumers, mainly for their stats.
func (p *Processor) Handlers() *Handlers {
	return p.handlers
}

func (p *Processor) newRouter() (*Router, error) {
	router, err := NewRouter(&p.routerCfg, p.pubSub, p.logger)
	if err != nil {
		return nil, err
	}
	router.AddConsumerHandler("cache-and-broadcast-imports", TopicReadingsImported, p.pubSub, p.handlers.HandleReadingsImported)
	router.AddConsumerHandler("cache-and-broadcast-targets", TopicTargetsChanged, p.pubSub, p.handlers.HandleTargetsChanged)
	router.AddConsumerHandler("poison-logger", TopicPoison, p.pubSub, p.handlers.HandlePoisoned)
	return router, nil
}

// Serve runs the consumer router until ctx is canceled.
func (p *Processor) Serve(ctx context.Context) error {
	router, err := p.newRouter()
	if err != nil {
		return fmt.Errorf("build event router: %w", err)
	}

	go func() {
		select {
		case <-router.Running():
			p.running.Store(true)
			p.readyOnce.Do(func() { close(p.ready) })
			logging.Info().Int("handlers", router.HandlerCount()).Msg("Event router running")
		case <-ctx.Done():
		}
	}()

	err = router.Run(ctx)
	p.running.Store(false)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("event router: %w", err)
	}
	return ctx.Err()
}

// String names the service for the supervisor.
func (p *Processor) String() string {
	return "event-processor"
}

// IsRunning reports whether consumers are subscribed.
func (p *Processor) IsRunning() bool {
	return p.running.Load()
}

// WaitRunning blocks until the router has started once or ctx ends.
func (p *Processor) WaitRunning(ctx context.Context) error {
	select {
	case <-p.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close shuts the bus down. Pending events are dropped.
func (p *Processor) Close() error {
	return p.pubSub.Close()
}
