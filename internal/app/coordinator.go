// Package app contains the application layer - service implementations and
// the coordinator that keeps the registries mutually consistent.
package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/example/dispatch/internal/apperr"
	"github.com/example/dispatch/internal/core/rank"
	coreunit "github.com/example/dispatch/internal/core/unit"
	"github.com/example/dispatch/internal/ports/secondary"
)

// Rules holds the tunable parameters of the registry rules.
type Rules struct {
	SeniorThreshold rank.Rank
	MarkingMaxLen   int
	AliveTTL        time.Duration
	AwayAfter       time.Duration
}

// DefaultRules returns the rules used when nothing is configured.
func DefaultRules() Rules {
	return Rules{
		SeniorThreshold: rank.DefaultSeniorThreshold,
		MarkingMaxLen:   coreunit.DefaultMarkingMaxLen,
		AliveTTL:        5 * time.Minute,
		AwayAfter:       2 * time.Minute,
	}
}

// Registries bundles the four registry ports.
type Registries struct {
	Players    secondary.PlayerRepository
	Units      secondary.UnitRepository
	Situations secondary.SituationRepository
	Channels   secondary.ChannelRepository
}

// Coordinator owns every command that spans registries. Commands run one at
// a time under mu and touch registries in the order players, units,
// situations, channels. Registries are never locked by each other, so there
// is no lock nesting beyond mu.
type Coordinator struct {
	players    secondary.PlayerRepository
	units      secondary.UnitRepository
	situations secondary.SituationRepository
	channels   secondary.ChannelRepository
	clock      secondary.Clock
	publisher  secondary.ChangePublisher
	audit      secondary.LogWriter
	logger     *slog.Logger
	rules      Rules

	mu sync.Mutex
}

// NewCoordinator creates a Coordinator. publisher, audit and logger may be nil.
func NewCoordinator(
	reg Registries,
	clock secondary.Clock,
	publisher secondary.ChangePublisher,
	audit secondary.LogWriter,
	logger *slog.Logger,
	rules Rules,
) *Coordinator {
	if publisher == nil {
		publisher = noopPublisher{}
	}
	if audit == nil {
		audit = noopLogWriter{}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Coordinator{
		players:    reg.Players,
		units:      reg.Units,
		situations: reg.Situations,
		channels:   reg.Channels,
		clock:      clock,
		publisher:  publisher,
		audit:      audit,
		logger:     logger,
		rules:      rules,
	}
}

// run executes one serialized command and publishes what it touched.
// Touched entities are published even when fn fails partway, since the
// earlier steps were applied; callers that compensate reset the change set.
func (c *Coordinator) run(ctx context.Context, op string, fn func(cs *changeSet) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	cs := newChangeSet()
	err := fn(cs)
	c.flush(ctx, cs)
	if err != nil {
		c.logger.Debug("command rejected", "op", op, "code", apperr.CodeOf(err), "err", err)
		return err
	}
	c.logger.Debug("command applied", "op", op, "changes", len(cs.entries))
	return nil
}

// ignoreNotFound swallows NotFound, used where a dangling reference is being cleaned up.
func ignoreNotFound(err error) error {
	if errors.Is(err, apperr.ErrNotFound) {
		return nil
	}
	return err
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, secondary.ChangeEvent) {}

type noopLogWriter struct{}

func (noopLogWriter) LogCreate(context.Context, string, string) error { return nil }
func (noopLogWriter) LogUpdate(context.Context, string, string, string, string, string) error {
	return nil
}
func (noopLogWriter) LogDelete(context.Context, string, string) error { return nil }
