package app

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/example/dispatch/internal/apperr"
	"github.com/example/dispatch/internal/ports/secondary"
)

const (
	kindPlayer    = "player"
	kindUnit      = "unit"
	kindSituation = "situation"
	kindChannel   = "channel"

	actionCreate = "create"
	actionUpdate = "update"
	actionDelete = "delete"
)

type changeEntry struct {
	kind    string
	id      string
	created bool
	fields  []string
}

// changeSet records which entities a command touched, in first-touch order.
type changeSet struct {
	entries []*changeEntry
	index   map[string]*changeEntry
	// quiet suppresses audit entries, for high-frequency position reports.
	quiet bool
}

func newChangeSet() *changeSet {
	return &changeSet{index: make(map[string]*changeEntry)}
}

func (cs *changeSet) touch(kind, id, field string) {
	key := kind + "/" + strings.ToLower(id)
	e, ok := cs.index[key]
	if !ok {
		e = &changeEntry{kind: kind, id: id}
		cs.index[key] = e
		cs.entries = append(cs.entries, e)
	}
	if field != "" && !slices.Contains(e.fields, field) {
		e.fields = append(e.fields, field)
	}
}

func (cs *changeSet) created(kind, id string) {
	cs.touch(kind, id, "")
	cs.index[kind+"/"+strings.ToLower(id)].created = true
}

func (cs *changeSet) reset() {
	cs.entries = nil
	cs.index = make(map[string]*changeEntry)
}

// flush snapshots every touched entity as it is now and hands the change
// descriptors to the publisher and the audit log. Audit failures are logged,
// never returned: the mutation has already happened.
func (c *Coordinator) flush(ctx context.Context, cs *changeSet) {
	now := c.clock.Now()
	for _, e := range cs.entries {
		snapshot, err := c.snapshot(ctx, e.kind, e.id)
		action := actionUpdate
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			if e.created {
				continue
			}
			action = actionDelete
			snapshot = nil
		case err != nil:
			c.logger.Warn("snapshot failed", "kind", e.kind, "id", e.id, "err", err)
			continue
		case e.created:
			action = actionCreate
		}

		c.publisher.Publish(ctx, secondary.ChangeEvent{
			ID:       uuid.NewString(),
			Kind:     e.kind,
			EntityID: e.id,
			Action:   action,
			Snapshot: snapshot,
			At:       now,
		})

		if cs.quiet {
			continue
		}
		if err := c.writeAudit(ctx, e, action); err != nil {
			c.logger.Warn("audit write failed", "kind", e.kind, "id", e.id, "err", err)
		}
	}
}

func (c *Coordinator) writeAudit(ctx context.Context, e *changeEntry, action string) error {
	switch action {
	case actionCreate:
		return c.audit.LogCreate(ctx, e.kind, e.id)
	case actionDelete:
		return c.audit.LogDelete(ctx, e.kind, e.id)
	default:
		return c.audit.LogUpdate(ctx, e.kind, e.id, strings.Join(e.fields, ","), "", "")
	}
}

func (c *Coordinator) snapshot(ctx context.Context, kind, id string) (any, error) {
	switch kind {
	case kindPlayer:
		r, err := c.players.GetByName(ctx, id)
		if err != nil {
			return nil, err
		}
		return c.recordToPlayer(r), nil
	case kindUnit:
		r, err := c.units.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return recordToUnit(r), nil
	case kindSituation:
		r, err := c.situations.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return recordToSituation(r), nil
	case kindChannel:
		r, err := c.channels.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return recordToChannel(r), nil
	default:
		return nil, apperr.Internal("unknown entity kind %q", kind)
	}
}
