package memory

import (
	"context"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/example/dispatch/internal/apperr"
	coreplayer "github.com/example/dispatch/internal/core/player"
	coreunit "github.com/example/dispatch/internal/core/unit"
	"github.com/example/dispatch/internal/ports/secondary"
)

// UnitRepository implements secondary.UnitRepository in memory.
type UnitRepository struct {
	t      *table[secondary.UnitRecord]
	issued atomic.Int64
}

// NewUnitRepository creates an empty unit registry.
func NewUnitRepository() *UnitRepository {
	return &UnitRepository{t: newTable("unit", cloneUnit)}
}

func cloneUnit(u *secondary.UnitRecord) *secondary.UnitRecord {
	c := *u
	c.Members = slices.Clone(u.Members)
	return &c
}

func sameMarking(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// NextID issues a fresh unit ID.
func (r *UnitRepository) NextID(ctx context.Context) (string, error) {
	n := r.issued.Add(1)
	return coreunit.GenerateUnitID(int(n - 1)), nil
}

// Create persists a new unit.
func (r *UnitRepository) Create(ctx context.Context, unit *secondary.UnitRecord) error {
	return r.t.insert(unit.ID, unit, func() error {
		return r.checkMarkingLocked(unit.Marking, unit.ID)
	})
}

func (r *UnitRepository) checkMarkingLocked(marking, exceptID string) error {
	taken := r.t.anyMatchLocked(func(id string, u *secondary.UnitRecord) bool {
		return id != exceptID && sameMarking(u.Marking, marking)
	})
	if taken {
		return apperr.Conflict("marking %q is already in use", strings.TrimSpace(marking))
	}
	return nil
}

// GetByID retrieves a unit by its ID.
func (r *UnitRepository) GetByID(ctx context.Context, id string) (*secondary.UnitRecord, error) {
	return r.t.get(id)
}

// List retrieves units matching the given filters, in creation order.
func (r *UnitRepository) List(ctx context.Context, filters secondary.UnitFilters) ([]*secondary.UnitRecord, error) {
	return r.t.list(func(u *secondary.UnitRecord) bool {
		if filters.SituationID != "" && u.SituationID != filters.SituationID {
			return false
		}
		if filters.ChannelID != "" && u.ChannelID != filters.ChannelID {
			return false
		}
		return true
	}), nil
}

// MarkingInUse reports whether another live unit uses the marking.
func (r *UnitRepository) MarkingInUse(ctx context.Context, marking, exceptID string) (bool, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()
	return r.checkMarkingLocked(marking, exceptID) != nil, nil
}

func memberIndex(members []string, name string) int {
	key := coreplayer.NormalizeName(name)
	return slices.IndexFunc(members, func(m string) bool {
		return coreplayer.NormalizeName(m) == key
	})
}

// AddMember appends a member name.
func (r *UnitRepository) AddMember(ctx context.Context, id, name string) error {
	_, err := r.t.mutate(id, func(u *secondary.UnitRecord) error {
		if memberIndex(u.Members, name) >= 0 {
			return apperr.Conflict("player %s is already a member of %s", name, id)
		}
		u.Members = append(u.Members, name)
		return nil
	})
	return err
}

// RemoveMember drops a member name and returns how many remain.
func (r *UnitRepository) RemoveMember(ctx context.Context, id, name string) (int, error) {
	u, err := r.t.mutate(id, func(u *secondary.UnitRecord) error {
		i := memberIndex(u.Members, name)
		if i < 0 {
			return apperr.NotFound("player %s is not a member of %s", name, id)
		}
		u.Members = slices.Delete(u.Members, i, i+1)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(u.Members), nil
}

// SetLeadership stores the leadership flag and the explicit request behind it.
func (r *UnitRepository) SetLeadership(ctx context.Context, id string, leading, requested bool) error {
	_, err := r.t.mutate(id, func(u *secondary.UnitRecord) error {
		u.Leading = leading
		u.LeadershipRequested = requested
		return nil
	})
	return err
}

// Rename changes the marking.
func (r *UnitRepository) Rename(ctx context.Context, id, marking string) error {
	_, err := r.t.mutate(id, func(u *secondary.UnitRecord) error {
		if err := r.checkMarkingLocked(marking, id); err != nil {
			return err
		}
		u.Marking = strings.TrimSpace(marking)
		return nil
	})
	return err
}

// SetStatusCode stores the free-text status code.
func (r *UnitRepository) SetStatusCode(ctx context.Context, id, code string) error {
	_, err := r.t.mutate(id, func(u *secondary.UnitRecord) error {
		u.StatusCode = code
		return nil
	})
	return err
}

// AttachToSituation sets the situation pointer.
func (r *UnitRepository) AttachToSituation(ctx context.Context, id, situationID string) error {
	_, err := r.t.mutate(id, func(u *secondary.UnitRecord) error {
		u.SituationID = situationID
		return nil
	})
	return err
}

// DetachFromSituation clears the situation pointer.
func (r *UnitRepository) DetachFromSituation(ctx context.Context, id string) error {
	return r.AttachToSituation(ctx, id, "")
}

// AssignChannel sets the channel pointer.
func (r *UnitRepository) AssignChannel(ctx context.Context, id, channelID string) error {
	_, err := r.t.mutate(id, func(u *secondary.UnitRecord) error {
		u.ChannelID = channelID
		return nil
	})
	return err
}

// ClearChannel clears the channel pointer.
func (r *UnitRepository) ClearChannel(ctx context.Context, id string) error {
	return r.AssignChannel(ctx, id, "")
}

// Delete removes a unit record.
func (r *UnitRepository) Delete(ctx context.Context, id string) error {
	return r.t.remove(id)
}

// Ensure UnitRepository implements the interface
var _ secondary.UnitRepository = (*UnitRepository)(nil)
