package unit

import (
	"testing"

	"github.com/example/dispatch/internal/apperr"
)

func TestCanCreateUnit(t *testing.T) {
	alice := MemberCandidate{Name: "Alice", Exists: true}
	bob := MemberCandidate{Name: "Bob", Exists: true}

	tests := []struct {
		name        string
		ctx         CreateContext
		wantAllowed bool
		wantCode    apperr.Code
		wantReason  string
	}{
		{
			name: "single unaffiliated member",
			ctx: CreateContext{
				MarkingContext: MarkingContext{Marking: "3B 10A", MaxLen: 8},
				Members:        []MemberCandidate{alice},
			},
			wantAllowed: true,
		},
		{
			name: "blank marking",
			ctx: CreateContext{
				MarkingContext: MarkingContext{Marking: " ", MaxLen: 8},
				Members:        []MemberCandidate{alice},
			},
			wantCode:   apperr.CodeInvalidArgument,
			wantReason: "unit marking is required",
		},
		{
			name: "marking too long",
			ctx: CreateContext{
				MarkingContext: MarkingContext{Marking: "ADAM-12-XL", MaxLen: 8},
				Members:        []MemberCandidate{alice},
			},
			wantCode:   apperr.CodeConflict,
			wantReason: `marking "ADAM-12-XL" exceeds 8 characters`,
		},
		{
			name: "marking already used",
			ctx: CreateContext{
				MarkingContext: MarkingContext{Marking: "1A", MaxLen: 8, MarkingTaken: true},
				Members:        []MemberCandidate{alice},
			},
			wantCode:   apperr.CodeConflict,
			wantReason: `marking "1A" is already in use`,
		},
		{
			name: "no members",
			ctx: CreateContext{
				MarkingContext: MarkingContext{Marking: "1A", MaxLen: 8},
			},
			wantCode:   apperr.CodeConflict,
			wantReason: "a unit needs at least one member",
		},
		{
			name: "unknown member",
			ctx: CreateContext{
				MarkingContext: MarkingContext{Marking: "1A", MaxLen: 8},
				Members:        []MemberCandidate{alice, {Name: "Ghost"}},
			},
			wantCode:   apperr.CodeNotFound,
			wantReason: "player Ghost not found",
		},
		{
			name: "member already in a unit",
			ctx: CreateContext{
				MarkingContext: MarkingContext{Marking: "1A", MaxLen: 8},
				Members:        []MemberCandidate{alice, {Name: "Bob", Exists: true, UnitID: "UNIT-004"}},
			},
			wantCode:   apperr.CodeConflict,
			wantReason: "player Bob already belongs to unit UNIT-004",
		},
		{
			name: "member listed twice",
			ctx: CreateContext{
				MarkingContext: MarkingContext{Marking: "1A", MaxLen: 8},
				Members:        []MemberCandidate{bob, {Name: "BOB", Exists: true}},
			},
			wantCode:   apperr.CodeConflict,
			wantReason: "player BOB listed more than once",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanCreateUnit(tt.ctx)

			if result.Allowed != tt.wantAllowed {
				t.Fatalf("CanCreateUnit() Allowed = %v, want %v (reason %q)", result.Allowed, tt.wantAllowed, result.Reason)
			}
			if tt.wantAllowed {
				if err := result.Error(); err != nil {
					t.Errorf("CanCreateUnit().Error() = %v, want nil", err)
				}
				return
			}
			if result.Reason != tt.wantReason {
				t.Errorf("CanCreateUnit() Reason = %q, want %q", result.Reason, tt.wantReason)
			}
			if code := apperr.CodeOf(result.Error()); code != tt.wantCode {
				t.Errorf("CanCreateUnit() code = %q, want %q", code, tt.wantCode)
			}
		})
	}
}

func TestCanAddMember(t *testing.T) {
	result := CanAddMember(AddMemberContext{
		UnitID:    "UNIT-001",
		Candidate: MemberCandidate{Name: "Alice", Exists: true, UnitID: "UNIT-001"},
	})
	if result.Allowed {
		t.Fatal("expected existing member to be rejected")
	}
	if result.Reason != "player Alice is already a member of UNIT-001" {
		t.Errorf("Reason = %q", result.Reason)
	}
}

func TestCanRemoveMember(t *testing.T) {
	if r := CanRemoveMember(RemoveMemberContext{UnitID: "UNIT-001", Name: "Alice", IsMember: true}); !r.Allowed {
		t.Error("expected member removal to be allowed")
	}
	r := CanRemoveMember(RemoveMemberContext{UnitID: "UNIT-001", Name: "Zed"})
	if r.Allowed || apperr.CodeOf(r.Error()) != apperr.CodeNotFound {
		t.Errorf("expected NotFound, got %+v", r)
	}
}
