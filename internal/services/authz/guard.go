package authz

import (
	"context"
	"log/slog"
	"sync"

	"golden_hour/internal/identity"
	"golden_hour/internal/lib/logger/sl"
	"golden_hour/internal/remote"
)

// State is the authorization state machine, one tag per possible caller
// situation. Conditional rendering dispatches on the tag, never on loose
// boolean flags.
type State int

const (
	StateInitializing State = iota
	StateUnauthenticated
	StateUnknownRole
	StateAdmin
	StateNonAdmin
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateUnknownRole:
		return "authenticated-unknown-role"
	case StateAdmin:
		return "authenticated-admin"
	case StateNonAdmin:
		return "authenticated-non-admin"
	}
	return "unknown"
}

// RoleResult is the outcome of the remote role lookup. Resolved is false
// while the lookup is pending or failed; the caller stays in UnknownRole.
type RoleResult struct {
	Resolved bool
	IsAdmin  bool
}

// Reduce is the pure transition function from an identity snapshot and a
// role lookup outcome to the authorization state.
func Reduce(snap identity.Snapshot, role RoleResult) State {
	switch {
	case snap.Status == identity.StatusInitializing:
		return StateInitializing
	case !snap.Authenticated():
		return StateUnauthenticated
	case !role.Resolved:
		return StateUnknownRole
	case role.IsAdmin:
		return StateAdmin
	default:
		return StateNonAdmin
	}
}

// Decision tells the consumer what to present for the current state.
type Decision int

const (
	// DecisionLoading covers initializing and unknown-role.
	DecisionLoading Decision = iota
	// DecisionRedirect is emitted exactly once when the caller turns out
	// unauthenticated after initialization completed.
	DecisionRedirect
	// DecisionNone renders nothing; the unauthenticated caller was already
	// redirected.
	DecisionNone
	// DecisionDeny renders the access-denied view for non-admins.
	DecisionDeny
	// DecisionAllow renders the protected content. Only reachable from
	// StateAdmin.
	DecisionAllow
)

// RoleResolver answers whether a caller is an admin. Satisfied by the query
// service so role lookups share the cache and its de-duplication.
type RoleResolver interface {
	IsAdmin(ctx context.Context, caller remote.Backend, identityID string) (bool, error)
}

// Navigator receives the one-shot redirect side effect.
type Navigator interface {
	RedirectToPublicRoot()
}

// Guard evaluates authorization for one caller session. The redirect effect
// is tracked per guard so re-evaluating while still unauthenticated never
// re-triggers it.
type Guard struct {
	log   *slog.Logger
	roles RoleResolver
	nav   Navigator

	mu         sync.Mutex
	state      State
	redirected bool
}

func NewGuard(log *slog.Logger, roles RoleResolver, nav Navigator) *Guard {
	return &Guard{
		log:   log,
		roles: roles,
		nav:   nav,
		state: StateInitializing,
	}
}

// State returns the last evaluated state.
func (g *Guard) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Evaluate advances the state machine for the caller and returns the
// rendering decision. Protected content is allowed only when the role
// lookup has completed and returned admin.
func (g *Guard) Evaluate(ctx context.Context, caller remote.Backend, snap identity.Snapshot) (State, Decision) {
	role := RoleResult{}

	if snap.Authenticated() {
		isAdmin, err := g.roles.IsAdmin(ctx, caller, snap.Identity)
		if err != nil {
			// Lookup did not resolve; the caller stays in unknown-role and
			// the consumer keeps showing the loading state.
			g.log.Warn("role resolution failed", sl.Err(err))
		} else {
			role = RoleResult{Resolved: true, IsAdmin: isAdmin}
		}
	}

	state := Reduce(snap, role)

	g.mu.Lock()
	prev := g.state
	g.state = state
	redirect := false
	if state == StateUnauthenticated && !g.redirected {
		g.redirected = true
		redirect = true
	}
	g.mu.Unlock()

	if prev != state {
		g.log.Debug("authorization state changed",
			slog.String("from", prev.String()),
			slog.String("to", state.String()),
		)
	}

	switch state {
	case StateInitializing, StateUnknownRole:
		return state, DecisionLoading
	case StateUnauthenticated:
		if redirect {
			if g.nav != nil {
				g.nav.RedirectToPublicRoot()
			}
			return state, DecisionRedirect
		}
		return state, DecisionNone
	case StateNonAdmin:
		return state, DecisionDeny
	default:
		return state, DecisionAllow
	}
}
