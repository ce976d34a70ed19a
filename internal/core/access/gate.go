package access

import (
	"sync"

	"github.com/foodsales/dashboard/internal/core/domain"
)

// Phase is the gate's view of the session.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseResolving
	PhaseUnauthenticated
	PhaseAuthenticated
)

func (p Phase) String() string {
	switch p {
	case PhaseResolving:
		return "resolving"
	case PhaseUnauthenticated:
		return "unauthenticated"
	case PhaseAuthenticated:
		return "authenticated"
	default:
		return "idle"
	}
}

// Navigator is the host routing layer.
type Navigator interface {
	Redirect(path string)
	CurrentPath() string
}

type OutcomeKind int

const (
	// Placeholder: identity is not settled yet; nothing may be decided.
	Placeholder OutcomeKind = iota
	// Render: the current path may be shown.
	Render
	// Redirected: a redirect was issued by this evaluation.
	Redirected
	// Latched: a redirect was already issued for this path and identity.
	Latched
	// Forbidden: access is denied and the only redirect target is the current path.
	Forbidden
)

const (
	ReasonUnauthenticated = "unauthenticated"
	ReasonDenied          = "denied"
	ReasonLoop            = "loop"
)

// Outcome is the result of one Evaluate call.
type Outcome struct {
	Kind   OutcomeKind
	Target string
	Reason string
}

// Ticket identifies one identity resolution.
type Ticket uint64

// Gate enforces route permissions on navigation. It issues at most one redirect
// per resolution cycle; the latch is released when the current path or the
// settled identity changes.
type Gate struct {
	policy    *Policy
	nav       Navigator
	loginPath string

	mu       sync.Mutex
	phase    Phase
	identity *domain.Identity
	path     string
	latched  bool
	target   string
	reason   string
	issued   Ticket
}

// NewGate returns a gate in PhaseIdle.
func NewGate(policy *Policy, nav Navigator) *Gate {
	if policy == nil {
		policy = DefaultPolicy()
	}
	return &Gate{policy: policy, nav: nav, loginPath: domain.LoginPath}
}

// BeginResolution marks an identity fetch as in flight and returns its ticket.
func (g *Gate) BeginResolution() Ticket {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.issued++
	g.phase = PhaseResolving
	return g.issued
}

// Settle applies the result of the resolution identified by t. Results of
// superseded resolutions, and tickets no BeginResolution issued, are dropped
// and Settle returns false. Any error, or a
// nil identity, settles the gate as unauthenticated.
func (g *Gate) Settle(t Ticket, identity *domain.Identity, err error) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if t == 0 || t != g.issued {
		return false
	}

	if err != nil {
		identity = nil
	}
	if !identity.Equal(g.identity) {
		g.latched = false
	}
	g.identity = identity
	if identity == nil {
		g.phase = PhaseUnauthenticated
	} else {
		g.phase = PhaseAuthenticated
	}
	return true
}

// Evaluate decides what to do with the navigator's current path. Navigation is
// the only side effect.
func (g *Gate) Evaluate() Outcome {
	path := g.nav.CurrentPath()

	g.mu.Lock()
	if path != g.path {
		g.path = path
		g.latched = false
	}

	out := g.decide(path)
	if out.Kind == Redirected {
		g.latched = true
		g.target = out.Target
		g.reason = out.Reason
	}
	g.mu.Unlock()

	if out.Kind == Redirected {
		g.nav.Redirect(out.Target)
	}
	return out
}

func (g *Gate) decide(path string) Outcome {
	switch g.phase {
	case PhaseIdle, PhaseResolving:
		return Outcome{Kind: Placeholder}

	case PhaseUnauthenticated:
		if path == g.loginPath {
			return Outcome{Kind: Render}
		}
		return g.redirect(g.loginPath, ReasonUnauthenticated)

	default:
		roles := g.identity.Roles()
		if g.policy.CanAccess(roles, g.identity.IsAdmin, path) {
			return Outcome{Kind: Render}
		}
		home := g.policy.HomePage(roles, g.identity.IsAdmin)
		if home == path {
			return Outcome{Kind: Forbidden, Target: home, Reason: ReasonLoop}
		}
		return g.redirect(home, ReasonDenied)
	}
}

func (g *Gate) redirect(target, reason string) Outcome {
	if g.latched {
		return Outcome{Kind: Latched, Target: g.target, Reason: g.reason}
	}
	return Outcome{Kind: Redirected, Target: target, Reason: reason}
}

// Phase returns the current phase.
func (g *Gate) Phase() Phase {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.phase
}

// Identity returns the settled identity, or nil.
func (g *Gate) Identity() *domain.Identity {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.identity
}
