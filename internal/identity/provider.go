package identity

import (
	"context"

	"golden_hour/internal/lib/jwt"
)

type Status int

const (
	// StatusInitializing means the provider has not finished bootstrapping;
	// an absent identity in this state says nothing about the caller yet.
	StatusInitializing Status = iota
	StatusReady
)

// Snapshot is one observation of the caller's identity. Identity is an
// opaque principal string, empty when no identity is present.
type Snapshot struct {
	Status   Status
	Identity string
}

func (s Snapshot) Authenticated() bool {
	return s.Status == StatusReady && s.Identity != ""
}

// Provider yields the caller identity for authorization decisions.
type Provider interface {
	Current(ctx context.Context) Snapshot
}

// Static is a fixed snapshot provider, used in tests and for the anonymous
// public surface.
type Static struct {
	Snap Snapshot
}

func (s Static) Current(context.Context) Snapshot {
	return s.Snap
}

// Anonymous is the ready-but-absent identity of unauthenticated callers.
func Anonymous() Provider {
	return Static{Snap: Snapshot{Status: StatusReady}}
}

// TokenProvider derives the identity from a bearer session token. An
// unparseable token degrades to the anonymous identity rather than an
// error; authorization happens downstream against the remote role lookup.
type TokenProvider struct {
	Token  string
	Secret []byte
}

func (p TokenProvider) Current(context.Context) Snapshot {
	if p.Token == "" {
		return Snapshot{Status: StatusReady}
	}

	sub, err := jwt.Parse(p.Token, p.Secret)
	if err != nil {
		return Snapshot{Status: StatusReady}
	}

	return Snapshot{Status: StatusReady, Identity: sub}
}
