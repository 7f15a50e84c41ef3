package http

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newGuardRouter(ttl time.Duration) *Routers {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRouter(log, nil, nil, nil, nil, []byte("secret"), time.Hour, time.Hour, ttl)
}

func TestGuardFor_DistinctPerSession(t *testing.T) {
	r := newGuardRouter(time.Hour)

	first := r.guardFor("sess-a")
	second := r.guardFor("sess-b")

	assert.NotSame(t, first, second)
	assert.Same(t, first, r.guardFor("sess-a"))
}

func TestGuardFor_ReclaimedAfterRedirectTTL(t *testing.T) {
	r := newGuardRouter(20 * time.Millisecond)

	stale := r.guardFor("sess-a")
	r.guardFor("sess-b")

	time.Sleep(50 * time.Millisecond)

	r.guards.DeleteExpired()
	assert.Equal(t, 0, r.guards.ItemCount())

	assert.NotSame(t, stale, r.guardFor("sess-a"))
}
