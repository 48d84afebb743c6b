// Package router implements the thin command router of spec.md §3.17:
// a session table keyed by connection id, a tokenizer for the
// canonical command surface (spec.md §6), and dispatch into engine
// operations. It returns structured Results, never prose — formatting
// engine events into text is the out-of-scope renderer's job.
package router

import (
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"ownworld/internal/ids"
)

// Session binds one connection to its avatar and a per-connection
// input rate limiter, the way the teacher's middlewareSecurity keys a
// rate.Limiter per client IP (utils.go getLimiter) — here keyed per
// session instead of per address, since the transport is out of scope.
type Session struct {
	ID      uuid.UUID
	Avatar  ids.EntityID
	Admin   bool
	limiter *rate.Limiter
}

// newSession allocates a session id and a fresh limiter allowing burst
// b requests at rate r per second.
func newSession(r float64, b int) *Session {
	return &Session{ID: uuid.New(), limiter: rate.NewLimiter(rate.Limit(r), b)}
}

// Allow reports whether this session may submit another input line
// right now.
func (s *Session) Allow() bool { return s.limiter.Allow() }
