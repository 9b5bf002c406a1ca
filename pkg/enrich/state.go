package enrich

import "sync"

// GenerationState is the two-state machine guarding re-entrancy for one
// note-editing session.
type GenerationState int

const (
	// Idle means no generation is running for the session.
	Idle GenerationState = iota

	// Generating means a generation call is in flight.
	Generating
)

// sessionGuard tracks the generation state per note-editing session.
// Acquire and release are the only transitions; release always returns
// the session to Idle regardless of how the generation ended.
type sessionGuard struct {
	mu       sync.Mutex
	sessions map[string]GenerationState
}

func newSessionGuard() *sessionGuard {
	return &sessionGuard{sessions: make(map[string]GenerationState)}
}

// acquire transitions the session from Idle to Generating. Returns false
// if the session is already Generating.
func (g *sessionGuard) acquire(sessionID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.sessions[sessionID] == Generating {
		return false
	}
	g.sessions[sessionID] = Generating
	return true
}

// release returns the session to Idle.
func (g *sessionGuard) release(sessionID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.sessions, sessionID)
}

// state reports the current state for the session.
func (g *sessionGuard) state(sessionID string) GenerationState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sessions[sessionID]
}
