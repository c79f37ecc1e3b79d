package session

import "gamecafe/backend/services/coordinator/internal/models"

// Observer receives session lifecycle notifications. Callbacks run
// synchronously on the mutating goroutine before the originating call
// returns, so implementations must not block.
type Observer interface {
	SessionStarted(session models.Session)
	SessionEnded(session models.Session)
}

// ObserverFuncs adapts plain functions to the Observer interface. Nil
// fields are skipped.
type ObserverFuncs struct {
	OnStarted func(session models.Session)
	OnEnded   func(session models.Session)
}

// SessionStarted implements Observer.
func (o ObserverFuncs) SessionStarted(session models.Session) {
	if o.OnStarted != nil {
		o.OnStarted(session)
	}
}

// SessionEnded implements Observer.
func (o ObserverFuncs) SessionEnded(session models.Session) {
	if o.OnEnded != nil {
		o.OnEnded(session)
	}
}
