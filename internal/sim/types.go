package sim

import "github.com/san-kum/dronesim/internal/dynamo"

// ConnectionListener is notified on every connection transition.
// session is the id of the session that started or ended.
type ConnectionListener interface {
	OnConnectionChange(connected bool, session string)
}

// ObserverFunc adapts a function to dynamo.Observer.
type ObserverFunc func(f dynamo.Frame)

func (fn ObserverFunc) OnFrame(f dynamo.Frame) { fn(f) }

// ListenerFunc adapts a function to ConnectionListener.
type ListenerFunc func(connected bool, session string)

func (fn ListenerFunc) OnConnectionChange(connected bool, session string) { fn(connected, session) }
