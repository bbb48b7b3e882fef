// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package jabber

// EventName identifies the kind of an Event.
type EventName string

// A list of events emitted by the client.
const (
	EventConnected    EventName = "connected"
	EventDisconnected EventName = "disconnected"
	EventSent         EventName = "sent"
	EventReceived     EventName = "received"
	EventLoggedIn     EventName = "loggedin"
	EventSession      EventName = "session"
	EventRegistered   EventName = "registered"
	EventUnregistered EventName = "unregistered"
	EventRoster       EventName = "roster"
	EventSubscribe    EventName = "subscribe"
	EventMessage      EventName = "message"
	EventPresence     EventName = "presence"
	EventFailure      EventName = "failure"
)

// Event is something that happened on a client connection.
// Which fields are set depends on the name of the event.
type Event struct {
	Name EventName

	// XML is the raw data for EventSent and EventReceived.
	XML string

	// Roster maps contact addresses to their subscription state for
	// EventRoster.
	Roster map[string]string

	// Action is the ask attribute of a subscription request and JID is the
	// requesting contact for EventSubscribe.
	// For EventLoggedIn JID is the bound address.
	Action string
	JID    string

	Message  *Message
	Presence *Presence

	// Err is the reason for EventFailure.
	Err error
}

// Message is a received message with a body.
type Message struct {
	From    string
	To      string
	Body    string
	Subject string
	Thread  string

	// Fishing is set if the message was not addressed to the bound JID.
	// Such messages are often probes looking for whoever will reply.
	Fishing bool
}

// Presence is a received presence stanza.
type Presence struct {
	From   string
	To     string
	Type   string
	Show   string
	Status string
}

// Notifier receives events from a client.
// Events are delivered after the client has finished processing the data that
// caused them, so Notify may call methods on the client.
type Notifier interface {
	Notify(Event)
}

// NotifierFunc is an adapter to allow the use of ordinary functions as
// notifiers.
type NotifierFunc func(Event)

// Notify calls f(e).
func (f NotifierFunc) Notify(e Event) {
	f(e)
}

// Mux is an event multiplexer.
// It calls the notifier registered for the name of each event.
// A notifier registered for the empty name receives every event that has no
// notifier of its own.
type Mux struct {
	handlers map[EventName]Notifier
}

// MuxOption configures a Mux.
type MuxOption func(*Mux)

// NewMux allocates and returns a new Mux.
func NewMux(opt ...MuxOption) *Mux {
	m := &Mux{}
	for _, o := range opt {
		o(m)
	}
	return m
}

// Handle returns an option that registers n for events with the given name.
// Registering a name twice replaces the previous notifier.
func Handle(name EventName, n Notifier) MuxOption {
	return func(m *Mux) {
		if m.handlers == nil {
			m.handlers = make(map[EventName]Notifier)
		}
		m.handlers[name] = n
	}
}

// HandleFunc returns an option that registers f for events with the given
// name.
func HandleFunc(name EventName, f func(Event)) MuxOption {
	return Handle(name, NotifierFunc(f))
}

// Notifier returns the notifier for the given event name and whether one was
// registered.
func (m *Mux) Notifier(name EventName) (n Notifier, ok bool) {
	if n, ok = m.handlers[name]; ok {
		return n, true
	}
	n, ok = m.handlers[""]
	return n, ok
}

// Notify dispatches e to the matching notifier, if any.
func (m *Mux) Notify(e Event) {
	if n, ok := m.Notifier(e.Name); ok {
		n.Notify(e)
	}
}
