package irc

import (
	"sync"
)

// Event names a bus event. The engine publishes the events below; any
// component may publish its own.
type Event string

// Engine-published events and their positional arguments.
const (
	EventUserJoin       Event = "user_join"       // channel, nickname
	EventUserPart       Event = "user_part"       // channel, nickname, message
	EventUserKick       Event = "user_kick"       // channel, nickname, by, message
	EventUserQuit       Event = "user_quit"       // nickname, message
	EventNickChange     Event = "nick_change"     // old nickname, new nickname
	EventTopicChange    Event = "topic_change"    // channel, topic
	EventChannelMessage Event = "channel_message" // channel, nickname, text
	EventUserMessage    Event = "user_message"    // nickname, text
	EventWhoisReply     Event = "whois_reply"     // nickname, user, host, realname
)

// EventHandler receives a published event with its positional arguments.
// Both closures and method values work.
type EventHandler func(event Event, args ...any)

// Predicate decides whether a handler fires for one publication. It
// receives the same positional arguments as the event.
type Predicate func(args ...any) bool

type eventBinding struct {
	handler EventHandler
	when    Predicate
}

// Binding is one handler registration; When attaches an optional filter.
type Binding struct {
	binding *eventBinding
}

// When restricts the handler to publications for which the predicate
// returns true.
func (b *Binding) When(predicate Predicate) *Binding {
	b.binding.when = predicate
	return b
}

type observerEntry struct {
	observer any
	events   map[Event][]*eventBinding
}

// ObserverConfig collects the event bindings of one Observe call.
type ObserverConfig struct {
	entry *observerEntry
}

// On binds a handler to an event.
func (c *ObserverConfig) On(event Event, handler EventHandler) *Binding {
	binding := &eventBinding{handler: handler}
	c.entry.events[event] = append(c.entry.events[event], binding)
	return &Binding{binding: binding}
}

// EventBus is a filtered publish/subscribe dispatcher. Observers register
// interest in named events with optional predicates; publishing invokes
// every matching handler in subscription order. The zero value is not
// usable; use NewEventBus.
type EventBus struct {
	mu        sync.Mutex
	observers []*observerEntry
}

func NewEventBus() *EventBus {
	return &EventBus{}
}

// Observe registers an observer's event bindings. Observing with an
// already-registered observer merges the new bindings into its existing
// entry instead of creating a duplicate. The observer must be comparable
// (typically a pointer).
func (b *EventBus) Observe(observer any, configure func(*ObserverConfig)) {
	b.mu.Lock()
	defer b.mu.Unlock()

	entry := b.findLocked(observer)
	if entry == nil {
		entry = &observerEntry{
			observer: observer,
			events:   make(map[Event][]*eventBinding),
		}
		b.observers = append(b.observers, entry)
	}

	configure(&ObserverConfig{entry: entry})
}

// RemoveObserver drops every binding of the observer.
func (b *EventBus) RemoveObserver(observer any) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, entry := range b.observers {
		if entry.observer == observer {
			b.observers = append(b.observers[:i], b.observers[i+1:]...)
			return
		}
	}
}

// Publish invokes every registered handler for the event whose predicate
// (if any) accepts the arguments, in subscription order. Handlers run
// against a snapshot of the registrations, so they may observe or
// unsubscribe during delivery.
func (b *EventBus) Publish(event Event, args ...any) {
	b.mu.Lock()
	var bindings []*eventBinding
	for _, entry := range b.observers {
		bindings = append(bindings, entry.events[event]...)
	}
	b.mu.Unlock()

	for _, binding := range bindings {
		if binding.when != nil && !binding.when(args...) {
			continue
		}
		binding.handler(event, args...)
	}
}

func (b *EventBus) findLocked(observer any) *observerEntry {
	for _, entry := range b.observers {
		if entry.observer == observer {
			return entry
		}
	}
	return nil
}
