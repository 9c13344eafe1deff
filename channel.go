package irc

import (
	"sort"
	"sync"
)

// Channel tracks one joined channel: its topic and member nicknames.
type Channel struct {
	name string

	mu      sync.Mutex
	topic   string
	members map[string]struct{}
}

func NewChannel(name string) *Channel {
	return &Channel{
		name:    name,
		members: make(map[string]struct{}),
	}
}

// Name returns the channel name.
func (ch *Channel) Name() string {
	return ch.name
}

// Topic returns the last observed topic.
func (ch *Channel) Topic() string {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return ch.topic
}

// Members returns the member nicknames, sorted.
func (ch *Channel) Members() []string {
	ch.mu.Lock()
	defer ch.mu.Unlock()

	out := make([]string, 0, len(ch.members))
	for nickname := range ch.members {
		out = append(out, nickname)
	}
	sort.Strings(out)
	return out
}

// HasMember reports whether the nickname is a known member.
func (ch *Channel) HasMember(nickname string) bool {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	_, ok := ch.members[nickname]
	return ok
}

func (ch *Channel) setTopic(topic string) {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	ch.topic = topic
}

func (ch *Channel) addMember(nickname string) {
	if nickname == "" {
		return
	}
	ch.mu.Lock()
	defer ch.mu.Unlock()
	ch.members[nickname] = struct{}{}
}

func (ch *Channel) removeMember(nickname string) {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	delete(ch.members, nickname)
}

func (ch *Channel) renameMember(oldNickname, newNickname string) {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	if _, ok := ch.members[oldNickname]; ok {
		delete(ch.members, oldNickname)
		ch.members[newNickname] = struct{}{}
	}
}
