package irc

import (
	"strings"
	"sync"

	"github.com/sienna/irc/protocol"
)

// ChannelList keeps the joined channels synchronized with the engine's bus
// events: joins, parts, kicks, quits and topic changes.
type ChannelList struct {
	client *Client

	mu       sync.Mutex
	channels map[string]*Channel
}

func NewChannelList(client *Client) *ChannelList {
	list := &ChannelList{
		client:   client,
		channels: make(map[string]*Channel),
	}

	client.Observe(list, func(cfg *ObserverConfig) {
		cfg.On(EventUserJoin, list.onUserJoin)
		cfg.On(EventUserPart, list.onUserPart)
		cfg.On(EventUserKick, list.onUserKick)
		cfg.On(EventUserQuit, list.onUserQuit)
		cfg.On(EventTopicChange, list.onTopicChange)
		cfg.On(EventNickChange, list.onNickChange)
	})

	return list
}

// Join issues a JOIN and records the topic and member list carried by the
// join replies once the sequence succeeds.
func (l *ChannelList) Join(channel string) (*Sequence, error) {
	sequence, err := l.client.Join(channel)
	if err != nil {
		return nil, err
	}

	sequence.OnSuccess(func(messages []*protocol.Message) {
		ch := l.getOrCreate(channel)
		for _, msg := range messages {
			switch msg.Command {
			case protocol.RplTopic:
				ch.setTopic(msg.Trailing())
			case protocol.RplNamreply:
				for _, name := range strings.Fields(msg.Trailing()) {
					ch.addMember(strings.TrimLeft(name, "@+"))
				}
			}
		}
	})

	return sequence, nil
}

// Part issues a PART and forgets the channel once the sequence succeeds.
func (l *ChannelList) Part(channel string) (*Sequence, error) {
	sequence, err := l.client.Part(channel)
	if err != nil {
		return nil, err
	}
	sequence.OnSuccess(func([]*protocol.Message) {
		l.mu.Lock()
		delete(l.channels, channel)
		l.mu.Unlock()
	})
	return sequence, nil
}

// Channel returns the tracked channel, or nil if unknown.
func (l *ChannelList) Channel(name string) *Channel {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.channels[name]
}

// Names returns the tracked channel names.
func (l *ChannelList) Names() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]string, 0, len(l.channels))
	for name := range l.channels {
		out = append(out, name)
	}
	return out
}

// Len returns the number of tracked channels.
func (l *ChannelList) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.channels)
}

func (l *ChannelList) getOrCreate(name string) *Channel {
	l.mu.Lock()
	defer l.mu.Unlock()

	ch, ok := l.channels[name]
	if !ok {
		ch = NewChannel(name)
		l.channels[name] = ch
	}
	return ch
}

func (l *ChannelList) onUserJoin(_ Event, args ...any) {
	channel, nickname, ok := channelNickArgs(args)
	if !ok {
		return
	}
	l.getOrCreate(channel).addMember(nickname)
}

func (l *ChannelList) onUserPart(_ Event, args ...any) {
	channel, nickname, ok := channelNickArgs(args)
	if !ok {
		return
	}
	if ch := l.Channel(channel); ch != nil {
		ch.removeMember(nickname)
	}
}

func (l *ChannelList) onUserKick(_ Event, args ...any) {
	channel, nickname, ok := channelNickArgs(args)
	if !ok {
		return
	}
	if ch := l.Channel(channel); ch != nil {
		ch.removeMember(nickname)
	}
}

func (l *ChannelList) onUserQuit(_ Event, args ...any) {
	if len(args) < 1 {
		return
	}
	nickname, ok := args[0].(string)
	if !ok {
		return
	}

	l.mu.Lock()
	channels := make([]*Channel, 0, len(l.channels))
	for _, ch := range l.channels {
		channels = append(channels, ch)
	}
	l.mu.Unlock()

	for _, ch := range channels {
		ch.removeMember(nickname)
	}
}

func (l *ChannelList) onTopicChange(_ Event, args ...any) {
	if len(args) < 2 {
		return
	}
	channel, ok1 := args[0].(string)
	topic, ok2 := args[1].(string)
	if !ok1 || !ok2 {
		return
	}
	if ch := l.Channel(channel); ch != nil {
		ch.setTopic(topic)
	}
}

func (l *ChannelList) onNickChange(_ Event, args ...any) {
	if len(args) < 2 {
		return
	}
	oldNickname, ok1 := args[0].(string)
	newNickname, ok2 := args[1].(string)
	if !ok1 || !ok2 {
		return
	}

	l.mu.Lock()
	channels := make([]*Channel, 0, len(l.channels))
	for _, ch := range l.channels {
		channels = append(channels, ch)
	}
	l.mu.Unlock()

	for _, ch := range channels {
		ch.renameMember(oldNickname, newNickname)
	}
}

func channelNickArgs(args []any) (channel, nickname string, ok bool) {
	if len(args) < 2 {
		return "", "", false
	}
	channel, ok1 := args[0].(string)
	nickname, ok2 := args[1].(string)
	return channel, nickname, ok1 && ok2
}

// UserList keeps the known users synchronized with nick changes, whois
// replies and quits.
type UserList struct {
	client *Client

	mu    sync.Mutex
	users map[string]*User
}

func NewUserList(client *Client) *UserList {
	list := &UserList{
		client: client,
		users:  make(map[string]*User),
	}

	client.Observe(list, func(cfg *ObserverConfig) {
		cfg.On(EventNickChange, list.onNickChange)
		cfg.On(EventWhoisReply, list.onWhoisReply)
		cfg.On(EventUserQuit, list.onUserQuit)
	})

	return list
}

// User returns the tracked user for a nickname, creating it when unknown.
func (l *UserList) User(nickname string) *User {
	l.mu.Lock()
	defer l.mu.Unlock()

	user, ok := l.users[nickname]
	if !ok {
		user = NewUser(nickname)
		l.users[nickname] = user
	}
	return user
}

// Has reports whether the nickname is tracked.
func (l *UserList) Has(nickname string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.users[nickname]
	return ok
}

// Len returns the number of tracked users.
func (l *UserList) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.users)
}

// Synchronize ensures the user's whois-backed attributes are known,
// issuing a WHOIS unless they already are. The returned sequence is nil
// when no query was needed.
func (l *UserList) Synchronize(nickname string) (*Sequence, error) {
	if l.User(nickname).Synchronized() {
		return nil, nil
	}
	return l.client.Whois(nickname)
}

func (l *UserList) onNickChange(_ Event, args ...any) {
	if len(args) < 2 {
		return
	}
	oldNickname, ok1 := args[0].(string)
	newNickname, ok2 := args[1].(string)
	if !ok1 || !ok2 {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if user, ok := l.users[oldNickname]; ok {
		user.setNickname(newNickname)
		delete(l.users, oldNickname)
		l.users[newNickname] = user
	}
}

func (l *UserList) onWhoisReply(_ Event, args ...any) {
	if len(args) < 4 {
		return
	}
	nickname, ok := args[0].(string)
	if !ok {
		return
	}
	user, ok1 := args[1].(string)
	host, ok2 := args[2].(string)
	realname, ok3 := args[3].(string)
	if !ok1 || !ok2 || !ok3 {
		return
	}

	l.User(nickname).setWhois(user, host, realname)
}

func (l *UserList) onUserQuit(_ Event, args ...any) {
	if len(args) < 1 {
		return
	}
	nickname, ok := args[0].(string)
	if !ok {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.users, nickname)
}
