package irc

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/sienna/irc/protocol"
)

const (
	// DefaultTimeout is the deadline armed on every issued sequence.
	DefaultTimeout = 5 * time.Second

	// DefaultNickAttempts bounds the nickname-collision retries during
	// registration.
	DefaultNickAttempts = 3
)

// Identity holds the client's connection identity.
type Identity struct {
	Nickname string
	User     string
	Realname string
}

// MessageHandler handles one inbound message for a subscribed command.
type MessageHandler func(msg *protocol.Message)

// LineWriter is the outbound transport boundary: it accepts one complete
// line and appends the protocol terminator before writing to the wire.
type LineWriter interface {
	WriteLine(line string) error
}

// Config holds the tunables of a Client. The zero value uses defaults.
type Config struct {
	// Timeout is the deadline armed on each issued sequence.
	// Zero means DefaultTimeout.
	Timeout time.Duration

	// NickAttempts is the maximum number of registration attempts when the
	// nickname collides. Zero means DefaultNickAttempts.
	NickAttempts int

	// Logger receives parse failures and engine diagnostics.
	// Nil means slog.Default().
	Logger *slog.Logger
}

// Client is the protocol engine bound to one connection. It owns the
// command subscriptions, the set of in-flight sequences and the send
// boundary.
//
// The engine expects single-writer discipline: HandleLine and the
// command-issuing methods must not be called concurrently for the same
// Client. Internal state is still lock-guarded because sequence timeouts
// fire from timer goroutines.
type Client struct {
	config    Config
	transport LineWriter
	factory   *CommandFactory
	bus       *EventBus
	logger    *slog.Logger

	mu            sync.Mutex
	identity      Identity
	subscriptions map[protocol.Command][]MessageHandler
	active        []*Sequence
	nickAttempts  int
}

// NewClient builds an engine for one connection. The transport only needs
// to deliver inbound lines to HandleLine and implement LineWriter for
// outbound ones.
func NewClient(transport LineWriter, identity Identity, config Config) *Client {
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	if config.NickAttempts == 0 {
		config.NickAttempts = DefaultNickAttempts
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	client := &Client{
		config:        config,
		transport:     transport,
		bus:           NewEventBus(),
		logger:        config.Logger,
		identity:      identity,
		subscriptions: make(map[protocol.Command][]MessageHandler),
	}
	client.factory = NewCommandFactory(client.Identity)
	client.subscribeEvents()

	return client
}

// Identity returns the current connection identity.
func (c *Client) Identity() Identity {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.identity
}

// Bus returns the engine's event bus.
func (c *Client) Bus() *EventBus {
	return c.bus
}

// Observe registers an observer on the engine's event bus.
func (c *Client) Observe(observer any, configure func(*ObserverConfig)) {
	c.bus.Observe(observer, configure)
}

// Subscribe appends a handler for every inbound message bearing the
// command, independent of sequence correlation. Subscriptions persist for
// the engine's lifetime.
func (c *Client) Subscribe(command protocol.Command, handler MessageHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscriptions[command] = append(c.subscriptions[command], handler)
}

// Issue arms the sequence's timeout, adds it to the active set and
// transmits the messages in order. The sequence leaves the active set when
// it reaches a terminal state. Callbacks may be registered on the sequence
// before or after Issue; late registrations fire with the recorded outcome.
func (c *Client) Issue(sequence *Sequence, messages ...*protocol.Message) error {
	sequence.OnTimeout(func() { c.removeSequence(sequence) })
	sequence.StartTimeout(c.config.Timeout)

	c.mu.Lock()
	c.active = append(c.active, sequence)
	c.mu.Unlock()

	for _, message := range messages {
		if err := c.transport.WriteLine(message.String()); err != nil {
			c.removeSequence(sequence)
			return err
		}
	}
	return nil
}

// HandleLine processes one decoded inbound line. Unparseable lines are
// logged and dropped; they never take the connection down.
func (c *Client) HandleLine(line string) {
	message, err := protocol.ParseMessage(line)
	if err != nil {
		c.logger.Warn("irc: dropping unparseable line", "line", line, "error", err)
		return
	}
	c.handleMessage(message)
}

// handleMessage dispatches one message: ping answering, then command
// subscribers in registration order, then correlation against every active
// sequence, then a sweep of the sequences that went terminal.
func (c *Client) handleMessage(message *protocol.Message) {
	// Fixed keep-alive rule, ahead of all subscription machinery.
	if message.Command == protocol.CmdPing {
		if err := c.send(protocol.NewMessage(protocol.CmdPong, message.Params...)); err != nil {
			c.logger.Error("irc: failed to answer ping", "error", err)
		}
	}

	c.mu.Lock()
	handlers := append([]MessageHandler(nil), c.subscriptions[message.Command]...)
	c.mu.Unlock()

	for _, handler := range handlers {
		handler(message)
	}

	c.mu.Lock()
	active := append([]*Sequence(nil), c.active...)
	c.mu.Unlock()

	for _, sequence := range active {
		sequence.Collect(message)
	}

	c.mu.Lock()
	kept := c.active[:0]
	for _, sequence := range c.active {
		if !sequence.Done() {
			kept = append(kept, sequence)
		}
	}
	c.active = kept
	c.mu.Unlock()
}

// Register performs the registration handshake: NICK and USER, completing
// on RPL_WELCOME. A nickname collision mutates the nickname and retries
// through the same issue path, up to Config.NickAttempts attempts; the
// caller's error handler fires only when no retry remains.
func (c *Client) Register(onSuccess SuccessHandler, onError ErrorHandler, onTimeout TimeoutHandler) error {
	messages, sequence, err := c.factory.Create("register")
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.nickAttempts = 1
	c.mu.Unlock()

	return c.issueRegistration(sequence, onSuccess, onError, onTimeout, messages...)
}

func (c *Client) issueRegistration(sequence *Sequence, onSuccess SuccessHandler, onError ErrorHandler, onTimeout TimeoutHandler, messages ...*protocol.Message) error {
	if onSuccess != nil {
		sequence.OnSuccess(onSuccess)
	}
	if onTimeout != nil {
		sequence.OnTimeout(onTimeout)
	}

	sequence.OnError(func(collected []*protocol.Message, cause *protocol.Message) {
		if c.retryRegistration(onSuccess, onError, onTimeout, cause) {
			return
		}
		if onError != nil {
			onError(collected, cause)
		}
	})

	return c.Issue(sequence, messages...)
}

// retryRegistration handles a nickname collision during registration. It
// reports whether a retry was issued.
func (c *Client) retryRegistration(onSuccess SuccessHandler, onError ErrorHandler, onTimeout TimeoutHandler, cause *protocol.Message) bool {
	switch cause.Command {
	case protocol.ErrNicknameinuse, protocol.ErrNickcollision:
	default:
		return false
	}

	c.mu.Lock()
	if c.nickAttempts >= c.config.NickAttempts {
		c.mu.Unlock()
		return false
	}
	c.nickAttempts++
	c.identity.Nickname += "_"
	nickname := c.identity.Nickname
	c.mu.Unlock()

	c.logger.Info("irc: nickname in use, retrying", "nickname", nickname)

	message := protocol.NewMessage(protocol.CmdNick, nickname)
	if err := c.issueRegistration(NewRegistrationSequence(), onSuccess, onError, onTimeout, message); err != nil {
		c.logger.Error("irc: registration retry failed", "error", err)
		return false
	}
	return true
}

// Nick issues a nickname change. The engine adopts the new nickname when
// the sequence succeeds.
func (c *Client) Nick(nickname string) (*Sequence, error) {
	sequence, err := c.issueCommand("nick", nickname)
	if err != nil {
		return nil, err
	}
	sequence.OnSuccess(func([]*protocol.Message) {
		c.mu.Lock()
		c.identity.Nickname = nickname
		c.mu.Unlock()
	})
	return sequence, nil
}

// Join issues a JOIN for the channel.
func (c *Client) Join(channel string) (*Sequence, error) {
	return c.issueCommand("join", channel)
}

// Part issues a PART for the channel.
func (c *Client) Part(channel string) (*Sequence, error) {
	return c.issueCommand("part", channel)
}

// Quit issues a QUIT with an optional parting message.
func (c *Client) Quit(message string) (*Sequence, error) {
	if message == "" {
		return c.issueCommand("quit")
	}
	return c.issueCommand("quit", message)
}

// Names issues a NAMES query for the channel.
func (c *Client) Names(channel string) (*Sequence, error) {
	return c.issueCommand("names", channel)
}

// Who issues a WHO query for the channel.
func (c *Client) Who(channel string) (*Sequence, error) {
	return c.issueCommand("who", channel)
}

// Whois issues a WHOIS query for the nickname.
func (c *Client) Whois(nickname string) (*Sequence, error) {
	return c.issueCommand("whois", nickname)
}

// Privmsg sends a message to a channel or user. PRIVMSG has no reply, so
// there is no sequence to track.
func (c *Client) Privmsg(target, text string) error {
	return c.send(protocol.NewMessage(protocol.CmdPrivmsg, target, text))
}

// Notice sends a notice to a channel or user.
func (c *Client) Notice(target, text string) error {
	return c.send(protocol.NewMessage(protocol.CmdNotice, target, text))
}

func (c *Client) issueCommand(name string, args ...string) (*Sequence, error) {
	messages, sequence, err := c.factory.Create(name, args...)
	if err != nil {
		return nil, err
	}
	if err := c.Issue(sequence, messages...); err != nil {
		return nil, err
	}
	return sequence, nil
}

func (c *Client) send(message *protocol.Message) error {
	return c.transport.WriteLine(message.String())
}

func (c *Client) removeSequence(sequence *Sequence) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, active := range c.active {
		if active == sequence {
			c.active = append(c.active[:i], c.active[i+1:]...)
			return
		}
	}
}

// subscribeEvents wires the protocol messages that map to bus events. Each
// protocol occurrence publishes exactly one event, in receipt order.
func (c *Client) subscribeEvents() {
	c.Subscribe(protocol.CmdJoin, func(msg *protocol.Message) {
		if len(msg.Params) < 1 {
			return
		}
		c.bus.Publish(EventUserJoin, msg.Params[0], msg.Nick())
	})

	c.Subscribe(protocol.CmdPart, func(msg *protocol.Message) {
		if len(msg.Params) < 1 {
			return
		}
		var text string
		if len(msg.Params) > 1 {
			text = msg.Trailing()
		}
		c.bus.Publish(EventUserPart, msg.Params[0], msg.Nick(), text)
	})

	c.Subscribe(protocol.CmdKick, func(msg *protocol.Message) {
		if len(msg.Params) < 2 {
			return
		}
		var text string
		if len(msg.Params) > 2 {
			text = msg.Trailing()
		}
		c.bus.Publish(EventUserKick, msg.Params[0], msg.Params[1], msg.Nick(), text)
	})

	c.Subscribe(protocol.CmdQuit, func(msg *protocol.Message) {
		c.bus.Publish(EventUserQuit, msg.Nick(), msg.Trailing())
	})

	c.Subscribe(protocol.CmdNick, func(msg *protocol.Message) {
		if len(msg.Params) < 1 {
			return
		}
		c.bus.Publish(EventNickChange, msg.Nick(), msg.Params[0])
	})

	c.Subscribe(protocol.CmdTopic, func(msg *protocol.Message) {
		if len(msg.Params) < 2 {
			return
		}
		c.bus.Publish(EventTopicChange, msg.Params[0], msg.Trailing())
	})

	c.Subscribe(protocol.RplTopic, func(msg *protocol.Message) {
		if len(msg.Params) < 3 {
			return
		}
		c.bus.Publish(EventTopicChange, msg.Params[1], msg.Trailing())
	})

	c.Subscribe(protocol.CmdPrivmsg, func(msg *protocol.Message) {
		if len(msg.Params) < 2 {
			return
		}
		target, text := msg.Params[0], msg.Trailing()
		if strings.HasPrefix(target, "#") || strings.HasPrefix(target, "&") {
			c.bus.Publish(EventChannelMessage, target, msg.Nick(), text)
		} else {
			c.bus.Publish(EventUserMessage, msg.Nick(), text)
		}
	})

	c.Subscribe(protocol.RplWhoisuser, func(msg *protocol.Message) {
		if len(msg.Params) < 4 {
			return
		}
		c.bus.Publish(EventWhoisReply,
			msg.Params[1], msg.Params[2], msg.Params[3], msg.Trailing())
	})
}
