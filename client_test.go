package irc

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sienna/irc/internal/testutils"
	"github.com/sienna/irc/protocol"
)

func newTestClient(t *testing.T, config Config) (*Client, *testutils.TransportMock) {
	t.Helper()

	mock := testutils.NewTransportMock()
	if config.Logger == nil {
		config.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	client := NewClient(mock, Identity{
		Nickname: "tom",
		User:     "tom",
		Realname: "Major Tom",
	}, config)
	return client, mock
}

func (c *Client) activeCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.active)
}

func TestClientAnswersPing(t *testing.T) {
	client, mock := newTestClient(t, Config{})

	client.HandleLine("PING :irc.example.org")
	require.Equal(t, "PONG :irc.example.org", mock.LastLine())
}

func TestClientDropsUnparseableLine(t *testing.T) {
	client, mock := newTestClient(t, Config{})

	client.HandleLine(":irc.example.org BOGUS123 foo")
	require.Empty(t, mock.Lines())
}

func TestClientSubscribeOrder(t *testing.T) {
	client, _ := newTestClient(t, Config{})

	var order []string
	client.Subscribe(protocol.CmdPrivmsg, func(*protocol.Message) { order = append(order, "first") })
	client.Subscribe(protocol.CmdPrivmsg, func(*protocol.Message) { order = append(order, "second") })

	client.HandleLine(":joe!joe@host PRIVMSG tom :hello")
	require.Equal(t, []string{"first", "second"}, order)
}

func TestClientRegister(t *testing.T) {
	client, mock := newTestClient(t, Config{})

	var succeeded bool
	err := client.Register(
		func([]*protocol.Message) { succeeded = true },
		nil, nil,
	)
	require.NoError(t, err)
	require.Equal(t, []string{"NICK :tom", "USER tom 0 * :Major Tom"}, mock.Lines())

	client.HandleLine(":irc.example.org 001 tom :Welcome to the network")
	require.True(t, succeeded)
	require.Equal(t, 0, client.activeCount())
}

func TestClientRegistrationRetriesOnCollision(t *testing.T) {
	client, mock := newTestClient(t, Config{})

	var succeeded bool
	var failures int
	err := client.Register(
		func([]*protocol.Message) { succeeded = true },
		func([]*protocol.Message, *protocol.Message) { failures++ },
		nil,
	)
	require.NoError(t, err)

	client.HandleLine(":irc.example.org 433 * tom :Nickname is already in use")
	require.Equal(t, "NICK :tom_", mock.LastLine())
	require.Equal(t, 0, failures)

	client.HandleLine(":irc.example.org 433 * tom_ :Nickname is already in use")
	require.Equal(t, "NICK :tom__", mock.LastLine())
	require.Equal(t, "tom__", client.Identity().Nickname)

	client.HandleLine(":irc.example.org 001 tom__ :Welcome to the network")
	require.True(t, succeeded)
	require.Equal(t, 0, failures)
}

func TestClientRegistrationGivesUpAfterAttempts(t *testing.T) {
	client, _ := newTestClient(t, Config{NickAttempts: 2})

	var failures int
	var cause *protocol.Message
	err := client.Register(nil,
		func(_ []*protocol.Message, c *protocol.Message) {
			failures++
			cause = c
		},
		nil,
	)
	require.NoError(t, err)

	client.HandleLine(":irc.example.org 433 * tom :Nickname is already in use")
	require.Equal(t, 0, failures)

	client.HandleLine(":irc.example.org 433 * tom_ :Nickname is already in use")
	require.Equal(t, 1, failures)
	require.Equal(t, protocol.ErrNicknameinuse, cause.Command)
	require.Equal(t, "tom_", client.Identity().Nickname)
}

func TestClientRegistrationDoesNotRetryOtherErrors(t *testing.T) {
	client, mock := newTestClient(t, Config{})

	var failures int
	err := client.Register(nil,
		func([]*protocol.Message, *protocol.Message) { failures++ },
		nil,
	)
	require.NoError(t, err)
	mock.Reset()

	client.HandleLine(":irc.example.org 432 * t0$m :Erroneous nickname")
	require.Equal(t, 1, failures)
	require.Empty(t, mock.Lines())
}

func TestClientNickAdoptsNewNickname(t *testing.T) {
	client, mock := newTestClient(t, Config{})

	seq, err := client.Nick("tom2")
	require.NoError(t, err)
	require.Equal(t, "NICK :tom2", mock.LastLine())

	client.HandleLine(":tom!tom@host NICK :tom2")
	require.Equal(t, StateSucceeded, seq.State())
	require.Equal(t, "tom2", client.Identity().Nickname)
	require.Equal(t, 0, client.activeCount())
}

func TestClientJoin(t *testing.T) {
	client, mock := newTestClient(t, Config{})

	seq, err := client.Join("#go")
	require.NoError(t, err)
	require.Equal(t, "JOIN :#go", mock.LastLine())
	require.Equal(t, 1, client.activeCount())

	client.HandleLine(":tom!tom@host JOIN #go")
	client.HandleLine(":irc.example.org 332 tom #go :welcome to #go")
	client.HandleLine(":irc.example.org 353 tom = #go :@alice bob tom")
	require.Equal(t, StatePending, seq.State())

	client.HandleLine(":irc.example.org 366 tom #go :End of /NAMES list.")
	require.Equal(t, StateSucceeded, seq.State())
	require.Len(t, seq.Messages(), 4)
	require.Equal(t, 0, client.activeCount())
}

func TestClientQuit(t *testing.T) {
	client, mock := newTestClient(t, Config{})

	seq, err := client.Quit("time to sleep")
	require.NoError(t, err)
	require.Equal(t, "QUIT :time to sleep", mock.LastLine())

	client.HandleLine("ERROR :Closing Link: tom[host] (Quit: time to sleep)")
	require.Equal(t, StateSucceeded, seq.State())
}

func TestClientIssueWriteFailure(t *testing.T) {
	client, mock := newTestClient(t, Config{})

	writeErr := errors.New("broken pipe")
	mock.FailWith(writeErr)

	_, err := client.Join("#go")
	require.ErrorIs(t, err, writeErr)
	require.Equal(t, 0, client.activeCount())
}

func TestClientSequenceTimeout(t *testing.T) {
	client, _ := newTestClient(t, Config{Timeout: 10 * time.Millisecond})

	seq, err := client.Names("#go")
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return seq.State() == StateTimedOut && client.activeCount() == 0
	}, time.Second, 5*time.Millisecond)
}

func TestClientConcurrentSequences(t *testing.T) {
	client, _ := newTestClient(t, Config{})

	goSeq, err := client.Names("#go")
	require.NoError(t, err)
	rustSeq, err := client.Names("#rust")
	require.NoError(t, err)

	client.HandleLine(":irc.example.org 353 tom = #rust :@joe")
	client.HandleLine(":irc.example.org 366 tom #rust :End of /NAMES list.")

	require.Equal(t, StatePending, goSeq.State())
	require.Equal(t, StateSucceeded, rustSeq.State())
	require.Equal(t, 1, client.activeCount())
}

func TestClientPrivmsgAndNotice(t *testing.T) {
	client, mock := newTestClient(t, Config{})

	require.NoError(t, client.Privmsg("#go", "hello world"))
	require.Equal(t, "PRIVMSG #go :hello world", mock.LastLine())

	require.NoError(t, client.Notice("joe", "psst"))
	require.Equal(t, "NOTICE joe :psst", mock.LastLine())
}

func TestClientPublishesEvents(t *testing.T) {
	client, _ := newTestClient(t, Config{})

	recorder := &eventRecorder{}
	client.Observe(recorder, func(cfg *ObserverConfig) {
		cfg.On(EventUserJoin, recorder.record)
		cfg.On(EventUserPart, recorder.record)
		cfg.On(EventUserQuit, recorder.record)
		cfg.On(EventNickChange, recorder.record)
		cfg.On(EventTopicChange, recorder.record)
		cfg.On(EventChannelMessage, recorder.record)
		cfg.On(EventUserMessage, recorder.record)
		cfg.On(EventWhoisReply, recorder.record)
	})

	client.HandleLine(":joe!joe@host JOIN #go")
	client.HandleLine(":joe!joe@host PART #go :bye")
	client.HandleLine(":joe!joe@host NICK :joey")
	client.HandleLine(":joey!joe@host TOPIC #go :fresh topic")
	client.HandleLine(":joey!joe@host PRIVMSG #go :hello")
	client.HandleLine(":joey!joe@host PRIVMSG tom :hi tom")
	client.HandleLine(":irc.example.org 311 tom joey joe host * :Joe")
	client.HandleLine(":joey!joe@host QUIT :gone")

	require.Equal(t, []Event{
		EventUserJoin,
		EventUserPart,
		EventNickChange,
		EventTopicChange,
		EventChannelMessage,
		EventUserMessage,
		EventWhoisReply,
		EventUserQuit,
	}, recorder.events)

	require.Equal(t, []any{"#go", "joe"}, recorder.args[0])
	require.Equal(t, []any{"#go", "joe", "bye"}, recorder.args[1])
	require.Equal(t, []any{"joe", "joey"}, recorder.args[2])
	require.Equal(t, []any{"#go", "fresh topic"}, recorder.args[3])
	require.Equal(t, []any{"#go", "joey", "hello"}, recorder.args[4])
	require.Equal(t, []any{"joey", "hi tom"}, recorder.args[5])
	require.Equal(t, []any{"joey", "joe", "host", "Joe"}, recorder.args[6])
	require.Equal(t, []any{"joey", "gone"}, recorder.args[7])
}

func TestClientKickEvent(t *testing.T) {
	client, _ := newTestClient(t, Config{})

	recorder := &eventRecorder{}
	client.Observe(recorder, func(cfg *ObserverConfig) {
		cfg.On(EventUserKick, recorder.record)
	})

	client.HandleLine(":op!op@host KICK #go joe :flooding")
	require.Equal(t, []any{"#go", "joe", "op", "flooding"}, recorder.args[0])
}

func TestClientTopicNumericEvent(t *testing.T) {
	client, _ := newTestClient(t, Config{})

	recorder := &eventRecorder{}
	client.Observe(recorder, func(cfg *ObserverConfig) {
		cfg.On(EventTopicChange, recorder.record)
	})

	client.HandleLine(":irc.example.org 332 tom #go :welcome to #go")
	require.Equal(t, []any{"#go", "welcome to #go"}, recorder.args[0])
}
