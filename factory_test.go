package irc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testFactory() *CommandFactory {
	return NewCommandFactory(func() Identity {
		return Identity{Nickname: "tom", User: "tom", Realname: "Major Tom"}
	})
}

func TestFactoryUnsupportedCommand(t *testing.T) {
	_, _, err := testFactory().Create("topic", "#go")
	require.ErrorIs(t, err, ErrUnsupportedCommand)
}

func TestFactoryArgumentCount(t *testing.T) {
	tests := []struct {
		name    string
		command string
		args    []string
	}{
		{"nick without argument", "nick", nil},
		{"nick with two arguments", "nick", []string{"a", "b"}},
		{"register with argument", "register", []string{"tom"}},
		{"join without argument", "join", nil},
		{"quit with two arguments", "quit", []string{"a", "b"}},
		{"whois without argument", "whois", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := testFactory().Create(tt.command, tt.args...)
			require.Error(t, err)
			require.NotErrorIs(t, err, ErrUnsupportedCommand)
		})
	}
}

func TestFactoryNick(t *testing.T) {
	messages, seq, err := testFactory().Create("nick", "tom2")
	require.NoError(t, err)
	require.Len(t, messages, 1)
	require.Equal(t, "NICK :tom2", messages[0].String())

	// The sequence binds both the requested and the current nickname.
	seq.Collect(mustParse(t, ":tom!tom@host NICK :tom2"))
	require.Equal(t, StateSucceeded, seq.State())
}

func TestFactoryRegister(t *testing.T) {
	messages, seq, err := testFactory().Create("register")
	require.NoError(t, err)
	require.Len(t, messages, 2)
	require.Equal(t, "NICK :tom", messages[0].String())
	require.Equal(t, "USER tom 0 * :Major Tom", messages[1].String())
	require.Equal(t, StatePending, seq.State())
}

func TestFactoryJoin(t *testing.T) {
	messages, seq, err := testFactory().Create("join", "#go")
	require.NoError(t, err)
	require.Equal(t, "JOIN :#go", messages[0].String())

	seq.Collect(mustParse(t, ":irc.example.org 366 tom #go :End of /NAMES list."))
	require.Equal(t, StateSucceeded, seq.State())
}

func TestFactoryQuit(t *testing.T) {
	messages, _, err := testFactory().Create("quit")
	require.NoError(t, err)
	require.Equal(t, "QUIT", messages[0].String())

	messages, _, err = testFactory().Create("quit", "time to sleep")
	require.NoError(t, err)
	require.Equal(t, "QUIT :time to sleep", messages[0].String())
}

func TestFactoryQueries(t *testing.T) {
	tests := []struct {
		command string
		arg     string
		want    string
	}{
		{"part", "#go", "PART :#go"},
		{"names", "#go", "NAMES :#go"},
		{"who", "#go", "WHO :#go"},
		{"whois", "joe", "WHOIS :joe"},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			messages, seq, err := testFactory().Create(tt.command, tt.arg)
			require.NoError(t, err)
			require.Len(t, messages, 1)
			require.Equal(t, tt.want, messages[0].String())
			require.NotNil(t, seq)
		})
	}
}
