package protocol

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommandFromWire(t *testing.T) {
	tests := []struct {
		token string
		want  Command
	}{
		{token: "NICK", want: CmdNick},
		{token: "PRIVMSG", want: CmdPrivmsg},
		{token: "001", want: RplWelcome},
		{token: "353", want: RplNamreply},
		{token: "366", want: RplEndofnames},
		{token: "433", want: ErrNicknameinuse},
	}

	for _, tt := range tests {
		cmd, err := CommandFromWire(tt.token)
		require.NoError(t, err)
		require.Equal(t, tt.want, cmd)
	}
}

func TestCommandFromWireUnknown(t *testing.T) {
	for _, token := range []string{"SNIFF", "999", "nick", ""} {
		_, err := CommandFromWire(token)
		require.ErrorIs(t, err, ErrUnknownCommand, "token %q", token)
	}
}

func TestCommandWire(t *testing.T) {
	wire, err := CmdNick.Wire()
	require.NoError(t, err)
	require.Equal(t, "NICK", wire)

	wire, err = RplEndofwhois.Wire()
	require.NoError(t, err)
	require.Equal(t, "318", wire)

	_, err = Command("made_up").Wire()
	require.ErrorIs(t, err, ErrUnknownCommand)
}

// The registry must stay a bijection: every wire token resolves to a
// symbolic command that resolves back to the same token.
func TestRegistryBijection(t *testing.T) {
	require.Equal(t, len(wireToCommand), len(commandToWire))

	for token, cmd := range wireToCommand {
		back, err := cmd.Wire()
		require.NoError(t, err)
		require.Equal(t, token, back)
	}
}
