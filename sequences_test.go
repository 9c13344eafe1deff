package irc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNickSequence(t *testing.T) {
	t.Run("ends on the NICK echo from the old identity", func(t *testing.T) {
		seq := NewNickSequence("tom2", "tom")
		seq.Collect(mustParse(t, ":tom!tom@host NICK :tom2"))
		require.Equal(t, StateSucceeded, seq.State())
	})

	t.Run("ignores someone else's NICK", func(t *testing.T) {
		seq := NewNickSequence("tom2", "tom")
		seq.Collect(mustParse(t, ":joe!joe@host NICK :tom2"))
		require.Equal(t, StatePending, seq.State())
	})

	t.Run("fails on nickname in use", func(t *testing.T) {
		seq := NewNickSequence("tom2", "tom")
		seq.Collect(mustParse(t, ":irc.example.org 433 tom tom2 :Nickname is already in use"))
		require.Equal(t, StateFailed, seq.State())
	})

	t.Run("ignores an error about another nickname", func(t *testing.T) {
		seq := NewNickSequence("tom2", "tom")
		seq.Collect(mustParse(t, ":irc.example.org 433 joe joe2 :Nickname is already in use"))
		require.Equal(t, StatePending, seq.State())
	})
}

func TestRegistrationSequence(t *testing.T) {
	t.Run("ends on RPL_WELCOME", func(t *testing.T) {
		seq := NewRegistrationSequence()
		seq.Collect(mustParse(t, ":irc.example.org 001 tom :Welcome to the network"))
		require.Equal(t, StateSucceeded, seq.State())
	})

	t.Run("fails on any registration error", func(t *testing.T) {
		lines := []string{
			":irc.example.org 433 * tom :Nickname is already in use",
			":irc.example.org 436 * tom :Nickname collision KILL",
			":irc.example.org 432 * t0$m :Erroneous nickname",
			":irc.example.org 484 * tom :Your connection is restricted!",
			":irc.example.org 462 tom :Unauthorized command (already registered)",
		}
		for _, line := range lines {
			seq := NewRegistrationSequence()
			seq.Collect(mustParse(t, line))
			require.Equal(t, StateFailed, seq.State(), "line %q", line)
		}
	})
}

func TestJoinSequence(t *testing.T) {
	t.Run("collects the whole join exchange", func(t *testing.T) {
		seq := NewJoinSequence("#go", "tom")

		seq.Collect(mustParse(t, ":tom!tom@host JOIN #go"))
		seq.Collect(mustParse(t, ":irc.example.org 332 tom #go :welcome to #go"))
		seq.Collect(mustParse(t, ":irc.example.org 353 tom = #go :@alice bob tom"))
		require.Equal(t, StatePending, seq.State())

		seq.Collect(mustParse(t, ":irc.example.org 366 tom #go :End of /NAMES list."))
		require.Equal(t, StateSucceeded, seq.State())
		require.Len(t, seq.Messages(), 4)
	})

	t.Run("ignores someone else's join echo", func(t *testing.T) {
		seq := NewJoinSequence("#go", "tom")
		seq.Collect(mustParse(t, ":joe!joe@host JOIN #go"))
		require.Empty(t, seq.Messages())
	})

	t.Run("fails on a channel error", func(t *testing.T) {
		lines := []string{
			":irc.example.org 474 tom #go :Cannot join channel (+b)",
			":irc.example.org 475 tom #go :Cannot join channel (+k)",
			":irc.example.org 473 tom #go :Cannot join channel (+i)",
			":irc.example.org 403 tom #go :No such channel",
			":irc.example.org 405 tom #go :You have joined too many channels",
		}
		for _, line := range lines {
			seq := NewJoinSequence("#go", "tom")
			seq.Collect(mustParse(t, line))
			require.Equal(t, StateFailed, seq.State(), "line %q", line)
		}
	})
}

func TestPartSequence(t *testing.T) {
	seq := NewPartSequence("#go", "tom")
	seq.Collect(mustParse(t, ":tom!tom@host PART #go :bye"))
	require.Equal(t, StateSucceeded, seq.State())

	seq = NewPartSequence("#go", "tom")
	seq.Collect(mustParse(t, ":irc.example.org 442 tom #go :You're not on that channel"))
	require.Equal(t, StateFailed, seq.State())
}

func TestQuitSequence(t *testing.T) {
	seq := NewQuitSequence()
	seq.Collect(mustParse(t, "ERROR :Closing Link: tom[host] (Quit: bye)"))
	require.Equal(t, StateSucceeded, seq.State())
}

func TestNamesSequence(t *testing.T) {
	seq := NewNamesSequence("#go")
	seq.Collect(mustParse(t, ":irc.example.org 353 tom = #go :@alice bob"))
	seq.Collect(mustParse(t, ":irc.example.org 366 tom #go :End of /NAMES list."))
	require.Equal(t, StateSucceeded, seq.State())
	require.Len(t, seq.Messages(), 2)
}

func TestWhoSequence(t *testing.T) {
	seq := NewWhoSequence("#go")
	seq.Collect(mustParse(t, ":irc.example.org 352 tom #go alice host srv alice H :0 Alice"))
	seq.Collect(mustParse(t, ":irc.example.org 315 tom #go :End of /WHO list."))
	require.Equal(t, StateSucceeded, seq.State())
	require.Len(t, seq.Messages(), 2)
}

func TestWhoisSequence(t *testing.T) {
	seq := NewWhoisSequence("Hal")

	lines := []string{
		":irc.example.org 311 tom Hal hal bots.example.org * :Hal the bot",
		":irc.example.org 312 tom Hal irc.example.org :An example server",
		":irc.example.org 313 tom Hal :is an IRC operator",
		":irc.example.org 317 tom Hal 42 :seconds idle",
		":irc.example.org 319 tom Hal :@#go +#rust",
		":irc.example.org 316 tom Hal :Has been op",
	}
	for _, line := range lines {
		seq.Collect(mustParse(t, line))
		require.Equal(t, StatePending, seq.State(), "line %q", line)
	}

	seq.Collect(mustParse(t, ":irc.example.org 318 tom Hal :End of /WHOIS list."))
	require.Equal(t, StateSucceeded, seq.State())
	require.Len(t, seq.Messages(), 7)
}
