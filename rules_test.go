package irc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sienna/irc/protocol"
)

func TestRuleSetRegistrationOrder(t *testing.T) {
	s := NewRuleSet()
	s.AddReply(ReplyRule{}, protocol.RplNamreply)
	s.AddEndReply(ReplyRule{}, protocol.RplEndofnames)
	s.AddErrorReply(ReplyRule{}, protocol.ErrNosuchchannel)

	require.Equal(t, []protocol.Command{
		protocol.RplNamreply,
		protocol.RplEndofnames,
		protocol.ErrNosuchchannel,
	}, s.Replies())
}

func TestRuleSetAddEndReplyFlags(t *testing.T) {
	s := NewRuleSet()
	s.AddEndReply(ReplyRule{Error: true}, protocol.RplEndofnames)

	rule, ok := s.Rule(protocol.RplEndofnames)
	require.True(t, ok)
	require.True(t, rule.End)
	require.False(t, rule.Error)
}

func TestRuleSetAddErrorReplyFlags(t *testing.T) {
	s := NewRuleSet()
	s.AddErrorReply(ReplyRule{}, protocol.ErrNosuchchannel)

	rule, ok := s.Rule(protocol.ErrNosuchchannel)
	require.True(t, ok)
	require.True(t, rule.Error)
}

func TestRuleSetEndReplies(t *testing.T) {
	s := NewRuleSet()
	s.AddReply(ReplyRule{}, protocol.RplNamreply)
	s.AddEndReply(ReplyRule{}, protocol.RplEndofnames)
	s.AddErrorReply(ReplyRule{}, protocol.ErrNosuchchannel, protocol.ErrNotonchannel)

	// Error replies terminate the exchange too.
	require.Equal(t, []protocol.Command{
		protocol.RplEndofnames,
		protocol.ErrNosuchchannel,
		protocol.ErrNotonchannel,
	}, s.EndReplies())

	require.Equal(t, []protocol.Command{
		protocol.ErrNosuchchannel,
		protocol.ErrNotonchannel,
	}, s.ErrorReplies())
}

func TestRuleSetUnknownCommand(t *testing.T) {
	s := NewRuleSet()
	_, ok := s.Rule(protocol.CmdPrivmsg)
	require.False(t, ok)
}

func TestRuleSetReregisterKeepsOrder(t *testing.T) {
	s := NewRuleSet()
	s.AddReply(ReplyRule{}, protocol.RplNamreply)
	s.AddEndReply(ReplyRule{}, protocol.RplEndofnames)
	s.AddReply(ReplyRule{Match: map[string]int{"channel": 2}}, protocol.RplNamreply)

	require.Equal(t, []protocol.Command{
		protocol.RplNamreply,
		protocol.RplEndofnames,
	}, s.Replies())

	rule, _ := s.Rule(protocol.RplNamreply)
	require.Equal(t, map[string]int{"channel": 2}, rule.Match)
}
