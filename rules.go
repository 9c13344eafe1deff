package irc

import (
	"github.com/sienna/irc/protocol"
)

// ReplyRule describes how one reply command relates to an outstanding
// request. Match maps request-argument names to the parameter index that
// must equal the argument value. From names the request argument the
// message sender must match. End marks a reply that completes the exchange;
// Error marks one that completes it as a failure.
type ReplyRule struct {
	Match map[string]int
	From  string
	End   bool
	Error bool
}

// RuleSet is the declarative reply-matching configuration of one sequence
// kind. It is built once at definition time and never mutated afterward, so
// a single RuleSet is safely shared by every sequence of that kind.
type RuleSet struct {
	order []protocol.Command
	rules map[protocol.Command]ReplyRule
}

func NewRuleSet() *RuleSet {
	return &RuleSet{rules: make(map[protocol.Command]ReplyRule)}
}

// AddReply registers rule for each listed command.
func (s *RuleSet) AddReply(rule ReplyRule, commands ...protocol.Command) {
	for _, cmd := range commands {
		if _, exists := s.rules[cmd]; !exists {
			s.order = append(s.order, cmd)
		}
		s.rules[cmd] = rule
	}
}

// AddEndReply registers rule as a terminal, non-error reply.
func (s *RuleSet) AddEndReply(rule ReplyRule, commands ...protocol.Command) {
	rule.End = true
	rule.Error = false
	s.AddReply(rule, commands...)
}

// AddErrorReply registers rule as a terminal error reply.
func (s *RuleSet) AddErrorReply(rule ReplyRule, commands ...protocol.Command) {
	rule.Error = true
	s.AddReply(rule, commands...)
}

// Rule returns the rule for a command, if one is registered.
func (s *RuleSet) Rule(cmd protocol.Command) (ReplyRule, bool) {
	rule, ok := s.rules[cmd]
	return rule, ok
}

// Replies returns every command with a rule, in registration order.
func (s *RuleSet) Replies() []protocol.Command {
	out := make([]protocol.Command, len(s.order))
	copy(out, s.order)
	return out
}

// EndReplies returns the commands that terminate the exchange, normally or
// with an error.
func (s *RuleSet) EndReplies() []protocol.Command {
	var out []protocol.Command
	for _, cmd := range s.order {
		if rule := s.rules[cmd]; rule.End || rule.Error {
			out = append(out, cmd)
		}
	}
	return out
}

// ErrorReplies returns the commands that terminate the exchange as an error.
func (s *RuleSet) ErrorReplies() []protocol.Command {
	var out []protocol.Command
	for _, cmd := range s.order {
		if s.rules[cmd].Error {
			out = append(out, cmd)
		}
	}
	return out
}
