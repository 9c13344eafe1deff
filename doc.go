// Package irc implements the client side of the RFC 2812 chat protocol:
// a wire codec, a command/reply correlation engine, and a filtered event
// bus for protocol events.
//
// The protocol has no request identifiers, so the engine correlates server
// replies to issued commands by content: each issued command is tracked by
// a Sequence configured with declarative reply-matching rules (which reply
// commands belong to it, which parameter positions must equal which request
// arguments, which replies terminate it normally or as an error). Sequences
// complete asynchronously through success, error or timeout handlers.
//
// # Issuing commands
//
//	conn, err := irc.Dial(ctx, "irc.example.org:6667", irc.DialConfig{})
//	client := irc.NewClient(conn, irc.Identity{
//	    Nickname: "tom", User: "ground", Realname: "major tom",
//	}, irc.Config{})
//
//	client.Register(nil, nil, nil)
//	go conn.Run(ctx, client.HandleLine)
//
//	seq, _ := client.Join("#groundcontrol")
//	seq.OnSuccess(func(messages []*protocol.Message) { ... })
//
// # Protocol events
//
// The engine publishes domain events (user_join, nick_change, ...) on its
// bus; observers subscribe with optional predicates:
//
//	client.Observe(cache, func(cfg *irc.ObserverConfig) {
//	    cfg.On(irc.EventTopicChange, cache.onTopic).
//	        When(func(args ...any) bool { return args[0] == "#groundcontrol" })
//	})
//
// The engine is single-writer: one goroutine owns HandleLine and the
// command methods of a Client. Sequence timeouts fire from timer
// goroutines and are internally synchronized.
package irc
