package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/ergochat/readline"

	"github.com/sienna/irc"
	"github.com/sienna/irc/protocol"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintf(os.Stderr, "usage: %s <host:port> <nickname> [realname]\n", os.Args[0])
		os.Exit(1)
	}

	addr := os.Args[1]
	nickname := os.Args[2]
	realname := nickname
	if len(os.Args) > 3 {
		realname = strings.Join(os.Args[3:], " ")
	}

	if err := run(addr, nickname, realname); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(addr, nickname, realname string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rl, err := readline.NewFromConfig(&readline.Config{
		Prompt: "> ",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	out := rl.Stdout()
	logger := slog.New(slog.NewTextHandler(rl.Stderr(), nil))

	conn, err := irc.Dial(ctx, addr, irc.DialConfig{
		NewCircuitBreaker: irc.NewCircuitBreakerConfig(3, time.Minute, 30*time.Second),
	})
	if err != nil {
		return err
	}
	defer conn.Close()

	client := irc.NewClient(conn, irc.Identity{
		Nickname: nickname,
		User:     nickname,
		Realname: realname,
	}, irc.Config{
		Timeout: 30 * time.Second,
		Logger:  logger,
	})

	channels := irc.NewChannelList(client)
	irc.NewUserList(client)

	printer := &eventPrinter{out: out}
	client.Observe(printer, func(cfg *irc.ObserverConfig) {
		cfg.On(irc.EventChannelMessage, printer.onChannelMessage)
		cfg.On(irc.EventUserMessage, printer.onUserMessage)
		cfg.On(irc.EventUserJoin, printer.onUserJoin)
		cfg.On(irc.EventUserPart, printer.onUserPart)
		cfg.On(irc.EventTopicChange, printer.onTopicChange)
	})

	err = client.Register(
		func([]*protocol.Message) {
			fmt.Fprintf(out, "* registered as %s\n", client.Identity().Nickname)
		},
		func(_ []*protocol.Message, cause *protocol.Message) {
			fmt.Fprintf(out, "* registration failed: %s\n", cause.Trailing())
		},
		func() {
			fmt.Fprintln(out, "* registration timed out")
		},
	)
	if err != nil {
		return err
	}

	go func() {
		if err := conn.Run(ctx, client.HandleLine); err != nil {
			logger.Error("connection lost", "error", err)
		}
		rl.Close()
	}()

	for {
		line, err := rl.ReadLine()
		if err != nil {
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if !strings.HasPrefix(line, "/") {
			fmt.Fprintln(out, "* not in a channel; use /msg <target> <text>")
			continue
		}

		if quit := dispatch(out, client, channels, line); quit {
			return nil
		}
	}
}

// dispatch handles one /command line, reporting whether the user quit.
func dispatch(out io.Writer, client *irc.Client, channels *irc.ChannelList, line string) bool {
	parts := strings.Fields(line)
	command := strings.TrimPrefix(parts[0], "/")
	args := parts[1:]

	switch command {
	case "join":
		if len(args) != 1 {
			fmt.Fprintln(out, "usage: /join <channel>")
			return false
		}
		seq, err := channels.Join(args[0])
		if err != nil {
			fmt.Fprintf(out, "* %v\n", err)
			return false
		}
		channel := args[0]
		seq.OnSuccess(func([]*protocol.Message) {
			ch := channels.Channel(channel)
			fmt.Fprintf(out, "* joined %s (%d members)\n", channel, len(ch.Members()))
			if topic := ch.Topic(); topic != "" {
				fmt.Fprintf(out, "* topic: %s\n", topic)
			}
		})
		seq.OnError(func(_ []*protocol.Message, cause *protocol.Message) {
			fmt.Fprintf(out, "* cannot join %s: %s\n", channel, cause.Trailing())
		})
		seq.OnTimeout(func() {
			fmt.Fprintf(out, "* join %s timed out\n", channel)
		})

	case "part":
		if len(args) != 1 {
			fmt.Fprintln(out, "usage: /part <channel>")
			return false
		}
		issue(out, func() (*irc.Sequence, error) { return channels.Part(args[0]) })

	case "nick":
		if len(args) != 1 {
			fmt.Fprintln(out, "usage: /nick <nickname>")
			return false
		}
		issue(out, func() (*irc.Sequence, error) { return client.Nick(args[0]) })

	case "names":
		if len(args) != 1 {
			fmt.Fprintln(out, "usage: /names <channel>")
			return false
		}
		seq, err := client.Names(args[0])
		if err != nil {
			fmt.Fprintf(out, "* %v\n", err)
			return false
		}
		seq.OnSuccess(func(messages []*protocol.Message) {
			for _, msg := range messages {
				if msg.Command == protocol.RplNamreply {
					fmt.Fprintf(out, "* names: %s\n", msg.Trailing())
				}
			}
		})

	case "whois":
		if len(args) != 1 {
			fmt.Fprintln(out, "usage: /whois <nickname>")
			return false
		}
		seq, err := client.Whois(args[0])
		if err != nil {
			fmt.Fprintf(out, "* %v\n", err)
			return false
		}
		seq.OnSuccess(func(messages []*protocol.Message) {
			for _, msg := range messages {
				fmt.Fprintf(out, "* whois: %s\n", strings.Join(msg.Params[1:], " "))
			}
		})

	case "msg":
		if len(args) < 2 {
			fmt.Fprintln(out, "usage: /msg <target> <text>")
			return false
		}
		if err := client.Privmsg(args[0], strings.Join(args[1:], " ")); err != nil {
			fmt.Fprintf(out, "* %v\n", err)
		}

	case "quit":
		message := strings.Join(args, " ")
		seq, err := client.Quit(message)
		if err != nil {
			fmt.Fprintf(out, "* %v\n", err)
			return true
		}
		done := make(chan struct{})
		seq.OnSuccess(func([]*protocol.Message) { close(done) })
		seq.OnTimeout(func() { close(done) })
		<-done
		return true

	default:
		fmt.Fprintf(out, "* unknown command /%s\n", command)
	}

	return false
}

func issue(out io.Writer, f func() (*irc.Sequence, error)) {
	seq, err := f()
	if err != nil {
		fmt.Fprintf(out, "* %v\n", err)
		return
	}
	seq.OnError(func(_ []*protocol.Message, cause *protocol.Message) {
		fmt.Fprintf(out, "* error: %s\n", cause.Trailing())
	})
	seq.OnTimeout(func() {
		fmt.Fprintln(out, "* timed out")
	})
}

type eventPrinter struct {
	out io.Writer
}

func (p *eventPrinter) onChannelMessage(_ irc.Event, args ...any) {
	fmt.Fprintf(p.out, "[%v] <%v> %v\n", args[0], args[1], args[2])
}

func (p *eventPrinter) onUserMessage(_ irc.Event, args ...any) {
	fmt.Fprintf(p.out, "<%v> %v\n", args[0], args[1])
}

func (p *eventPrinter) onUserJoin(_ irc.Event, args ...any) {
	fmt.Fprintf(p.out, "* %v joined %v\n", args[1], args[0])
}

func (p *eventPrinter) onUserPart(_ irc.Event, args ...any) {
	fmt.Fprintf(p.out, "* %v left %v\n", args[1], args[0])
}

func (p *eventPrinter) onTopicChange(_ irc.Event, args ...any) {
	fmt.Fprintf(p.out, "* topic of %v is now: %v\n", args[0], args[1])
}
