package irc

import (
	"strings"
	"sync"
)

// User tracks one known user. Nickname is always set; user, host and
// realname are filled lazily from WHOIS replies.
type User struct {
	mu       sync.Mutex
	nickname string
	user     string
	host     string
	realname string
}

func NewUser(nickname string) *User {
	return &User{nickname: nickname}
}

// Nickname returns the user's current nickname.
func (u *User) Nickname() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.nickname
}

// User returns the username part of the identity, if known.
func (u *User) User() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.user
}

// Host returns the host part of the identity, if known.
func (u *User) Host() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.host
}

// Realname returns the real name, if known.
func (u *User) Realname() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.realname
}

// Mask renders the identity as nickname["!"user]"@"host, degrading to the
// bare nickname when the host is unknown.
func (u *User) Mask() string {
	u.mu.Lock()
	defer u.mu.Unlock()

	var b strings.Builder
	b.WriteString(u.nickname)
	if u.host != "" {
		if u.user != "" {
			b.WriteByte('!')
			b.WriteString(u.user)
		}
		b.WriteByte('@')
		b.WriteString(u.host)
	}
	return b.String()
}

// Synchronized reports whether the whois-backed attributes are all known.
func (u *User) Synchronized() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.user != "" && u.host != "" && u.realname != ""
}

func (u *User) setNickname(nickname string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.nickname = nickname
}

func (u *User) setWhois(user, host, realname string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.user = user
	u.host = host
	u.realname = realname
}
