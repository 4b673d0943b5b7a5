package domain

import "time"

// Identity is the part of a User carried in a session. Verified and
// AcceptingMessages are a snapshot from sign-in.
type Identity struct {
	UserID            string
	Username          string
	Verified          bool
	AcceptingMessages bool
}

func IdentityFromUser(u User) Identity {
	return Identity{
		UserID:            u.ID,
		Username:          u.Username,
		Verified:          u.Verified,
		AcceptingMessages: u.AcceptingMessages,
	}
}

// IsZero reports an anonymous caller.
func (i Identity) IsZero() bool { return i.UserID == "" }

// Session is a signed-in identity plus its bearer token.
type Session struct {
	Token     string
	ExpiresAt time.Time
	Identity  Identity
}
