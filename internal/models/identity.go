package models

// Identity is the caller of a request: either anonymous or a logged-in user.
// The zero value is anonymous.
type Identity struct {
	user *User
}

func Anonymous() Identity {
	return Identity{}
}

func Authenticated(user *User) Identity {
	return Identity{user: user}
}

func (i Identity) IsAnonymous() bool {
	return i.user == nil
}

// User returns the logged-in user, or nil for an anonymous identity.
func (i Identity) User() *User {
	return i.user
}

func (i Identity) UserID() string {
	if i.user == nil {
		return ""
	}
	return i.user.UserID
}

func (i Identity) Email() string {
	if i.user == nil {
		return ""
	}
	return i.user.Email
}
