package domain

// Identity is the verified caller of a request. Handlers depend on it rather
// than on a concrete user type.
type Identity interface {
	IdentityName() string
}

// Principal is the Identity resolved from a verified bearer token.
type Principal struct {
	Username string
}

// IdentityName returns the username carried as the token subject.
func (p Principal) IdentityName() string {
	return p.Username
}
