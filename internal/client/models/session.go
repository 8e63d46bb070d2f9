package models

// Session is the authenticated state of the client. A zero Token means the
// user is logged out and no catalog data can be trusted. The session package
// owns the single mutable Session; everything else sees copies.
type Session struct {
	Identity string
	Token    string
}

// Active reports whether the session carries a credential.
func (s Session) Active() bool {
	return s.Token != ""
}
