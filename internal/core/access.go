package core

// access.go keeps the per-list set of users allowed to see the list.
// Membership is a convenience check, not a security boundary.

// AddAccess adds u to the access set. Adding a user already present
// (same id, or same name when ids are absent) does nothing.
func (l *List) AddAccess(u User) {
	if l.HasAccess(u) {
		return
	}
	l.access = append(l.access, u)
}

// RemoveAccess removes u from the access set and reports whether it was present.
func (l *List) RemoveAccess(u User) bool {
	for i, m := range l.access {
		if sameUser(m, u) {
			l.access = append(l.access[:i], l.access[i+1:]...)
			return true
		}
	}
	return false
}

// HasAccess reports whether u is in the access set.
func (l *List) HasAccess(u User) bool {
	for _, m := range l.access {
		if sameUser(m, u) {
			return true
		}
	}
	return false
}

// Users returns the access set in the order users were added.
func (l *List) Users() []User { return append([]User(nil), l.access...) }
