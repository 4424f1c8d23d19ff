package domain

// UserProfile represents a user of the delivery app.
// An empty PushToken means the user is unreachable over push.
type UserProfile struct {
	ID        string
	Name      string
	IsDriver  bool
	PushToken string
}

// Deliverable reports whether the profile can receive push messages.
func (p UserProfile) Deliverable() bool {
	return p.PushToken != ""
}
