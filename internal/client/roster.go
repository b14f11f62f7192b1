package client

// Roster is the ordered list of identities the service reports as
// currently active. Every presence update replaces it wholesale;
// stale entries are discarded, never patched.
type Roster struct {
	users []string
}

// Replace installs users as the new roster, in the given order.
func (r *Roster) Replace(users []string) {
	next := make([]string, len(users))
	copy(next, users)
	r.users = next
}

// Users returns the current roster in service order.
func (r *Roster) Users() []string {
	return r.users
}

// Contains reports whether name is on the roster.
func (r *Roster) Contains(name string) bool {
	for _, u := range r.users {
		if u == name {
			return true
		}
	}
	return false
}
