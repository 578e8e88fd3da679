// internal/core/domain/status.go
package domain

// LinkStatus is the terminal classification of one validation attempt.
type LinkStatus string

const (
	// StatusActive the link resolved to a live, joinable group
	StatusActive LinkStatus = "active"

	// StatusExpired the link is well-formed but the group no longer accepts it
	StatusExpired LinkStatus = "expired"

	// StatusInvalid the string does not match the invite-URL shape (no network attempted)
	StatusInvalid LinkStatus = "invalid"

	// StatusError a network or transport failure prevented a determination
	StatusError LinkStatus = "error"
)

// AllStatuses lists every terminal status, in display order.
var AllStatuses = []LinkStatus{StatusActive, StatusExpired, StatusInvalid, StatusError}

// IsValid reports whether the status is one of the four terminal states.
func (s LinkStatus) IsValid() bool {
	switch s {
	case StatusActive, StatusExpired, StatusInvalid, StatusError:
		return true
	default:
		return false
	}
}

// String returns the string representation of the status.
func (s LinkStatus) String() string {
	return string(s)
}

// Label returns the capitalized form used in tables and CSV exports.
func (s LinkStatus) Label() string {
	switch s {
	case StatusActive:
		return "Active"
	case StatusExpired:
		return "Expired"
	case StatusInvalid:
		return "Invalid"
	case StatusError:
		return "Error"
	default:
		return string(s)
	}
}
