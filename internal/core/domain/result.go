// internal/core/domain/result.go
package domain

import "fmt"

// Sentinel group names. An active group whose page carries no title is still
// active; an expired link has no recoverable name at all; for invalid and
// errored candidates the page was never read, so nothing is known.
const (
	UnnamedGroup = "Unnamed Group"
	ExpiredGroup = "Expired"
	UnknownGroup = "Unknown"
)

// ValidationResult is the immutable outcome of validating one candidate.
// It is created exactly once by the validator, fully populated, and owned by
// the caller afterwards.
type ValidationResult struct {
	// Link the candidate as submitted, the natural key of the result
	Link string

	// GroupName display name extracted from the invite page, or a sentinel
	GroupName string

	// LogoURL absolute URL of the signed preview image, empty when none qualified
	LogoURL string

	// MemberCount members advertised on the invite page; 0 means the page
	// did not expose a count (a joinable group never reports zero members)
	MemberCount int

	// Status terminal classification
	Status LinkStatus

	// ErrorDetail populated only when Status is StatusError
	ErrorDetail string
}

// IsActive reports whether the result describes a live group.
func (r ValidationResult) IsActive() bool {
	return r.Status == StatusActive
}

// HasMemberCount reports whether the invite page exposed a member count.
func (r ValidationResult) HasMemberCount() bool {
	return r.MemberCount > 0
}

// Validate checks the result's own invariants: a recognized status, a
// non-empty name on active results, and a logo that matches the media-host
// pattern when present.
func (r ValidationResult) Validate() error {
	if !r.Status.IsValid() {
		return fmt.Errorf("unknown status %q", r.Status)
	}
	if r.Status == StatusActive && r.GroupName == "" {
		return fmt.Errorf("active result for %s has no group name", r.Link)
	}
	if r.LogoURL != "" && !IsMediaURL(r.LogoURL) {
		return fmt.Errorf("logo %q does not match the media-host pattern", r.LogoURL)
	}
	return nil
}

// Summary returns a one-line description, useful in debug logs.
func (r ValidationResult) Summary() string {
	return fmt.Sprintf("ValidationResult{link=%s, status=%s, name=%q}", r.Link, r.Status, r.GroupName)
}
