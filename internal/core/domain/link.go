// internal/core/domain/link.go
package domain

import (
	"regexp"
	"strings"
)

const (
	// InviteHost and InvitePrefix are the fixed location every group invite
	// shares. The platform serves invite metadata only on this host.
	InviteHost   = "chat.whatsapp.com"
	InvitePrefix = "https://chat.whatsapp.com/"

	// InviteCodeLength is the fixed length of the invite token.
	InviteCodeLength = 22

	// MediaHost is the CDN that serves group preview images. The CDN signs
	// its URLs, so a real logo always carries at least two query parameters.
	MediaHost = "pps.whatsapp.net"
)

// inviteCode matches the case-sensitive alphanumeric token, optionally behind
// a literal invite/ path segment that older share links carry.
var inviteCode = regexp.MustCompile(`^(?:invite/)?([A-Za-z0-9]{22})$`)

// mediaURL matches a signed preview image URL: fixed CDN host, .jpg, and at
// least two query parameters (single-parameter URLs are never valid signed
// links on this platform).
var mediaURL = regexp.MustCompile(`^https://pps\.whatsapp\.net/[^?\s"']*\.jpg\?[^&\s"']+&[^\s"']+$`)

// InviteLink is a canonical group invite URL: InvitePrefix followed by the
// 22-character code. Values are only constructed through ParseInviteLink, so
// holding an InviteLink implies the shape invariant already passed.
type InviteLink string

// ParseInviteLink validates the shape of a raw string and returns its
// canonical form. It performs no network I/O.
func ParseInviteLink(raw string) (InviteLink, error) {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, InvitePrefix) {
		return "", ErrInvalidLink
	}

	rest := strings.TrimSuffix(strings.TrimPrefix(s, InvitePrefix), "/")
	m := inviteCode.FindStringSubmatch(rest)
	if m == nil {
		return "", ErrInvalidLink
	}

	return InviteLink(InvitePrefix + m[1]), nil
}

// IsInviteLink reports whether raw has the invite-URL shape.
func IsInviteLink(raw string) bool {
	_, err := ParseInviteLink(raw)
	return err == nil
}

// Code returns the invite token.
func (l InviteLink) Code() string {
	return strings.TrimPrefix(string(l), InvitePrefix)
}

// String returns the link as a plain URL string.
func (l InviteLink) String() string {
	return string(l)
}

// IsMediaURL reports whether u matches the platform's signed preview-image
// pattern. Only URLs passing this check ever populate LogoURL.
func IsMediaURL(u string) bool {
	return mediaURL.MatchString(u)
}
