// internal/core/domain/errors.go
package domain

import "errors"

var (
	// ErrInvalidLink the string does not match the invite-URL shape
	ErrInvalidLink = errors.New("not a valid invite link")

	// ErrEmptyInput the caller provided no links, text or query at all
	ErrEmptyInput = errors.New("no input provided")

	// ErrNoCandidates discovery ran but found nothing to validate.
	// Distinct from ErrEmptyInput: the input existed, the web did not deliver.
	ErrNoCandidates = errors.New("discovery yielded no candidate links")
)
