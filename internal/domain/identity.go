package domain

import "regexp"

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// IsEmailAddress reports whether an identity string looks like an email
// address. Notification intents are only produced for email-shaped
// recipients; system identities (e.g. "admin") are silently skipped.
func IsEmailAddress(s string) bool {
	return emailPattern.MatchString(s)
}
