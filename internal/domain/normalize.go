package domain

import "strings"

// NormalizeHumanName trims leading/trailing whitespace and collapses internal whitespace runs.
// It is used for business names and street addresses on service requests.
func NormalizeHumanName(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
