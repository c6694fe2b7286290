package domain

import "strings"

const (
	personURNPrefix       = "urn:li:person:"
	organizationURNPrefix = "urn:li:organization:"
)

// PersonURN builds the URN of a member.
func PersonURN(id string) string {
	return personURNPrefix + id
}

// OrganizationURN builds the URN of an organization.
func OrganizationURN(id string) string {
	return organizationURNPrefix + id
}

// URNID returns the trailing id segment of a URN, e.g. "123" for
// "urn:li:organization:123". Non-URN input is returned unchanged.
func URNID(urn string) string {
	if !strings.HasPrefix(urn, "urn:") {
		return urn
	}
	return urn[strings.LastIndex(urn, ":")+1:]
}
