// SPDX-License-Identifier: Apache-2.0

// Package federation reconciles identity-provider mapping rules so that
// federated logins land in the right per-user group.
package federation

import "context"

// Attribute names asserted by the identity provider.
const (
	AttrFirstName = "FirstName"
	AttrLastName  = "LastName"
	AttrEmail     = "Email"
)

// UserNameTemplate composes the local user name from the first two remote
// attributes of the rule (first name, last name).
const UserNameTemplate = "{0} {1}"

// RemoteMatch is one clause matched against an asserted attribute.
type RemoteMatch struct {
	Type     string   `json:"type"`
	Regex    *bool    `json:"regex,omitempty"`
	AnyOneOf []string `json:"any_one_of,omitempty"`
}

// GroupRef names a local group by ID.
type GroupRef struct {
	ID string `json:"id"`
}

// UserTemplate names the local user, possibly via attribute placeholders.
type UserTemplate struct {
	Name string `json:"name"`
}

// LocalMatch is one projection into local identity.
type LocalMatch struct {
	Group *GroupRef     `json:"group,omitempty"`
	User  *UserTemplate `json:"user,omitempty"`
}

// Rule is a single mapping rule as the identity service stores it.
type Rule struct {
	Remote []RemoteMatch `json:"remote"`
	Local  []LocalMatch  `json:"local"`
}

// Binding is one desired email-to-group association.
type Binding struct {
	Email   string
	GroupID string
}

// NewUserRule builds the canonical rule for a binding: match the email
// exactly (regex off), carry first and last name through, and place the user
// in the group.
func NewUserRule(email, groupID string) Rule {
	noRegex := false
	return Rule{
		Remote: []RemoteMatch{
			{Type: AttrFirstName},
			{Type: AttrLastName},
			{Type: AttrEmail, Regex: &noRegex, AnyOneOf: []string{email}},
		},
		Local: []LocalMatch{
			{
				Group: &GroupRef{ID: groupID},
				User:  &UserTemplate{Name: UserNameTemplate},
			},
		},
	}
}

// MatchesBinding reports whether the rule already expresses the binding: some
// remote Email clause lists the address and some local clause targets the
// group. The address under any other attribute does not count.
func (r Rule) MatchesBinding(b Binding) bool {
	var emailOK, groupOK bool
	for _, rm := range r.Remote {
		if rm.Type != AttrEmail {
			continue
		}
		for _, v := range rm.AnyOneOf {
			if v == b.Email {
				emailOK = true
			}
		}
	}
	for _, lm := range r.Local {
		if lm.Group != nil && lm.Group.ID == b.GroupID {
			groupOK = true
		}
	}
	return emailOK && groupOK
}

// ReferencesGroup reports whether any local clause targets the group.
func (r Rule) ReferencesGroup(groupID string) bool {
	for _, lm := range r.Local {
		if lm.Group != nil && lm.Group.ID == groupID {
			return true
		}
	}
	return false
}

// MappingAPI is the slice of the identity service the reconciler needs: read
// the rule list of the configured mapping and replace it wholesale.
type MappingAPI interface {
	Rules(ctx context.Context) ([]Rule, error)
	Replace(ctx context.Context, rules []Rule) error
}
