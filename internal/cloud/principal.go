// SPDX-License-Identifier: Apache-2.0

package cloud

import "fmt"

type principalKind uint8

const (
	kindUser principalKind = iota + 1
	kindGroup
)

// Principal is the subject of a role assignment or mapping: exactly one of a
// user or a group. The constructors make an invalid "both" or "neither"
// principal unrepresentable; the zero value is detectable via IsZero.
type Principal struct {
	kind principalKind
	id   string
	name string
}

func UserPrincipal(id, name string) Principal {
	return Principal{kind: kindUser, id: id, name: name}
}

func GroupPrincipal(id, name string) Principal {
	return Principal{kind: kindGroup, id: id, name: name}
}

func (p Principal) IsUser() bool  { return p.kind == kindUser }
func (p Principal) IsGroup() bool { return p.kind == kindGroup }
func (p Principal) IsZero() bool  { return p.kind == 0 }

func (p Principal) ID() string   { return p.id }
func (p Principal) Name() string { return p.name }

// Subject renders the principal the way operator-facing messages refer to it,
// e.g. `user "alice@example.com"` or `group "User: alice@example.com"`.
func (p Principal) Subject() string {
	label := p.name
	if label == "" {
		label = p.id
	}
	switch p.kind {
	case kindGroup:
		return fmt.Sprintf("group %q", label)
	default:
		return fmt.Sprintf("user %q", label)
	}
}

func (p Principal) String() string { return p.Subject() }
