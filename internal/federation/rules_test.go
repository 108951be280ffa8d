// SPDX-License-Identifier: Apache-2.0

package federation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewUserRuleWireFormat(t *testing.T) {
	rule := NewUserRule("alice@example.com", "group-1")

	data, err := json.Marshal(rule)
	require.NoError(t, err)
	require.JSONEq(t, `{
		"remote": [
			{"type": "FirstName"},
			{"type": "LastName"},
			{"type": "Email", "regex": false, "any_one_of": ["alice@example.com"]}
		],
		"local": [
			{"group": {"id": "group-1"}, "user": {"name": "{0} {1}"}}
		]
	}`, string(data))
}

func TestRuleRoundTrip(t *testing.T) {
	rule := NewUserRule("alice@example.com", "group-1")

	data, err := json.Marshal(rule)
	require.NoError(t, err)

	var decoded Rule
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.True(t, decoded.MatchesBinding(Binding{Email: "alice@example.com", GroupID: "group-1"}))
}

func TestMatchesBinding(t *testing.T) {
	rule := NewUserRule("alice@example.com", "group-1")

	testCases := []struct {
		name     string
		binding  Binding
		expected bool
	}{
		{
			name:     "exact match",
			binding:  Binding{Email: "alice@example.com", GroupID: "group-1"},
			expected: true,
		},
		{
			name:     "different email",
			binding:  Binding{Email: "bob@example.com", GroupID: "group-1"},
			expected: false,
		},
		{
			name:     "different group",
			binding:  Binding{Email: "alice@example.com", GroupID: "group-2"},
			expected: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, rule.MatchesBinding(tc.binding))
		})
	}
}

func TestMatchesBindingForeignRuleShape(t *testing.T) {
	// Hand-written rules may spread the email and group over clauses in any
	// order; only the content matters.
	rule := Rule{
		Remote: []RemoteMatch{
			{Type: AttrEmail, AnyOneOf: []string{"bob@example.com", "alice@example.com"}},
		},
		Local: []LocalMatch{
			{User: &UserTemplate{Name: UserNameTemplate}},
			{Group: &GroupRef{ID: "group-1"}},
		},
	}
	require.True(t, rule.MatchesBinding(Binding{Email: "alice@example.com", GroupID: "group-1"}))
	require.True(t, rule.MatchesBinding(Binding{Email: "bob@example.com", GroupID: "group-1"}))
}

func TestMatchesBindingRequiresEmailAttribute(t *testing.T) {
	// The address listed under another asserted attribute is not an email
	// match, even with the right group binding.
	rule := Rule{
		Remote: []RemoteMatch{
			{Type: "UPN", AnyOneOf: []string{"alice@example.com"}},
		},
		Local: []LocalMatch{
			{Group: &GroupRef{ID: "group-1"}},
		},
	}
	require.False(t, rule.MatchesBinding(Binding{Email: "alice@example.com", GroupID: "group-1"}))
}

func TestReferencesGroup(t *testing.T) {
	rule := NewUserRule("alice@example.com", "group-1")
	require.True(t, rule.ReferencesGroup("group-1"))
	require.False(t, rule.ReferencesGroup("group-2"))

	bare := Rule{Local: []LocalMatch{{User: &UserTemplate{Name: UserNameTemplate}}}}
	require.False(t, bare.ReferencesGroup("group-1"))
}
