// SPDX-License-Identifier: Apache-2.0

package federation

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/skyhookcloud/stackadmin/internal/cloud"
	"github.com/skyhookcloud/stackadmin/internal/cloud/cloudtest"
	"github.com/skyhookcloud/stackadmin/internal/core"
)

// fakeMappings is an in-memory MappingAPI counting rewrites. failReplace
// makes the next Replace fail without touching the stored rules.
type fakeMappings struct {
	rules        []Rule
	replaceCalls int
	failReplace  bool
}

func (m *fakeMappings) Rules(_ context.Context) ([]Rule, error) {
	out := make([]Rule, len(m.rules))
	copy(out, m.rules)
	return out, nil
}

func (m *fakeMappings) Replace(_ context.Context, rules []Rule) error {
	m.replaceCalls++
	if m.failReplace {
		m.failReplace = false
		return cloud.RemoteError.New("Replace: injected failure")
	}
	m.rules = rules
	return nil
}

var testNow = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func newTestReconciler(t *testing.T, f *cloudtest.Fake, mappings *fakeMappings) *Reconciler {
	t.Helper()
	sess := cloud.NewSession(f.APIs(), cloud.Defaults{
		Domain:          core.DefaultDomain,
		RoleName:        core.MemberRole,
		ServiceProject:  core.DefaultServiceProject,
		ExternalNetwork: core.DefaultExternalNetwork,
	})
	r := NewReconciler(sess, mappings, t.TempDir())
	r.now = func() time.Time { return testNow }
	return r
}

func backupFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestGroupName(t *testing.T) {
	require.Equal(t, "User: alice@example.com", GroupName("alice@example.com"))
}

func TestEnsureGroupCreatesThenFinds(t *testing.T) {
	f := cloudtest.NewWithDefaults()
	r := newTestReconciler(t, f, &fakeMappings{})
	ctx := context.Background()

	group, created, err := r.EnsureGroup(ctx, "alice@example.com", "Alice Example")
	require.NoError(t, err)
	require.True(t, created)
	require.Equal(t, "User: alice@example.com", group.Name)
	require.Equal(t, "Alice Example", group.Description)

	// The created group lands in the session cache, so the second ensure
	// neither lists nor creates.
	again, created, err := r.EnsureGroup(ctx, "alice@example.com", "Alice Example")
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, group.ID, again.ID)
	require.Equal(t, 1, f.Calls["ListGroups"])
	require.Equal(t, 1, f.Calls["CreateGroup"])
}

func TestEnsureMappingsAllPresentWritesNothing(t *testing.T) {
	f := cloudtest.NewWithDefaults()
	mappings := &fakeMappings{rules: []Rule{NewUserRule("alice@example.com", "group-1")}}
	r := newTestReconciler(t, f, mappings)

	result, err := r.EnsureMappings(context.Background(), []Binding{
		{Email: "alice@example.com", GroupID: "group-1"},
	})
	require.NoError(t, err)
	require.Empty(t, result.Added)
	require.Equal(t, []string{"alice@example.com"}, result.Unchanged)
	require.Empty(t, result.BackupPath)
	require.Equal(t, 0, mappings.replaceCalls)
	require.Empty(t, backupFiles(t, r.backupDir))
}

func TestEnsureMappingsAppendsMissingRules(t *testing.T) {
	f := cloudtest.NewWithDefaults()
	existing := NewUserRule("alice@example.com", "group-1")
	mappings := &fakeMappings{rules: []Rule{existing}}
	r := newTestReconciler(t, f, mappings)

	result, err := r.EnsureMappings(context.Background(), []Binding{
		{Email: "alice@example.com", GroupID: "group-1"},
		{Email: "bob@example.com", GroupID: "group-2"},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"bob@example.com"}, result.Added)
	require.Equal(t, []string{"alice@example.com"}, result.Unchanged)
	require.Equal(t, 1, mappings.replaceCalls)

	// Existing rules keep their position, new ones are appended.
	require.Len(t, mappings.rules, 2)
	require.Equal(t, existing, mappings.rules[0])
	require.True(t, mappings.rules[1].MatchesBinding(Binding{Email: "bob@example.com", GroupID: "group-2"}))
}

func TestEnsureMappingsIgnoresNonEmailRules(t *testing.T) {
	f := cloudtest.NewWithDefaults()
	// A hand-made rule matching the address under a different attribute does
	// not satisfy the binding; the canonical rule still gets appended.
	foreign := Rule{
		Remote: []RemoteMatch{{Type: "UPN", AnyOneOf: []string{"alice@example.com"}}},
		Local:  []LocalMatch{{Group: &GroupRef{ID: "group-1"}}},
	}
	mappings := &fakeMappings{rules: []Rule{foreign}}
	r := newTestReconciler(t, f, mappings)

	result, err := r.EnsureMappings(context.Background(), []Binding{
		{Email: "alice@example.com", GroupID: "group-1"},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"alice@example.com"}, result.Added)
	require.Empty(t, result.Unchanged)
	require.Equal(t, 1, mappings.replaceCalls)
	require.Len(t, mappings.rules, 2)
	require.Equal(t, NewUserRule("alice@example.com", "group-1"), mappings.rules[1])
}

func TestEnsureMappingsBacksUpBeforeRewrite(t *testing.T) {
	f := cloudtest.NewWithDefaults()
	existing := NewUserRule("alice@example.com", "group-1")
	mappings := &fakeMappings{rules: []Rule{existing}}
	r := newTestReconciler(t, f, mappings)

	result, err := r.EnsureMappings(context.Background(), []Binding{
		{Email: "bob@example.com", GroupID: "group-2"},
	})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(r.backupDir, "rules_2026-03-14_09:26:53.json"), result.BackupPath)

	// The backup is the pre-rewrite rule list.
	data, err := os.ReadFile(result.BackupPath)
	require.NoError(t, err)
	var saved []Rule
	require.NoError(t, json.Unmarshal(data, &saved))
	require.Equal(t, []Rule{existing}, saved)
}

func TestGroupRules(t *testing.T) {
	f := cloudtest.NewWithDefaults()
	mappings := &fakeMappings{rules: []Rule{
		NewUserRule("alice@example.com", "group-1"),
		NewUserRule("bob@example.com", "group-2"),
	}}
	r := newTestReconciler(t, f, mappings)

	rules, err := r.GroupRules(context.Background(), "group-2")
	require.NoError(t, err)
	require.Len(t, rules, 1)
	require.True(t, rules[0].MatchesBinding(Binding{Email: "bob@example.com", GroupID: "group-2"}))

	rules, err = r.GroupRules(context.Background(), "group-3")
	require.NoError(t, err)
	require.Empty(t, rules)
}

func TestDeleteGroupsPrunesRules(t *testing.T) {
	f := cloudtest.NewWithDefaults()
	alice := f.SeedGroup(GroupName("alice@example.com"), "")
	bob := f.SeedGroup(GroupName("bob@example.com"), "")
	mappings := &fakeMappings{rules: []Rule{
		NewUserRule("alice@example.com", alice.ID),
		NewUserRule("bob@example.com", bob.ID),
	}}
	r := newTestReconciler(t, f, mappings)

	require.NoError(t, r.DeleteGroups(context.Background(), []string{"alice@example.com"}))

	require.Equal(t, 1, f.Calls["DeleteGroup"])
	groups, err := f.ListGroups(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 1)
	require.Equal(t, bob.Name, groups[0].Name)

	require.Equal(t, 1, mappings.replaceCalls)
	require.Len(t, mappings.rules, 1)
	require.True(t, mappings.rules[0].ReferencesGroup(bob.ID))
	require.Len(t, backupFiles(t, r.backupDir), 1)
}

func TestDeleteGroupsKeepsGroupsWhenPruneFails(t *testing.T) {
	f := cloudtest.NewWithDefaults()
	alice := f.SeedGroup(GroupName("alice@example.com"), "")
	mappings := &fakeMappings{
		rules:       []Rule{NewUserRule("alice@example.com", alice.ID)},
		failReplace: true,
	}
	r := newTestReconciler(t, f, mappings)
	ctx := context.Background()

	// The mapping rewrite fails before any group is touched, so the rules
	// stay reachable through the surviving group.
	require.Error(t, r.DeleteGroups(ctx, []string{"alice@example.com"}))
	require.Equal(t, 0, f.Calls["DeleteGroup"])
	require.Len(t, mappings.rules, 1)

	// The rerun finds the group again and finishes the job.
	require.NoError(t, r.DeleteGroups(ctx, []string{"alice@example.com"}))
	require.Equal(t, 1, f.Calls["DeleteGroup"])
	require.Empty(t, mappings.rules)
	groups, err := f.ListGroups(ctx)
	require.NoError(t, err)
	require.Empty(t, groups)
}

func TestDeleteGroupsUnknownEmailIsNoop(t *testing.T) {
	f := cloudtest.NewWithDefaults()
	mappings := &fakeMappings{rules: []Rule{NewUserRule("alice@example.com", "group-1")}}
	r := newTestReconciler(t, f, mappings)

	require.NoError(t, r.DeleteGroups(context.Background(), []string{"nobody@example.com"}))
	require.Equal(t, 0, f.Calls["DeleteGroup"])
	require.Equal(t, 0, mappings.replaceCalls)
	require.Empty(t, backupFiles(t, r.backupDir))
}

func TestDeleteGroupsWithoutRulesSkipsRewrite(t *testing.T) {
	f := cloudtest.NewWithDefaults()
	f.SeedGroup(GroupName("alice@example.com"), "")
	mappings := &fakeMappings{rules: []Rule{NewUserRule("bob@example.com", "group-2")}}
	r := newTestReconciler(t, f, mappings)

	require.NoError(t, r.DeleteGroups(context.Background(), []string{"alice@example.com"}))
	require.Equal(t, 1, f.Calls["DeleteGroup"])

	// No rule referenced the group, so the mapping stays untouched.
	require.Equal(t, 0, mappings.replaceCalls)
	require.Empty(t, backupFiles(t, r.backupDir))
}

func TestBackupRulesContent(t *testing.T) {
	dir := t.TempDir()
	rules := []Rule{NewUserRule("alice@example.com", "group-1")}

	path, err := backupRules(dir, testNow, rules)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "rules_2026-03-14_09:26:53.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	expected, err := json.MarshalIndent(rules, "", "  ")
	require.NoError(t, err)
	require.Equal(t, string(expected), string(data))
}
