// SPDX-License-Identifier: Apache-2.0

package access

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/skyhookcloud/stackadmin/internal/cloud"
	"github.com/skyhookcloud/stackadmin/internal/cloud/cloudtest"
	"github.com/skyhookcloud/stackadmin/internal/core"
)

func newTestSession(f *cloudtest.Fake) *cloud.Session {
	return cloud.NewSession(f.APIs(), cloud.Defaults{
		Domain:          core.DefaultDomain,
		RoleName:        core.MemberRole,
		ServiceProject:  core.DefaultServiceProject,
		ExternalNetwork: core.DefaultExternalNetwork,
	})
}

func TestDiff(t *testing.T) {
	testCases := []struct {
		name       string
		desired    []string
		existing   []string
		keepOthers bool
		expected   Result
	}{
		{
			name:     "everything to add",
			desired:  []string{"u2", "u1"},
			expected: Result{Added: []string{"u1", "u2"}},
		},
		{
			name:     "everything to remove",
			existing: []string{"u2", "u1"},
			expected: Result{Removed: []string{"u1", "u2"}},
		},
		{
			name:       "keep others retains extras",
			desired:    []string{"u1"},
			existing:   []string{"u2", "u3"},
			keepOthers: true,
			expected:   Result{Added: []string{"u1"}, Unchanged: []string{"u2", "u3"}},
		},
		{
			name:     "mixed",
			desired:  []string{"u1", "u2"},
			existing: []string{"u2", "u3"},
			expected: Result{Added: []string{"u1"}, Removed: []string{"u3"}, Unchanged: []string{"u2"}},
		},
		{
			name:     "already converged",
			desired:  []string{"u1"},
			existing: []string{"u1"},
			expected: Result{Unchanged: []string{"u1"}},
		},
		{
			name:     "duplicate desired ids collapse",
			desired:  []string{"u1", "u1"},
			expected: Result{Added: []string{"u1"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			existing := map[string]bool{}
			for _, id := range tc.existing {
				existing[id] = true
			}
			require.Equal(t, tc.expected, diff(tc.desired, existing, tc.keepOthers))
		})
	}
}

func TestReconcileProjectMembers(t *testing.T) {
	f := cloudtest.NewWithDefaults()
	s := newTestSession(f)
	ctx := context.Background()
	project := f.SeedProject("acme", core.DefaultDomain)
	keep := f.SeedUser("keep@example.com", "keep@example.com")
	drop := f.SeedUser("drop@example.com", "drop@example.com")
	add := f.SeedUser("add@example.com", "add@example.com")

	role, err := s.Role(ctx, core.MemberRole)
	require.NoError(t, err)
	f.SeedAssignment(role.ID, cloud.UserPrincipal(keep.ID, ""), project.ID)
	f.SeedAssignment(role.ID, cloud.UserPrincipal(drop.ID, ""), project.ID)

	result, err := ReconcileProjectMembers(ctx, s, &project, []string{keep.ID, add.ID}, Options{})
	require.NoError(t, err)
	require.Equal(t, []string{add.ID}, result.Added)
	require.Equal(t, []string{drop.ID}, result.Removed)
	require.Equal(t, []string{keep.ID}, result.Unchanged)

	assignments, err := f.ListAssignments(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, assignments, 2)
}

func TestReconcileProjectMembersEmptyDesiredRevokesAll(t *testing.T) {
	f := cloudtest.NewWithDefaults()
	s := newTestSession(f)
	ctx := context.Background()
	project := f.SeedProject("acme", core.DefaultDomain)
	u1 := f.SeedUser("a@example.com", "a@example.com")
	u2 := f.SeedUser("b@example.com", "b@example.com")

	role, err := s.Role(ctx, core.MemberRole)
	require.NoError(t, err)
	f.SeedAssignment(role.ID, cloud.UserPrincipal(u1.ID, ""), project.ID)
	f.SeedAssignment(role.ID, cloud.UserPrincipal(u2.ID, ""), project.ID)

	result, err := ReconcileProjectMembers(ctx, s, &project, nil, Options{})
	require.NoError(t, err)
	require.Empty(t, result.Added)
	require.Len(t, result.Removed, 2)

	assignments, err := f.ListAssignments(ctx, project.ID)
	require.NoError(t, err)
	require.Empty(t, assignments)
}

func TestReconcileProjectMembersKeepOthers(t *testing.T) {
	f := cloudtest.NewWithDefaults()
	s := newTestSession(f)
	ctx := context.Background()
	project := f.SeedProject("acme", core.DefaultDomain)
	extra := f.SeedUser("extra@example.com", "extra@example.com")

	role, err := s.Role(ctx, core.MemberRole)
	require.NoError(t, err)
	f.SeedAssignment(role.ID, cloud.UserPrincipal(extra.ID, ""), project.ID)

	result, err := ReconcileProjectMembers(ctx, s, &project, nil, Options{KeepOthers: true})
	require.NoError(t, err)
	require.Empty(t, result.Removed)
	require.Equal(t, []string{extra.ID}, result.Unchanged)
	require.Equal(t, 0, f.Calls["Revoke"])
}

func TestReconcileProjectMembersIgnoresGroupAssignments(t *testing.T) {
	f := cloudtest.NewWithDefaults()
	s := newTestSession(f)
	ctx := context.Background()
	project := f.SeedProject("acme", core.DefaultDomain)
	group := f.SeedGroup("User: alice@example.com", "")

	role, err := s.Role(ctx, core.MemberRole)
	require.NoError(t, err)
	f.SeedAssignment(role.ID, cloud.GroupPrincipal(group.ID, group.Name), project.ID)

	result, err := ReconcileProjectMembers(ctx, s, &project, nil, Options{})
	require.NoError(t, err)
	require.Empty(t, result.Removed)

	// The group grant survives a user-membership reconciliation.
	assignments, err := f.ListAssignments(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, assignments, 1)
}

func TestReconcileProjectMembersAbortsOnFirstFailure(t *testing.T) {
	f := cloudtest.NewWithDefaults()
	s := newTestSession(f)
	ctx := context.Background()
	project := f.SeedProject("acme", core.DefaultDomain)
	u1 := f.SeedUser("a@example.com", "a@example.com")
	u2 := f.SeedUser("b@example.com", "b@example.com")

	f.FailNext["Grant"] = true
	result, err := ReconcileProjectMembers(ctx, s, &project, []string{u1.ID, u2.ID}, Options{})
	require.Error(t, err)
	require.Equal(t, 1, f.Calls["Grant"])

	// The computed plan is still reported so the operator sees what was
	// attempted.
	require.Len(t, result.Added, 2)

	assignments, err := f.ListAssignments(ctx, project.ID)
	require.NoError(t, err)
	require.Empty(t, assignments)
}

func TestReconcileGroupMembers(t *testing.T) {
	f := cloudtest.NewWithDefaults()
	s := newTestSession(f)
	ctx := context.Background()
	group := f.SeedGroup("editors", "")
	keep := f.SeedUser("keep@example.com", "keep@example.com")
	drop := f.SeedUser("drop@example.com", "drop@example.com")
	add := f.SeedUser("add@example.com", "add@example.com")
	f.SeedGroupMember(group.ID, keep.ID)
	f.SeedGroupMember(group.ID, drop.ID)

	result, err := ReconcileGroupMembers(ctx, s, &group, []string{keep.ID, add.ID}, false)
	require.NoError(t, err)
	require.Equal(t, []string{add.ID}, result.Added)
	require.Equal(t, []string{drop.ID}, result.Removed)

	members, err := f.ListGroupUsers(ctx, group.ID)
	require.NoError(t, err)
	require.Len(t, members, 2)
}

func TestGrantSkipsHeldAssignment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	roles := cloud.NewMockRoleAPI(ctrl)
	s := cloud.NewSession(cloud.APIs{Roles: roles}, cloud.Defaults{RoleName: core.MemberRole})
	project := &cloud.Project{ID: "project-1", Name: "acme"}
	principal := cloud.UserPrincipal("user-1", "alice@example.com")

	roles.EXPECT().ListRoles(gomock.Any(), core.MemberRole).
		Return([]cloud.Role{{ID: "role-1", Name: core.MemberRole}}, nil)
	roles.EXPECT().CheckAssignment(gomock.Any(), "role-1", principal, "project-1").
		Return(true, nil)
	roles.EXPECT().Grant(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	changed, err := Grant(context.Background(), s, project, principal, "")
	require.NoError(t, err)
	require.False(t, changed)
}

func TestGrantAndRevokeRoundTrip(t *testing.T) {
	f := cloudtest.NewWithDefaults()
	s := newTestSession(f)
	ctx := context.Background()
	project := f.SeedProject("acme", core.DefaultDomain)
	user := f.SeedUser("alice@example.com", "alice@example.com")
	principal := cloud.UserPrincipal(user.ID, user.Name)

	changed, err := Grant(ctx, s, &project, principal, core.AdminRole)
	require.NoError(t, err)
	require.True(t, changed)

	changed, err = Grant(ctx, s, &project, principal, core.AdminRole)
	require.NoError(t, err)
	require.False(t, changed)
	require.Equal(t, 1, f.Calls["Grant"])

	changed, err = Revoke(ctx, s, &project, principal, core.AdminRole)
	require.NoError(t, err)
	require.True(t, changed)

	changed, err = Revoke(ctx, s, &project, principal, core.AdminRole)
	require.NoError(t, err)
	require.False(t, changed)
	require.Equal(t, 1, f.Calls["Revoke"])
}
