// SPDX-License-Identifier: Apache-2.0

package cloud_test

import (
	"context"
	"testing"

	"github.com/joomcode/errorx"
	"github.com/stretchr/testify/require"

	"github.com/skyhookcloud/stackadmin/internal/cloud"
	"github.com/skyhookcloud/stackadmin/internal/cloud/cloudtest"
	"github.com/skyhookcloud/stackadmin/internal/core"
)

func newSession(f *cloudtest.Fake) *cloud.Session {
	return cloud.NewSession(f.APIs(), cloud.Defaults{
		Domain:          core.DefaultDomain,
		RoleName:        core.MemberRole,
		ServiceProject:  core.DefaultServiceProject,
		ExternalNetwork: core.DefaultExternalNetwork,
	})
}

func TestSessionRoleMemoized(t *testing.T) {
	f := cloudtest.NewWithDefaults()
	s := newSession(f)
	ctx := context.Background()

	first, err := s.Role(ctx, core.MemberRole)
	require.NoError(t, err)
	require.Equal(t, core.MemberRole, first.Name)

	second, err := s.Role(ctx, core.MemberRole)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, 1, f.Calls["ListRoles"])

	// A different role still goes to the control plane.
	admin, err := s.Role(ctx, core.AdminRole)
	require.NoError(t, err)
	require.Equal(t, core.AdminRole, admin.Name)
	require.Equal(t, 2, f.Calls["ListRoles"])
}

func TestSessionRoleNotFound(t *testing.T) {
	f := cloudtest.NewWithDefaults()
	s := newSession(f)

	_, err := s.Role(context.Background(), "no-such-role")
	require.Error(t, err)
	require.True(t, errorx.IsOfType(err, cloud.NotFoundError))
}

func TestSessionServiceProjectAndExternalNetworkCached(t *testing.T) {
	f := cloudtest.NewWithDefaults()
	s := newSession(f)
	ctx := context.Background()

	service, err := s.ServiceProject(ctx)
	require.NoError(t, err)
	require.Equal(t, core.DefaultServiceProject, service.Name)

	external, err := s.ExternalNetwork(ctx)
	require.NoError(t, err)
	require.Equal(t, core.DefaultExternalNetwork, external.Name)
	require.Equal(t, service.ID, external.ProjectID)

	_, err = s.ServiceProject(ctx)
	require.NoError(t, err)
	_, err = s.ExternalNetwork(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, f.Calls["ListProjects"])
	require.Equal(t, 1, f.Calls["ListNetworks"])
}

func TestSessionGroupListCached(t *testing.T) {
	f := cloudtest.NewWithDefaults()
	f.SeedGroup("User: alice@example.com", "")
	s := newSession(f)
	ctx := context.Background()

	groups, err := s.GroupList(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 1)

	_, err = s.GroupList(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, f.Calls["ListGroups"])
}

func TestSessionRememberGroup(t *testing.T) {
	f := cloudtest.NewWithDefaults()
	s := newSession(f)
	ctx := context.Background()

	// Before the list is loaded there is nothing to append to.
	s.RememberGroup(cloud.Group{ID: "group-x", Name: "early"})
	groups, err := s.GroupList(ctx)
	require.NoError(t, err)
	require.Empty(t, groups)

	s.RememberGroup(cloud.Group{ID: "group-y", Name: "late"})
	groups, err = s.GroupList(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	require.Equal(t, "late", groups[0].Name)
	require.Equal(t, 1, f.Calls["ListGroups"])
}

func TestSessionInvalidateCaches(t *testing.T) {
	f := cloudtest.NewWithDefaults()
	s := newSession(f)
	ctx := context.Background()

	_, err := s.Role(ctx, core.MemberRole)
	require.NoError(t, err)
	_, err = s.GroupList(ctx)
	require.NoError(t, err)
	_, err = s.ExternalNetwork(ctx)
	require.NoError(t, err)

	s.InvalidateCaches()

	_, err = s.Role(ctx, core.MemberRole)
	require.NoError(t, err)
	_, err = s.GroupList(ctx)
	require.NoError(t, err)
	_, err = s.ExternalNetwork(ctx)
	require.NoError(t, err)

	require.Equal(t, 2, f.Calls["ListRoles"])
	require.Equal(t, 2, f.Calls["ListGroups"])
	require.Equal(t, 2, f.Calls["ListNetworks"])
}
