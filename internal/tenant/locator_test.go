// SPDX-License-Identifier: Apache-2.0

package tenant

import (
	"context"
	"testing"

	"github.com/joomcode/errorx"
	"github.com/stretchr/testify/require"

	"github.com/skyhookcloud/stackadmin/internal/cloud"
	"github.com/skyhookcloud/stackadmin/internal/cloud/cloudtest"
	"github.com/skyhookcloud/stackadmin/internal/core"
)

func TestFindProjectAbsentIsNil(t *testing.T) {
	f := cloudtest.NewWithDefaults()
	s := newTestSession(f)

	project, err := FindProject(context.Background(), s, "nowhere")
	require.NoError(t, err)
	require.Nil(t, project)
}

func TestFindProjectTakesFirstOfDuplicates(t *testing.T) {
	f := cloudtest.NewWithDefaults()
	s := newTestSession(f)
	first := f.SeedProject("acme", core.DefaultDomain)
	f.SeedProject("acme", core.DefaultDomain)

	project, err := FindProject(context.Background(), s, "acme")
	require.NoError(t, err)
	require.NotNil(t, project)
	require.Equal(t, first.ID, project.ID)
}

func TestRequireProjectByName(t *testing.T) {
	f := cloudtest.NewWithDefaults()
	s := newTestSession(f)
	seeded := f.SeedProject("acme", core.DefaultDomain)

	project, err := RequireProject(context.Background(), s, "acme")
	require.NoError(t, err)
	require.Equal(t, seeded.ID, project.ID)
}

func TestRequireProjectFallsBackToID(t *testing.T) {
	f := cloudtest.NewWithDefaults()
	s := newTestSession(f)
	seeded := f.SeedProject("acme", core.DefaultDomain)

	project, err := RequireProject(context.Background(), s, seeded.ID)
	require.NoError(t, err)
	require.Equal(t, "acme", project.Name)
}

func TestRequireProjectAmbiguous(t *testing.T) {
	f := cloudtest.NewWithDefaults()
	s := newTestSession(f)
	f.SeedProject("acme", core.DefaultDomain)
	f.SeedProject("acme", core.DefaultDomain)

	_, err := RequireProject(context.Background(), s, "acme")
	require.Error(t, err)
	require.True(t, errorx.IsOfType(err, cloud.AmbiguousError))
}

func TestRequireProjectNotFound(t *testing.T) {
	f := cloudtest.NewWithDefaults()
	s := newTestSession(f)

	_, err := RequireProject(context.Background(), s, "nowhere")
	require.Error(t, err)
	require.True(t, errorx.IsOfType(err, cloud.NotFoundError))
}

func TestRequireUser(t *testing.T) {
	f := cloudtest.NewWithDefaults()
	s := newTestSession(f)
	seeded := f.SeedUser("alice@example.com", "alice@example.com")

	user, err := RequireUser(context.Background(), s, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, seeded.ID, user.ID)

	_, err = RequireUser(context.Background(), s, "bob@example.com")
	require.Error(t, err)
	require.True(t, errorx.IsOfType(err, cloud.NotFoundError))
}

func TestFindGroupUsesSessionCache(t *testing.T) {
	f := cloudtest.NewWithDefaults()
	s := newTestSession(f)
	seeded := f.SeedGroup("User: alice@example.com", "")

	group, err := FindGroup(context.Background(), s, seeded.Name)
	require.NoError(t, err)
	require.NotNil(t, group)
	require.Equal(t, seeded.ID, group.ID)

	absent, err := FindGroup(context.Background(), s, "no-such-group")
	require.NoError(t, err)
	require.Nil(t, absent)
	require.Equal(t, 1, f.Calls["ListGroups"])
}

func TestRequireGroupNotFound(t *testing.T) {
	f := cloudtest.NewWithDefaults()
	s := newTestSession(f)

	_, err := RequireGroup(context.Background(), s, "no-such-group")
	require.Error(t, err)
	require.True(t, errorx.IsOfType(err, cloud.NotFoundError))
}
