// SPDX-License-Identifier: Apache-2.0

package workflows

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skyhookcloud/stackadmin/internal/cloud"
	"github.com/skyhookcloud/stackadmin/internal/cloud/cloudtest"
	"github.com/skyhookcloud/stackadmin/internal/core"
	"github.com/skyhookcloud/stackadmin/internal/doctor"
)

func newTestSession(f *cloudtest.Fake) *cloud.Session {
	return cloud.NewSession(f.APIs(), cloud.Defaults{
		Domain:          core.DefaultDomain,
		RoleName:        core.MemberRole,
		ServiceProject:  core.DefaultServiceProject,
		ExternalNetwork: core.DefaultExternalNetwork,
	})
}

func TestEnsureProjectBootstrapsTopology(t *testing.T) {
	f := cloudtest.NewWithDefaults()
	s := newTestSession(f)
	ctx := context.Background()

	project, created, err := EnsureProject(ctx, s, "acme", DefaultBootstrapOptions())
	require.NoError(t, err)
	require.True(t, created)
	require.Equal(t, "acme", project.Name)

	for _, method := range []string{
		"CreateProject",
		"CreateNetwork",
		"CreateSubnet",
		"CreateRouter",
		"CreatePort",
		"AttachRouterInterface",
		"CreateSecurityGroup",
		"CreateSecurityGroupRule",
	} {
		require.Equal(t, 1, f.Calls[method], "method %s", method)
	}

	networks, err := f.ListNetworks(ctx, cloud.NetworkFilter{ProjectID: project.ID})
	require.NoError(t, err)
	require.Len(t, networks, 1)
	require.Equal(t, core.DefaultNetworkName, networks[0].Name)

	routers, err := f.ListRouters(ctx, cloud.RouterFilter{ProjectID: project.ID})
	require.NoError(t, err)
	require.Len(t, routers, 1)
}

func TestEnsureProjectAssumeCompleteShortCircuits(t *testing.T) {
	f := cloudtest.NewWithDefaults()
	s := newTestSession(f)
	ctx := context.Background()

	_, _, err := EnsureProject(ctx, s, "acme", DefaultBootstrapOptions())
	require.NoError(t, err)
	listNetworks := f.Calls["ListNetworks"]

	project, created, err := EnsureProject(ctx, s, "acme", DefaultBootstrapOptions())
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, "acme", project.Name)

	// The existing project is taken at face value: no resource walk at all.
	require.Equal(t, listNetworks, f.Calls["ListNetworks"])
	require.Equal(t, 1, f.Calls["CreateProject"])
	require.Equal(t, 1, f.Calls["CreateNetwork"])
}

func TestEnsureProjectCheckResourcesRevisitsEverything(t *testing.T) {
	f := cloudtest.NewWithDefaults()
	s := newTestSession(f)
	ctx := context.Background()

	_, _, err := EnsureProject(ctx, s, "acme", DefaultBootstrapOptions())
	require.NoError(t, err)

	_, created, err := EnsureProject(ctx, s, "acme", BootstrapOptions{AssumeComplete: false})
	require.NoError(t, err)
	require.False(t, created)

	// Every resource was located again, nothing was created again.
	require.Equal(t, 1, f.Calls["CreateNetwork"])
	require.Equal(t, 1, f.Calls["CreateSubnet"])
	require.Equal(t, 1, f.Calls["CreateRouter"])
	require.Equal(t, 1, f.Calls["CreateSecurityGroup"])
	require.Equal(t, 1, f.Calls["CreateSecurityGroupRule"])
}

func TestEnsureProjectResumesAfterPartialFailure(t *testing.T) {
	f := cloudtest.NewWithDefaults()
	s := newTestSession(f)
	ctx := context.Background()

	f.FailNext["CreateSubnet"] = true
	_, created, err := EnsureProject(ctx, s, "acme", DefaultBootstrapOptions())
	require.Error(t, err)
	require.True(t, created)
	require.Equal(t, 1, f.Calls["CreateNetwork"])
	require.Equal(t, 0, f.Calls["CreateRouter"])

	// A rerun with the resource walk on finishes the job without touching
	// what the failed run already built.
	_, created, err = EnsureProject(ctx, s, "acme", BootstrapOptions{AssumeComplete: false})
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, 1, f.Calls["CreateNetwork"])
	// The failed attempt counted too, so the resuming create is the second.
	require.Equal(t, 2, f.Calls["CreateSubnet"])
	require.Equal(t, 1, f.Calls["CreateRouter"])
	require.Equal(t, 1, f.Calls["AttachRouterInterface"])
}

func TestEnsureProjectFailsWithoutExternalNetwork(t *testing.T) {
	f := cloudtest.New()
	f.SeedRole(core.MemberRole)
	f.SeedRole(core.AdminRole)
	s := newTestSession(f)

	// Without the service project the router step cannot resolve its
	// external gateway.
	_, created, err := EnsureProject(context.Background(), s, "acme", DefaultBootstrapOptions())
	require.Error(t, err)
	require.True(t, created)
	require.Equal(t, 0, f.Calls["CreateRouter"])
}

func TestBootstrapProjectReportCarriesInstructions(t *testing.T) {
	f := cloudtest.New()
	f.SeedRole(core.MemberRole)
	f.SeedRole(core.AdminRole)
	s := newTestSession(f)

	project, created, report, err := BootstrapProject(context.Background(), s, "acme", DefaultBootstrapOptions())
	require.NoError(t, err)
	require.True(t, created)
	require.Equal(t, "acme", project.Name)

	// The router step fails on the missing external network and tells the
	// operator what to check.
	require.NotNil(t, report)
	require.Error(t, report.Error)
	instructions := doctor.GetInstructionsFromReport(report)
	require.Contains(t, instructions, core.DefaultExternalNetwork)
	require.Contains(t, instructions, core.DefaultServiceProject)
}

func TestBootstrapProjectSkipsWalkForCompleteProject(t *testing.T) {
	f := cloudtest.NewWithDefaults()
	s := newTestSession(f)
	ctx := context.Background()

	_, _, report, err := BootstrapProject(ctx, s, "acme", DefaultBootstrapOptions())
	require.NoError(t, err)
	require.NotNil(t, report)
	require.NoError(t, report.Error)

	_, created, report, err := BootstrapProject(ctx, s, "acme", DefaultBootstrapOptions())
	require.NoError(t, err)
	require.False(t, created)
	require.Nil(t, report)
}
