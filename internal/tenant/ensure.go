// SPDX-License-Identifier: Apache-2.0

package tenant

import (
	"context"

	"github.com/automa-saga/logx"
	"github.com/skyhookcloud/stackadmin/internal/cloud"
	"github.com/skyhookcloud/stackadmin/internal/core"
)

// The Ensure functions below share one contract: locate the resource by its
// natural key; if found, return it unchanged together with created=false; if
// absent, create it with the canonical spec and return created=true. Found
// resources are not reconciled against the canonical spec: a cheap existence
// check is paid on every run, a full attribute diff is not.
//
// Different keys may be ensured concurrently; two ensures of the same key are
// not synchronized and can race to create duplicates.

// EnsureProject upserts the project record itself. The surrounding topology is
// the bootstrap workflow's job.
func EnsureProject(ctx context.Context, s *cloud.Session, name string) (*cloud.Project, bool, error) {
	project, err := FindProject(ctx, s, name)
	if err != nil {
		return nil, false, err
	}
	if project != nil {
		logx.As().Info().Str("name", project.Name).Str("id", project.ID).Msg("Found project")
		return project, false, nil
	}

	project, err = s.Projects.CreateProject(ctx, cloud.ProjectSpec{
		Name:     name,
		DomainID: s.Defaults.Domain,
	})
	if err != nil {
		return nil, false, err
	}
	logx.As().Info().Str("name", project.Name).Str("id", project.ID).Msg("Created project")
	return project, true, nil
}

// EnsureNetwork upserts the project's default network.
func EnsureNetwork(ctx context.Context, s *cloud.Session, project *cloud.Project) (*cloud.Network, bool, error) {
	network, err := findNetwork(ctx, s, project.ID, core.DefaultNetworkName)
	if err != nil {
		return nil, false, err
	}
	if network != nil {
		logx.As().Info().Str("name", network.Name).Str("id", network.ID).Msg("Found network")
		return network, false, nil
	}

	network, err = s.Network.CreateNetwork(ctx, cloud.NetworkSpec{
		ProjectID:   project.ID,
		Name:        core.DefaultNetworkName,
		Description: "Default network",
	})
	if err != nil {
		return nil, false, err
	}
	logx.As().Info().Str("name", network.Name).Str("id", network.ID).Msg("Created network")
	return network, true, nil
}

// EnsureSubnet upserts the default subnet on the given network.
func EnsureSubnet(ctx context.Context, s *cloud.Session, project *cloud.Project, network *cloud.Network) (*cloud.Subnet, bool, error) {
	subnet, err := findSubnet(ctx, s, project.ID, network.ID, core.DefaultSubnetName)
	if err != nil {
		return nil, false, err
	}
	if subnet != nil {
		logx.As().Info().
			Str("name", subnet.Name).
			Str("id", subnet.ID).
			Str("cidr", subnet.CIDR).
			Msg("Found subnet")
		return subnet, false, nil
	}

	subnet, err = s.Network.CreateSubnet(ctx, cloud.SubnetSpec{
		ProjectID:   project.ID,
		NetworkID:   network.ID,
		Name:        core.DefaultSubnetName,
		CIDR:        core.DefaultSubnetCIDR,
		IPVersion:   4,
		Description: "Default subnet",
	})
	if err != nil {
		return nil, false, err
	}
	logx.As().Info().
		Str("name", subnet.Name).
		Str("id", subnet.ID).
		Str("cidr", subnet.CIDR).
		Msg("Created subnet")
	return subnet, true, nil
}

// EnsureRouter upserts the default router connecting the tenant subnet to the
// shared external network.
//
// Known gap: creation is a three-call sequence (router, port at the subnet
// gateway address, interface attach) gated only by the router's existence. A
// failure after the router call but before the attach leaves a router without
// an interface, and a retried run finds the router and does not repair the
// port. Re-running does not make this worse; it also does not fix it.
func EnsureRouter(ctx context.Context, s *cloud.Session, project *cloud.Project, network *cloud.Network, subnet *cloud.Subnet) (*cloud.Router, bool, error) {
	router, err := findRouter(ctx, s, project.ID, core.DefaultRouterName)
	if err != nil {
		return nil, false, err
	}
	if router != nil {
		logx.As().Info().Str("name", router.Name).Str("id", router.ID).Msg("Found router")
		return router, false, nil
	}

	external, err := s.ExternalNetwork(ctx)
	if err != nil {
		return nil, false, err
	}

	router, err = s.Network.CreateRouter(ctx, cloud.RouterSpec{
		ProjectID:         project.ID,
		Name:              core.DefaultRouterName,
		Description:       "Default router",
		ExternalNetworkID: external.ID,
	})
	if err != nil {
		return nil, false, err
	}
	logx.As().Info().Str("name", router.Name).Str("id", router.ID).Msg("Created router")

	port, err := s.Network.CreatePort(ctx, cloud.PortSpec{
		ProjectID: project.ID,
		NetworkID: network.ID,
		FixedIPs:  []cloud.FixedIP{{SubnetID: subnet.ID, IPAddress: subnet.GatewayIP}},
	})
	if err != nil {
		return nil, false, err
	}
	logx.As().Info().Str("id", port.ID).Msg("Created port on tenant subnet")

	if err := s.Network.AttachRouterInterface(ctx, router.ID, subnet.ID, port.ID); err != nil {
		return nil, false, err
	}
	logx.As().Info().Msg("Added port to router")

	return router, true, nil
}

// EnsureSecurityGroup upserts the project's default security group. The
// control plane usually creates it alongside the project; the upsert covers
// deployments where it does not.
func EnsureSecurityGroup(ctx context.Context, s *cloud.Session, project *cloud.Project) (*cloud.SecurityGroup, bool, error) {
	sg, err := findSecurityGroup(ctx, s, project.ID, core.DefaultSecurityGroupName)
	if err != nil {
		return nil, false, err
	}
	if sg != nil {
		logx.As().Info().Str("name", sg.Name).Str("id", sg.ID).Msg("Found security group")
		return sg, false, nil
	}

	sg, err = s.Network.CreateSecurityGroup(ctx, cloud.SecurityGroupSpec{
		ProjectID:   project.ID,
		Name:        core.DefaultSecurityGroupName,
		Description: "Default security group",
	})
	if err != nil {
		return nil, false, err
	}
	logx.As().Info().Str("name", sg.Name).Str("id", sg.ID).Msg("Created security group")
	return sg, true, nil
}

// EnsureOpenIngressRule upserts the rule allowing all IPv4 ingress on the
// given security group.
func EnsureOpenIngressRule(ctx context.Context, s *cloud.Session, sg *cloud.SecurityGroup) (*cloud.SecurityGroupRule, bool, error) {
	rule, err := findOpenIngressRule(ctx, s, sg)
	if err != nil {
		return nil, false, err
	}
	if rule != nil {
		logx.As().Info().
			Str("remote", rule.RemoteIPPrefix).
			Str("id", rule.ID).
			Msg("Found security group rule")
		return rule, false, nil
	}

	rule, err = s.Network.CreateSecurityGroupRule(ctx, cloud.SecurityGroupRuleSpec{
		SecurityGroupID: sg.ID,
		Direction:       cloud.DirectionIngress,
		EtherType:       cloud.EtherTypeIPv4,
		RemoteIPPrefix:  cloud.AnyIPv4Prefix,
	})
	if err != nil {
		return nil, false, err
	}
	logx.As().Info().
		Str("remote", rule.RemoteIPPrefix).
		Str("id", rule.ID).
		Msg("Created security group rule")
	return rule, true, nil
}

// EnsureUser upserts a local user. The login name is the email address; the
// description carries the display name from the directory record.
func EnsureUser(ctx context.Context, s *cloud.Session, record cloud.DirectoryUser, defaultProjectID string) (*cloud.User, bool, error) {
	user, err := FindUser(ctx, s, record.Email)
	if err != nil {
		return nil, false, err
	}
	if user != nil {
		logx.As().Info().Str("name", user.Name).Str("id", user.ID).Msg("Found local user")
		return user, false, nil
	}

	user, err = s.Users.CreateUser(ctx, cloud.UserSpec{
		Name:             record.Email,
		Email:            record.Email,
		Description:      record.Name,
		DefaultProjectID: defaultProjectID,
	})
	if err != nil {
		return nil, false, err
	}
	logx.As().Info().Str("name", user.Name).Str("id", user.ID).Msg("Created local user")
	return user, true, nil
}
