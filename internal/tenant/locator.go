// SPDX-License-Identifier: Apache-2.0

// Package tenant implements the per-resource reconciliation primitives: pure
// read locators and create-if-absent upserts for every resource kind a tenant
// project owns, plus the cascading teardown and the topology snapshot.
package tenant

import (
	"context"

	"github.com/automa-saga/logx"
	"github.com/joomcode/errorx"
	"github.com/skyhookcloud/stackadmin/internal/cloud"
)

// firstMatch returns the first of the listed matches in the control plane's
// list order, or nil when there are none. Kinds located here are nominally
// unique per scope, so more than one match means somebody created a duplicate
// out of band; the engine does not guess which one is meant, it takes the
// first and says so loudly.
func firstMatch[T any](kind, name string, items []T) *T {
	if len(items) == 0 {
		return nil
	}
	if len(items) > 1 {
		logx.As().Warn().
			Str("kind", kind).
			Str("name", name).
			Int("matches", len(items)).
			Msg("Multiple matches for a resource expected to be unique, using the first list result")
	}
	return &items[0]
}

// FindProject locates a project by name. nil means absent, not an error.
func FindProject(ctx context.Context, s *cloud.Session, name string) (*cloud.Project, error) {
	projects, err := s.Projects.ListProjects(ctx, cloud.ProjectFilter{Name: name})
	if err != nil {
		return nil, err
	}
	return firstMatch("project", name, projects), nil
}

// RequireProject resolves a project the operator named on the command line.
// The argument may be a name or, failing that, a project ID. Absence is fatal
// for the calling operation.
func RequireProject(ctx context.Context, s *cloud.Session, nameOrID string) (*cloud.Project, error) {
	projects, err := s.Projects.ListProjects(ctx, cloud.ProjectFilter{Name: nameOrID})
	if err != nil {
		return nil, err
	}
	if len(projects) > 1 {
		return nil, cloud.AmbiguousError.New("%d projects named %q, pass the project ID instead", len(projects), nameOrID)
	}
	if len(projects) == 1 {
		return &projects[0], nil
	}

	// Maybe the name is an ID.
	project, err := s.Projects.GetProject(ctx, nameOrID)
	if err != nil {
		if errorx.HasTrait(err, errorx.NotFound()) {
			return nil, cloud.NotFoundError.New("could not find project with name or ID %q", nameOrID)
		}
		return nil, err
	}
	return project, nil
}

// FindUser locates a local user by its login name, which is the email address.
func FindUser(ctx context.Context, s *cloud.Session, email string) (*cloud.User, error) {
	users, err := s.Users.ListUsers(ctx, cloud.UserFilter{Name: email})
	if err != nil {
		return nil, err
	}
	return firstMatch("user", email, users), nil
}

// RequireUser resolves a user the operator named; absence is fatal.
func RequireUser(ctx context.Context, s *cloud.Session, email string) (*cloud.User, error) {
	user, err := FindUser(ctx, s, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, cloud.NotFoundError.New("user %q not found", email)
	}
	return user, nil
}

// FindGroup scans the session's cached group list by exact name.
func FindGroup(ctx context.Context, s *cloud.Session, name string) (*cloud.Group, error) {
	groups, err := s.GroupList(ctx)
	if err != nil {
		return nil, err
	}
	for i := range groups {
		if groups[i].Name == name {
			return &groups[i], nil
		}
	}
	return nil, nil
}

// RequireGroup resolves a group the operator named; absence is fatal.
func RequireGroup(ctx context.Context, s *cloud.Session, name string) (*cloud.Group, error) {
	group, err := FindGroup(ctx, s, name)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, cloud.NotFoundError.New("group %q not found", name)
	}
	return group, nil
}

func findNetwork(ctx context.Context, s *cloud.Session, projectID, name string) (*cloud.Network, error) {
	networks, err := s.Network.ListNetworks(ctx, cloud.NetworkFilter{ProjectID: projectID, Name: name})
	if err != nil {
		return nil, err
	}
	return firstMatch("network", name, networks), nil
}

func findSubnet(ctx context.Context, s *cloud.Session, projectID, networkID, name string) (*cloud.Subnet, error) {
	subnets, err := s.Network.ListSubnets(ctx, cloud.SubnetFilter{ProjectID: projectID, NetworkID: networkID, Name: name})
	if err != nil {
		return nil, err
	}
	return firstMatch("subnet", name, subnets), nil
}

func findRouter(ctx context.Context, s *cloud.Session, projectID, name string) (*cloud.Router, error) {
	routers, err := s.Network.ListRouters(ctx, cloud.RouterFilter{ProjectID: projectID, Name: name})
	if err != nil {
		return nil, err
	}
	return firstMatch("router", name, routers), nil
}

func findSecurityGroup(ctx context.Context, s *cloud.Session, projectID, name string) (*cloud.SecurityGroup, error) {
	groups, err := s.Network.ListSecurityGroups(ctx, cloud.SecurityGroupFilter{ProjectID: projectID, Name: name})
	if err != nil {
		return nil, err
	}
	return firstMatch("security group", name, groups), nil
}

// findOpenIngressRule looks for the rule allowing all IPv4 traffic from
// anywhere. The rule has no name, so the natural key is the (direction,
// ethertype, remote prefix) triple within the security group.
func findOpenIngressRule(ctx context.Context, s *cloud.Session, sg *cloud.SecurityGroup) (*cloud.SecurityGroupRule, error) {
	rules, err := s.Network.ListSecurityGroupRules(ctx, cloud.SecurityGroupRuleFilter{
		SecurityGroupID: sg.ID,
		Direction:       cloud.DirectionIngress,
		EtherType:       cloud.EtherTypeIPv4,
	})
	if err != nil {
		return nil, err
	}
	for i := range rules {
		if rules[i].RemoteIPPrefix == cloud.AnyIPv4Prefix {
			return &rules[i], nil
		}
	}
	return nil, nil
}
