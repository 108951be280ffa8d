// SPDX-License-Identifier: Apache-2.0

package tenant

import (
	"context"

	"github.com/skyhookcloud/stackadmin/internal/cloud"
)

// Topology is a plain-record snapshot of everything a project owns. The
// command layer renders it; nothing here formats output.
type Topology struct {
	Project        cloud.Project       `yaml:"project" json:"project"`
	Networks       []NetworkTopology   `yaml:"networks,omitempty" json:"networks,omitempty"`
	Routers        []RouterTopology    `yaml:"routers,omitempty" json:"routers,omitempty"`
	SecurityGroups []SecurityGroupInfo `yaml:"securityGroups,omitempty" json:"securityGroups,omitempty"`
	Servers        []cloud.Server      `yaml:"servers,omitempty" json:"servers,omitempty"`
	Volumes        []cloud.Volume      `yaml:"volumes,omitempty" json:"volumes,omitempty"`
}

type NetworkTopology struct {
	Network cloud.Network  `yaml:"network" json:"network"`
	Subnets []cloud.Subnet `yaml:"subnets,omitempty" json:"subnets,omitempty"`
}

type RouterTopology struct {
	Router cloud.Router `yaml:"router" json:"router"`
	Ports  []cloud.Port `yaml:"ports,omitempty" json:"ports,omitempty"`
}

type SecurityGroupInfo struct {
	Group cloud.SecurityGroup       `yaml:"group" json:"group"`
	Rules []cloud.SecurityGroupRule `yaml:"rules,omitempty" json:"rules,omitempty"`
}

// Describe assembles the topology snapshot for a project named by the
// operator.
func Describe(ctx context.Context, s *cloud.Session, nameOrID string) (*Topology, error) {
	project, err := RequireProject(ctx, s, nameOrID)
	if err != nil {
		return nil, err
	}

	topo := &Topology{Project: *project}

	networks, err := s.Network.ListNetworks(ctx, cloud.NetworkFilter{ProjectID: project.ID})
	if err != nil {
		return nil, err
	}
	for _, network := range networks {
		subnets, err := s.Network.ListSubnets(ctx, cloud.SubnetFilter{ProjectID: project.ID, NetworkID: network.ID})
		if err != nil {
			return nil, err
		}
		topo.Networks = append(topo.Networks, NetworkTopology{Network: network, Subnets: subnets})
	}

	routers, err := s.Network.ListRouters(ctx, cloud.RouterFilter{ProjectID: project.ID})
	if err != nil {
		return nil, err
	}
	for _, router := range routers {
		ports, err := s.Network.ListPorts(ctx, cloud.PortFilter{DeviceID: router.ID})
		if err != nil {
			return nil, err
		}
		topo.Routers = append(topo.Routers, RouterTopology{Router: router, Ports: ports})
	}

	securityGroups, err := s.Network.ListSecurityGroups(ctx, cloud.SecurityGroupFilter{ProjectID: project.ID})
	if err != nil {
		return nil, err
	}
	for _, sg := range securityGroups {
		rules, err := s.Network.ListSecurityGroupRules(ctx, cloud.SecurityGroupRuleFilter{SecurityGroupID: sg.ID})
		if err != nil {
			return nil, err
		}
		topo.SecurityGroups = append(topo.SecurityGroups, SecurityGroupInfo{Group: sg, Rules: rules})
	}

	if topo.Servers, err = s.Compute.ListServers(ctx, project.ID); err != nil {
		return nil, err
	}
	if topo.Volumes, err = s.Volumes.ListVolumes(ctx, project.ID); err != nil {
		return nil, err
	}

	return topo, nil
}
