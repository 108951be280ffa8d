// SPDX-License-Identifier: Apache-2.0

package openstack

import (
	"context"

	"github.com/gophercloud/gophercloud/v2"
	"github.com/gophercloud/gophercloud/v2/openstack/networking/v2/extensions/layer3/routers"
	sgroups "github.com/gophercloud/gophercloud/v2/openstack/networking/v2/extensions/security/groups"
	srules "github.com/gophercloud/gophercloud/v2/openstack/networking/v2/extensions/security/rules"
	"github.com/gophercloud/gophercloud/v2/openstack/networking/v2/networks"
	"github.com/gophercloud/gophercloud/v2/openstack/networking/v2/ports"
	"github.com/gophercloud/gophercloud/v2/openstack/networking/v2/subnets"
	"github.com/skyhookcloud/stackadmin/internal/cloud"
)

// networkAPI implements the network capability on the networking v2 endpoint.
type networkAPI struct {
	client *gophercloud.ServiceClient
}

func (a *networkAPI) ListNetworks(ctx context.Context, filter cloud.NetworkFilter) ([]cloud.Network, error) {
	pages, err := networks.List(a.client, networks.ListOpts{
		ProjectID: filter.ProjectID,
		Name:      filter.Name,
	}).AllPages(ctx)
	if err != nil {
		return nil, wrapErr(err, "listing networks")
	}
	records, err := networks.ExtractNetworks(pages)
	if err != nil {
		return nil, cloud.RemoteError.Wrap(err, "decoding network list")
	}

	out := make([]cloud.Network, 0, len(records))
	for _, n := range records {
		out = append(out, cloud.Network{
			ID:          n.ID,
			ProjectID:   n.ProjectID,
			Name:        n.Name,
			Description: n.Description,
		})
	}
	return out, nil
}

func (a *networkAPI) CreateNetwork(ctx context.Context, spec cloud.NetworkSpec) (*cloud.Network, error) {
	n, err := networks.Create(ctx, a.client, networks.CreateOpts{
		ProjectID:   spec.ProjectID,
		Name:        spec.Name,
		Description: spec.Description,
	}).Extract()
	if err != nil {
		return nil, wrapErr(err, "creating network %q", spec.Name)
	}
	return &cloud.Network{ID: n.ID, ProjectID: n.ProjectID, Name: n.Name, Description: n.Description}, nil
}

func (a *networkAPI) DeleteNetwork(ctx context.Context, id string) error {
	if err := networks.Delete(ctx, a.client, id).ExtractErr(); err != nil {
		return wrapErr(err, "deleting network %s", id)
	}
	return nil
}

func (a *networkAPI) ListSubnets(ctx context.Context, filter cloud.SubnetFilter) ([]cloud.Subnet, error) {
	pages, err := subnets.List(a.client, subnets.ListOpts{
		ProjectID: filter.ProjectID,
		NetworkID: filter.NetworkID,
		Name:      filter.Name,
	}).AllPages(ctx)
	if err != nil {
		return nil, wrapErr(err, "listing subnets")
	}
	records, err := subnets.ExtractSubnets(pages)
	if err != nil {
		return nil, cloud.RemoteError.Wrap(err, "decoding subnet list")
	}

	out := make([]cloud.Subnet, 0, len(records))
	for _, s := range records {
		out = append(out, toSubnet(s))
	}
	return out, nil
}

func (a *networkAPI) CreateSubnet(ctx context.Context, spec cloud.SubnetSpec) (*cloud.Subnet, error) {
	s, err := subnets.Create(ctx, a.client, subnets.CreateOpts{
		ProjectID:   spec.ProjectID,
		NetworkID:   spec.NetworkID,
		Name:        spec.Name,
		CIDR:        spec.CIDR,
		IPVersion:   gophercloud.IPVersion(spec.IPVersion),
		Description: spec.Description,
	}).Extract()
	if err != nil {
		return nil, wrapErr(err, "creating subnet %q", spec.Name)
	}
	record := toSubnet(*s)
	return &record, nil
}

func (a *networkAPI) DeleteSubnet(ctx context.Context, id string) error {
	if err := subnets.Delete(ctx, a.client, id).ExtractErr(); err != nil {
		return wrapErr(err, "deleting subnet %s", id)
	}
	return nil
}

func (a *networkAPI) ListRouters(ctx context.Context, filter cloud.RouterFilter) ([]cloud.Router, error) {
	pages, err := routers.List(a.client, routers.ListOpts{
		ProjectID: filter.ProjectID,
		Name:      filter.Name,
	}).AllPages(ctx)
	if err != nil {
		return nil, wrapErr(err, "listing routers")
	}
	records, err := routers.ExtractRouters(pages)
	if err != nil {
		return nil, cloud.RemoteError.Wrap(err, "decoding router list")
	}

	out := make([]cloud.Router, 0, len(records))
	for _, r := range records {
		out = append(out, cloud.Router{
			ID:                r.ID,
			ProjectID:         r.ProjectID,
			Name:              r.Name,
			ExternalNetworkID: r.GatewayInfo.NetworkID,
		})
	}
	return out, nil
}

func (a *networkAPI) CreateRouter(ctx context.Context, spec cloud.RouterSpec) (*cloud.Router, error) {
	opts := routers.CreateOpts{
		ProjectID:   spec.ProjectID,
		Name:        spec.Name,
		Description: spec.Description,
	}
	if spec.ExternalNetworkID != "" {
		opts.GatewayInfo = &routers.GatewayInfo{NetworkID: spec.ExternalNetworkID}
	}
	r, err := routers.Create(ctx, a.client, opts).Extract()
	if err != nil {
		return nil, wrapErr(err, "creating router %q", spec.Name)
	}
	return &cloud.Router{
		ID:                r.ID,
		ProjectID:         r.ProjectID,
		Name:              r.Name,
		ExternalNetworkID: r.GatewayInfo.NetworkID,
	}, nil
}

func (a *networkAPI) DeleteRouter(ctx context.Context, id string) error {
	if err := routers.Delete(ctx, a.client, id).ExtractErr(); err != nil {
		return wrapErr(err, "deleting router %s", id)
	}
	return nil
}

func (a *networkAPI) ListPorts(ctx context.Context, filter cloud.PortFilter) ([]cloud.Port, error) {
	pages, err := ports.List(a.client, ports.ListOpts{
		ProjectID: filter.ProjectID,
		NetworkID: filter.NetworkID,
		DeviceID:  filter.DeviceID,
	}).AllPages(ctx)
	if err != nil {
		return nil, wrapErr(err, "listing ports")
	}
	records, err := ports.ExtractPorts(pages)
	if err != nil {
		return nil, cloud.RemoteError.Wrap(err, "decoding port list")
	}

	out := make([]cloud.Port, 0, len(records))
	for _, p := range records {
		out = append(out, toPort(p))
	}
	return out, nil
}

func (a *networkAPI) CreatePort(ctx context.Context, spec cloud.PortSpec) (*cloud.Port, error) {
	fixedIPs := make([]ports.IP, 0, len(spec.FixedIPs))
	for _, ip := range spec.FixedIPs {
		fixedIPs = append(fixedIPs, ports.IP{SubnetID: ip.SubnetID, IPAddress: ip.IPAddress})
	}
	p, err := ports.Create(ctx, a.client, ports.CreateOpts{
		ProjectID: spec.ProjectID,
		NetworkID: spec.NetworkID,
		FixedIPs:  fixedIPs,
	}).Extract()
	if err != nil {
		return nil, wrapErr(err, "creating port on network %s", spec.NetworkID)
	}
	record := toPort(*p)
	return &record, nil
}

func (a *networkAPI) AttachRouterInterface(ctx context.Context, routerID, subnetID, portID string) error {
	opts := routers.AddInterfaceOpts{}
	if portID != "" {
		opts.PortID = portID
	} else {
		opts.SubnetID = subnetID
	}
	if _, err := routers.AddInterface(ctx, a.client, routerID, opts).Extract(); err != nil {
		return wrapErr(err, "attaching interface to router %s", routerID)
	}
	return nil
}

func (a *networkAPI) DetachRouterInterface(ctx context.Context, routerID, portID string) error {
	opts := routers.RemoveInterfaceOpts{PortID: portID}
	if _, err := routers.RemoveInterface(ctx, a.client, routerID, opts).Extract(); err != nil {
		return wrapErr(err, "detaching interface from router %s", routerID)
	}
	return nil
}

func (a *networkAPI) ListSecurityGroups(ctx context.Context, filter cloud.SecurityGroupFilter) ([]cloud.SecurityGroup, error) {
	pages, err := sgroups.List(a.client, sgroups.ListOpts{
		ProjectID: filter.ProjectID,
		Name:      filter.Name,
	}).AllPages(ctx)
	if err != nil {
		return nil, wrapErr(err, "listing security groups")
	}
	records, err := sgroups.ExtractGroups(pages)
	if err != nil {
		return nil, cloud.RemoteError.Wrap(err, "decoding security group list")
	}

	out := make([]cloud.SecurityGroup, 0, len(records))
	for _, g := range records {
		out = append(out, cloud.SecurityGroup{
			ID:          g.ID,
			ProjectID:   g.ProjectID,
			Name:        g.Name,
			Description: g.Description,
		})
	}
	return out, nil
}

func (a *networkAPI) CreateSecurityGroup(ctx context.Context, spec cloud.SecurityGroupSpec) (*cloud.SecurityGroup, error) {
	g, err := sgroups.Create(ctx, a.client, sgroups.CreateOpts{
		ProjectID:   spec.ProjectID,
		Name:        spec.Name,
		Description: spec.Description,
	}).Extract()
	if err != nil {
		return nil, wrapErr(err, "creating security group %q", spec.Name)
	}
	return &cloud.SecurityGroup{ID: g.ID, ProjectID: g.ProjectID, Name: g.Name, Description: g.Description}, nil
}

func (a *networkAPI) DeleteSecurityGroup(ctx context.Context, id string) error {
	if err := sgroups.Delete(ctx, a.client, id).ExtractErr(); err != nil {
		return wrapErr(err, "deleting security group %s", id)
	}
	return nil
}

func (a *networkAPI) ListSecurityGroupRules(ctx context.Context, filter cloud.SecurityGroupRuleFilter) ([]cloud.SecurityGroupRule, error) {
	pages, err := srules.List(a.client, srules.ListOpts{
		SecGroupID: filter.SecurityGroupID,
		Direction:  filter.Direction,
		EtherType:  filter.EtherType,
	}).AllPages(ctx)
	if err != nil {
		return nil, wrapErr(err, "listing security group rules")
	}
	records, err := srules.ExtractRules(pages)
	if err != nil {
		return nil, cloud.RemoteError.Wrap(err, "decoding security group rule list")
	}

	out := make([]cloud.SecurityGroupRule, 0, len(records))
	for _, r := range records {
		out = append(out, cloud.SecurityGroupRule{
			ID:              r.ID,
			SecurityGroupID: r.SecGroupID,
			Direction:       r.Direction,
			EtherType:       r.EtherType,
			Protocol:        r.Protocol,
			RemoteIPPrefix:  r.RemoteIPPrefix,
			PortRangeMin:    r.PortRangeMin,
			PortRangeMax:    r.PortRangeMax,
		})
	}
	return out, nil
}

func (a *networkAPI) CreateSecurityGroupRule(ctx context.Context, spec cloud.SecurityGroupRuleSpec) (*cloud.SecurityGroupRule, error) {
	r, err := srules.Create(ctx, a.client, srules.CreateOpts{
		SecGroupID:     spec.SecurityGroupID,
		Direction:      srules.RuleDirection(spec.Direction),
		EtherType:      srules.RuleEtherType(spec.EtherType),
		Protocol:       srules.RuleProtocol(spec.Protocol),
		RemoteIPPrefix: spec.RemoteIPPrefix,
		PortRangeMin:   spec.PortRangeMin,
		PortRangeMax:   spec.PortRangeMax,
	}).Extract()
	if err != nil {
		return nil, wrapErr(err, "creating rule on security group %s", spec.SecurityGroupID)
	}
	return &cloud.SecurityGroupRule{
		ID:              r.ID,
		SecurityGroupID: r.SecGroupID,
		Direction:       r.Direction,
		EtherType:       r.EtherType,
		Protocol:        r.Protocol,
		RemoteIPPrefix:  r.RemoteIPPrefix,
		PortRangeMin:    r.PortRangeMin,
		PortRangeMax:    r.PortRangeMax,
	}, nil
}

func toSubnet(s subnets.Subnet) cloud.Subnet {
	return cloud.Subnet{
		ID:        s.ID,
		ProjectID: s.ProjectID,
		NetworkID: s.NetworkID,
		Name:      s.Name,
		CIDR:      s.CIDR,
		GatewayIP: s.GatewayIP,
		IPVersion: s.IPVersion,
	}
}

func toPort(p ports.Port) cloud.Port {
	fixedIPs := make([]cloud.FixedIP, 0, len(p.FixedIPs))
	for _, ip := range p.FixedIPs {
		fixedIPs = append(fixedIPs, cloud.FixedIP{SubnetID: ip.SubnetID, IPAddress: ip.IPAddress})
	}
	return cloud.Port{
		ID:          p.ID,
		ProjectID:   p.ProjectID,
		NetworkID:   p.NetworkID,
		DeviceID:    p.DeviceID,
		DeviceOwner: p.DeviceOwner,
		FixedIPs:    fixedIPs,
	}
}
