// SPDX-License-Identifier: Apache-2.0

// Package cloudtest provides a stateful in-memory control plane implementing
// every capability interface in the cloud package. It counts calls per method
// so tests can assert idempotence (for example, zero create calls on a second
// bootstrap) without mock choreography.
package cloudtest

import (
	"context"
	"fmt"
	"net"

	"github.com/skyhookcloud/stackadmin/internal/cloud"
)

// Fake is an in-memory control plane. Not safe for concurrent use, which
// mirrors the tool's single-operator execution model.
type Fake struct {
	// Calls counts invocations per interface method name.
	Calls map[string]int

	// FailNext makes the named method fail once with a RemoteError, to test
	// abort-on-first-failure semantics.
	FailNext map[string]bool

	projects       []cloud.Project
	users          []cloud.User
	groups         []cloud.Group
	roles          []cloud.Role
	assignments    []assignment
	groupMembers   map[string][]string
	networks       []cloud.Network
	subnets        []cloud.Subnet
	routers        []cloud.Router
	ports          []cloud.Port
	securityGroups []cloud.SecurityGroup
	sgRules        []cloud.SecurityGroupRule
	servers        []cloud.Server
	volumes        []cloud.Volume

	nextID int
}

type assignment struct {
	roleID    string
	principal cloud.Principal
	projectID string
}

func New() *Fake {
	return &Fake{
		Calls:        map[string]int{},
		FailNext:     map[string]bool{},
		groupMembers: map[string][]string{},
	}
}

// NewWithDefaults seeds the roles and shared infrastructure every run expects:
// the _member_ and admin roles, the service project and its external network.
func NewWithDefaults() *Fake {
	f := New()
	f.SeedRole("_member_")
	f.SeedRole("admin")
	service := f.SeedProject("service", "default")
	f.SeedNetwork(service.ID, "external")
	return f
}

// APIs returns the fake behind every capability interface.
func (f *Fake) APIs() cloud.APIs {
	return cloud.APIs{
		Projects: f,
		Users:    f,
		Groups:   f,
		Roles:    f,
		Network:  f,
		Compute:  f,
		Volumes:  f,
	}
}

func (f *Fake) id(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s-%04d", prefix, f.nextID)
}

func (f *Fake) called(method string) error {
	f.Calls[method]++
	if f.FailNext[method] {
		f.FailNext[method] = false
		return cloud.RemoteError.New("%s: injected failure", method)
	}
	return nil
}

// Seed helpers bypass the counters so tests can arrange state freely.

func (f *Fake) SeedProject(name, domain string) cloud.Project {
	p := cloud.Project{ID: f.id("project"), Name: name, DomainID: domain}
	f.projects = append(f.projects, p)
	return p
}

func (f *Fake) SeedRole(name string) cloud.Role {
	r := cloud.Role{ID: f.id("role"), Name: name}
	f.roles = append(f.roles, r)
	return r
}

func (f *Fake) SeedUser(name, email string) cloud.User {
	u := cloud.User{ID: f.id("user"), Name: name, Email: email}
	f.users = append(f.users, u)
	return u
}

func (f *Fake) SeedGroup(name, description string) cloud.Group {
	g := cloud.Group{ID: f.id("group"), Name: name, Description: description}
	f.groups = append(f.groups, g)
	return g
}

func (f *Fake) SeedNetwork(projectID, name string) cloud.Network {
	n := cloud.Network{ID: f.id("network"), ProjectID: projectID, Name: name}
	f.networks = append(f.networks, n)
	return n
}

func (f *Fake) SeedServer(projectID, name string) cloud.Server {
	s := cloud.Server{ID: f.id("server"), ProjectID: projectID, Name: name, Status: "ACTIVE"}
	f.servers = append(f.servers, s)
	return s
}

func (f *Fake) SeedVolume(projectID, name string, sizeGB int) cloud.Volume {
	v := cloud.Volume{ID: f.id("volume"), ProjectID: projectID, Name: name, SizeGB: sizeGB, Status: "available"}
	f.volumes = append(f.volumes, v)
	return v
}

func (f *Fake) SeedAssignment(roleID string, principal cloud.Principal, projectID string) {
	f.assignments = append(f.assignments, assignment{roleID: roleID, principal: principal, projectID: projectID})
}

func (f *Fake) SeedGroupMember(groupID, userID string) {
	f.groupMembers[groupID] = append(f.groupMembers[groupID], userID)
}

// ProjectAPI

func (f *Fake) ListProjects(_ context.Context, filter cloud.ProjectFilter) ([]cloud.Project, error) {
	if err := f.called("ListProjects"); err != nil {
		return nil, err
	}
	var out []cloud.Project
	for _, p := range f.projects {
		if filter.Name == "" || p.Name == filter.Name {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *Fake) GetProject(_ context.Context, id string) (*cloud.Project, error) {
	if err := f.called("GetProject"); err != nil {
		return nil, err
	}
	for i := range f.projects {
		if f.projects[i].ID == id {
			p := f.projects[i]
			return &p, nil
		}
	}
	return nil, cloud.NotFoundError.New("project %q not found", id)
}

func (f *Fake) CreateProject(_ context.Context, spec cloud.ProjectSpec) (*cloud.Project, error) {
	if err := f.called("CreateProject"); err != nil {
		return nil, err
	}
	p := cloud.Project{ID: f.id("project"), Name: spec.Name, DomainID: spec.DomainID, Description: spec.Description}
	f.projects = append(f.projects, p)
	return &p, nil
}

func (f *Fake) DeleteProject(_ context.Context, id string) error {
	if err := f.called("DeleteProject"); err != nil {
		return err
	}
	for i := range f.projects {
		if f.projects[i].ID == id {
			f.projects = append(f.projects[:i], f.projects[i+1:]...)
			return nil
		}
	}
	return cloud.NotFoundError.New("project %q not found", id)
}

// UserAPI

func (f *Fake) ListUsers(_ context.Context, filter cloud.UserFilter) ([]cloud.User, error) {
	if err := f.called("ListUsers"); err != nil {
		return nil, err
	}
	var out []cloud.User
	for _, u := range f.users {
		if filter.Name == "" || u.Name == filter.Name {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *Fake) CreateUser(_ context.Context, spec cloud.UserSpec) (*cloud.User, error) {
	if err := f.called("CreateUser"); err != nil {
		return nil, err
	}
	u := cloud.User{
		ID:               f.id("user"),
		Name:             spec.Name,
		Email:            spec.Email,
		Description:      spec.Description,
		DefaultProjectID: spec.DefaultProjectID,
	}
	f.users = append(f.users, u)
	return &u, nil
}

// GroupAPI

func (f *Fake) ListGroups(_ context.Context) ([]cloud.Group, error) {
	if err := f.called("ListGroups"); err != nil {
		return nil, err
	}
	out := make([]cloud.Group, len(f.groups))
	copy(out, f.groups)
	return out, nil
}

func (f *Fake) CreateGroup(_ context.Context, spec cloud.GroupSpec) (*cloud.Group, error) {
	if err := f.called("CreateGroup"); err != nil {
		return nil, err
	}
	g := cloud.Group{ID: f.id("group"), Name: spec.Name, Description: spec.Description}
	f.groups = append(f.groups, g)
	return &g, nil
}

func (f *Fake) DeleteGroup(_ context.Context, id string) error {
	if err := f.called("DeleteGroup"); err != nil {
		return err
	}
	for i := range f.groups {
		if f.groups[i].ID == id {
			f.groups = append(f.groups[:i], f.groups[i+1:]...)
			delete(f.groupMembers, id)
			return nil
		}
	}
	return cloud.NotFoundError.New("group %q not found", id)
}

func (f *Fake) ListGroupUsers(_ context.Context, groupID string) ([]cloud.User, error) {
	if err := f.called("ListGroupUsers"); err != nil {
		return nil, err
	}
	var out []cloud.User
	for _, userID := range f.groupMembers[groupID] {
		for _, u := range f.users {
			if u.ID == userID {
				out = append(out, u)
			}
		}
	}
	return out, nil
}

func (f *Fake) AddGroupUser(_ context.Context, groupID, userID string) error {
	if err := f.called("AddGroupUser"); err != nil {
		return err
	}
	f.groupMembers[groupID] = append(f.groupMembers[groupID], userID)
	return nil
}

func (f *Fake) RemoveGroupUser(_ context.Context, groupID, userID string) error {
	if err := f.called("RemoveGroupUser"); err != nil {
		return err
	}
	members := f.groupMembers[groupID]
	for i, id := range members {
		if id == userID {
			f.groupMembers[groupID] = append(members[:i], members[i+1:]...)
			return nil
		}
	}
	return cloud.NotFoundError.New("user %q is not in group %q", userID, groupID)
}

// RoleAPI

func (f *Fake) ListRoles(_ context.Context, name string) ([]cloud.Role, error) {
	if err := f.called("ListRoles"); err != nil {
		return nil, err
	}
	var out []cloud.Role
	for _, r := range f.roles {
		if name == "" || r.Name == name {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *Fake) ListAssignments(_ context.Context, projectID string) ([]cloud.Assignment, error) {
	if err := f.called("ListAssignments"); err != nil {
		return nil, err
	}
	var out []cloud.Assignment
	for _, a := range f.assignments {
		if a.projectID == projectID {
			out = append(out, cloud.Assignment{RoleID: a.roleID, Principal: a.principal})
		}
	}
	return out, nil
}

func (f *Fake) CheckAssignment(_ context.Context, roleID string, principal cloud.Principal, projectID string) (bool, error) {
	if err := f.called("CheckAssignment"); err != nil {
		return false, err
	}
	for _, a := range f.assignments {
		if a.roleID == roleID && a.projectID == projectID && a.principal == principal {
			return true, nil
		}
	}
	return false, nil
}

func (f *Fake) Grant(_ context.Context, roleID string, principal cloud.Principal, projectID string) error {
	if err := f.called("Grant"); err != nil {
		return err
	}
	f.assignments = append(f.assignments, assignment{roleID: roleID, principal: principal, projectID: projectID})
	return nil
}

func (f *Fake) Revoke(_ context.Context, roleID string, principal cloud.Principal, projectID string) error {
	if err := f.called("Revoke"); err != nil {
		return err
	}
	for i, a := range f.assignments {
		if a.roleID == roleID && a.projectID == projectID && a.principal == principal {
			f.assignments = append(f.assignments[:i], f.assignments[i+1:]...)
			return nil
		}
	}
	return cloud.NotFoundError.New("assignment not found")
}

// NetworkAPI

func (f *Fake) ListNetworks(_ context.Context, filter cloud.NetworkFilter) ([]cloud.Network, error) {
	if err := f.called("ListNetworks"); err != nil {
		return nil, err
	}
	var out []cloud.Network
	for _, n := range f.networks {
		if filter.ProjectID != "" && n.ProjectID != filter.ProjectID {
			continue
		}
		if filter.Name != "" && n.Name != filter.Name {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (f *Fake) CreateNetwork(_ context.Context, spec cloud.NetworkSpec) (*cloud.Network, error) {
	if err := f.called("CreateNetwork"); err != nil {
		return nil, err
	}
	n := cloud.Network{ID: f.id("network"), ProjectID: spec.ProjectID, Name: spec.Name, Description: spec.Description}
	f.networks = append(f.networks, n)
	return &n, nil
}

func (f *Fake) DeleteNetwork(_ context.Context, id string) error {
	if err := f.called("DeleteNetwork"); err != nil {
		return err
	}
	for i := range f.networks {
		if f.networks[i].ID == id {
			f.networks = append(f.networks[:i], f.networks[i+1:]...)
			return nil
		}
	}
	return cloud.NotFoundError.New("network %q not found", id)
}

func (f *Fake) ListSubnets(_ context.Context, filter cloud.SubnetFilter) ([]cloud.Subnet, error) {
	if err := f.called("ListSubnets"); err != nil {
		return nil, err
	}
	var out []cloud.Subnet
	for _, s := range f.subnets {
		if filter.ProjectID != "" && s.ProjectID != filter.ProjectID {
			continue
		}
		if filter.NetworkID != "" && s.NetworkID != filter.NetworkID {
			continue
		}
		if filter.Name != "" && s.Name != filter.Name {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *Fake) CreateSubnet(_ context.Context, spec cloud.SubnetSpec) (*cloud.Subnet, error) {
	if err := f.called("CreateSubnet"); err != nil {
		return nil, err
	}
	s := cloud.Subnet{
		ID:        f.id("subnet"),
		ProjectID: spec.ProjectID,
		NetworkID: spec.NetworkID,
		Name:      spec.Name,
		CIDR:      spec.CIDR,
		GatewayIP: gatewayFor(spec.CIDR),
		IPVersion: spec.IPVersion,
	}
	f.subnets = append(f.subnets, s)
	return &s, nil
}

func (f *Fake) DeleteSubnet(_ context.Context, id string) error {
	if err := f.called("DeleteSubnet"); err != nil {
		return err
	}
	for i := range f.subnets {
		if f.subnets[i].ID == id {
			f.subnets = append(f.subnets[:i], f.subnets[i+1:]...)
			return nil
		}
	}
	return cloud.NotFoundError.New("subnet %q not found", id)
}

func (f *Fake) ListRouters(_ context.Context, filter cloud.RouterFilter) ([]cloud.Router, error) {
	if err := f.called("ListRouters"); err != nil {
		return nil, err
	}
	var out []cloud.Router
	for _, r := range f.routers {
		if filter.ProjectID != "" && r.ProjectID != filter.ProjectID {
			continue
		}
		if filter.Name != "" && r.Name != filter.Name {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *Fake) CreateRouter(_ context.Context, spec cloud.RouterSpec) (*cloud.Router, error) {
	if err := f.called("CreateRouter"); err != nil {
		return nil, err
	}
	r := cloud.Router{ID: f.id("router"), ProjectID: spec.ProjectID, Name: spec.Name, ExternalNetworkID: spec.ExternalNetworkID}
	f.routers = append(f.routers, r)
	return &r, nil
}

func (f *Fake) DeleteRouter(_ context.Context, id string) error {
	if err := f.called("DeleteRouter"); err != nil {
		return err
	}
	for i := range f.routers {
		if f.routers[i].ID == id {
			f.routers = append(f.routers[:i], f.routers[i+1:]...)
			return nil
		}
	}
	return cloud.NotFoundError.New("router %q not found", id)
}

func (f *Fake) ListPorts(_ context.Context, filter cloud.PortFilter) ([]cloud.Port, error) {
	if err := f.called("ListPorts"); err != nil {
		return nil, err
	}
	var out []cloud.Port
	for _, p := range f.ports {
		if filter.ProjectID != "" && p.ProjectID != filter.ProjectID {
			continue
		}
		if filter.NetworkID != "" && p.NetworkID != filter.NetworkID {
			continue
		}
		if filter.DeviceID != "" && p.DeviceID != filter.DeviceID {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *Fake) CreatePort(_ context.Context, spec cloud.PortSpec) (*cloud.Port, error) {
	if err := f.called("CreatePort"); err != nil {
		return nil, err
	}
	p := cloud.Port{ID: f.id("port"), ProjectID: spec.ProjectID, NetworkID: spec.NetworkID, FixedIPs: spec.FixedIPs}
	f.ports = append(f.ports, p)
	return &p, nil
}

func (f *Fake) AttachRouterInterface(_ context.Context, routerID, subnetID, portID string) error {
	if err := f.called("AttachRouterInterface"); err != nil {
		return err
	}
	for i := range f.ports {
		if f.ports[i].ID == portID {
			f.ports[i].DeviceID = routerID
			f.ports[i].DeviceOwner = "network:router_interface"
			return nil
		}
	}
	return cloud.NotFoundError.New("port %q not found", portID)
}

func (f *Fake) DetachRouterInterface(_ context.Context, routerID, portID string) error {
	if err := f.called("DetachRouterInterface"); err != nil {
		return err
	}
	for i := range f.ports {
		if f.ports[i].ID == portID && f.ports[i].DeviceID == routerID {
			f.ports[i].DeviceID = ""
			f.ports[i].DeviceOwner = ""
			return nil
		}
	}
	return cloud.NotFoundError.New("port %q not attached to router %q", portID, routerID)
}

func (f *Fake) ListSecurityGroups(_ context.Context, filter cloud.SecurityGroupFilter) ([]cloud.SecurityGroup, error) {
	if err := f.called("ListSecurityGroups"); err != nil {
		return nil, err
	}
	var out []cloud.SecurityGroup
	for _, sg := range f.securityGroups {
		if filter.ProjectID != "" && sg.ProjectID != filter.ProjectID {
			continue
		}
		if filter.Name != "" && sg.Name != filter.Name {
			continue
		}
		out = append(out, sg)
	}
	return out, nil
}

func (f *Fake) CreateSecurityGroup(_ context.Context, spec cloud.SecurityGroupSpec) (*cloud.SecurityGroup, error) {
	if err := f.called("CreateSecurityGroup"); err != nil {
		return nil, err
	}
	sg := cloud.SecurityGroup{ID: f.id("secgroup"), ProjectID: spec.ProjectID, Name: spec.Name, Description: spec.Description}
	f.securityGroups = append(f.securityGroups, sg)
	return &sg, nil
}

func (f *Fake) DeleteSecurityGroup(_ context.Context, id string) error {
	if err := f.called("DeleteSecurityGroup"); err != nil {
		return err
	}
	for i := range f.securityGroups {
		if f.securityGroups[i].ID == id {
			f.securityGroups = append(f.securityGroups[:i], f.securityGroups[i+1:]...)
			return nil
		}
	}
	return cloud.NotFoundError.New("security group %q not found", id)
}

func (f *Fake) ListSecurityGroupRules(_ context.Context, filter cloud.SecurityGroupRuleFilter) ([]cloud.SecurityGroupRule, error) {
	if err := f.called("ListSecurityGroupRules"); err != nil {
		return nil, err
	}
	var out []cloud.SecurityGroupRule
	for _, r := range f.sgRules {
		if filter.SecurityGroupID != "" && r.SecurityGroupID != filter.SecurityGroupID {
			continue
		}
		if filter.Direction != "" && r.Direction != filter.Direction {
			continue
		}
		if filter.EtherType != "" && r.EtherType != filter.EtherType {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *Fake) CreateSecurityGroupRule(_ context.Context, spec cloud.SecurityGroupRuleSpec) (*cloud.SecurityGroupRule, error) {
	if err := f.called("CreateSecurityGroupRule"); err != nil {
		return nil, err
	}
	r := cloud.SecurityGroupRule{
		ID:              f.id("sgrule"),
		SecurityGroupID: spec.SecurityGroupID,
		Direction:       spec.Direction,
		EtherType:       spec.EtherType,
		Protocol:        spec.Protocol,
		RemoteIPPrefix:  spec.RemoteIPPrefix,
		PortRangeMin:    spec.PortRangeMin,
		PortRangeMax:    spec.PortRangeMax,
	}
	f.sgRules = append(f.sgRules, r)
	return &r, nil
}

// ComputeAPI

func (f *Fake) ListServers(_ context.Context, projectID string) ([]cloud.Server, error) {
	if err := f.called("ListServers"); err != nil {
		return nil, err
	}
	var out []cloud.Server
	for _, s := range f.servers {
		if s.ProjectID == projectID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *Fake) DeleteServer(_ context.Context, id string) error {
	if err := f.called("DeleteServer"); err != nil {
		return err
	}
	for i := range f.servers {
		if f.servers[i].ID == id {
			f.servers = append(f.servers[:i], f.servers[i+1:]...)
			return nil
		}
	}
	return cloud.NotFoundError.New("server %q not found", id)
}

// VolumeAPI

func (f *Fake) ListVolumes(_ context.Context, projectID string) ([]cloud.Volume, error) {
	if err := f.called("ListVolumes"); err != nil {
		return nil, err
	}
	var out []cloud.Volume
	for _, v := range f.volumes {
		if v.ProjectID == projectID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *Fake) DeleteVolume(_ context.Context, id string) error {
	if err := f.called("DeleteVolume"); err != nil {
		return err
	}
	for i := range f.volumes {
		if f.volumes[i].ID == id {
			f.volumes = append(f.volumes[:i], f.volumes[i+1:]...)
			return nil
		}
	}
	return cloud.NotFoundError.New("volume %q not found", id)
}

// gatewayFor mirrors the control plane's default of assigning the first host
// address of the CIDR as the subnet gateway.
func gatewayFor(cidr string) string {
	ip, ipnet, err := net.ParseCIDR(cidr)
	if err != nil {
		return ""
	}
	gw := ip.Mask(ipnet.Mask).To4()
	if gw == nil {
		return ""
	}
	gw[3]++
	return gw.String()
}
