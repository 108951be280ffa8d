// SPDX-License-Identifier: Apache-2.0

package cloud

import "context"

// The capability interfaces below are the whole surface the engine needs from
// the control plane. List calls return results in the control plane's default
// list order; the engine relies on that order being stable between calls made
// within one run, nothing more.

type ProjectFilter struct {
	Name string
}

type ProjectSpec struct {
	Name        string
	DomainID    string
	Description string
}

type ProjectAPI interface {
	ListProjects(ctx context.Context, filter ProjectFilter) ([]Project, error)
	// GetProject fetches by ID and returns a NotFoundError when absent.
	GetProject(ctx context.Context, id string) (*Project, error)
	CreateProject(ctx context.Context, spec ProjectSpec) (*Project, error)
	DeleteProject(ctx context.Context, id string) error
}

type UserFilter struct {
	Name string
}

type UserSpec struct {
	Name             string
	Email            string
	Description      string
	DefaultProjectID string
}

type UserAPI interface {
	ListUsers(ctx context.Context, filter UserFilter) ([]User, error)
	CreateUser(ctx context.Context, spec UserSpec) (*User, error)
}

type GroupSpec struct {
	Name        string
	Description string
	DomainID    string
}

type GroupAPI interface {
	ListGroups(ctx context.Context) ([]Group, error)
	CreateGroup(ctx context.Context, spec GroupSpec) (*Group, error)
	DeleteGroup(ctx context.Context, id string) error

	ListGroupUsers(ctx context.Context, groupID string) ([]User, error)
	AddGroupUser(ctx context.Context, groupID, userID string) error
	RemoveGroupUser(ctx context.Context, groupID, userID string) error
}

type RoleAPI interface {
	ListRoles(ctx context.Context, name string) ([]Role, error)
	// ListAssignments enumerates role assignments scoped to one project.
	ListAssignments(ctx context.Context, projectID string) ([]Assignment, error)
	// CheckAssignment is the existence query backing grant/revoke idempotence:
	// absence is reported as false, not as an error.
	CheckAssignment(ctx context.Context, roleID string, principal Principal, projectID string) (bool, error)
	Grant(ctx context.Context, roleID string, principal Principal, projectID string) error
	Revoke(ctx context.Context, roleID string, principal Principal, projectID string) error
}

type NetworkFilter struct {
	ProjectID string
	Name      string
}

type NetworkSpec struct {
	ProjectID   string
	Name        string
	Description string
}

type SubnetFilter struct {
	ProjectID string
	NetworkID string
	Name      string
}

type SubnetSpec struct {
	ProjectID   string
	NetworkID   string
	Name        string
	CIDR        string
	IPVersion   int
	Description string
}

type RouterFilter struct {
	ProjectID string
	Name      string
}

type RouterSpec struct {
	ProjectID         string
	Name              string
	Description       string
	ExternalNetworkID string
}

type PortFilter struct {
	ProjectID string
	NetworkID string
	DeviceID  string
}

type PortSpec struct {
	ProjectID string
	NetworkID string
	FixedIPs  []FixedIP
}

type SecurityGroupFilter struct {
	ProjectID string
	Name      string
}

type SecurityGroupSpec struct {
	ProjectID   string
	Name        string
	Description string
}

type SecurityGroupRuleFilter struct {
	SecurityGroupID string
	Direction       string
	EtherType       string
}

type SecurityGroupRuleSpec struct {
	SecurityGroupID string
	Direction       string
	EtherType       string
	Protocol        string
	RemoteIPPrefix  string
	PortRangeMin    int
	PortRangeMax    int
}

type NetworkAPI interface {
	ListNetworks(ctx context.Context, filter NetworkFilter) ([]Network, error)
	CreateNetwork(ctx context.Context, spec NetworkSpec) (*Network, error)
	DeleteNetwork(ctx context.Context, id string) error

	ListSubnets(ctx context.Context, filter SubnetFilter) ([]Subnet, error)
	CreateSubnet(ctx context.Context, spec SubnetSpec) (*Subnet, error)
	DeleteSubnet(ctx context.Context, id string) error

	ListRouters(ctx context.Context, filter RouterFilter) ([]Router, error)
	CreateRouter(ctx context.Context, spec RouterSpec) (*Router, error)
	DeleteRouter(ctx context.Context, id string) error

	ListPorts(ctx context.Context, filter PortFilter) ([]Port, error)
	CreatePort(ctx context.Context, spec PortSpec) (*Port, error)
	AttachRouterInterface(ctx context.Context, routerID, subnetID, portID string) error
	DetachRouterInterface(ctx context.Context, routerID, portID string) error

	ListSecurityGroups(ctx context.Context, filter SecurityGroupFilter) ([]SecurityGroup, error)
	CreateSecurityGroup(ctx context.Context, spec SecurityGroupSpec) (*SecurityGroup, error)
	DeleteSecurityGroup(ctx context.Context, id string) error

	ListSecurityGroupRules(ctx context.Context, filter SecurityGroupRuleFilter) ([]SecurityGroupRule, error)
	CreateSecurityGroupRule(ctx context.Context, spec SecurityGroupRuleSpec) (*SecurityGroupRule, error)
}

type ComputeAPI interface {
	ListServers(ctx context.Context, projectID string) ([]Server, error)
	DeleteServer(ctx context.Context, id string) error
}

type VolumeAPI interface {
	ListVolumes(ctx context.Context, projectID string) ([]Volume, error)
	DeleteVolume(ctx context.Context, id string) error
}

// APIs bundles one concrete implementation of every capability interface.
type APIs struct {
	Projects ProjectAPI
	Users    UserAPI
	Groups   GroupAPI
	Roles    RoleAPI
	Network  NetworkAPI
	Compute  ComputeAPI
	Volumes  VolumeAPI
}
