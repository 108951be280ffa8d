// SPDX-License-Identifier: Apache-2.0

// Package cloud defines the plain resource records and capability interfaces
// the reconciliation engine runs against. The control plane behind the
// interfaces is an external collaborator; everything here is transport free so
// the engine can be exercised against fakes and mocks.
package cloud

// Project is the tenant isolation boundary owning networks, servers, volumes
// and quotas.
type Project struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	DomainID    string `yaml:"domain" json:"domain"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

type User struct {
	ID               string `yaml:"id" json:"id"`
	Name             string `yaml:"name" json:"name"`
	Email            string `yaml:"email,omitempty" json:"email,omitempty"`
	Description      string `yaml:"description,omitempty" json:"description,omitempty"`
	DefaultProjectID string `yaml:"defaultProject,omitempty" json:"defaultProject,omitempty"`
}

type Group struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

type Role struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
}

// Assignment is one row of the ternary (role, principal, project) relation,
// scoped to the project it was listed for.
type Assignment struct {
	RoleID    string
	Principal Principal
}

type Network struct {
	ID          string `yaml:"id" json:"id"`
	ProjectID   string `yaml:"-" json:"-"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

type Subnet struct {
	ID        string `yaml:"id" json:"id"`
	ProjectID string `yaml:"-" json:"-"`
	NetworkID string `yaml:"-" json:"-"`
	Name      string `yaml:"name" json:"name"`
	CIDR      string `yaml:"cidr" json:"cidr"`
	GatewayIP string `yaml:"gatewayIp,omitempty" json:"gatewayIp,omitempty"`
	IPVersion int    `yaml:"ipVersion" json:"ipVersion"`
}

type Router struct {
	ID                string `yaml:"id" json:"id"`
	ProjectID         string `yaml:"-" json:"-"`
	Name              string `yaml:"name" json:"name"`
	ExternalNetworkID string `yaml:"externalNetwork,omitempty" json:"externalNetwork,omitempty"`
}

type FixedIP struct {
	SubnetID  string `yaml:"subnet" json:"subnet"`
	IPAddress string `yaml:"address" json:"address"`
}

type Port struct {
	ID          string    `yaml:"id" json:"id"`
	ProjectID   string    `yaml:"-" json:"-"`
	NetworkID   string    `yaml:"-" json:"-"`
	DeviceID    string    `yaml:"-" json:"-"`
	DeviceOwner string    `yaml:"deviceOwner,omitempty" json:"deviceOwner,omitempty"`
	FixedIPs    []FixedIP `yaml:"fixedIps,omitempty" json:"fixedIps,omitempty"`
}

type SecurityGroup struct {
	ID          string `yaml:"id" json:"id"`
	ProjectID   string `yaml:"-" json:"-"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

type SecurityGroupRule struct {
	ID              string `yaml:"id" json:"id"`
	SecurityGroupID string `yaml:"-" json:"-"`
	Direction       string `yaml:"direction" json:"direction"`
	EtherType       string `yaml:"etherType" json:"etherType"`
	Protocol        string `yaml:"protocol,omitempty" json:"protocol,omitempty"`
	RemoteIPPrefix  string `yaml:"remoteIpPrefix,omitempty" json:"remoteIpPrefix,omitempty"`
	PortRangeMin    int    `yaml:"portRangeMin,omitempty" json:"portRangeMin,omitempty"`
	PortRangeMax    int    `yaml:"portRangeMax,omitempty" json:"portRangeMax,omitempty"`
}

type Server struct {
	ID        string `yaml:"id" json:"id"`
	ProjectID string `yaml:"-" json:"-"`
	Name      string `yaml:"name" json:"name"`
	Status    string `yaml:"status" json:"status"`
}

type Volume struct {
	ID        string `yaml:"id" json:"id"`
	ProjectID string `yaml:"-" json:"-"`
	Name      string `yaml:"name" json:"name"`
	SizeGB    int    `yaml:"sizeGb" json:"sizeGb"`
	Status    string `yaml:"status" json:"status"`
}

// DirectoryUser is one desired-state record handed to the bulk ensure
// operations. Records come from the directory service layer, which rejects
// entries with a missing name or email before they reach the engine.
type DirectoryUser struct {
	Name  string
	Email string
}

// Directions and ether types used by the default topology.
const (
	DirectionIngress = "ingress"
	EtherTypeIPv4    = "IPv4"
	AnyIPv4Prefix    = "0.0.0.0/0"
)
