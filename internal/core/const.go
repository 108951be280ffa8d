// SPDX-License-Identifier: Apache-2.0

package core

// Default topology applied to every tenant project. These names are fixed
// contract with the operators of the shared environment: tooling and runbooks
// look resources up by these names, so they are constants rather than config.
const (
	DefaultNetworkName       = "network1"
	DefaultSubnetName        = "subnet0"
	DefaultSubnetCIDR        = "192.168.0.0/24"
	DefaultRouterName        = "router0"
	DefaultSecurityGroupName = "default"
)

const (
	// MemberRole is granted to principals that should merely use a project.
	MemberRole = "_member_"
	// AdminRole is granted with the --admin flag on grant/revoke commands.
	AdminRole = "admin"
)

// Configurable defaults, seeded into the configuration at startup.
const (
	DefaultDomain          = "default"
	DefaultServiceProject  = "service"
	DefaultExternalNetwork = "external"
	DefaultMappingName     = "idp1_mapping"
	DefaultBackupDir       = "/var/backups/stackadmin"
)
