// SPDX-License-Identifier: Apache-2.0

package tenant

import (
	"context"

	"github.com/automa-saga/logx"
	"github.com/skyhookcloud/stackadmin/internal/cloud"
)

// DeleteProject tears a project down with everything it owns. Order matters:
// servers and volumes first, then routers (interfaces detached before the
// router goes), then subnets and networks. The default security group is
// recreated by the control plane whenever it is deleted while the project
// still exists, so security groups are enumerated up front and deleted only
// after the project itself is gone.
//
// There is no rollback; a failure partway leaves the remainder in place and
// the teardown is re-runnable.
func DeleteProject(ctx context.Context, s *cloud.Session, nameOrID string) error {
	project, err := RequireProject(ctx, s, nameOrID)
	if err != nil {
		return err
	}
	logx.As().Info().Str("name", project.Name).Str("id", project.ID).Msg("Started deleting project")

	servers, err := s.Compute.ListServers(ctx, project.ID)
	if err != nil {
		return err
	}
	for _, server := range servers {
		if err := s.Compute.DeleteServer(ctx, server.ID); err != nil {
			return err
		}
		logx.As().Info().Str("name", server.Name).Str("id", server.ID).Msg("Deleted server")
	}

	volumes, err := s.Volumes.ListVolumes(ctx, project.ID)
	if err != nil {
		return err
	}
	for _, volume := range volumes {
		if err := s.Volumes.DeleteVolume(ctx, volume.ID); err != nil {
			return err
		}
		logx.As().Info().Str("name", volume.Name).Str("id", volume.ID).Msg("Deleted volume")
	}

	routers, err := s.Network.ListRouters(ctx, cloud.RouterFilter{ProjectID: project.ID})
	if err != nil {
		return err
	}
	for _, router := range routers {
		logx.As().Info().Str("name", router.Name).Str("id", router.ID).Msg("Started deleting router")
		ports, err := s.Network.ListPorts(ctx, cloud.PortFilter{DeviceID: router.ID})
		if err != nil {
			return err
		}
		for _, port := range ports {
			if err := s.Network.DetachRouterInterface(ctx, router.ID, port.ID); err != nil {
				return err
			}
			logx.As().Info().Str("owner", port.DeviceOwner).Str("id", port.ID).Msg("Removed port")
		}
		if err := s.Network.DeleteRouter(ctx, router.ID); err != nil {
			return err
		}
		logx.As().Info().Str("id", router.ID).Msg("Finished deleting router")
	}

	networks, err := s.Network.ListNetworks(ctx, cloud.NetworkFilter{ProjectID: project.ID})
	if err != nil {
		return err
	}
	for _, network := range networks {
		logx.As().Info().Str("name", network.Name).Str("id", network.ID).Msg("Started deleting network")
		subnets, err := s.Network.ListSubnets(ctx, cloud.SubnetFilter{ProjectID: project.ID, NetworkID: network.ID})
		if err != nil {
			return err
		}
		for _, subnet := range subnets {
			if err := s.Network.DeleteSubnet(ctx, subnet.ID); err != nil {
				return err
			}
			logx.As().Info().Str("name", subnet.Name).Str("id", subnet.ID).Msg("Deleted subnet")
		}
		if err := s.Network.DeleteNetwork(ctx, network.ID); err != nil {
			return err
		}
		logx.As().Info().Str("id", network.ID).Msg("Finished deleting network")
	}

	securityGroups, err := s.Network.ListSecurityGroups(ctx, cloud.SecurityGroupFilter{ProjectID: project.ID})
	if err != nil {
		return err
	}

	if err := s.Projects.DeleteProject(ctx, project.ID); err != nil {
		return err
	}
	logx.As().Info().Msg("Deleted project itself")

	for _, sg := range securityGroups {
		if err := s.Network.DeleteSecurityGroup(ctx, sg.ID); err != nil {
			return err
		}
		logx.As().Info().Str("name", sg.Name).Str("id", sg.ID).Msg("Deleted security group")
	}

	logx.As().Info().Str("name", project.Name).Msg("Finished deleting project")
	return nil
}
