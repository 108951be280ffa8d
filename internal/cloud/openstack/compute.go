// SPDX-License-Identifier: Apache-2.0

package openstack

import (
	"context"

	"github.com/gophercloud/gophercloud/v2"
	"github.com/gophercloud/gophercloud/v2/openstack/blockstorage/v3/volumes"
	"github.com/gophercloud/gophercloud/v2/openstack/compute/v2/servers"
	"github.com/skyhookcloud/stackadmin/internal/cloud"
)

// computeAPI implements the server capability on the compute v2 endpoint.
type computeAPI struct {
	client *gophercloud.ServiceClient
}

func (a *computeAPI) ListServers(ctx context.Context, projectID string) ([]cloud.Server, error) {
	pages, err := servers.List(a.client, servers.ListOpts{
		AllTenants: true,
		TenantID:   projectID,
	}).AllPages(ctx)
	if err != nil {
		return nil, wrapErr(err, "listing servers of project %s", projectID)
	}
	records, err := servers.ExtractServers(pages)
	if err != nil {
		return nil, cloud.RemoteError.Wrap(err, "decoding server list")
	}

	out := make([]cloud.Server, 0, len(records))
	for _, s := range records {
		out = append(out, cloud.Server{
			ID:        s.ID,
			ProjectID: s.TenantID,
			Name:      s.Name,
			Status:    s.Status,
		})
	}
	return out, nil
}

func (a *computeAPI) DeleteServer(ctx context.Context, id string) error {
	if err := servers.Delete(ctx, a.client, id).ExtractErr(); err != nil {
		return wrapErr(err, "deleting server %s", id)
	}
	return nil
}

// volumeAPI implements the volume capability on the block storage v3
// endpoint.
type volumeAPI struct {
	client *gophercloud.ServiceClient
}

func (a *volumeAPI) ListVolumes(ctx context.Context, projectID string) ([]cloud.Volume, error) {
	pages, err := volumes.List(a.client, volumes.ListOpts{
		AllTenants: true,
		TenantID:   projectID,
	}).AllPages(ctx)
	if err != nil {
		return nil, wrapErr(err, "listing volumes of project %s", projectID)
	}
	records, err := volumes.ExtractVolumes(pages)
	if err != nil {
		return nil, cloud.RemoteError.Wrap(err, "decoding volume list")
	}

	out := make([]cloud.Volume, 0, len(records))
	for _, v := range records {
		out = append(out, cloud.Volume{
			ID:        v.ID,
			ProjectID: projectID,
			Name:      v.Name,
			SizeGB:    v.Size,
			Status:    v.Status,
		})
	}
	return out, nil
}

func (a *volumeAPI) DeleteVolume(ctx context.Context, id string) error {
	if err := volumes.Delete(ctx, a.client, id, volumes.DeleteOpts{}).ExtractErr(); err != nil {
		return wrapErr(err, "deleting volume %s", id)
	}
	return nil
}
