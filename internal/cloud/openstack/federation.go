// SPDX-License-Identifier: Apache-2.0

package openstack

import (
	"context"

	"github.com/gophercloud/gophercloud/v2"
	"github.com/skyhookcloud/stackadmin/internal/federation"
)

// MappingClient reads and replaces the rule list of one named federation
// mapping. gophercloud has no typed binding for mapping updates, so the
// calls go through the raw service client against the OS-FEDERATION
// resource.
type MappingClient struct {
	client *gophercloud.ServiceClient
	name   string
}

type mappingBody struct {
	Mapping struct {
		Rules []federation.Rule `json:"rules"`
	} `json:"mapping"`
}

func (m *MappingClient) url() string {
	return m.client.ServiceURL("OS-FEDERATION", "mappings", m.name)
}

// Rules fetches the current rule list of the mapping.
func (m *MappingClient) Rules(ctx context.Context) ([]federation.Rule, error) {
	var body mappingBody
	_, err := m.client.Get(ctx, m.url(), &body, nil)
	if err != nil {
		return nil, wrapErr(err, "fetching mapping %q", m.name)
	}
	return body.Mapping.Rules, nil
}

// Replace overwrites the mapping's rule list wholesale.
func (m *MappingClient) Replace(ctx context.Context, rules []federation.Rule) error {
	var body mappingBody
	body.Mapping.Rules = rules

	_, err := m.client.Patch(ctx, m.url(), body, nil, &gophercloud.RequestOpts{
		OkCodes: []int{200},
	})
	if err != nil {
		return wrapErr(err, "updating mapping %q", m.name)
	}
	return nil
}

var _ federation.MappingAPI = (*MappingClient)(nil)
