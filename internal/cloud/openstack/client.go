// SPDX-License-Identifier: Apache-2.0

// Package openstack binds the capability interfaces to a real OpenStack
// control plane via gophercloud.
package openstack

import (
	"context"
	"net/http"

	"github.com/gophercloud/gophercloud/v2"
	"github.com/gophercloud/gophercloud/v2/openstack"
	"github.com/rs/zerolog"
	"github.com/skyhookcloud/stackadmin/internal/cloud"
)

// Options carries the credentials and scope for a control-plane session.
type Options struct {
	AuthURL         string
	Username        string
	Password        string
	UserDomainID    string
	ProjectName     string
	ProjectDomainID string
}

// Client owns one authenticated provider and the per-service endpoints.
type Client struct {
	identity *gophercloud.ServiceClient
	network  *gophercloud.ServiceClient
	compute  *gophercloud.ServiceClient
	volume   *gophercloud.ServiceClient
	logger   *zerolog.Logger
}

// Option allows injecting optional collaborators into the client.
type Option = func(c *Client)

// WithLogger allows injecting a logger for the client.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New authenticates against the identity service and resolves the service
// endpoints from the catalog.
func New(ctx context.Context, opts Options, options ...Option) (*Client, error) {
	ao := gophercloud.AuthOptions{
		IdentityEndpoint: opts.AuthURL,
		Username:         opts.Username,
		Password:         opts.Password,
		DomainID:         opts.UserDomainID,
		AllowReauth:      true,
		Scope: &gophercloud.AuthScope{
			ProjectName: opts.ProjectName,
			DomainID:    opts.ProjectDomainID,
		},
	}

	provider, err := openstack.AuthenticatedClient(ctx, ao)
	if err != nil {
		return nil, cloud.RemoteError.Wrap(err, "authentication against %s failed", opts.AuthURL)
	}

	eo := gophercloud.EndpointOpts{}
	identity, err := openstack.NewIdentityV3(provider, eo)
	if err != nil {
		return nil, cloud.RemoteError.Wrap(err, "no identity endpoint in catalog")
	}
	network, err := openstack.NewNetworkV2(provider, eo)
	if err != nil {
		return nil, cloud.RemoteError.Wrap(err, "no network endpoint in catalog")
	}
	compute, err := openstack.NewComputeV2(provider, eo)
	if err != nil {
		return nil, cloud.RemoteError.Wrap(err, "no compute endpoint in catalog")
	}
	volume, err := openstack.NewBlockStorageV3(provider, eo)
	if err != nil {
		return nil, cloud.RemoteError.Wrap(err, "no block storage endpoint in catalog")
	}

	nop := zerolog.Nop()
	c := &Client{
		identity: identity,
		network:  network,
		compute:  compute,
		volume:   volume,
		logger:   &nop,
	}
	for _, opt := range options {
		opt(c)
	}

	c.logger.Debug().
		Str("authUrl", opts.AuthURL).
		Str("username", opts.Username).
		Msg("Authenticated against identity service")
	return c, nil
}

// APIs returns a capability bundle backed by this client.
func (c *Client) APIs() cloud.APIs {
	identity := &identityAPI{client: c.identity}
	return cloud.APIs{
		Projects: identity,
		Users:    identity,
		Groups:   identity,
		Roles:    identity,
		Network:  &networkAPI{client: c.network},
		Compute:  &computeAPI{client: c.compute},
		Volumes:  &volumeAPI{client: c.volume},
	}
}

// Mappings returns the federation mapping endpoint for the named mapping.
func (c *Client) Mappings(name string) *MappingClient {
	return &MappingClient{client: c.identity, name: name}
}

// wrapErr folds gophercloud failures into the engine's error types so upper
// layers can branch on not-found without knowing the transport.
func wrapErr(err error, msg string, args ...interface{}) error {
	if gophercloud.ResponseCodeIs(err, http.StatusNotFound) {
		return cloud.NotFoundError.Wrap(err, msg, args...)
	}
	return cloud.RemoteError.Wrap(err, msg, args...)
}
