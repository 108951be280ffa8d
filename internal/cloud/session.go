// SPDX-License-Identifier: Apache-2.0

package cloud

import (
	"context"

	"github.com/automa-saga/logx"
)

// Defaults carries the environment-dependent names the session resolves
// against: the domain new projects land in, the role bulk grants use, and the
// well-known service project owning the shared external network.
type Defaults struct {
	Domain          string
	RoleName        string
	ServiceProject  string
	ExternalNetwork string
}

// Session is one authenticated run against a control plane. It owns the
// per-run caches (roles by name, the shared external network, the group list)
// so bulk operations do not repeat list queries. The caches are plain values
// with explicit invalidation, never package state.
//
// A session is not safe for concurrent use, and two concurrent invocations of
// the tool are not synchronized against each other: they can race to create
// duplicate groups or projects. The tool is meant for single-operator,
// serialized use.
type Session struct {
	APIs
	Defaults Defaults

	roles          map[string]*Role
	groups         []Group
	groupsLoaded   bool
	serviceProject *Project
	externalNet    *Network
}

func NewSession(api APIs, defaults Defaults) *Session {
	return &Session{
		APIs:     api,
		Defaults: defaults,
		roles:    map[string]*Role{},
	}
}

// Role resolves a role by name, memoized for the run. A role missing from the
// control plane is an operator-facing NotFound condition, not control flow.
func (s *Session) Role(ctx context.Context, name string) (*Role, error) {
	if role, ok := s.roles[name]; ok {
		return role, nil
	}

	roles, err := s.Roles.ListRoles(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(roles) == 0 {
		return nil, NotFoundError.New("role %q not found", name)
	}

	role := &roles[0]
	s.roles[name] = role
	return role, nil
}

// ServiceProject resolves the project owning shared infrastructure such as the
// external network.
func (s *Session) ServiceProject(ctx context.Context) (*Project, error) {
	if s.serviceProject != nil {
		return s.serviceProject, nil
	}

	name := s.Defaults.ServiceProject
	projects, err := s.Projects.ListProjects(ctx, ProjectFilter{Name: name})
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return nil, NotFoundError.New("service project %q not found", name)
	}

	s.serviceProject = &projects[0]
	logx.As().Info().
		Str("name", s.serviceProject.Name).
		Str("id", s.serviceProject.ID).
		Msg("Found service project")
	return s.serviceProject, nil
}

// ExternalNetwork resolves the shared network new routers use as their
// external gateway.
func (s *Session) ExternalNetwork(ctx context.Context) (*Network, error) {
	if s.externalNet != nil {
		return s.externalNet, nil
	}

	service, err := s.ServiceProject(ctx)
	if err != nil {
		return nil, err
	}

	name := s.Defaults.ExternalNetwork
	networks, err := s.Network.ListNetworks(ctx, NetworkFilter{ProjectID: service.ID, Name: name})
	if err != nil {
		return nil, err
	}
	if len(networks) == 0 {
		return nil, NotFoundError.New("network %q not found in project %q", name, service.Name)
	}

	s.externalNet = &networks[0]
	return s.externalNet, nil
}

// GroupList returns all groups, fetched once per run. Bulk ensure operations
// scan this instead of issuing a list query per lookup.
func (s *Session) GroupList(ctx context.Context) ([]Group, error) {
	if s.groupsLoaded {
		return s.groups, nil
	}

	groups, err := s.Groups.ListGroups(ctx)
	if err != nil {
		return nil, err
	}

	s.groups = groups
	s.groupsLoaded = true
	logx.As().Info().Int("count", len(groups)).Msg("Retrieved groups")
	return s.groups, nil
}

// RememberGroup appends a freshly created group to the cached list so later
// lookups in the same run see it without refetching.
func (s *Session) RememberGroup(group Group) {
	if s.groupsLoaded {
		s.groups = append(s.groups, group)
	}
}

// InvalidateCaches drops every cached value. The next accessor call refetches.
func (s *Session) InvalidateCaches() {
	s.roles = map[string]*Role{}
	s.groups = nil
	s.groupsLoaded = false
	s.serviceProject = nil
	s.externalNet = nil
}
