// SPDX-License-Identifier: Apache-2.0

package openstack

import (
	"context"

	"github.com/gophercloud/gophercloud/v2"
	"github.com/gophercloud/gophercloud/v2/openstack/identity/v3/groups"
	"github.com/gophercloud/gophercloud/v2/openstack/identity/v3/projects"
	"github.com/gophercloud/gophercloud/v2/openstack/identity/v3/roles"
	"github.com/gophercloud/gophercloud/v2/openstack/identity/v3/users"
	"github.com/skyhookcloud/stackadmin/internal/cloud"
)

// identityAPI implements the project, user, group and role capabilities on
// the identity v3 endpoint.
type identityAPI struct {
	client *gophercloud.ServiceClient
}

func (a *identityAPI) ListProjects(ctx context.Context, filter cloud.ProjectFilter) ([]cloud.Project, error) {
	pages, err := projects.List(a.client, projects.ListOpts{Name: filter.Name}).AllPages(ctx)
	if err != nil {
		return nil, wrapErr(err, "listing projects")
	}
	records, err := projects.ExtractProjects(pages)
	if err != nil {
		return nil, cloud.RemoteError.Wrap(err, "decoding project list")
	}

	out := make([]cloud.Project, 0, len(records))
	for _, p := range records {
		out = append(out, toProject(p))
	}
	return out, nil
}

func (a *identityAPI) GetProject(ctx context.Context, id string) (*cloud.Project, error) {
	p, err := projects.Get(ctx, a.client, id).Extract()
	if err != nil {
		return nil, wrapErr(err, "fetching project %s", id)
	}
	record := toProject(*p)
	return &record, nil
}

func (a *identityAPI) CreateProject(ctx context.Context, spec cloud.ProjectSpec) (*cloud.Project, error) {
	p, err := projects.Create(ctx, a.client, projects.CreateOpts{
		Name:        spec.Name,
		DomainID:    spec.DomainID,
		Description: spec.Description,
	}).Extract()
	if err != nil {
		return nil, wrapErr(err, "creating project %q", spec.Name)
	}
	record := toProject(*p)
	return &record, nil
}

func (a *identityAPI) DeleteProject(ctx context.Context, id string) error {
	if err := projects.Delete(ctx, a.client, id).ExtractErr(); err != nil {
		return wrapErr(err, "deleting project %s", id)
	}
	return nil
}

func (a *identityAPI) ListUsers(ctx context.Context, filter cloud.UserFilter) ([]cloud.User, error) {
	pages, err := users.List(a.client, users.ListOpts{Name: filter.Name}).AllPages(ctx)
	if err != nil {
		return nil, wrapErr(err, "listing users")
	}
	records, err := users.ExtractUsers(pages)
	if err != nil {
		return nil, cloud.RemoteError.Wrap(err, "decoding user list")
	}

	out := make([]cloud.User, 0, len(records))
	for _, u := range records {
		out = append(out, toUser(u))
	}
	return out, nil
}

func (a *identityAPI) CreateUser(ctx context.Context, spec cloud.UserSpec) (*cloud.User, error) {
	opts := users.CreateOpts{
		Name:             spec.Name,
		Description:      spec.Description,
		DefaultProjectID: spec.DefaultProjectID,
	}
	if spec.Email != "" {
		opts.Extra = map[string]interface{}{"email": spec.Email}
	}
	u, err := users.Create(ctx, a.client, opts).Extract()
	if err != nil {
		return nil, wrapErr(err, "creating user %q", spec.Name)
	}
	record := toUser(*u)
	return &record, nil
}

func (a *identityAPI) ListGroups(ctx context.Context) ([]cloud.Group, error) {
	pages, err := groups.List(a.client, groups.ListOpts{}).AllPages(ctx)
	if err != nil {
		return nil, wrapErr(err, "listing groups")
	}
	records, err := groups.ExtractGroups(pages)
	if err != nil {
		return nil, cloud.RemoteError.Wrap(err, "decoding group list")
	}

	out := make([]cloud.Group, 0, len(records))
	for _, g := range records {
		out = append(out, cloud.Group{ID: g.ID, Name: g.Name, Description: g.Description})
	}
	return out, nil
}

func (a *identityAPI) CreateGroup(ctx context.Context, spec cloud.GroupSpec) (*cloud.Group, error) {
	g, err := groups.Create(ctx, a.client, groups.CreateOpts{
		Name:        spec.Name,
		Description: spec.Description,
		DomainID:    spec.DomainID,
	}).Extract()
	if err != nil {
		return nil, wrapErr(err, "creating group %q", spec.Name)
	}
	return &cloud.Group{ID: g.ID, Name: g.Name, Description: g.Description}, nil
}

func (a *identityAPI) DeleteGroup(ctx context.Context, id string) error {
	if err := groups.Delete(ctx, a.client, id).ExtractErr(); err != nil {
		return wrapErr(err, "deleting group %s", id)
	}
	return nil
}

func (a *identityAPI) ListGroupUsers(ctx context.Context, groupID string) ([]cloud.User, error) {
	pages, err := users.ListInGroup(a.client, groupID, users.ListOpts{}).AllPages(ctx)
	if err != nil {
		return nil, wrapErr(err, "listing members of group %s", groupID)
	}
	records, err := users.ExtractUsers(pages)
	if err != nil {
		return nil, cloud.RemoteError.Wrap(err, "decoding group member list")
	}

	out := make([]cloud.User, 0, len(records))
	for _, u := range records {
		out = append(out, toUser(u))
	}
	return out, nil
}

func (a *identityAPI) AddGroupUser(ctx context.Context, groupID, userID string) error {
	if err := users.AddToGroup(ctx, a.client, groupID, userID).ExtractErr(); err != nil {
		return wrapErr(err, "adding user %s to group %s", userID, groupID)
	}
	return nil
}

func (a *identityAPI) RemoveGroupUser(ctx context.Context, groupID, userID string) error {
	if err := users.RemoveFromGroup(ctx, a.client, groupID, userID).ExtractErr(); err != nil {
		return wrapErr(err, "removing user %s from group %s", userID, groupID)
	}
	return nil
}

func (a *identityAPI) ListRoles(ctx context.Context, name string) ([]cloud.Role, error) {
	pages, err := roles.List(a.client, roles.ListOpts{Name: name}).AllPages(ctx)
	if err != nil {
		return nil, wrapErr(err, "listing roles")
	}
	records, err := roles.ExtractRoles(pages)
	if err != nil {
		return nil, cloud.RemoteError.Wrap(err, "decoding role list")
	}

	out := make([]cloud.Role, 0, len(records))
	for _, r := range records {
		out = append(out, cloud.Role{ID: r.ID, Name: r.Name})
	}
	return out, nil
}

func (a *identityAPI) ListAssignments(ctx context.Context, projectID string) ([]cloud.Assignment, error) {
	pages, err := roles.ListAssignments(a.client, roles.ListAssignmentsOpts{
		ScopeProjectID: projectID,
	}).AllPages(ctx)
	if err != nil {
		return nil, wrapErr(err, "listing assignments for project %s", projectID)
	}
	records, err := roles.ExtractRoleAssignments(pages)
	if err != nil {
		return nil, cloud.RemoteError.Wrap(err, "decoding assignment list")
	}

	out := make([]cloud.Assignment, 0, len(records))
	for _, ra := range records {
		assignment := cloud.Assignment{RoleID: ra.Role.ID}
		switch {
		case ra.User.ID != "":
			assignment.Principal = cloud.UserPrincipal(ra.User.ID, "")
		case ra.Group.ID != "":
			assignment.Principal = cloud.GroupPrincipal(ra.Group.ID, "")
		default:
			continue
		}
		out = append(out, assignment)
	}
	return out, nil
}

func (a *identityAPI) CheckAssignment(ctx context.Context, roleID string, principal cloud.Principal, projectID string) (bool, error) {
	opts := roles.ListAssignmentsOpts{
		RoleID:         roleID,
		ScopeProjectID: projectID,
	}
	if principal.IsUser() {
		opts.UserID = principal.ID()
	} else {
		opts.GroupID = principal.ID()
	}

	pages, err := roles.ListAssignments(a.client, opts).AllPages(ctx)
	if err != nil {
		return false, wrapErr(err, "checking assignment for %s on project %s", principal.Subject(), projectID)
	}
	records, err := roles.ExtractRoleAssignments(pages)
	if err != nil {
		return false, cloud.RemoteError.Wrap(err, "decoding assignment list")
	}
	return len(records) > 0, nil
}

func (a *identityAPI) Grant(ctx context.Context, roleID string, principal cloud.Principal, projectID string) error {
	opts := roles.AssignOpts{ProjectID: projectID}
	if principal.IsUser() {
		opts.UserID = principal.ID()
	} else {
		opts.GroupID = principal.ID()
	}
	if err := roles.Assign(ctx, a.client, roleID, opts).ExtractErr(); err != nil {
		return wrapErr(err, "granting role %s to %s on project %s", roleID, principal.Subject(), projectID)
	}
	return nil
}

func (a *identityAPI) Revoke(ctx context.Context, roleID string, principal cloud.Principal, projectID string) error {
	opts := roles.UnassignOpts{ProjectID: projectID}
	if principal.IsUser() {
		opts.UserID = principal.ID()
	} else {
		opts.GroupID = principal.ID()
	}
	if err := roles.Unassign(ctx, a.client, roleID, opts).ExtractErr(); err != nil {
		return wrapErr(err, "revoking role %s from %s on project %s", roleID, principal.Subject(), projectID)
	}
	return nil
}

func toProject(p projects.Project) cloud.Project {
	return cloud.Project{
		ID:          p.ID,
		Name:        p.Name,
		DomainID:    p.DomainID,
		Description: p.Description,
	}
}

func toUser(u users.User) cloud.User {
	record := cloud.User{
		ID:               u.ID,
		Name:             u.Name,
		Description:      u.Description,
		DefaultProjectID: u.DefaultProjectID,
	}
	if email, ok := u.Extra["email"].(string); ok {
		record.Email = email
	}
	return record
}
