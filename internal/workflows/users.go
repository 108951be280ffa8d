// SPDX-License-Identifier: Apache-2.0

package workflows

import (
	"context"

	"github.com/automa-saga/logx"
	"github.com/skyhookcloud/stackadmin/internal/access"
	"github.com/skyhookcloud/stackadmin/internal/cloud"
	"github.com/skyhookcloud/stackadmin/internal/core"
	"github.com/skyhookcloud/stackadmin/internal/tenant"
)

// UserResult reports what ensuring one user touched.
type UserResult struct {
	User           *cloud.User
	Project        *cloud.Project
	CreatedUser    bool
	CreatedProject bool
	Granted        bool
}

// EnsureLocalUser provisions a password-login user: a personal project named
// after the user, the user record itself, and a member grant on the project.
func EnsureLocalUser(ctx context.Context, s *cloud.Session, rec cloud.DirectoryUser, opts BootstrapOptions) (UserResult, error) {
	var result UserResult

	project, createdProject, err := EnsureProject(ctx, s, rec.Name, opts)
	if err != nil {
		return result, err
	}
	result.Project = project
	result.CreatedProject = createdProject

	user, createdUser, err := tenant.EnsureUser(ctx, s, rec, project.ID)
	if err != nil {
		return result, err
	}
	result.User = user
	result.CreatedUser = createdUser

	granted, err := access.Grant(ctx, s, project, cloud.UserPrincipal(user.ID, user.Name), core.MemberRole)
	if err != nil {
		return result, err
	}
	result.Granted = granted

	logx.As().Info().
		Str("user", rec.Email).
		Str("project", project.Name).
		Bool("created_user", createdUser).
		Bool("created_project", createdProject).
		Msg("Ensured local user")
	return result, nil
}

// EnsureLocalUsers runs EnsureLocalUser over a batch, stopping at the first
// failure. Already processed records stay provisioned; the batch can simply
// be rerun.
func EnsureLocalUsers(ctx context.Context, s *cloud.Session, records []cloud.DirectoryUser, opts BootstrapOptions) ([]UserResult, error) {
	results := make([]UserResult, 0, len(records))
	for _, rec := range records {
		result, err := EnsureLocalUser(ctx, s, rec, opts)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}
	return results, nil
}
