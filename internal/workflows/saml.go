// SPDX-License-Identifier: Apache-2.0

package workflows

import (
	"context"

	"github.com/automa-saga/logx"
	"github.com/skyhookcloud/stackadmin/internal/access"
	"github.com/skyhookcloud/stackadmin/internal/cloud"
	"github.com/skyhookcloud/stackadmin/internal/core"
	"github.com/skyhookcloud/stackadmin/internal/federation"
)

// FederatedResult reports what ensuring one federated user touched.
type FederatedResult struct {
	Group          *cloud.Group
	Project        *cloud.Project
	CreatedGroup   bool
	CreatedProject bool
	Granted        bool
}

// EnsureFederatedUsers provisions single-sign-on users: a per-user group, a
// mapping rule routing the email into it, a personal project, and a member
// grant for the group. Groups are ensured first so all missing mapping rules
// land in a single rewrite (and a single backup).
func EnsureFederatedUsers(ctx context.Context, s *cloud.Session, r *federation.Reconciler, records []cloud.DirectoryUser, opts BootstrapOptions) ([]FederatedResult, error) {
	results := make([]FederatedResult, 0, len(records))
	bindings := make([]federation.Binding, 0, len(records))

	for _, rec := range records {
		group, created, err := r.EnsureGroup(ctx, rec.Email, rec.Name)
		if err != nil {
			return results, err
		}
		results = append(results, FederatedResult{Group: group, CreatedGroup: created})
		bindings = append(bindings, federation.Binding{Email: rec.Email, GroupID: group.ID})
	}

	if _, err := r.EnsureMappings(ctx, bindings); err != nil {
		return results, err
	}

	for i, rec := range records {
		project, createdProject, err := EnsureProject(ctx, s, rec.Name, opts)
		if err != nil {
			return results, err
		}
		results[i].Project = project
		results[i].CreatedProject = createdProject

		group := results[i].Group
		granted, err := access.Grant(ctx, s, project, cloud.GroupPrincipal(group.ID, group.Name), core.MemberRole)
		if err != nil {
			return results, err
		}
		results[i].Granted = granted

		logx.As().Info().
			Str("user", rec.Email).
			Str("group", group.Name).
			Str("project", project.Name).
			Msg("Ensured federated user")
	}
	return results, nil
}
