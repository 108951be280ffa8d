// SPDX-License-Identifier: Apache-2.0

// Package access reconciles who may use a project or group. It computes the
// set difference between desired and existing principals and applies the
// delta, never touching assignments that already hold.
package access

import (
	"context"
	"sort"

	"github.com/automa-saga/logx"
	"github.com/skyhookcloud/stackadmin/internal/cloud"
	"github.com/skyhookcloud/stackadmin/internal/core"
)

// Options controls a membership reconciliation.
type Options struct {
	// RoleName is the role bound for project memberships. Empty means the
	// session's default role.
	RoleName string
	// KeepOthers leaves principals that are bound but not desired in place
	// instead of revoking them.
	KeepOthers bool
}

// Result reports what a reconciliation did, as principal IDs.
type Result struct {
	Added     []string
	Removed   []string
	Unchanged []string
}

// ReconcileProjectMembers brings the set of users holding the role on the
// project to exactly the desired set (or a superset of it with KeepOthers).
// Grants and revokes are applied one at a time in sorted order; the first
// remote failure aborts the remainder and is returned, so a partial run is
// never silent.
func ReconcileProjectMembers(ctx context.Context, s *cloud.Session, project *cloud.Project, desiredUserIDs []string, opts Options) (Result, error) {
	roleName := opts.RoleName
	if roleName == "" {
		roleName = s.Defaults.RoleName
	}
	role, err := s.Role(ctx, roleName)
	if err != nil {
		return Result{}, err
	}

	assignments, err := s.Roles.ListAssignments(ctx, project.ID)
	if err != nil {
		return Result{}, err
	}
	existing := map[string]bool{}
	for _, a := range assignments {
		if a.Principal.IsUser() {
			existing[a.Principal.ID()] = true
		}
	}

	result := diff(desiredUserIDs, existing, opts.KeepOthers)

	for _, userID := range result.Added {
		if err := s.Roles.Grant(ctx, role.ID, cloud.UserPrincipal(userID, ""), project.ID); err != nil {
			return result, err
		}
		logx.As().Info().
			Str("user", userID).
			Str("project", project.Name).
			Str("role", role.Name).
			Msg("Granted user access to project")
	}

	for _, userID := range result.Removed {
		if err := s.Roles.Revoke(ctx, role.ID, cloud.UserPrincipal(userID, ""), project.ID); err != nil {
			return result, err
		}
		logx.As().Info().
			Str("user", userID).
			Str("project", project.Name).
			Str("role", role.Name).
			Msg("Revoked user access to project")
	}

	logx.As().Info().
		Str("project", project.Name).
		Str("id", project.ID).
		Int("added", len(result.Added)).
		Int("removed", len(result.Removed)).
		Int("unchanged", len(result.Unchanged)).
		Msg("Updated project members")
	return result, nil
}

// ReconcileGroupMembers is the same set algebra applied to a group's
// membership list instead of role assignments.
func ReconcileGroupMembers(ctx context.Context, s *cloud.Session, group *cloud.Group, desiredUserIDs []string, keepOthers bool) (Result, error) {
	members, err := s.Groups.ListGroupUsers(ctx, group.ID)
	if err != nil {
		return Result{}, err
	}
	existing := map[string]bool{}
	for _, m := range members {
		existing[m.ID] = true
	}

	result := diff(desiredUserIDs, existing, keepOthers)

	for _, userID := range result.Added {
		if err := s.Groups.AddGroupUser(ctx, group.ID, userID); err != nil {
			return result, err
		}
		logx.As().Info().Str("user", userID).Str("group", group.Name).Msg("Added user to group")
	}

	for _, userID := range result.Removed {
		if err := s.Groups.RemoveGroupUser(ctx, group.ID, userID); err != nil {
			return result, err
		}
		logx.As().Info().Str("user", userID).Str("group", group.Name).Msg("Removed user from group")
	}

	logx.As().Info().
		Str("group", group.Name).
		Int("added", len(result.Added)).
		Int("removed", len(result.Removed)).
		Int("unchanged", len(result.Unchanged)).
		Msg("Updated group members")
	return result, nil
}

// Grant binds the role to the principal on the project unless the binding
// already holds. Returns true when a grant call was made.
func Grant(ctx context.Context, s *cloud.Session, project *cloud.Project, principal cloud.Principal, roleName string) (bool, error) {
	if roleName == "" {
		roleName = core.MemberRole
	}
	role, err := s.Role(ctx, roleName)
	if err != nil {
		return false, err
	}

	held, err := s.Roles.CheckAssignment(ctx, role.ID, principal, project.ID)
	if err != nil {
		return false, err
	}
	if held {
		logx.As().Info().
			Str("subject", principal.Subject()).
			Str("project", project.Name).
			Str("role", role.Name).
			Msg("Found access to project, nothing to grant")
		return false, nil
	}

	if err := s.Roles.Grant(ctx, role.ID, principal, project.ID); err != nil {
		return false, err
	}
	logx.As().Info().
		Str("subject", principal.Subject()).
		Str("project", project.Name).
		Str("role", role.Name).
		Msg("Granted access to project")
	return true, nil
}

// Revoke removes the binding if it holds. Returns true when a revoke call was
// made.
func Revoke(ctx context.Context, s *cloud.Session, project *cloud.Project, principal cloud.Principal, roleName string) (bool, error) {
	if roleName == "" {
		roleName = core.MemberRole
	}
	role, err := s.Role(ctx, roleName)
	if err != nil {
		return false, err
	}

	held, err := s.Roles.CheckAssignment(ctx, role.ID, principal, project.ID)
	if err != nil {
		return false, err
	}
	if !held {
		logx.As().Info().
			Str("subject", principal.Subject()).
			Str("project", project.Name).
			Str("role", role.Name).
			Msg("No access to project, nothing to revoke")
		return false, nil
	}

	if err := s.Roles.Revoke(ctx, role.ID, principal, project.ID); err != nil {
		return false, err
	}
	logx.As().Info().
		Str("subject", principal.Subject()).
		Str("project", project.Name).
		Str("role", role.Name).
		Msg("Revoked access to project")
	return true, nil
}

// diff computes added/removed/unchanged, sorted so the apply order is
// deterministic run to run.
func diff(desired []string, existing map[string]bool, keepOthers bool) Result {
	desiredSet := map[string]bool{}
	for _, id := range desired {
		desiredSet[id] = true
	}

	var result Result
	for id := range desiredSet {
		if !existing[id] {
			result.Added = append(result.Added, id)
		}
	}

	if keepOthers {
		for id := range existing {
			result.Unchanged = append(result.Unchanged, id)
		}
	} else {
		for id := range existing {
			if desiredSet[id] {
				result.Unchanged = append(result.Unchanged, id)
			} else {
				result.Removed = append(result.Removed, id)
			}
		}
	}

	sort.Strings(result.Added)
	sort.Strings(result.Removed)
	sort.Strings(result.Unchanged)
	return result
}
