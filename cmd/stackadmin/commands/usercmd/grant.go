// SPDX-License-Identifier: Apache-2.0

package usercmd

import (
	"context"

	"github.com/skyhookcloud/stackadmin/cmd/stackadmin/commands/common"
	"github.com/skyhookcloud/stackadmin/internal/access"
	"github.com/skyhookcloud/stackadmin/internal/cloud"
	"github.com/skyhookcloud/stackadmin/internal/core"
	"github.com/skyhookcloud/stackadmin/internal/doctor"
	"github.com/skyhookcloud/stackadmin/internal/tenant"
	"github.com/spf13/cobra"
)

var (
	flagGrantAdmin bool
	flagGrantGroup bool

	grantCmd = &cobra.Command{
		Use:   "grant <email|group-name> <project>",
		Short: "Grant a user or group access to a project",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()
			changed := applyAccess(ctx, args, access.Grant)
			if changed {
				cmd.Println("Granted.")
			} else {
				cmd.Println("Already granted, nothing to do.")
			}
		},
	}

	revokeCmd = &cobra.Command{
		Use:   "revoke <email|group-name> <project>",
		Short: "Revoke a user's or group's access to a project",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()
			changed := applyAccess(ctx, args, access.Revoke)
			if changed {
				cmd.Println("Revoked.")
			} else {
				cmd.Println("Not granted, nothing to do.")
			}
		},
	}
)

func init() {
	for _, cmd := range []*cobra.Command{grantCmd, revokeCmd} {
		cmd.Flags().BoolVar(&flagGrantAdmin, "admin", false, "Use the admin role instead of the member role")
		cmd.Flags().BoolVar(&flagGrantGroup, "group", false, "Treat the first argument as a group name instead of an email")
	}
}

type accessFunc func(ctx context.Context, s *cloud.Session, project *cloud.Project, principal cloud.Principal, roleName string) (bool, error)

func applyAccess(ctx context.Context, args []string, apply accessFunc) bool {
	sess, _, err := common.NewSession(ctx)
	if err != nil {
		doctor.CheckErr(ctx, err)
	}

	project, err := tenant.RequireProject(ctx, sess, args[1])
	if err != nil {
		doctor.CheckErr(ctx, err)
	}

	var principal cloud.Principal
	if flagGrantGroup {
		group, err := tenant.RequireGroup(ctx, sess, args[0])
		if err != nil {
			doctor.CheckErr(ctx, err)
		}
		principal = cloud.GroupPrincipal(group.ID, group.Name)
	} else {
		user, err := tenant.RequireUser(ctx, sess, args[0])
		if err != nil {
			doctor.CheckErr(ctx, err)
		}
		principal = cloud.UserPrincipal(user.ID, user.Name)
	}

	roleName := core.MemberRole
	if flagGrantAdmin {
		roleName = core.AdminRole
	}

	changed, err := apply(ctx, sess, project, principal, roleName)
	if err != nil {
		doctor.CheckErr(ctx, err)
	}
	return changed
}
