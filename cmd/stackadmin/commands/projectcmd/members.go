// SPDX-License-Identifier: Apache-2.0

package projectcmd

import (
	"github.com/skyhookcloud/stackadmin/cmd/stackadmin/commands/common"
	"github.com/skyhookcloud/stackadmin/internal/access"
	"github.com/skyhookcloud/stackadmin/internal/doctor"
	"github.com/skyhookcloud/stackadmin/internal/tenant"
	"github.com/spf13/cobra"
)

var (
	flagMemberEmails []string
	flagKeepOthers   bool
	flagMemberRole   string

	membersCmd = &cobra.Command{
		Use:   "members <name|id>",
		Short: "Reconcile who holds the member role on a project",
		Long: "Reconcile who holds the member role on a project. Users named by " +
			"--email are granted; everyone else is revoked unless --keep-others is given.",
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()
			sess, _, err := common.NewSession(ctx)
			if err != nil {
				doctor.CheckErr(ctx, err)
			}

			project, err := tenant.RequireProject(ctx, sess, args[0])
			if err != nil {
				doctor.CheckErr(ctx, err)
			}

			userIDs := make([]string, 0, len(flagMemberEmails))
			for _, email := range flagMemberEmails {
				user, err := tenant.RequireUser(ctx, sess, email)
				if err != nil {
					doctor.CheckErr(ctx, err)
				}
				userIDs = append(userIDs, user.ID)
			}

			result, err := access.ReconcileProjectMembers(ctx, sess, project, userIDs, access.Options{
				RoleName:   flagMemberRole,
				KeepOthers: flagKeepOthers,
			})
			if err != nil {
				doctor.CheckErr(ctx, err)
			}

			cmd.Printf("Project %q: %d added, %d removed, %d unchanged\n",
				project.Name, len(result.Added), len(result.Removed), len(result.Unchanged))
		},
	}
)

func init() {
	membersCmd.Flags().StringArrayVar(&flagMemberEmails, "email", nil, "Email of a desired member (repeatable)")
	membersCmd.Flags().BoolVar(&flagKeepOthers, "keep-others", false, "Leave members that are not listed in place")
	membersCmd.Flags().StringVar(&flagMemberRole, "role", "", "Role to reconcile (defaults to the configured member role)")
}
