// SPDX-License-Identifier: Apache-2.0

package projectcmd

import (
	"fmt"

	"github.com/skyhookcloud/stackadmin/cmd/stackadmin/commands/common"
	"github.com/skyhookcloud/stackadmin/internal/doctor"
	"github.com/skyhookcloud/stackadmin/internal/tenant"
	"github.com/spf13/cobra"
)

var (
	flagYes bool

	deleteCmd = &cobra.Command{
		Use:   "delete <name|id>",
		Short: "Delete a project and everything in it",
		Long: "Delete a project and everything in it: servers, volumes, routers, " +
			"subnets, networks and security groups.",
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

			ok, err := common.Confirm(
				fmt.Sprintf("Delete project %q (%s) and all of its resources?", project.Name, project.ID),
				flagYes)
			if err != nil {
				doctor.CheckErr(ctx, err)
			}
			if !ok {
				cmd.Println("Aborted.")
				return
			}

			if err := tenant.DeleteProject(ctx, sess, project.ID); err != nil {
				doctor.CheckErr(ctx, err)
			}
			cmd.Printf("Deleted project %q (%s)\n", project.Name, project.ID)
		},
	}
)

func init() {
	deleteCmd.Flags().BoolVar(&flagYes, "yes", false, "Skip the confirmation prompt")
}
