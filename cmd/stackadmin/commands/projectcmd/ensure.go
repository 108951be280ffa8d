// SPDX-License-Identifier: Apache-2.0

package projectcmd

import (
	"github.com/skyhookcloud/stackadmin/cmd/stackadmin/commands/common"
	"github.com/skyhookcloud/stackadmin/internal/doctor"
	"github.com/skyhookcloud/stackadmin/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	flagCheckResources bool

	ensureCmd = &cobra.Command{
		Use:   "ensure <name>",
		Short: "Create a project and its standard network topology if missing",
		Long: "Create a project and its standard network topology if missing. " +
			"A project that already exists is assumed complete unless --check-resources is given.",
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()
			sess, _, err := common.NewSession(ctx)
			if err != nil {
				doctor.CheckErr(ctx, err)
			}

			opts := workflows.DefaultBootstrapOptions()
			opts.AssumeComplete = !flagCheckResources

			project, created, report, err := workflows.BootstrapProject(ctx, sess, args[0], opts)
			if err != nil {
				doctor.CheckErr(ctx, err)
			}
			doctor.CheckReportErr(ctx, report)

			if created {
				cmd.Printf("Created project %q (%s)\n", project.Name, project.ID)
			} else {
				cmd.Printf("Found project %q (%s)\n", project.Name, project.ID)
			}
		},
	}
)

func init() {
	ensureCmd.Flags().BoolVar(&flagCheckResources, "check-resources", false,
		"Walk every resource of an existing project instead of assuming it is complete")
}
