// SPDX-License-Identifier: Apache-2.0

package samlcmd

import (
	"github.com/skyhookcloud/stackadmin/cmd/stackadmin/commands/common"
	"github.com/skyhookcloud/stackadmin/internal/cloud"
	"github.com/skyhookcloud/stackadmin/internal/doctor"
	"github.com/skyhookcloud/stackadmin/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	flagCheckResources bool

	ensureUserCmd = &cobra.Command{
		Use:   "ensure-user <name> <email>",
		Short: "Provision a single-sign-on user",
		Long: "Provision a single-sign-on user: a per-user group, a mapping rule " +
			"routing the email into it, a personal project and a member grant for the group.",
		Args: cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			runEnsure(cmd, []cloud.DirectoryUser{{Name: args[0], Email: args[1]}})
		},
	}

	ensureFileCmd = &cobra.Command{
		Use:   "ensure-file <path>",
		Short: "Provision every single-sign-on user listed in a directory record file",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()
			records, err := common.ReadDirectoryFile(args[0])
			if err != nil {
				doctor.CheckErr(ctx, err)
			}
			runEnsure(cmd, records)
		},
	}
)

func init() {
	for _, cmd := range []*cobra.Command{ensureUserCmd, ensureFileCmd} {
		cmd.Flags().BoolVar(&flagCheckResources, "check-resources", false,
			"Walk every resource of existing projects instead of assuming they are complete")
	}
}

func runEnsure(cmd *cobra.Command, records []cloud.DirectoryUser) {
	ctx := cmd.Context()
	sess, client, err := common.NewSession(ctx)
	if err != nil {
		doctor.CheckErr(ctx, err)
	}
	reconciler := common.NewFederationReconciler(sess, client)

	opts := workflows.DefaultBootstrapOptions()
	opts.AssumeComplete = !flagCheckResources

	results, err := workflows.EnsureFederatedUsers(ctx, sess, reconciler, records, opts)
	for i, result := range results {
		if result.Project == nil {
			continue
		}
		verb := func(created bool) string {
			if created {
				return "created"
			}
			return "found"
		}
		cmd.Printf("%s: group %s, project %s\n",
			records[i].Email, verb(result.CreatedGroup), verb(result.CreatedProject))
	}
	if err != nil {
		doctor.CheckErr(ctx, err)
	}
}
