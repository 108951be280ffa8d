// SPDX-License-Identifier: Apache-2.0

package usercmd

import (
	"github.com/skyhookcloud/stackadmin/cmd/stackadmin/commands/common"
	"github.com/skyhookcloud/stackadmin/internal/cloud"
	"github.com/skyhookcloud/stackadmin/internal/doctor"
	"github.com/skyhookcloud/stackadmin/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	flagCheckResources bool

	ensureCmd = &cobra.Command{
		Use:   "ensure <name> <email>",
		Short: "Create a user with a personal project if missing",
		Long: "Create a user with a personal project if missing. The project is " +
			"named after the user and the user is granted the member role on it.",
		Args: cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()
			sess, _, err := common.NewSession(ctx)
			if err != nil {
				doctor.CheckErr(ctx, err)
			}

			opts := workflows.DefaultBootstrapOptions()
			opts.AssumeComplete = !flagCheckResources

			record := cloud.DirectoryUser{Name: args[0], Email: args[1]}
			result, err := workflows.EnsureLocalUser(ctx, sess, record, opts)
			if err != nil {
				doctor.CheckErr(ctx, err)
			}

			printUserResult(cmd, record, result)
		},
	}

	ensureFileCmd = &cobra.Command{
		Use:   "ensure-file <path>",
		Short: "Ensure every user listed in a directory record file",
		Long: "Ensure every user listed in a directory record file " +
			"(one \"name,email\" per line, # comments allowed).",
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()
			records, err := common.ReadDirectoryFile(args[0])
			if err != nil {
				doctor.CheckErr(ctx, err)
			}

			sess, _, err := common.NewSession(ctx)
			if err != nil {
				doctor.CheckErr(ctx, err)
			}

			opts := workflows.DefaultBootstrapOptions()
			opts.AssumeComplete = !flagCheckResources

			results, err := workflows.EnsureLocalUsers(ctx, sess, records, opts)
			for i, result := range results {
				printUserResult(cmd, records[i], result)
			}
			if err != nil {
				doctor.CheckErr(ctx, err)
			}
		},
	}
)

func init() {
	for _, cmd := range []*cobra.Command{ensureCmd, ensureFileCmd} {
		cmd.Flags().BoolVar(&flagCheckResources, "check-resources", false,
			"Walk every resource of existing projects instead of assuming they are complete")
	}
}

func printUserResult(cmd *cobra.Command, record cloud.DirectoryUser, result workflows.UserResult) {
	verb := func(created bool) string {
		if created {
			return "created"
		}
		return "found"
	}
	cmd.Printf("%s: user %s, project %s\n",
		record.Email, verb(result.CreatedUser), verb(result.CreatedProject))
}
