// SPDX-License-Identifier: Apache-2.0

package samlcmd

import (
	"fmt"
	"strings"

	"github.com/skyhookcloud/stackadmin/cmd/stackadmin/commands/common"
	"github.com/skyhookcloud/stackadmin/internal/doctor"
	"github.com/skyhookcloud/stackadmin/internal/federation"
	"github.com/skyhookcloud/stackadmin/internal/tenant"
	"github.com/spf13/cobra"
)

var (
	flagYes bool

	showGroupCmd = &cobra.Command{
		Use:   "show-group <email>",
		Short: "Show a user's federation group and the mapping rules routing into it",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()
			sess, client, err := common.NewSession(ctx)
			if err != nil {
				doctor.CheckErr(ctx, err)
			}
			reconciler := common.NewFederationReconciler(sess, client)

			group, err := tenant.RequireGroup(ctx, sess, federation.GroupName(args[0]))
			if err != nil {
				doctor.CheckErr(ctx, err)
			}

			rules, err := reconciler.GroupRules(ctx, group.ID)
			if err != nil {
				doctor.CheckErr(ctx, err)
			}

			out := struct {
				Group interface{}       `yaml:"group"`
				Rules []federation.Rule `yaml:"rules"`
			}{Group: group, Rules: rules}
			if err := common.PrintYAML(cmd, out); err != nil {
				doctor.CheckErr(ctx, err)
			}
		},
	}

	deleteGroupsCmd = &cobra.Command{
		Use:   "delete-groups <email>...",
		Short: "Delete users' federation groups and the mapping rules referencing them",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()
			sess, client, err := common.NewSession(ctx)
			if err != nil {
				doctor.CheckErr(ctx, err)
			}
			reconciler := common.NewFederationReconciler(sess, client)

			ok, err := common.Confirm(
				fmt.Sprintf("Delete federation groups and mapping rules for %s?", strings.Join(args, ", ")),
				flagYes)
			if err != nil {
				doctor.CheckErr(ctx, err)
			}
			if !ok {
				cmd.Println("Aborted.")
				return
			}

			if err := reconciler.DeleteGroups(ctx, args); err != nil {
				doctor.CheckErr(ctx, err)
			}
			cmd.Println("Deleted.")
		},
	}
)

func init() {
	deleteGroupsCmd.Flags().BoolVar(&flagYes, "yes", false, "Skip the confirmation prompt")
}
