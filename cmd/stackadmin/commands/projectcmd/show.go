// SPDX-License-Identifier: Apache-2.0

package projectcmd

import (
	"github.com/skyhookcloud/stackadmin/cmd/stackadmin/commands/common"
	"github.com/skyhookcloud/stackadmin/internal/doctor"
	"github.com/skyhookcloud/stackadmin/internal/tenant"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <name|id>",
	Short: "Show a project and its network topology",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		sess, _, err := common.NewSession(ctx)
		if err != nil {
			doctor.CheckErr(ctx, err)
		}

		topology, err := tenant.Describe(ctx, sess, args[0])
		if err != nil {
			doctor.CheckErr(ctx, err)
		}

		if err := common.PrintYAML(cmd, topology); err != nil {
			doctor.CheckErr(ctx, err)
		}
	},
}
