// SPDX-License-Identifier: Apache-2.0

package samlcmd

import (
	"github.com/spf13/cobra"
)

var samlCmd = &cobra.Command{
	Use:   "saml",
	Short: "Manage single-sign-on users, their groups and mapping rules",
	Long:  "Manage single-sign-on users, their groups and mapping rules",
}

func init() {
	samlCmd.AddCommand(ensureUserCmd)
	samlCmd.AddCommand(ensureFileCmd)
	samlCmd.AddCommand(showGroupCmd)
	samlCmd.AddCommand(deleteGroupsCmd)
}

func GetCmd() *cobra.Command {
	return samlCmd
}
