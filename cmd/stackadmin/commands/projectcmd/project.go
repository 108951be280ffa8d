// SPDX-License-Identifier: Apache-2.0

package projectcmd

import (
	"github.com/spf13/cobra"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage tenant projects and their network topology",
	Long:  "Manage tenant projects and their network topology",
}

func init() {
	projectCmd.AddCommand(ensureCmd)
	projectCmd.AddCommand(showCmd)
	projectCmd.AddCommand(membersCmd)
	projectCmd.AddCommand(deleteCmd)
}

func GetCmd() *cobra.Command {
	return projectCmd
}
