// SPDX-License-Identifier: Apache-2.0

package usercmd

import (
	"github.com/spf13/cobra"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage password-login users and their project access",
	Long:  "Manage password-login users and their project access",
}

func init() {
	userCmd.AddCommand(ensureCmd)
	userCmd.AddCommand(ensureFileCmd)
	userCmd.AddCommand(grantCmd)
	userCmd.AddCommand(revokeCmd)
}

func GetCmd() *cobra.Command {
	return userCmd
}
