// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"

	"github.com/automa-saga/logx"
	"github.com/joomcode/errorx"
	"github.com/skyhookcloud/stackadmin/cmd/stackadmin/commands/projectcmd"
	"github.com/skyhookcloud/stackadmin/cmd/stackadmin/commands/samlcmd"
	"github.com/skyhookcloud/stackadmin/cmd/stackadmin/commands/usercmd"
	"github.com/skyhookcloud/stackadmin/cmd/stackadmin/commands/versioncmd"
	"github.com/skyhookcloud/stackadmin/internal/config"
	"github.com/skyhookcloud/stackadmin/internal/doctor"
	"github.com/spf13/cobra"
)

// examples:
// ./stackadmin project ensure "Jane Doe"
// ./stackadmin user ensure-file ./users.txt
// ./stackadmin saml ensure-user "Jane Doe" jdoe@example.com
// ./stackadmin project delete "Jane Doe" --yes

var (
	// Used for flags.
	flagConfig       string
	flagVersion      bool
	flagOutputFormat string
	flagVerbose      bool
	flagDebug        bool

	rootCmd = &cobra.Command{
		Use:   "stackadmin",
		Short: "Provision and tear down tenant resources in an OpenStack cloud",
		Long:  "stackadmin - an administrative tool to provision and tear down tenant projects, users, groups and federation mappings",
		RunE: func(cmd *cobra.Command, args []string) error {
			if flagVersion {
				versioncmd.PrintVersion(cmd, flagOutputFormat)
				return nil
			}

			return cmd.Help()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "config file path")

	// support '--version', '-v' to show version information
	rootCmd.PersistentFlags().BoolVarP(&flagVersion, "version", "v", false, "Show version")
	rootCmd.PersistentFlags().StringVarP(&flagOutputFormat, "output", "o", "yaml", "Output format (yaml|json)")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Log progress at info level")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log at debug level")

	// disable command sorting to keep the order of commands as added
	cobra.EnableCommandSorting = false

	// add subcommands
	rootCmd.AddCommand(projectcmd.GetCmd())
	rootCmd.AddCommand(usercmd.GetCmd())
	rootCmd.AddCommand(samlcmd.GetCmd())
	rootCmd.AddCommand(versioncmd.GetCmd())
}

// Execute executes the root command.
func Execute(ctx context.Context) error {
	if ctx == nil {
		return errorx.IllegalArgument.New("context is required")
	}

	cobra.OnInitialize(func() {
		initConfig(ctx)
	})

	// execute the root command
	_, err := rootCmd.ExecuteContextC(ctx)
	if err != nil {
		return errorx.IllegalState.Wrap(err, "failed to execute command")
	}

	return nil
}

func initConfig(ctx context.Context) {
	var err error
	err = config.Initialize(flagConfig)
	if err != nil {
		doctor.CheckErr(ctx, err)
	}

	logConfig := config.Get().Log
	switch {
	case flagDebug:
		logConfig.Level = "Debug"
	case flagVerbose:
		logConfig.Level = "Info"
	}
	err = logx.Initialize(logConfig)
	if err != nil {
		doctor.CheckErr(ctx, err)
	}
}
