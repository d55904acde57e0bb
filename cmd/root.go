/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cristianoliveira/shopcart/internal/colors"
	"github.com/cristianoliveira/shopcart/internal/config"
	"github.com/cristianoliveira/shopcart/internal/logging"
	"github.com/cristianoliveira/shopcart/internal/version"
	"github.com/spf13/cobra"
)

const description = "A tiny shop with a cart that saves itself remotely."

// outputWriter overrides where help text goes. Used by tests.
var outputWriter io.Writer

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:           "shopcart",
	Short:         description,
	Long:          description,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.Load()
		if err := logging.InitGlobal(); err != nil {
			colors.Warning(fmt.Sprintf("file logging disabled: %v", err))
		}
		logging.GetGlobal().Debug("command started", "command", cmd.CommandPath())
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.GetGlobal().Debug("command completed", "command", cmd.CommandPath())
	},
}

// Execute runs the root command and reports a failure on stderr.
func Execute() error {
	defer func() {
		if err := logging.ShutdownGlobal(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
		}
	}()
	if err := RootCmd.Execute(); err != nil {
		logging.GetGlobal().Error("command failed", "error", err)
		colors.Error(err.Error())
		return err
	}
	return nil
}

func init() {
	RootCmd.Version = version.String()
	RootCmd.CompletionOptions.HiddenDefaultCmd = true
	RootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd != RootCmd {
			fmt.Fprintln(helpOutput(cmd), cmd.UsageString())
			return
		}
		PrintHelp(cmd)
	})
}

// PrintHelp writes the top level help listing the commands in a fixed order.
func PrintHelp(cmd *cobra.Command) {
	commandOrder := []string{
		"tui",
		"products",
		"apply",
		"show",
		"serve",
		"version",
	}

	var cmdLines []string
	for _, name := range commandOrder {
		var found *cobra.Command
		for _, c := range cmd.Commands() {
			if c.Name() == name {
				found = c
				break
			}
		}
		if found == nil {
			continue
		}
		cmdLines = append(cmdLines, fmt.Sprintf("    %-16s %s", found.Use, found.Short))
	}

	helpText := fmt.Sprintf(`shopcart v%s

%s

USAGE:
    shopcart [COMMAND] [OPTIONS]

COMMANDS:
%s

ENVIRONMENT:
    SHOPCART_REMOTE_URL    Remote cart document URL
    SHOPCART_CONFIG_PATH   Config file (default $XDG_CONFIG_HOME/shopcart/config.toml)

OPTIONS:
    -h, --help      Show help message
`, cmd.Version, description, strings.Join(cmdLines, "\n"))
	fmt.Fprint(helpOutput(cmd), helpText)
}

func helpOutput(cmd *cobra.Command) io.Writer {
	if outputWriter != nil {
		return outputWriter
	}
	return cmd.OutOrStdout()
}
