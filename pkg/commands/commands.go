// Package commands builds the tlv command tree.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/timeline_viewer/pkg/config"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/debug"
)

// GlobalOptions are the flags every subcommand shares.
type GlobalOptions struct {
	Debug      bool
	ConfigPath string
}

// Config loads the configuration named by --config, or the default search
// path when the flag is empty.
func (o *GlobalOptions) Config() (config.Config, error) {
	if o.ConfigPath != "" {
		return config.Load(o.ConfigPath)
	}
	return config.LoadDefault()
}

// New returns the root command with every subcommand attached.
func New() *cobra.Command {
	g := &GlobalOptions{}

	cmd := &cobra.Command{
		Use:   "tlv",
		Short: "Explore a historical timeline from the command line.",
		Long: `tlv lays out dated events in non-overlapping lanes and lets you pan,
zoom and filter them in the terminal, or export the result as SVG, PNG and
HTML.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if g.Debug {
				debug.Enable("")
				debug.Log("tlv %s %v", cmd.Name(), args)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().BoolVar(&g.Debug, "debug", false,
		"Write a debug log to "+debug.DefaultPath()+".")
	cmd.PersistentFlags().StringVar(&g.ConfigPath, "config", "",
		"Path to a YAML config file (default: $"+config.EnvPath+", ./.tlv.yaml, user config dir).")

	AddCommands(cmd, g)
	return cmd
}

// AddCommands attaches the subcommands to topLevel.
func AddCommands(topLevel *cobra.Command, g *GlobalOptions) {
	addView(topLevel, g)
	addExport(topLevel, g)
	addLanes(topLevel, g)
	addServe(topLevel, g)
	addVersion(topLevel)
}
