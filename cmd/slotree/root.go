package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
)

func versionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}

func newRootCommand(a *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "slotree",
		Short: "Load, render and edit slot trees",
		Long: TitleStyle.Render("slotree") + SubtitleStyle.Render(" - trees whose nodes own their children") + `

Tree files describe a node with an id, an optional label, attributes and
children, in TOML, HCL or CUE.

` + SubtitleStyle.Render("Examples:") + `
  slotree render tree.toml          Print a tree
  slotree render tree.cue --full    Print slots with their back-references
  slotree repl tree.hcl             Edit a tree interactively
  slotree config show               Show the effective configuration`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig()
		},
	}

	root.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/slotree/slotree.toml)")
	_ = a.v.BindPFlag("verbose", root.PersistentFlags().Lookup("verbose"))

	root.AddCommand(newRenderCommand(a))
	root.AddCommand(newREPLCommand(a))
	root.AddCommand(newConfigCommand(a))
	return root
}

func newConfigCommand(a *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect slotree configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.showConfig(cmd)
		},
	})
	return cfgCmd
}

func (a *App) showConfig(cmd *cobra.Command) error {
	w := cmd.OutOrStdout()
	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)
	if used := a.v.ConfigFileUsed(); used != "" {
		fmt.Fprintf(w, "%s: %s\n", KeyStyle.Render("config file"), used)
	} else {
		fmt.Fprintf(w, "%s: %s\n", KeyStyle.Render("config file"), SubtitleStyle.Render("(using defaults)"))
	}
	keys := a.v.AllKeys()
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "%s: %v\n", KeyStyle.Render(k), a.v.Get(k))
	}
	return nil
}
