package main

import (
	"fmt"
	"io"

	"github.com/benoitkugler/folayout/logger"
	"github.com/benoitkugler/folayout/utils"
	"github.com/spf13/cobra"
)

type params struct {
	configFile string
	width      string
	trace      bool
	verbose    bool
}

func newRootCommand(out io.Writer) *cobra.Command {
	var p params
	root := &cobra.Command{
		Use:           "fotable",
		Short:         "Lay out XSL-FO and HTML tables",
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if !p.verbose {
				logger.ProgressLogger.SetOutput(io.Discard)
			}
		},
	}
	root.SetOut(out)
	root.PersistentFlags().StringVarP(&p.configFile, "config", "c", "", "YAML configuration file")
	root.PersistentFlags().StringVarP(&p.width, "width", "w", "", "available width, such as 170mm (defaults to the page width)")
	root.PersistentFlags().BoolVar(&p.trace, "trace", false, "print the resolved widths and the elements of the table")
	root.PersistentFlags().BoolVarP(&p.verbose, "verbose", "v", false, "print the progress of the layout")

	root.AddCommand(
		newLayoutCommand(&p),
		newColumnsCommand(&p),
		newVersionCommand(),
	)
	return root
}

func newLayoutCommand(p *params) *cobra.Command {
	return &cobra.Command{
		Use:   "layout <file>",
		Short: "Lay out the table and print its pages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := prepare(*p, args[0], cmd.OutOrStdout())
			if err != nil {
				return err
			}
			j.run(true)
			return nil
		},
	}
}

func newColumnsCommand(p *params) *cobra.Command {
	return &cobra.Command{
		Use:   "columns <file>",
		Short: "Print the resolved widths of the columns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := prepare(*p, args[0], cmd.OutOrStdout())
			if err != nil {
				return err
			}
			j.run(false)
			return nil
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), utils.VersionString)
		},
	}
}
