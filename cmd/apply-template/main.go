// Command apply-template wraps a content file in the site's page templates,
// overwriting the file in place.
package main

import (
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/eringen/pubtools"
)

func newRootCmd(stderr io.Writer) *cobra.Command {
	var (
		flagType     string
		flagMarkdown bool
		flagConfig   string
	)
	logger := log.New(stderr, "apply_template: ", 0)

	cmd := &cobra.Command{
		Use:          "apply-template FILE",
		Short:        "Wrap a content file in the site templates",
		Long:         "apply-template replaces FILE with its contents inserted into template/global.html (and template/post.html for --type post).",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := pubtools.Mode(flagType)
			if err := mode.Validate(); err != nil {
				// Unsupported and unknown modes are reported, not failed.
				logger.Print(err)
				return nil
			}
			cfg, err := pubtools.LoadConfig(flagConfig)
			if err != nil {
				return err
			}
			tmpl, err := pubtools.ApplyTemplates(&cfg, mode)
			if err != nil {
				return err
			}
			return pubtools.Apply(cmd.Context(), args[0], mode, tmpl, pubtools.ApplyOptions{Markdown: flagMarkdown})
		},
	}
	cmd.SetErr(stderr)
	cmd.Flags().StringVar(&flagType, "type", "", "either 'post', 'empty', 'post-list' or 'project-list'")
	cmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "render the file as Markdown before wrapping it")
	cmd.Flags().StringVar(&flagConfig, "config", pubtools.EnvOr("PUBTOOLS_CONFIG", ""), "path to config file")
	return cmd
}

func main() {
	if err := newRootCmd(os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
