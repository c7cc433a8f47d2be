package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/phrasenet/pkg/buildinfo"
	"github.com/matzehuels/phrasenet/pkg/observability"
)

// RootCommand creates the root cobra command with all subcommands registered.
// Configuration is loaded before any subcommand runs.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Phrasenet draws phrase nets from text",
		Long: `Phrasenet links the words of a text into a graph, either by an
orthographic pattern such as "X and Y" or by syntactic dependencies,
then filters and compresses the graph into a readable phrase net.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			observability.RegisterLogger(c.Logger)
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/phrasenet/config.toml)")

	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.annotatorsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// out returns the writer for command data such as JSON and DOT.
func (c *CLI) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// nopCloser wraps an io.Writer with a no-op Close method.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns c.out() when path is empty or "-", and otherwise
// creates the file at path, overwriting it.
func (c *CLI) openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{c.out()}, nil
	}
	return os.Create(path)
}
