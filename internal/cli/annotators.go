package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// annotatorsCommand lists annotator choices and optionally loads each one.
func (c *CLI) annotatorsCommand() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "annotators",
		Short: "List annotators and check that they load",
		Long: `List the annotator choices. The builtin annotator is always present;
spacy and stanza appear when their service URL is configured.

With --check each annotator is loaded and its capabilities are shown.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := c.newRegistry()
			defer reg.Close()

			def := c.Config.Annotators.Default
			failed := 0
			for _, choice := range reg.Choices() {
				name := choice
				if choice == def {
					name += StyleDim.Render(" (default)")
				}
				if !check {
					printInfo("%s", name)
					continue
				}
				a, err := reg.Get(cmd.Context(), choice)
				if err != nil {
					failed++
					printError("%s", name)
					printDetail("%v", err)
					continue
				}
				printSuccess("%s", name)
				caps := a.Capabilities()
				printDetail("%s", capsString(caps.Lemmas, caps.POS, caps.Dependencies))
			}
			if failed > 0 {
				return fmt.Errorf("%d annotator(s) failed to load", failed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "load each annotator and report its capabilities")
	return cmd
}

func capsString(lemmas, pos, deps bool) string {
	var parts []string
	if lemmas {
		parts = append(parts, "lemmas")
	}
	if pos {
		parts = append(parts, "pos")
	}
	if deps {
		parts = append(parts, "dependencies")
	}
	if len(parts) == 0 {
		return "surface forms only"
	}
	return strings.Join(parts, ", ")
}
