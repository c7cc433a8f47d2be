package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/phrasenet/pkg/graph"
	"github.com/matzehuels/phrasenet/pkg/pipeline"
	"github.com/matzehuels/phrasenet/pkg/stopwords"
)

// analyzeOpts holds the flags of the analyze command.
type analyzeOpts struct {
	text          string
	linking       string
	pattern       string
	annotator     string
	maxNodes      int
	stopwords     string
	stopwordsFile string
	output        string
	top           int
	noCache       bool
}

// analyzeCommand creates the analyze command.
func (c *CLI) analyzeCommand() *cobra.Command {
	opts := analyzeOpts{
		linking:  pipeline.DefaultLinkingType,
		pattern:  "X and Y",
		maxNodes: pipeline.DefaultMaxNodes,
	}

	cmd := &cobra.Command{
		Use:   "analyze [file|-]",
		Short: "Build a phrase net from text, a TXT file, or a PDF",
		Long: `Build a phrase net and write it as JSON.

The input is --text, a .txt or .pdf file, or "-" for text on stdin.
The JSON goes to stdout unless -o is set. With --top and no -o, a table
of the most frequent nodes is printed instead.`,
		Example: `  phrasenet analyze essay.pdf -o essay.json
  phrasenet analyze --text "cats and dogs, dogs and mice" --top 5
  cat notes.txt | phrasenet analyze - -l syntactic -a spacy`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("annotator") {
				opts.annotator = c.Config.Annotators.Default
			}
			if !cmd.Flags().Changed("max-nodes") {
				opts.maxNodes = c.Config.Analysis.MaxNodes
			}
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			return c.runAnalyze(cmd.Context(), input, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.text, "text", "", "text to analyze (takes precedence over a file)")
	f.StringVarP(&opts.linking, "linking", "l", opts.linking, "linking type: orthographic or syntactic")
	f.StringVarP(&opts.pattern, "pattern", "p", opts.pattern, "orthographic pattern, e.g. \"X and Y\"")
	f.StringVarP(&opts.annotator, "annotator", "a", pipeline.DefaultAnnotator, "annotator: builtin, spacy, or stanza")
	f.IntVarP(&opts.maxNodes, "max-nodes", "n", opts.maxNodes, "maximum nodes kept after filtering")
	f.StringVar(&opts.stopwords, "stopwords", "", "comma-separated words to hide")
	f.StringVar(&opts.stopwordsFile, "stopwords-file", "", "file of words to hide (JSON/YAML list or one per line)")
	f.StringVarP(&opts.output, "output", "o", "", "output JSON file (default stdout)")
	f.IntVar(&opts.top, "top", 0, "print a table of the N most frequent nodes")
	f.BoolVar(&opts.noCache, "no-cache", false, "disable the extracted-text cache")

	_ = cmd.RegisterFlagCompletionFunc("linking", cobra.FixedCompletions(
		[]string{"orthographic", "syntactic"}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

func (c *CLI) runAnalyze(ctx context.Context, input string, opts analyzeOpts) error {
	text, err := c.readInput(ctx, input, opts)
	if err != nil {
		return err
	}
	words, err := c.collectStopwords(opts)
	if err != nil {
		return err
	}

	runner := c.newRunner()
	defer runner.Registry.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, "Analyzing...")
	spinner.Start()
	res, err := runner.Analyze(ctx, pipeline.Options{
		Text:        text,
		LinkingType: opts.linking,
		Annotator:   opts.annotator,
		Pattern:     opts.pattern,
		MaxNodes:    opts.maxNodes,
		Stopwords:   words,
	})
	spinner.Stop()
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Analyzed %d tokens", res.Stats.Tokens))

	if opts.output == "" {
		if opts.top > 0 {
			writeTopNodes(c.out(), res.Graph.Nodes, opts.top)
			return nil
		}
		return graph.WriteGraph(res.Graph, c.out())
	}

	if err := graph.WriteGraphFile(res.Graph, opts.output); err != nil {
		return err
	}
	printSuccess("Phrase net built")
	printStats(res.Stats)
	printFile(opts.output)
	if opts.top > 0 {
		writeTopNodes(c.out(), res.Graph.Nodes, opts.top)
	}
	printNextStep("Render it", fmt.Sprintf("%s render %s -f svg", appName, opts.output))
	return nil
}

// readInput returns the text to analyze. --text wins over a file argument,
// "-" reads stdin, and files go through the extractor.
func (c *CLI) readInput(ctx context.Context, input string, opts analyzeOpts) (string, error) {
	if strings.TrimSpace(opts.text) != "" {
		if input != "" {
			c.Logger.Warn("--text given, ignoring file", "file", input)
		}
		return opts.text, nil
	}
	switch input {
	case "":
		return "", errors.New("no input: pass --text, a file, or - for stdin")
	case "-":
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return "", err
	}
	ex, cc, err := c.newExtractor(ctx, opts.noCache)
	if err != nil {
		return "", err
	}
	defer cc.Close()
	return ex.Extract(ctx, filepath.Base(input), data)
}

// collectStopwords merges configured words with the flag and file values.
func (c *CLI) collectStopwords(opts analyzeOpts) ([]string, error) {
	set := stopwords.New(c.Config.Analysis.Stopwords...)
	if opts.stopwords != "" {
		for _, w := range stopwords.ParseList(opts.stopwords).Words() {
			set.Add(w)
		}
	}
	if opts.stopwordsFile != "" {
		f, err := os.Open(opts.stopwordsFile)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		fromFile, err := stopwords.Read(f)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", opts.stopwordsFile, err)
		}
		for _, w := range fromFile.Words() {
			set.Add(w)
		}
	}
	return set.Words(), nil
}
