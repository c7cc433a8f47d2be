package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/phrasenet/internal/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the phrasenet HTTP API.

Routes:
  POST /analyze          multipart or form: text_content or file, linking_type,
                         annotator, pattern, max_nodes, hidden_words
  GET  /analysis/text    text of the last analysis request
  GET  /api/health       liveness
  GET  /api/annotators   annotator choices and load state`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.Config
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}

			ex, cc, err := c.newExtractor(ctx, noCache)
			if err != nil {
				return err
			}
			defer cc.Close()

			runner := c.newRunner()
			defer runner.Registry.Close()

			srv := server.New(runner, ex, server.Options{
				Addr:             cfg.Server.Addr,
				CORSOrigins:      cfg.Server.CORSOrigins,
				RequestTimeout:   cfg.Server.RequestTimeout.Duration,
				MaxUploadBytes:   int64(cfg.Server.MaxUploadMB) << 20,
				DefaultAnnotator: cfg.Annotators.Default,
				DefaultMaxNodes:  cfg.Analysis.MaxNodes,
				Stopwords:        cfg.Analysis.Stopwords,
			}, c.Logger)
			printInfo("Listening on %s", StyleNumber.Render(cfg.Server.Addr))
			printKeyValue("annotator", cfg.Annotators.Default)
			printKeyValue("cache", cfg.Cache.Backend)
			printKeyValue("max nodes", strconv.Itoa(cfg.Analysis.MaxNodes))
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the extracted-text cache")
	return cmd
}
