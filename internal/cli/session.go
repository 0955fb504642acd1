package cli

import (
	"github.com/spf13/cobra"

	"github.com/ByLCY/caseframe/importer"
	"github.com/ByLCY/caseframe/layout"
)

type sessionOpts struct {
	output string
	format string
	data   string
}

func newSessionCmd() *cobra.Command {
	var opts sessionOpts

	cmd := &cobra.Command{
		Use:   "session",
		Short: "Serve newline-delimited UI messages from stdin",
		Long: `Session shows the plugin UI once and then handles one JSON message per line:

  {"type":"import","data":"[...]"}
  {"type":"cancel"}

Elements accumulate on one canvas across imports. The canvas is rendered when
a cancel message arrives or input ends.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "out", "o", "", "output file")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: pdf or svg (default from config)")
	cmd.Flags().StringVar(&opts.data, "data", "", "JSON file used to fill ${path} placeholders")
	return cmd
}

func runSession(cmd *cobra.Command, opts sessionOpts) error {
	ctx := cmd.Context()
	cfg := configFromContext(ctx)
	logger := loggerFromContext(ctx)
	if opts.format == "" {
		opts.format = cfg.Output.Format
	}

	impOpts, err := importerOptions(ctx, cfg, opts.data)
	if err != nil {
		return err
	}
	h := newCanvasHost(ctx, cfg)
	session := importer.NewSession(h, cfg.UIOptions(), impOpts)

	var first *layout.Result
	imports := 0
	err = session.Serve(ctx, cmd.InOrStdin(), func(out *importer.Outcome) {
		imports++
		if first == nil && out.Err == nil {
			first = out.Layout
		}
		printDetail("import %d: %s, %d/%d blocks", imports, out.State, out.Created, out.Submitted)
	})
	if err != nil {
		return err
	}
	logger.Debug("Session ended", "imports", imports, "cancelled", session.Closed())

	if len(h.Elements()) == 0 {
		logger.Info("Nothing to render")
		return nil
	}
	path := outputPath(opts.output, cfg.Output.Dir, opts.format, first)
	if err := writeScene(h, path, opts.format); err != nil {
		return err
	}
	printFile(path)
	return nil
}
