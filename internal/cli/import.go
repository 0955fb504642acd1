package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/ByLCY/caseframe/importer"
)

// errImportFailed is returned after the failure notice was already shown.
var errImportFailed = errors.New("import failed")

type importOpts struct {
	output string
	format string
	debug  string
	data   string
}

func newImportCmd() *cobra.Command {
	var opts importOpts

	cmd := &cobra.Command{
		Use:   "import [file|-]",
		Short: "Lay out a JSON block payload and render the canvas",
		Long: `Import reads a JSON array of blocks (h1..h6, body, list), creates one text
frame per renderable block stacked top to bottom, and renders the canvas.

Without --out the scene is written to <output.dir>/<first-heading-slug>.<format>.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			return runImport(cmd, name, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "out", "o", "", "output file")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: pdf or svg (default from config)")
	cmd.Flags().StringVar(&opts.debug, "debug", "", "write the layout report as JSON to this path")
	cmd.Flags().StringVar(&opts.data, "data", "", "JSON file used to fill ${path} placeholders")
	return cmd
}

func runImport(cmd *cobra.Command, name string, opts importOpts) error {
	ctx := cmd.Context()
	cfg := configFromContext(ctx)
	logger := loggerFromContext(ctx)
	if opts.format == "" {
		opts.format = cfg.Output.Format
	}

	payload, err := readInput(cmd.InOrStdin(), name)
	if err != nil {
		return err
	}
	impOpts, err := importerOptions(ctx, cfg, opts.data)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	h := newCanvasHost(ctx, cfg)
	session := importer.NewSession(h, cfg.UIOptions(), impOpts)
	if err := session.Start(ctx); err != nil {
		return err
	}
	out, err := session.Handle(ctx, importer.Message{Type: importer.MessageImport, Data: string(payload)})
	if err != nil {
		return err
	}
	if opts.debug != "" {
		if err := writeDebug(out.Layout, opts.debug); err != nil {
			return err
		}
	}
	if out.Err != nil {
		return errImportFailed
	}
	prog.done("Import finished")

	path := outputPath(opts.output, cfg.Output.Dir, opts.format, out.Layout)
	if err := writeScene(h, path, opts.format); err != nil {
		return err
	}
	printFile(path)
	if opts.debug != "" {
		printFile(opts.debug)
	}
	return nil
}
