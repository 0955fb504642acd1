package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ByLCY/caseframe/importer"
	"github.com/ByLCY/caseframe/outline"
)

type outlineOpts struct {
	output   string
	envelope bool
}

func newOutlineCmd() *cobra.Command {
	var opts outlineOpts

	cmd := &cobra.Command{
		Use:   "outline [file|-]",
		Short: "Convert a Markdown-style note into a block payload",
		Long: `Outline turns "#" headings, "-"/"1." list lines and paragraphs into the JSON
block array accepted by import. With --envelope it prints a single-line
import message for the session command instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			return runOutline(cmd, name, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "out", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&opts.envelope, "envelope", false, "wrap the payload in an import message")
	return cmd
}

func runOutline(cmd *cobra.Command, name string, opts outlineOpts) error {
	src, err := readInput(cmd.InOrStdin(), name)
	if err != nil {
		return err
	}
	blocks, err := outline.Convert(bytes.NewReader(src))
	if err != nil {
		return err
	}
	loggerFromContext(cmd.Context()).Debug("Outline converted", "blocks", len(blocks))

	var buf bytes.Buffer
	if err := outline.Encode(&buf, blocks); err != nil {
		return err
	}
	if opts.envelope {
		payload, err := envelope(buf.Bytes())
		if err != nil {
			return err
		}
		buf.Reset()
		buf.Write(payload)
	}

	if opts.output == "" {
		_, err := io.Copy(cmd.OutOrStdout(), &buf)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(opts.output), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(opts.output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("写入输出文件失败: %w", err)
	}
	printSuccess("%d blocks", len(blocks))
	printFile(opts.output)
	return nil
}

// envelope wraps a block payload into a compact one-line import message.
func envelope(payload []byte) ([]byte, error) {
	var compact bytes.Buffer
	if err := json.Compact(&compact, payload); err != nil {
		return nil, fmt.Errorf("压缩载荷失败: %w", err)
	}
	msg, err := json.Marshal(importer.Message{Type: importer.MessageImport, Data: compact.String()})
	if err != nil {
		return nil, fmt.Errorf("编码消息失败: %w", err)
	}
	return append(msg, '\n'), nil
}
