package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/okian/trustscore/internal/adapters/codec"
)

// outputFlags are shared by every command that writes a document.
type outputFlags struct {
	path   string
	format string
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.path, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVar(&o.format, "format", "", "Output format: json, yaml, msgpack")
}

// resolve picks the output encoding. An explicit --format wins, then the
// output file extension, then the configured default.
func (o *outputFlags) resolve(fallback string) (string, error) {
	if o.format != "" {
		return codec.ParseFormat(o.format)
	}
	if o.path != "" && o.path != "-" && filepath.Ext(o.path) != "" {
		return codec.FormatFromPath(o.path)
	}
	return codec.ParseFormat(fallback)
}

// write encodes v to the output file, or to the command's stdout.
func (o *outputFlags) write(cmd *cobra.Command, format string, v any) error {
	if o.path == "" || o.path == "-" {
		return codec.Encode(cmd.OutOrStdout(), format, v)
	}
	return codec.WriteFile(o.path, format, v)
}
