package codec

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Encode writes v to w in the given format. JSON and YAML are indented by two
// spaces.
func Encode(w io.Writer, format string, v any) error {
	var err error
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(v); err == nil {
			err = enc.Close()
		}
	case FormatMsgpack:
		enc := msgpack.NewEncoder(w)
		enc.UseCompactInts(true)
		err = enc.Encode(v)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return wrap("encode "+format, ErrEncode, err)
}

// WriteFile encodes v into path, or to stdout when path is "" or "-".
func WriteFile(path, format string, v any) error {
	if path == "" || path == "-" {
		return Encode(os.Stdout, format, v)
	}
	f, err := os.Create(path)
	if err != nil {
		return wrap("create "+path, ErrEncode, err)
	}
	if err := Encode(f, format, v); err != nil {
		_ = f.Close()
		return err
	}
	return wrap("close "+path, ErrEncode, f.Close())
}
