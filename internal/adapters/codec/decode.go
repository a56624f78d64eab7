package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"
	"gopkg.in/yaml.v3"

	"github.com/okian/trustscore/internal/domain/model"
)

// envelope is the object form of a cohort document: {"wallets": [...]}.
type envelope struct {
	Wallets []model.WalletMetrics `json:"wallets" yaml:"wallets" msgpack:"wallets"`
}

// ReadFile decodes and validates the cohort stored at path. The format is
// inferred from the extension; "-" reads JSON from stdin.
func ReadFile(path string) ([]model.WalletMetrics, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, wrap("read "+path, ErrDecode, err)
	}

	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, wrap("open "+path, ErrDecode, err)
		}
		defer f.Close()
		r = f
	}

	cohort, err := Decode(r, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cohort, nil
}

// Decode reads a cohort in the given format and validates every wallet.
// A document may be a bare list of wallets or an object with a "wallets" key.
func Decode(r io.Reader, format string) ([]model.WalletMetrics, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, wrap("read", ErrDecode, err)
	}

	var cohort []model.WalletMetrics
	switch format {
	case FormatJSON:
		cohort, err = decodeJSON(raw)
	case FormatYAML:
		cohort, err = decodeYAML(raw)
	case FormatMsgpack:
		cohort, err = decodeMsgpack(raw)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, wrap("decode "+format, ErrDecode, err)
	}

	if err := Validate(cohort); err != nil {
		return nil, err
	}
	if cohort == nil {
		cohort = []model.WalletMetrics{}
	}
	return cohort, nil
}

func decodeJSON(raw []byte) ([]model.WalletMetrics, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, io.ErrUnexpectedEOF
	}
	if trimmed[0] == '[' {
		var cohort []model.WalletMetrics
		err := json.Unmarshal(trimmed, &cohort)
		return cohort, err
	}
	var env envelope
	err := json.Unmarshal(trimmed, &env)
	return env.Wallets, err
}

func decodeYAML(raw []byte) ([]model.WalletMetrics, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, io.ErrUnexpectedEOF
	}
	root := doc.Content[0]
	if root.Kind == yaml.SequenceNode {
		var cohort []model.WalletMetrics
		err := root.Decode(&cohort)
		return cohort, err
	}
	var env envelope
	err := root.Decode(&env)
	return env.Wallets, err
}

func decodeMsgpack(raw []byte) ([]model.WalletMetrics, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(raw))
	c, err := dec.PeekCode()
	if err != nil {
		return nil, err
	}
	if msgpcode.IsFixedMap(c) || c == msgpcode.Map16 || c == msgpcode.Map32 {
		var env envelope
		err := dec.Decode(&env)
		return env.Wallets, err
	}
	var cohort []model.WalletMetrics
	err = dec.Decode(&cohort)
	return cohort, err
}
