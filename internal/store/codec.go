package store

import (
	toml "github.com/pelletier/go-toml/v2"

	"github.com/papapumpkin/sunrise/internal/relpath"
)

// Decode parses store file contents into a path to description mapping.
// Keys are cleaned to slash-separated relative form; empty descriptions and
// keys denoting the root are dropped. Empty input decodes to an empty mapping.
func Decode(data []byte) (map[relpath.Path]string, error) {
	raw := make(map[string]string)
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	out := make(map[relpath.Path]string, len(raw))
	for k, v := range raw {
		p := relpath.Clean(k)
		if v == "" || p.IsRoot() {
			continue
		}
		out[p] = v
	}
	return out, nil
}

// Encode serializes the mapping as TOML with one quoted key per path.
func Encode(descriptions map[relpath.Path]string) ([]byte, error) {
	raw := make(map[string]string, len(descriptions))
	for k, v := range descriptions {
		raw[k.String()] = v
	}
	return toml.Marshal(raw)
}
