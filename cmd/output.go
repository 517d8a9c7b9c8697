package main

import (
	"encoding/json"
	"io"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/Vepler/http-sdk/internal/config"
)

// writeOutput renders v in the requested format. YAML output goes through a
// JSON round trip so field names follow the API's JSON tags.
func writeOutput(w io.Writer, format string, v any) error {
	switch format {
	case config.OutputYAML:
		raw, err := json.Marshal(v)
		if err != nil {
			return eris.Wrap(err, "output: marshal")
		}
		var generic any
		if err := json.Unmarshal(raw, &generic); err != nil {
			return eris.Wrap(err, "output: normalize")
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(generic); err != nil {
			return eris.Wrap(err, "output: encode yaml")
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(v), "output: encode json")
	}
}
