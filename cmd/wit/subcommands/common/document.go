package common

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/youta-t/flarc"
	"gopkg.in/yaml.v3"
)

// WriteDocument encodes doc onto w in the encoding selected by the
// --format flag. Unknown formats are usage errors.
func WriteDocument(w io.Writer, format string, doc any) error {
	switch format {
	case "", "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		enc.SetIndent(2)
		return enc.Encode(doc)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "    ")
		return enc.Encode(doc)
	default:
		return fmt.Errorf(
			"%w: unknown format %q. it can be yaml or json", flarc.ErrUsage, format,
		)
	}
}
