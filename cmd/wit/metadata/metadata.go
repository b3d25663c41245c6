// Package metadata loads component metadata and argument documents
// from files. Files named *.json decode as JSON; anything else
// decodes as YAML.
package metadata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golemcloud/witkit-api-types/exports"
	"github.com/golemcloud/witkit-api-types/values"
	"gopkg.in/yaml.v3"
)

// Load reads the component metadata document at path.
func Load(path string) (exports.Metadata, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return exports.Metadata{}, err
	}

	meta := exports.Metadata{}
	if isJSON(path) {
		err = json.Unmarshal(buf, &meta)
	} else {
		err = yaml.Unmarshal(buf, &meta)
	}
	if err != nil {
		return exports.Metadata{}, fmt.Errorf("metadata %s is broken: %w", path, err)
	}
	return meta, nil
}

// LoadDocument reads a value document at path, an argument array for
// example. Empty YAML files read as Null.
func LoadDocument(path string) (values.Value, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if isJSON(path) {
		v, err := values.Unmarshal(buf)
		if err != nil {
			return nil, fmt.Errorf("document %s is broken: %w", path, err)
		}
		return v, nil
	}

	node := yaml.Node{}
	if err := yaml.Unmarshal(buf, &node); err != nil {
		return nil, fmt.Errorf("document %s is broken: %w", path, err)
	}
	if node.Kind == 0 {
		return values.Null{}, nil
	}
	v, err := values.UnmarshalNode(&node)
	if err != nil {
		return nil, fmt.Errorf("document %s is broken: %w", path, err)
	}
	return v, nil
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// Resolve finds the function invocable as name, either the
// instance-qualified "iface.{fn}" form or the bare name of a function
// export. The first match in declaration order wins. prefix is the
// owning instance name, empty for bare exports.
func Resolve(meta exports.Metadata, name string) (prefix string, fn exports.Function, ok bool) {
	for _, ex := range meta.Exports {
		switch e := ex.(type) {
		case exports.Function:
			if e.Name == name {
				return "", e, true
			}
		case exports.Instance:
			for _, f := range e.Functions {
				if exports.FullName(e.Name, f.Name) == name {
					return e.Name, f, true
				}
			}
		}
	}
	return "", exports.Function{}, false
}
