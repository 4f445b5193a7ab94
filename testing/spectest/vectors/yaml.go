package vectors

import (
	"github.com/ghodss/yaml"
	jsoniter "github.com/json-iterator/go"
)

// The yaml tags written by yaml.v2 double as the decoding tags, so one struct
// definition serves both directions.
var json = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	TagKey:                 "yaml",
}.Froze()

// UnmarshalYaml converts y to JSON and decodes it into dest using the yaml
// struct tags.
func UnmarshalYaml(y []byte, dest interface{}) error {
	j, err := yaml.YAMLToJSON(y)
	if err != nil {
		return err
	}
	return json.Unmarshal(j, dest)
}
