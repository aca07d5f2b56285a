package audibleauth

import (
	"encoding/json"

	gojson "github.com/goccy/go-json"
)

// A Codec encodes and decodes the JSON bodies exchanged with Amazon. Both provided
// implementations are behaviourally identical; which one to use is purely a matter
// of taste (or of what the embedding application already links in).
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

var (
	_ Codec = JSONCodec{}
	_ Codec = GoJSONCodec{}
)

// JSONCodec implements [Codec] using the standard library's encoding/json.
type JSONCodec struct{}

func (JSONCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (JSONCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// GoJSONCodec implements [Codec] using goccy/go-json.
type GoJSONCodec struct{}

func (GoJSONCodec) Marshal(v any) ([]byte, error) {
	return gojson.Marshal(v)
}

func (GoJSONCodec) Unmarshal(data []byte, v any) error {
	return gojson.Unmarshal(data, v)
}
