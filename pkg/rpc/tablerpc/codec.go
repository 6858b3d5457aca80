// Package tablerpc defines the elementhub.TableService gRPC contract. Messages
// are plain Go structs carried by a JSON codec registered under the "json"
// content subtype, so clients must call with CallContentSubtype(Codec).
package tablerpc

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// Codec is the content subtype clients select.
const Codec = "json"

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (jsonCodec) Name() string                       { return Codec }

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
