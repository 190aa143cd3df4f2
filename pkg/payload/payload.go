// Package payload encodes analysis records for the companion-app link in
// JSON or MessagePack format.
package payload

import (
	"encoding/json"
	"fmt"

	"github.com/aquamind/aquamind/internal/types"
	"github.com/vmihailenco/msgpack/v5"
)

// Format selects the wire encoding.
type Format string

const (
	// FormatJSON is the default, human-readable encoding.
	FormatJSON Format = "json"

	// FormatMsgpack is the compact binary encoding for constrained links.
	FormatMsgpack Format = "msgpack"
)

// ParseFormat validates a format name. Empty selects JSON.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatMsgpack:
		return FormatMsgpack, nil
	}
	return "", fmt.Errorf("unsupported payload format: %s", name)
}

// Encode serializes a record in the given format.
func Encode(record *types.AnalysisRecord, format Format) ([]byte, error) {
	switch format {
	case FormatMsgpack:
		return msgpack.Marshal(record)
	default:
		return json.Marshal(record)
	}
}

// Decode deserializes a record encoded with Encode.
func Decode(data []byte, format Format) (*types.AnalysisRecord, error) {
	record := new(types.AnalysisRecord)
	switch format {
	case FormatMsgpack:
		if err := msgpack.Unmarshal(data, record); err != nil {
			return nil, err
		}
	default:
		if err := json.Unmarshal(data, record); err != nil {
			return nil, err
		}
	}
	return record, nil
}
