package gossip

import "encoding/json"

// Envelope type tags.
const (
	TypeBlockchain  = "Blockchain"
	TypeTransaction = "Transaction"
)

// Payload is the wire envelope carried by every text frame. Data is a
// JSON-encoded string: marshaling Payload double-encodes it automatically
// since Data is typed as a Go string, and the receiver unmarshals it a
// second time into the concrete inner type.
type Payload struct {
	Type string `json:"type"`
	Data string `json:"data"`
}

func encodePayload(typ string, inner any) (Payload, error) {
	data, err := json.Marshal(inner)
	if err != nil {
		return Payload{}, err
	}
	return Payload{Type: typ, Data: string(data)}, nil
}

func decodePayload(raw []byte) (Payload, error) {
	var p Payload
	err := json.Unmarshal(raw, &p)
	return p, err
}

func jsonUnmarshalString(data string, out any) error {
	return json.Unmarshal([]byte(data), out)
}

func jsonMarshal(v any) ([]byte, error) {
	return json.Marshal(v)
}
