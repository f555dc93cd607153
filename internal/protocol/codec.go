package protocol

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Envelope wraps every datagram: a kind tag plus the raw msgpack payload.
type Envelope struct {
	T Kind               `msgpack:"t"`
	P msgpack.RawMessage `msgpack:"p"`
}

// Encode marshals a payload and wraps it in a tagged envelope. Kind-only
// messages (Shot, Ping) may pass a nil payload.
func Encode(k Kind, payload any) ([]byte, error) {
	if k == 0 {
		return nil, fmt.Errorf("encode: missing message kind")
	}
	var raw []byte
	if payload != nil {
		var err error
		raw, err = msgpack.Marshal(payload)
		if err != nil {
			return nil, err
		}
	}
	return msgpack.Marshal(Envelope{T: k, P: raw})
}

// DecodeEnvelope unwraps a datagram into its kind tag and raw payload.
func DecodeEnvelope(b []byte) (Envelope, error) {
	if len(b) == 0 {
		return Envelope{}, fmt.Errorf("decode: empty datagram")
	}
	var env Envelope
	if err := msgpack.Unmarshal(b, &env); err != nil {
		return Envelope{}, err
	}
	if env.T == 0 {
		return Envelope{}, fmt.Errorf("decode: missing message kind")
	}
	return env, nil
}

// DecodePayload unmarshals an envelope's payload into the expected type.
func DecodePayload[T any](env Envelope) (T, error) {
	var out T
	if len(env.P) == 0 {
		return out, fmt.Errorf("empty payload for kind %d", env.T)
	}
	err := msgpack.Unmarshal(env.P, &out)
	return out, err
}
