// Package container implements the keychain's versioned, tagged-union
// wallet-data record and its JSON wire encoding.
package container

import (
	"bytes"
	"encoding/base64"
	"encoding/json"

	kcherr "github.com/duskvault/keychain/pkg/errors"
)

// CurrentVersion is the schema version this package always writes.
const CurrentVersion = 2

// KeyEntry is one (network code, opaque extended-key payload) pair. It is
// persisted as a two-element JSON array, never as an object field, so
// that non-string numeric keys survive round-tripping.
type KeyEntry struct {
	Network uint32
	Payload []byte
}

// MarshalJSON renders e as [network, base64(payload)].
func (e KeyEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{e.Network, base64.StdEncoding.EncodeToString(e.Payload)})
}

// UnmarshalJSON parses e from [network, base64(payload)].
func (e *KeyEntry) UnmarshalJSON(data []byte) error {
	var tuple [2]json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return kcherr.Wrap(err, "decoding key entry tuple")
	}

	var network uint32
	if err := json.Unmarshal(tuple[0], &network); err != nil {
		return kcherr.Wrap(err, "decoding key entry network code")
	}

	var encoded string
	if err := json.Unmarshal(tuple[1], &encoded); err != nil {
		return kcherr.Wrap(err, "decoding key entry payload")
	}
	payload, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return kcherr.Wrap(err, "base64-decoding key entry payload")
	}

	e.Network = network
	e.Payload = payload
	return nil
}

// Record is the canonical, current-version (V2) wallet-data record.
type Record struct {
	Seed       []byte // nil if absent
	Mnemonic   *string
	Dictionary *uint8
	Keys       []KeyEntry
}

type recordJSON struct {
	Seed       *string    `json:"seed"`
	Mnemonic   *string    `json:"mnemonic"`
	Dictionary *uint8     `json:"dictionary"`
	Keys       []KeyEntry `json:"keys"`
}

type v1RecordJSON struct {
	Keys []KeyEntry `json:"keys"`
}

// MarshalJSON renders r as the canonical V2 inner JSON shape.
func (r Record) MarshalJSON() ([]byte, error) {
	rj := recordJSON{Mnemonic: r.Mnemonic, Dictionary: r.Dictionary, Keys: r.Keys}
	if r.Seed != nil {
		encoded := base64.StdEncoding.EncodeToString(r.Seed)
		rj.Seed = &encoded
	}
	if rj.Keys == nil {
		rj.Keys = []KeyEntry{}
	}
	return json.Marshal(rj)
}

// UnmarshalJSON parses the canonical V2 inner JSON shape, rejecting any
// field not named seed, mnemonic, dictionary, or keys.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var rj recordJSON
	if err := dec.Decode(&rj); err != nil {
		return kcherr.Wrap(err, "decoding V2 record")
	}

	r.Mnemonic = rj.Mnemonic
	r.Dictionary = rj.Dictionary
	r.Keys = rj.Keys

	if rj.Seed != nil {
		decoded, err := base64.StdEncoding.DecodeString(*rj.Seed)
		if err != nil {
			return kcherr.Wrap(err, "base64-decoding seed")
		}
		r.Seed = decoded
	}
	return nil
}

// outerJSON is the persisted envelope plaintext: {"version":u16,"data":base64}.
type outerJSON struct {
	Version uint16 `json:"version"`
	Data    string `json:"data"`
}

// Serialize always writes the current version (V2).
func Serialize(r Record) ([]byte, error) {
	inner, err := json.Marshal(r)
	if err != nil {
		return nil, kcherr.Wrap(err, "serializing record")
	}

	outer := outerJSON{Version: CurrentVersion, Data: base64.StdEncoding.EncodeToString(inner)}
	out, err := json.Marshal(outer)
	if err != nil {
		return nil, kcherr.Wrap(err, "serializing outer container")
	}
	return out, nil
}

// Parse decodes the outer {"version","data"} envelope and dispatches on
// version: V1 is upgraded to a V2 Record with seed/mnemonic/dictionary
// absent; V2 is parsed directly.
func Parse(data []byte) (Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var outer outerJSON
	if err := dec.Decode(&outer); err != nil {
		return Record{}, kcherr.Wrap(err, "decoding outer container")
	}

	inner, err := base64.StdEncoding.DecodeString(outer.Data)
	if err != nil {
		return Record{}, kcherr.Wrap(err, "base64-decoding inner data")
	}

	switch outer.Version {
	case 1:
		return parseV1(inner)
	case 2:
		var r Record
		if err := json.Unmarshal(inner, &r); err != nil {
			return Record{}, kcherr.Wrap(err, "decoding V2 container")
		}
		return r, nil
	default:
		return Record{}, kcherr.Newf(kcherr.DataError, "unsupported container version %d", outer.Version)
	}
}

func parseV1(inner []byte) (Record, error) {
	dec := json.NewDecoder(bytes.NewReader(inner))
	dec.DisallowUnknownFields()

	var v1 v1RecordJSON
	if err := dec.Decode(&v1); err != nil {
		return Record{}, kcherr.Wrap(err, "decoding V1 record")
	}

	return Record{Keys: v1.Keys}, nil
}
