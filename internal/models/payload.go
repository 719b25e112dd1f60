package models

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/daylog/internal/common"
)

const dataURIPrefix = "data:"

// Payload is the tagged variant an attachment carries: either the raw bytes
// still held locally (inline) or a reference resolvable against the remote
// store (remote). On the wire both collapse into the single historical "url"
// string field: inline payloads marshal as a base64 data URI, remote payloads
// as the bare reference.
type Payload struct {
	inline bool
	mime   string
	data   []byte
	ref    string
}

// NewInlinePayload wraps raw bytes that have not been uploaded yet.
func NewInlinePayload(data []byte, mime string) Payload {
	return Payload{inline: true, mime: mime, data: data}
}

// NewRemotePayload wraps a remote-resolvable reference.
func NewRemotePayload(ref string) Payload {
	return Payload{ref: ref}
}

// Inline reports whether the payload still holds local bytes.
func (p Payload) Inline() bool { return p.inline }

// IsZero reports whether the payload is empty.
func (p Payload) IsZero() bool { return !p.inline && p.ref == "" && len(p.data) == 0 }

// Bytes returns the inline bytes, or nil for remote payloads.
func (p Payload) Bytes() []byte { return p.data }

// Mime returns the MIME type recorded with inline bytes.
func (p Payload) Mime() string { return p.mime }

// Ref returns the remote reference, or "" for inline payloads.
func (p Payload) Ref() string { return p.ref }

// Equal compares two payloads by content.
func (p Payload) Equal(o Payload) bool {
	return p.inline == o.inline && p.mime == o.mime && p.ref == o.ref && bytes.Equal(p.data, o.data)
}

// Encode renders the payload as its wire string.
func (p Payload) Encode() string {
	if p.inline {
		return dataURIPrefix + p.mime + ";base64," + base64.StdEncoding.EncodeToString(p.data)
	}
	return p.ref
}

// DecodePayload parses a wire string into a Payload. Strings starting with
// "data:" are decoded as inline base64 data URIs, everything else is treated
// as a remote reference.
func DecodePayload(s string) (Payload, error) {
	if !strings.HasPrefix(s, dataURIPrefix) {
		return NewRemotePayload(s), nil
	}

	head, b64, ok := strings.Cut(s[len(dataURIPrefix):], ",")
	if !ok {
		return Payload{}, fmt.Errorf("%w: missing data separator", common.ErrInvalidPayload)
	}
	mime, enc, _ := strings.Cut(head, ";")
	if enc != "base64" {
		return Payload{}, fmt.Errorf("%w: unsupported encoding %q", common.ErrInvalidPayload, enc)
	}
	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return Payload{}, fmt.Errorf("%w: %v", common.ErrInvalidPayload, err)
	}
	return NewInlinePayload(data, mime), nil
}

func (p Payload) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Encode())
}

func (p *Payload) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	decoded, err := DecodePayload(s)
	if err != nil {
		return err
	}
	*p = decoded
	return nil
}
