// Package protocol implements the session wire format: 4-byte
// big-endian length-prefixed UTF-8 JSON frames over a TCP stream,
// matching mahjong_common.py's send_json/receive_json exactly. It also
// defines the typed message envelopes exchanged over that framing.
package protocol

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// MaxFrameSize bounds a single frame's JSON body, matching the
// original's 1 MiB sanity limit.
const MaxFrameSize = 1024 * 1024

// ErrFrameTooLarge is returned when a peer announces a frame body
// larger than MaxFrameSize.
var ErrFrameTooLarge = errors.New("protocol: frame exceeds maximum size")

// WriteFrame encodes v as JSON and writes it to w prefixed with its
// 4-byte big-endian length.
func WriteFrame(w io.Writer, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("protocol: marshal frame: %w", err)
	}
	if len(body) > MaxFrameSize {
		return ErrFrameTooLarge
	}
	header := make([]byte, 4)
	binary.BigEndian.PutUint32(header, uint32(len(body)))
	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("protocol: write frame header: %w", err)
	}
	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("protocol: write frame body: %w", err)
	}
	return nil
}

// ReadFrame reads one length-prefixed JSON frame from r, handling TCP
// stream split/merge the way the teacher's TCPConnection.ReadPacket
// loops on partial reads — but against this protocol's plain 4-byte
// header rather than the teacher's 1+3-byte pomelo header.
func ReadFrame(r *bufio.Reader) ([]byte, error) {
	header := make([]byte, 4)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, err
	}
	length := binary.BigEndian.Uint32(header)
	if length > MaxFrameSize {
		return nil, ErrFrameTooLarge
	}
	body := make([]byte, length)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, fmt.Errorf("protocol: read frame body: %w", err)
	}
	return body, nil
}

// Envelope is the common shape every inbound message shares: a type
// discriminator plus a raw payload decoded once the type is known.
type Envelope struct {
	Type string          `json:"type"`
	Raw  json.RawMessage `json:"-"`
}

// PeekType decodes only the "type" field of a raw frame body.
func PeekType(body []byte) (string, error) {
	var e struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(body, &e); err != nil {
		return "", fmt.Errorf("protocol: malformed frame: %w", err)
	}
	return e.Type, nil
}
