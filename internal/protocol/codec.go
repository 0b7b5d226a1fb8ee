// Package protocol implements the wire codec: inbound frames arrive either
// as a compact msgpack array or as a JSON object, outbound frames are always
// JSON objects with a "type" discriminator.
package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

var ErrMalformedFrame = errors.New("malformed frame")

// CommandKind tags a decoded inbound frame.
type CommandKind string

const (
	CmdState        CommandKind = "state"
	CmdCoachEnable  CommandKind = "coach_enable"
	CmdPing         CommandKind = "ping"
	CmdUnrecognized CommandKind = "unrecognized"
)

// Command is the uniform result of decoding either wire encoding.
type Command struct {
	Kind   CommandKind
	State  map[string]any // CmdState only
	Enable bool           // CmdCoachEnable only
}

// Decode dispatches on the WebSocket message type. It is total: any input
// yields a Command or ErrMalformedFrame, never a panic.
func Decode(binary bool, data []byte) (Command, error) {
	if binary {
		return DecodeBinary(data)
	}
	return DecodeText(data)
}

// DecodeBinary decodes the compact encoding: a msgpack array whose first
// element is the command tag and whose second is the payload, e.g.
// ["state", {...}].
func DecodeBinary(data []byte) (Command, error) {
	var arr []msgpack.RawMessage
	if err := msgpack.Unmarshal(data, &arr); err != nil {
		return Command{}, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}
	if len(arr) == 0 {
		return Command{}, fmt.Errorf("%w: empty array", ErrMalformedFrame)
	}

	var tag string
	if err := msgpack.Unmarshal(arr[0], &tag); err != nil {
		return Command{}, fmt.Errorf("%w: non-string tag", ErrMalformedFrame)
	}

	switch tag {
	case "state":
		if len(arr) < 2 {
			return Command{}, fmt.Errorf("%w: state frame without payload", ErrMalformedFrame)
		}
		var state map[string]any
		if err := msgpack.Unmarshal(arr[1], &state); err != nil || state == nil {
			return Command{}, fmt.Errorf("%w: bad state payload", ErrMalformedFrame)
		}
		return Command{Kind: CmdState, State: state}, nil
	default:
		return Command{Kind: CmdUnrecognized}, nil
	}
}

// DecodeText decodes the JSON encoding: {"type": "...", ...}.
func DecodeText(data []byte) (Command, error) {
	var frame struct {
		Type   string         `json:"type"`
		State  map[string]any `json:"state"`
		Enable bool           `json:"enable"`
	}
	if err := json.Unmarshal(data, &frame); err != nil {
		return Command{}, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}

	switch frame.Type {
	case "state":
		if frame.State == nil {
			return Command{}, fmt.Errorf("%w: state frame without payload", ErrMalformedFrame)
		}
		return Command{Kind: CmdState, State: frame.State}, nil
	case "coach_enable":
		return Command{Kind: CmdCoachEnable, Enable: frame.Enable}, nil
	case "ping":
		return Command{Kind: CmdPing}, nil
	default:
		return Command{Kind: CmdUnrecognized}, nil
	}
}
