package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

type (
	clientDecoder func(payload []byte) (ClientMessage, error)
	serverDecoder func(payload []byte) (ServerMessage, error)
)

func clientShape[T ClientMessage]() clientDecoder {
	return func(payload []byte) (ClientMessage, error) {
		var v T
		if err := json.Unmarshal(payload, &v); err != nil {
			return nil, Errorf(KindInvalidMessage, "malformed %s message: %v", v.MessageType(), err)
		}

		return v, nil
	}
}

func serverShape[T ServerMessage]() serverDecoder {
	return func(payload []byte) (ServerMessage, error) {
		var v T
		if err := json.Unmarshal(payload, &v); err != nil {
			return nil, Errorf(KindInvalidMessage, "malformed %s message: %v", v.MessageType(), err)
		}

		return v, nil
	}
}

var commandShapes = map[CommandName]clientDecoder{
	CmdListScopes:          clientShape[ListScopes](),
	CmdListItems:           clientShape[ListItems](),
	CmdReferenceItems:      clientShape[ReferenceItems](),
	CmdQueryInterval:       clientShape[QueryInterval](),
	CmdGetSimulationStatus: clientShape[GetSimulationStatus](),
	CmdRunSimulation:       clientShape[RunSimulation](),
	CmdPauseSimulation:     clientShape[PauseSimulation](),
}

var responseShapes = map[CommandName]serverDecoder{
	CmdListScopes:          serverShape[ListScopesResponse](),
	CmdListItems:           serverShape[ListItemsResponse](),
	CmdReferenceItems:      serverShape[ReferenceItemsResponse](),
	CmdQueryInterval:       serverShape[QueryIntervalResponse](),
	CmdGetSimulationStatus: serverShape[GetSimulationStatusResponse](),
	CmdRunSimulation:       serverShape[RunSimulationResponse](),
	CmdPauseSimulation:     serverShape[PauseSimulationResponse](),
}

var eventShapes = map[EventName]serverDecoder{
	EventSimulationPaused:   serverShape[SimulationPaused](),
	EventSimulationFinished: serverShape[SimulationFinished](),
}

// Encode serializes msg to compact JSON and stamps its discriminators.
func Encode(msg Message) ([]byte, error) {
	body, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshal %s message: %w", msg.MessageType(), err)
	}

	body, err = sjson.SetBytes(body, "type", string(msg.MessageType()))
	if err != nil {
		return nil, fmt.Errorf("stamp message type: %w", err)
	}

	switch m := msg.(type) {
	case Command:
		body, err = sjson.SetBytes(body, "command", string(m.CommandName()))
	case Response:
		body, err = sjson.SetBytes(body, "command", string(m.CommandName()))
	case Event:
		body, err = sjson.SetBytes(body, "event", string(m.EventName()))
	}

	if err != nil {
		return nil, fmt.Errorf("stamp message discriminator: %w", err)
	}

	return body, nil
}

// PeekType returns the "type" discriminator without decoding the body, or
// the empty string when there is none.
func PeekType(payload []byte) MessageType {
	return MessageType(gjson.GetBytes(payload, "type").String())
}

// DecodeClientMessage decodes a greeting request or a command.
func DecodeClientMessage(payload []byte) (ClientMessage, error) {
	root, typ, err := envelope(payload)
	if err != nil {
		return nil, err
	}

	switch typ {
	case TypeGreeting:
		return clientShape[GreetingRequest]()(payload)
	case TypeCommand:
		name, err := discriminator(root, "command")
		if err != nil {
			return nil, err
		}

		decode, ok := commandShapes[CommandName(name)]
		if !ok {
			return nil, Errorf(KindUnsupportedCommand, "command %q is not supported", name)
		}

		return decode(payload)
	default:
		return nil, Errorf(KindInvalidMessage, "unexpected message type %q", typ)
	}
}

// DecodeServerMessage decodes a greeting response, response, event or error.
func DecodeServerMessage(payload []byte) (ServerMessage, error) {
	root, typ, err := envelope(payload)
	if err != nil {
		return nil, err
	}

	switch typ {
	case TypeGreeting:
		return serverShape[GreetingResponse]()(payload)
	case TypeError:
		return serverShape[Error]()(payload)
	case TypeResponse:
		name, err := discriminator(root, "command")
		if err != nil {
			return nil, err
		}

		decode, ok := responseShapes[CommandName(name)]
		if !ok {
			return nil, Errorf(KindInvalidMessage, "response to unknown command %q", name)
		}

		return decode(payload)
	case TypeEvent:
		name, err := discriminator(root, "event")
		if err != nil {
			return nil, err
		}

		decode, ok := eventShapes[EventName(name)]
		if !ok {
			return nil, Errorf(KindInvalidMessage, "unknown event %q", name)
		}

		return decode(payload)
	default:
		return nil, Errorf(KindInvalidMessage, "unexpected message type %q", typ)
	}
}

func envelope(payload []byte) (gjson.Result, MessageType, error) {
	if !gjson.ValidBytes(payload) {
		return gjson.Result{}, "", Errorf(KindInvalidMessage, "payload is not valid JSON")
	}

	root := gjson.ParseBytes(payload)
	if !root.IsObject() {
		return gjson.Result{}, "", Errorf(KindInvalidMessage, "message is not a JSON object")
	}

	typ, err := discriminator(root, "type")
	if err != nil {
		return gjson.Result{}, "", err
	}

	return root, MessageType(typ), nil
}

func discriminator(root gjson.Result, field string) (string, error) {
	value := root.Get(field)
	if !value.Exists() {
		return "", Errorf(KindInvalidMessage, "missing %q field", field)
	}

	if value.Type != gjson.String {
		return "", Errorf(KindInvalidMessage, "field %q must be a string", field)
	}

	return value.Str, nil
}
