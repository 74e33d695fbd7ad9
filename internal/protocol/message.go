package protocol

import "vhpidbg.dev/pkg/vhpidbg/internal/model"

// Version is the only protocol version spoken.
const Version = 0

// MessageType is the value of the "type" discriminator.
type MessageType string

// Message types.
const (
	TypeGreeting MessageType = "greeting"
	TypeCommand  MessageType = "command"
	TypeResponse MessageType = "response"
	TypeEvent    MessageType = "event"
	TypeError    MessageType = "error"
)

// CommandName is the value of the "command" discriminator.
type CommandName string

// Commands understood by the server.
const (
	CmdListScopes          CommandName = "list_scopes"
	CmdListItems           CommandName = "list_items"
	CmdReferenceItems      CommandName = "reference_items"
	CmdQueryInterval       CommandName = "query_interval"
	CmdGetSimulationStatus CommandName = "get_simulation_status"
	CmdRunSimulation       CommandName = "run_simulation"
	CmdPauseSimulation     CommandName = "pause_simulation"
)

// EventName is the value of the "event" discriminator.
type EventName string

// Events pushed by the server.
const (
	EventSimulationPaused   EventName = "simulation_paused"
	EventSimulationFinished EventName = "simulation_finished"
)

// AllCommands lists the commands advertised in the greeting, in wire order.
var AllCommands = []CommandName{
	CmdListScopes,
	CmdListItems,
	CmdReferenceItems,
	CmdQueryInterval,
	CmdGetSimulationStatus,
	CmdRunSimulation,
	CmdPauseSimulation,
}

// AllEvents lists the events advertised in the greeting.
var AllEvents = []EventName{EventSimulationPaused, EventSimulationFinished}

// Message is any protocol message.
type Message interface {
	MessageType() MessageType
}

// ClientMessage is a message a client sends: a greeting or a command.
type ClientMessage interface {
	Message
	clientMessage()
}

// ServerMessage is a message the server sends.
type ServerMessage interface {
	Message
	serverMessage()
}

// Command is a client request addressed by name.
type Command interface {
	ClientMessage
	CommandName() CommandName
}

// Response answers exactly one command.
type Response interface {
	ServerMessage
	CommandName() CommandName
}

// Event is an unsolicited server notification.
type Event interface {
	ServerMessage
	EventName() EventName
}

// PauseCause explains why the simulation paused.
type PauseCause string

const (
	// CauseUntilTime means the run reached its requested time bound.
	CauseUntilTime PauseCause = "until_time"
	// CausePauseRequest means a client asked for the pause.
	CausePauseRequest PauseCause = "pause_request"
)

// SimulationPaused is emitted when a running simulation stops.
type SimulationPaused struct {
	Time  model.TimeStamp `json:"time"`
	Cause PauseCause      `json:"cause"`
}

// SimulationFinished is emitted once when the simulation ends.
type SimulationFinished struct {
	Time model.TimeStamp `json:"time"`
}

func (SimulationPaused) serverMessage()   {}
func (SimulationFinished) serverMessage() {}

// MessageType implements Message.
func (SimulationPaused) MessageType() MessageType { return TypeEvent }

// MessageType implements Message.
func (SimulationFinished) MessageType() MessageType { return TypeEvent }

// EventName implements Event.
func (SimulationPaused) EventName() EventName { return EventSimulationPaused }

// EventName implements Event.
func (SimulationFinished) EventName() EventName { return EventSimulationFinished }
