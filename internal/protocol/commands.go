package protocol

import "vhpidbg.dev/pkg/vhpidbg/internal/model"

// ListScopes asks for the children of a scope; a nil Scope means the top level.
type ListScopes struct {
	Scope *model.Path `json:"scope"`
}

// ListItems asks for the items owned by a scope; a nil Scope means every item.
type ListItems struct {
	Scope *model.Path `json:"scope"`
}

// GetSimulationStatus asks for the current status snapshot.
type GetSimulationStatus struct{}

// RunSimulation resumes the simulation, optionally until a time bound.
type RunSimulation struct {
	UntilTime        *model.TimeStamp `json:"until_time"`
	UntilDiagnostics []string         `json:"until_diagnostics"`
	SampleItemValues bool             `json:"sample_item_values"`
}

// PauseSimulation stops a running simulation.
type PauseSimulation struct{}

// ReferenceItems binds a name to a list of designated items. A nil Items
// list releases the reference.
type ReferenceItems struct {
	Reference string              `json:"reference"`
	Items     []model.Designation `json:"items"`
}

// QueryInterval asks for recorded samples in [Interval[0], Interval[1]].
type QueryInterval struct {
	Interval           [2]model.TimeStamp `json:"interval"`
	Collapse           bool               `json:"collapse"`
	Items              *string            `json:"items"`
	ItemValuesEncoding *ValueEncoding     `json:"item_values_encoding"`
	Diagnostics        bool               `json:"diagnostics"`
}

func (ListScopes) clientMessage()          {}
func (ListItems) clientMessage()           {}
func (GetSimulationStatus) clientMessage() {}
func (RunSimulation) clientMessage()       {}
func (PauseSimulation) clientMessage()     {}
func (ReferenceItems) clientMessage()      {}
func (QueryInterval) clientMessage()       {}

// MessageType implements Message.
func (ListScopes) MessageType() MessageType { return TypeCommand }

// MessageType implements Message.
func (ListItems) MessageType() MessageType { return TypeCommand }

// MessageType implements Message.
func (GetSimulationStatus) MessageType() MessageType { return TypeCommand }

// MessageType implements Message.
func (RunSimulation) MessageType() MessageType { return TypeCommand }

// MessageType implements Message.
func (PauseSimulation) MessageType() MessageType { return TypeCommand }

// MessageType implements Message.
func (ReferenceItems) MessageType() MessageType { return TypeCommand }

// MessageType implements Message.
func (QueryInterval) MessageType() MessageType { return TypeCommand }

// CommandName implements Command.
func (ListScopes) CommandName() CommandName { return CmdListScopes }

// CommandName implements Command.
func (ListItems) CommandName() CommandName { return CmdListItems }

// CommandName implements Command.
func (GetSimulationStatus) CommandName() CommandName { return CmdGetSimulationStatus }

// CommandName implements Command.
func (RunSimulation) CommandName() CommandName { return CmdRunSimulation }

// CommandName implements Command.
func (PauseSimulation) CommandName() CommandName { return CmdPauseSimulation }

// CommandName implements Command.
func (ReferenceItems) CommandName() CommandName { return CmdReferenceItems }

// CommandName implements Command.
func (QueryInterval) CommandName() CommandName { return CmdQueryInterval }
