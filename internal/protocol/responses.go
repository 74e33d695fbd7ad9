package protocol

import "vhpidbg.dev/pkg/vhpidbg/internal/model"

// ListScopesResponse maps scope paths to scopes.
type ListScopesResponse struct {
	Scopes model.Scopes `json:"scopes"`
}

// ListItemsResponse maps item paths to items.
type ListItemsResponse struct {
	Items model.Items `json:"items"`
}

// GetSimulationStatusResponse carries the status snapshot.
type GetSimulationStatusResponse struct {
	model.SimulationStatus
}

// RunSimulationResponse acknowledges a run request. Completion is signalled
// by an event.
type RunSimulationResponse struct{}

// PauseSimulationResponse reports the time at which the simulation stopped.
type PauseSimulationResponse struct {
	Time model.TimeStamp `json:"time"`
}

// ReferenceItemsResponse acknowledges a reference update.
type ReferenceItemsResponse struct{}

// SampleRecord is one sample of a query_interval response.
type SampleRecord struct {
	Time       model.TimeStamp `json:"time"`
	ItemValues *string         `json:"item_values,omitempty"`
}

// QueryIntervalResponse carries the samples of the requested window.
type QueryIntervalResponse struct {
	Samples []SampleRecord `json:"samples"`
}

func (ListScopesResponse) serverMessage()          {}
func (ListItemsResponse) serverMessage()           {}
func (GetSimulationStatusResponse) serverMessage() {}
func (RunSimulationResponse) serverMessage()       {}
func (PauseSimulationResponse) serverMessage()     {}
func (ReferenceItemsResponse) serverMessage()      {}
func (QueryIntervalResponse) serverMessage()       {}

// MessageType implements Message.
func (ListScopesResponse) MessageType() MessageType { return TypeResponse }

// MessageType implements Message.
func (ListItemsResponse) MessageType() MessageType { return TypeResponse }

// MessageType implements Message.
func (GetSimulationStatusResponse) MessageType() MessageType { return TypeResponse }

// MessageType implements Message.
func (RunSimulationResponse) MessageType() MessageType { return TypeResponse }

// MessageType implements Message.
func (PauseSimulationResponse) MessageType() MessageType { return TypeResponse }

// MessageType implements Message.
func (ReferenceItemsResponse) MessageType() MessageType { return TypeResponse }

// MessageType implements Message.
func (QueryIntervalResponse) MessageType() MessageType { return TypeResponse }

// CommandName implements Response.
func (ListScopesResponse) CommandName() CommandName { return CmdListScopes }

// CommandName implements Response.
func (ListItemsResponse) CommandName() CommandName { return CmdListItems }

// CommandName implements Response.
func (GetSimulationStatusResponse) CommandName() CommandName { return CmdGetSimulationStatus }

// CommandName implements Response.
func (RunSimulationResponse) CommandName() CommandName { return CmdRunSimulation }

// CommandName implements Response.
func (PauseSimulationResponse) CommandName() CommandName { return CmdPauseSimulation }

// CommandName implements Response.
func (ReferenceItemsResponse) CommandName() CommandName { return CmdReferenceItems }

// CommandName implements Response.
func (QueryIntervalResponse) CommandName() CommandName { return CmdQueryInterval }
