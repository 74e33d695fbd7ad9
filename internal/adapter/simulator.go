// Package adapter contains the simulator-facing and client-facing adapters of
// the debug server: the simulator capability surface, the bridge that turns
// handle walks into design model values, storage for recorded samples and
// the protocol client used by the inspect command.
package adapter

import (
	"errors"

	m "vhpidbg.dev/pkg/vhpidbg/internal/model"
)

// Handle is an opaque reference to a simulator object. The zero Handle is
// the null handle.
type Handle uint64

// NullHandle refers to nothing.
const NullHandle Handle = 0

// IsNull reports whether h is the null handle.
func (h Handle) IsNull() bool { return h == NullHandle }

// CallbackReason identifies the simulator event a callback is registered for.
type CallbackReason int

const (
	// CbStartOfSimulation fires once, before time advances.
	CbStartOfSimulation CallbackReason = iota + 1
	// CbEndOfSimulation fires once, when the simulation can no longer advance.
	CbEndOfSimulation
	// CbNextTimeStep fires after every time advance.
	CbNextTimeStep
	// CbStopped fires when a bounded run reaches its until time.
	CbStopped
)

func (r CallbackReason) String() string {
	switch r {
	case CbStartOfSimulation:
		return "start_of_simulation"
	case CbEndOfSimulation:
		return "end_of_simulation"
	case CbNextTimeStep:
		return "next_time_step"
	case CbStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// CallbackData is passed to a callback when it fires.
type CallbackData struct {
	Reason CallbackReason
	Time   m.TimeStamp
}

// CallbackFunc handles a simulator callback. It runs on the simulator's
// execution context and must not call Control.
type CallbackFunc func(data CallbackData)

// ObjectKind classifies the object behind a handle.
type ObjectKind int64

const (
	// KindInstance is a design unit instance (a scope).
	KindInstance ObjectKind = iota + 1
	// KindSignal is a signal, port or register.
	KindSignal
	// KindMemory is an array of rows.
	KindMemory
)

// Direction of a port, as reported by IntDirection.
const (
	DirInternal int64 = iota
	DirIn
	DirOut
	DirInOut
)

// StrProperty names a string-valued property.
type StrProperty int

const (
	// StrName is the simple name of the object.
	StrName StrProperty = iota + 1
	// StrFullName is the hierarchical name of the object.
	StrFullName
	// StrDefName is the name of the declared unit an instance elaborates.
	StrDefName
	// StrFileName is the file the object is instantiated or declared in.
	StrFileName
	// StrDefFileName is the file the unit of an instance is declared in.
	StrDefFileName
)

// IntProperty names an integer-valued property.
type IntProperty int

const (
	// IntKind reports an ObjectKind.
	IntKind IntProperty = iota + 1
	// IntSize is the bit width of a signal or memory row.
	IntSize
	// IntLSB is the index of the least significant bit.
	IntLSB
	// IntDepth is the number of memory rows.
	IntDepth
	// IntZeroAt is the index the first memory row is addressed as.
	IntZeroAt
	// IntDirection reports one of the Dir constants.
	IntDirection
	// IntSettable is 1 when the value may be forced.
	IntSettable
	// IntLineNo is the line matching StrFileName.
	IntLineNo
	// IntDefLineNo is the line matching StrDefFileName.
	IntDefLineNo
)

// Relation selects what Iterate walks.
type Relation int

const (
	// RelInternalRegions yields the child instances of an instance.
	RelInternalRegions Relation = iota + 1
	// RelSigDecls yields the signals declared in an instance.
	RelSigDecls
	// RelMemories yields the memories declared in an instance.
	RelMemories
)

// ControlCommand drives the simulation.
type ControlCommand int

const (
	// ControlRun resumes the simulation, optionally until a time bound.
	ControlRun ControlCommand = iota + 1
	// ControlStop halts the simulation at the current time.
	ControlStop
	// ControlFinish ends the simulation.
	ControlFinish
)

var (
	// ErrNoProperty is returned when an object does not carry a property.
	ErrNoProperty = errors.New("property not available")
	// ErrInvalidHandle is returned for null, released or unknown handles.
	ErrInvalidHandle = errors.New("invalid handle")
	// ErrFinished is returned when controlling a finished simulation.
	ErrFinished = errors.New("simulation finished")
)

// Simulator is the capability surface of the host simulator. Every handle
// returned by it must be released with ReleaseHandle.
//
//nolint:interfacebloat // Mirrors the host simulator API one call per method.
type Simulator interface {
	// RegisterCallback arranges for fn to run whenever reason occurs.
	RegisterCallback(reason CallbackReason, fn CallbackFunc) (Handle, error)

	// RootHandle returns the root instance, or NullHandle for an empty design.
	RootHandle() (Handle, error)

	// HandleByName looks up a direct child of scope by simple name. It
	// returns NullHandle when no such child exists.
	HandleByName(name string, scope Handle) (Handle, error)

	// Iterate returns the objects related to h.
	Iterate(rel Relation, h Handle) ([]Handle, error)

	// StringProperty reads a string property.
	StringProperty(h Handle, prop StrProperty) (string, error)

	// IntProperty reads an integer property.
	IntProperty(h Handle, prop IntProperty) (int64, error)

	// ReadValue returns the current value of a signal, or of one memory row,
	// as little-endian 32-bit chunks. row is ignored for signals.
	ReadValue(h Handle, row int) ([]uint32, error)

	// ReleaseHandle frees a handle.
	ReleaseHandle(h Handle) error

	// CompareHandles reports whether two handles refer to the same object.
	CompareHandles(a, b Handle) bool

	// Now returns the current simulation time.
	Now() m.TimeStamp

	// Control drives the simulation. until is only used by ControlRun.
	Control(cmd ControlCommand, until *m.TimeStamp) error

	// Printf writes to the simulator console.
	Printf(format string, args ...any)
}
