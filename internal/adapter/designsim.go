package adapter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	m "vhpidbg.dev/pkg/vhpidbg/internal/model"
)

// ErrAlreadyStarted is returned when a DesignSimulator is run twice.
var ErrAlreadyStarted = errors.New("simulation already started")

type object struct {
	kind     ObjectKind
	name     string
	scope    *ScopeSpec
	signal   *SignalSpec
	memory   *MemorySpec
	children []*object
	signals  []*object
	memories []*object
}

func newScopeObject(spec *ScopeSpec) *object {
	obj := &object{kind: KindInstance, name: spec.Name, scope: spec}

	for i := range spec.Signals {
		obj.signals = append(obj.signals, &object{kind: KindSignal, name: spec.Signals[i].Name, signal: &spec.Signals[i]})
	}

	for i := range spec.Memories {
		obj.memories = append(obj.memories, &object{kind: KindMemory, name: spec.Memories[i].Name, memory: &spec.Memories[i]})
	}

	for i := range spec.Scopes {
		obj.children = append(obj.children, newScopeObject(&spec.Scopes[i]))
	}

	return obj
}

func (o *object) lookup(name string) *object {
	for _, group := range [][]*object{o.children, o.signals, o.memories} {
		for _, child := range group {
			if child.name == name {
				return child
			}
		}
	}

	return nil
}

// DesignSimulator is a behavioral Simulator driven by a DesignFile. Signals
// and memories follow simple generators, and time advances by a fixed step
// whenever the simulation runs.
type DesignSimulator struct {
	mu   sync.Mutex
	cond *sync.Cond

	root    *object
	step    uint64
	tick    time.Duration
	end     *m.TimeStamp
	console io.Writer

	handles   map[Handle]*object
	next      Handle
	callbacks map[CallbackReason][]CallbackFunc

	now      m.TimeStamp
	steps    uint64
	started  bool
	running  bool
	ending   bool
	finished bool
	until    *m.TimeStamp
}

// NewDesignSimulator builds a simulator for design. Console output from
// Printf goes to console.
func NewDesignSimulator(design *DesignFile, console io.Writer) (*DesignSimulator, error) {
	end, err := design.End()
	if err != nil {
		return nil, err
	}

	s := &DesignSimulator{
		step:      design.StepFemtos,
		tick:      design.Tick,
		end:       end,
		console:   console,
		handles:   make(map[Handle]*object),
		next:      NullHandle + 1,
		callbacks: make(map[CallbackReason][]CallbackFunc),
	}
	s.cond = sync.NewCond(&s.mu)

	if s.step == 0 {
		s.step = DefaultStepFemtos
	}

	if design.Top != nil {
		s.root = newScopeObject(design.Top)
	}

	return s, nil
}

// Run starts the simulation and steps it while it is running. It returns
// when the simulation ends or ctx is cancelled.
func (s *DesignSimulator) Run(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()

		return ErrAlreadyStarted
	}

	s.started = true
	s.mu.Unlock()

	slog.Debug("Design simulation started")
	s.fire(CbStartOfSimulation, s.Now())

	stop := context.AfterFunc(ctx, func() {
		s.mu.Lock()
		s.cond.Broadcast()
		s.mu.Unlock()
	})
	defer stop()

	for {
		reason, at, ok := s.advance(ctx)
		if !ok {
			slog.Debug("Design simulation cancelled", "time", at)

			return ctx.Err()
		}

		s.fire(reason, at)

		if reason == CbEndOfSimulation {
			slog.Debug("Design simulation finished", "time", at)

			return nil
		}

		if reason == CbNextTimeStep && s.tick > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.tick):
			}
		}
	}
}

// advance blocks until there is something to do and performs one step.
func (s *DesignSimulator) advance(ctx context.Context) (CallbackReason, m.TimeStamp, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for !s.running && !s.ending && ctx.Err() == nil {
		s.cond.Wait()
	}

	if ctx.Err() != nil {
		return 0, s.now, false
	}

	if s.ending || (s.end != nil && !s.now.Before(*s.end)) {
		s.running = false
		s.finished = true

		return CbEndOfSimulation, s.now, true
	}

	if s.until != nil && !s.now.Before(*s.until) {
		s.running = false
		s.until = nil

		return CbStopped, s.now, true
	}

	next := s.now.Add(s.step)
	if s.until != nil && next.After(*s.until) {
		next = *s.until
	}

	if s.end != nil && next.After(*s.end) {
		next = *s.end
	}

	s.now = next
	s.steps++

	return CbNextTimeStep, s.now, true
}

func (s *DesignSimulator) fire(reason CallbackReason, at m.TimeStamp) {
	s.mu.Lock()
	fns := append([]CallbackFunc(nil), s.callbacks[reason]...)
	s.mu.Unlock()

	for _, fn := range fns {
		fn(CallbackData{Reason: reason, Time: at})
	}
}

// OpenHandles returns the number of handles not yet released. Callback
// registration handles are included.
func (s *DesignSimulator) OpenHandles() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.handles)
}

func (s *DesignSimulator) acquire(obj *object) Handle {
	h := s.next
	s.next++
	s.handles[h] = obj

	return h
}

func (s *DesignSimulator) get(h Handle) (*object, error) {
	obj, ok := s.handles[h]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrInvalidHandle, h)
	}

	return obj, nil
}

// RegisterCallback implements Simulator.
func (s *DesignSimulator) RegisterCallback(reason CallbackReason, fn CallbackFunc) (Handle, error) {
	if fn == nil {
		return NullHandle, errors.New("nil callback")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.callbacks[reason] = append(s.callbacks[reason], fn)

	return s.acquire(&object{}), nil
}

// RootHandle implements Simulator.
func (s *DesignSimulator) RootHandle() (Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.root == nil {
		return NullHandle, nil
	}

	return s.acquire(s.root), nil
}

// HandleByName implements Simulator.
func (s *DesignSimulator) HandleByName(name string, scope Handle) (Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj, err := s.get(scope)
	if err != nil {
		return NullHandle, err
	}

	child := obj.lookup(name)
	if child == nil {
		return NullHandle, nil
	}

	return s.acquire(child), nil
}

// Iterate implements Simulator.
func (s *DesignSimulator) Iterate(rel Relation, h Handle) ([]Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj, err := s.get(h)
	if err != nil {
		return nil, err
	}

	var group []*object

	switch rel {
	case RelInternalRegions:
		group = obj.children
	case RelSigDecls:
		group = obj.signals
	case RelMemories:
		group = obj.memories
	default:
		return nil, fmt.Errorf("unknown relation %d", rel)
	}

	handles := make([]Handle, 0, len(group))
	for _, child := range group {
		handles = append(handles, s.acquire(child))
	}

	return handles, nil
}

// StringProperty implements Simulator.
func (s *DesignSimulator) StringProperty(h Handle, prop StrProperty) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj, err := s.get(h)
	if err != nil {
		return "", err
	}

	var value string

	switch prop {
	case StrName, StrFullName:
		value = obj.name
	case StrDefName:
		if obj.scope != nil {
			value = obj.scope.Unit
		}
	case StrFileName:
		value = obj.location().File
	case StrDefFileName:
		if obj.scope != nil {
			value = obj.scope.UnitSrc.File
		}
	}

	if value == "" {
		return "", ErrNoProperty
	}

	return value, nil
}

// IntProperty implements Simulator.
func (s *DesignSimulator) IntProperty(h Handle, prop IntProperty) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj, err := s.get(h)
	if err != nil {
		return 0, err
	}

	if prop == IntKind {
		return int64(obj.kind), nil
	}

	switch {
	case obj.signal != nil:
		sig := obj.signal

		switch prop {
		case IntSize:
			return int64(sig.Width), nil
		case IntLSB:
			return int64(sig.LSB), nil
		case IntDirection:
			return sig.direction(), nil
		case IntSettable:
			return boolInt(sig.Settable), nil
		case IntLineNo:
			return int64(sig.Src.Line), nil
		}
	case obj.memory != nil:
		mem := obj.memory

		switch prop {
		case IntSize:
			return int64(mem.Width), nil
		case IntLSB:
			return int64(mem.LSB), nil
		case IntDepth:
			return int64(mem.Depth), nil
		case IntZeroAt:
			return int64(mem.ZeroAt), nil
		case IntSettable:
			return boolInt(mem.Settable), nil
		case IntLineNo:
			return int64(mem.Src.Line), nil
		}
	case obj.scope != nil:
		switch prop {
		case IntLineNo:
			return int64(obj.scope.Src.Line), nil
		case IntDefLineNo:
			return int64(obj.scope.UnitSrc.Line), nil
		}
	}

	return 0, ErrNoProperty
}

// ReadValue implements Simulator.
func (s *DesignSimulator) ReadValue(h Handle, row int) ([]uint32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj, err := s.get(h)
	if err != nil {
		return nil, err
	}

	switch {
	case obj.signal != nil:
		return chunks(s.signalValue(obj.signal), obj.signal.Width), nil
	case obj.memory != nil:
		mem := obj.memory
		if row < 0 || row >= mem.Depth {
			return nil, fmt.Errorf("row %d outside memory %q of depth %d", row, obj.name, mem.Depth)
		}

		return chunks(s.memoryValue(mem, row), mem.Width), nil
	default:
		return nil, fmt.Errorf("%q has no value", obj.name)
	}
}

func (s *DesignSimulator) signalValue(sig *SignalSpec) uint64 {
	switch sig.Generator {
	case GeneratorCounter:
		return sig.Value + s.steps
	case GeneratorClock:
		return (sig.Value + s.steps) & 1
	default:
		return sig.Value
	}
}

func (s *DesignSimulator) memoryValue(mem *MemorySpec, row int) uint64 {
	var value uint64
	if row < len(mem.Init) {
		value = mem.Init[row]
	}

	if mem.Generator == GeneratorCounter {
		value += s.steps
	}

	return value
}

// ReleaseHandle implements Simulator.
func (s *DesignSimulator) ReleaseHandle(h Handle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.get(h); err != nil {
		return err
	}

	delete(s.handles, h)

	return nil
}

// CompareHandles implements Simulator.
func (s *DesignSimulator) CompareHandles(a, b Handle) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	objA, errA := s.get(a)
	objB, errB := s.get(b)

	return errA == nil && errB == nil && objA == objB
}

// Now implements Simulator.
func (s *DesignSimulator) Now() m.TimeStamp {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.now
}

// Control implements Simulator. It never waits for the stepping loop.
func (s *DesignSimulator) Control(cmd ControlCommand, until *m.TimeStamp) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finished {
		return ErrFinished
	}

	switch cmd {
	case ControlRun:
		s.running = true
		s.until = nil

		if until != nil {
			bound := *until
			s.until = &bound
		}
	case ControlStop:
		s.running = false
		s.until = nil
	case ControlFinish:
		s.ending = true
	default:
		return fmt.Errorf("unknown control command %d", cmd)
	}

	s.cond.Broadcast()

	return nil
}

// Printf implements Simulator.
func (s *DesignSimulator) Printf(format string, args ...any) {
	if s.console == nil {
		return
	}

	fmt.Fprintf(s.console, format+"\n", args...)
}

func (o *object) location() Location {
	switch {
	case o.signal != nil:
		return o.signal.Src
	case o.memory != nil:
		return o.memory.Src
	case o.scope != nil:
		return o.scope.Src
	default:
		return Location{}
	}
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}

	return 0
}

// chunks splits value into the little-endian words of a width-bit value.
func chunks(value uint64, width int) []uint32 {
	out := make([]uint32, m.ChunkCount(width))
	if len(out) > 0 {
		out[0] = uint32(value)
	}

	if len(out) > 1 {
		out[1] = uint32(value >> 32)
	}

	if rem := width % 32; rem != 0 {
		out[len(out)-1] &= (uint32(1) << rem) - 1
	}

	return out
}
