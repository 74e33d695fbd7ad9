package adapter

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	m "vhpidbg.dev/pkg/vhpidbg/internal/model"
)

var (
	// ErrUnknownScope is returned when a scope path does not resolve.
	ErrUnknownScope = errors.New("unknown scope")
	// ErrUnknownItem is returned when an item path does not resolve.
	ErrUnknownItem = errors.New("unknown item")
	// ErrInvalidRow is returned for a designation that does not fit its item.
	ErrInvalidRow = errors.New("invalid row designation")
)

const unknownSource = "<unknown>"

// Bridge answers design model queries against a Simulator. Every handle it
// obtains is released before the call returns, and calls are serialized so a
// single simulator can serve several sessions.
type Bridge struct {
	mu  sync.Mutex
	sim Simulator
}

// NewBridge wraps sim.
func NewBridge(sim Simulator) *Bridge {
	return &Bridge{sim: sim}
}

// ListScopes returns the root scope and the immediate children of scope.
// A nil scope lists the top-level instances. When the walk fails part way the
// scopes gathered so far are returned together with the error.
func (b *Bridge) ListScopes(scope *m.Path) (m.Scopes, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	w := &walk{sim: b.sim}
	scopes := m.Scopes{m.RootPath: m.RootScope()}

	parent := m.RootPath
	if scope != nil {
		parent = *scope
	}

	if parent.IsRoot() {
		root, err := b.sim.RootHandle()
		if err != nil {
			return scopes, fmt.Errorf("get root handle: %w", err)
		}

		if root.IsNull() {
			return scopes, nil
		}

		name, err := b.sim.StringProperty(root, StrName)
		if err != nil {
			w.fail(fmt.Errorf("read root name: %w", err))
		} else {
			scopes[m.Path(name)] = w.scope(root)
		}

		w.release(root)

		return scopes, w.err()
	}

	h, err := w.resolve(parent)
	if err != nil {
		return scopes, err
	}

	if h.IsNull() {
		return scopes, fmt.Errorf("%w: %q", ErrUnknownScope, parent)
	}

	children, err := b.sim.Iterate(RelInternalRegions, h)
	if err != nil {
		w.fail(fmt.Errorf("iterate %q: %w", parent, err))
	}

	for _, child := range children {
		name, err := b.sim.StringProperty(child, StrName)
		if err != nil {
			w.fail(fmt.Errorf("read child name of %q: %w", parent, err))
		} else {
			scopes[parent.Join(name)] = w.scope(child)
		}

		w.release(child)
	}

	w.release(h)

	return scopes, w.err()
}

// ListItems returns the items declared directly in scope, or every item of
// the design when scope is nil. A scope that does not resolve has no items.
func (b *Bridge) ListItems(scope *m.Path) (m.Items, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	w := &walk{sim: b.sim}
	items := m.Items{}

	if scope == nil {
		root, err := b.sim.RootHandle()
		if err != nil {
			return items, fmt.Errorf("get root handle: %w", err)
		}

		if root.IsNull() {
			return items, nil
		}

		name, err := b.sim.StringProperty(root, StrName)
		if err != nil {
			w.release(root)

			return items, errors.Join(fmt.Errorf("read root name: %w", err), w.err())
		}

		w.collectTree(root, m.Path(name), items)

		return items, w.err()
	}

	h, err := w.resolve(*scope)
	if err != nil {
		return items, err
	}

	if h.IsNull() {
		return items, nil
	}

	w.collectItems(h, *scope, items)
	w.release(h)

	return items, w.err()
}

// Describe validates designations and returns the value keys they expand to,
// each with the width used to encode it.
func (b *Bridge) Describe(designations []m.Designation) ([]m.ValueWidth, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	w := &walk{sim: b.sim}

	var out []m.ValueWidth

	for _, d := range designations {
		h, err := w.resolveItem(d.Path)
		if err != nil {
			return nil, err
		}

		widths, err := w.describe(h, d)
		w.release(h)

		if err != nil {
			return nil, err
		}

		out = append(out, widths...)
	}

	if err := w.err(); err != nil {
		return nil, err
	}

	return out, nil
}

// ReadValues reads the current value of every key. Keys that cannot be read
// are left out of the result and reported in the returned error.
func (b *Bridge) ReadValues(keys []m.ValueKey) (map[m.ValueKey][]uint32, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	w := &walk{sim: b.sim}
	values := make(map[m.ValueKey][]uint32, len(keys))

	byPath := make(map[m.Path][]int)
	order := make([]m.Path, 0)

	for _, key := range keys {
		if _, ok := byPath[key.Path]; !ok {
			order = append(order, key.Path)
		}

		byPath[key.Path] = append(byPath[key.Path], key.Row)
	}

	for _, path := range order {
		h, err := w.resolveItem(path)
		if err != nil {
			w.fail(err)

			continue
		}

		for _, row := range byPath[path] {
			value, err := b.sim.ReadValue(h, row)
			if err != nil {
				w.fail(fmt.Errorf("read %q row %d: %w", path, row, err))

				continue
			}

			values[m.ValueKey{Path: path, Row: row}] = value
		}

		w.release(h)
	}

	return values, w.err()
}

// Now returns the current simulation time.
func (b *Bridge) Now() m.TimeStamp {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.sim.Now()
}

// Control forwards a control command to the simulator.
func (b *Bridge) Control(cmd ControlCommand, until *m.TimeStamp) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.sim.Control(cmd, until); err != nil {
		return fmt.Errorf("control simulation: %w", err)
	}

	return nil
}

// RegisterCallback forwards a callback registration to the simulator. The
// registration handle is released immediately.
func (b *Bridge) RegisterCallback(reason CallbackReason, fn CallbackFunc) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	h, err := b.sim.RegisterCallback(reason, fn)
	if err != nil {
		return fmt.Errorf("register %s callback: %w", reason, err)
	}

	if h.IsNull() {
		return nil
	}

	if err := b.sim.ReleaseHandle(h); err != nil {
		return fmt.Errorf("release %s callback handle: %w", reason, err)
	}

	return nil
}

// Printf writes to the simulator console.
func (b *Bridge) Printf(format string, args ...any) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.sim.Printf(format, args...)
}

// walk accumulates the errors of one bridge call.
type walk struct {
	sim  Simulator
	errs []error
}

func (w *walk) fail(err error) {
	w.errs = append(w.errs, err)
}

func (w *walk) err() error {
	return errors.Join(w.errs...)
}

func (w *walk) release(h Handle) {
	if h.IsNull() {
		return
	}

	if err := w.sim.ReleaseHandle(h); err != nil {
		w.fail(fmt.Errorf("release handle: %w", err))
	}
}

// resolve walks a scope path down from the root instance. It returns
// NullHandle when some segment does not exist.
func (w *walk) resolve(path m.Path) (Handle, error) {
	segments := path.Segments()
	if len(segments) == 0 {
		return NullHandle, nil
	}

	root, err := w.sim.RootHandle()
	if err != nil {
		return NullHandle, fmt.Errorf("get root handle: %w", err)
	}

	if root.IsNull() {
		return NullHandle, nil
	}

	name, err := w.sim.StringProperty(root, StrName)
	if err != nil {
		w.release(root)

		return NullHandle, fmt.Errorf("read root name: %w", err)
	}

	if name != segments[0] {
		w.release(root)

		return NullHandle, nil
	}

	h := root
	for _, segment := range segments[1:] {
		child, err := w.sim.HandleByName(segment, h)
		w.release(h)

		if err != nil {
			return NullHandle, fmt.Errorf("look up %q in %q: %w", segment, path, err)
		}

		if child.IsNull() {
			return NullHandle, nil
		}

		h = child
	}

	return h, nil
}

func (w *walk) resolveItem(path m.Path) (Handle, error) {
	if path.Parent().IsRoot() {
		return NullHandle, fmt.Errorf("%w: %q", ErrUnknownItem, path)
	}

	scope, err := w.resolve(path.Parent())
	if err != nil {
		return NullHandle, err
	}

	if scope.IsNull() {
		return NullHandle, fmt.Errorf("%w: %q", ErrUnknownItem, path)
	}

	h, err := w.sim.HandleByName(path.Name(), scope)
	w.release(scope)

	if err != nil {
		return NullHandle, fmt.Errorf("look up item %q: %w", path, err)
	}

	if h.IsNull() {
		return NullHandle, fmt.Errorf("%w: %q", ErrUnknownItem, path)
	}

	kind, err := w.sim.IntProperty(h, IntKind)
	if err != nil || (ObjectKind(kind) != KindSignal && ObjectKind(kind) != KindMemory) {
		w.release(h)

		return NullHandle, fmt.Errorf("%w: %q is not a signal or memory", ErrUnknownItem, path)
	}

	return h, nil
}

func (w *walk) describe(h Handle, d m.Designation) ([]m.ValueWidth, error) {
	kind, err := w.sim.IntProperty(h, IntKind)
	if err != nil {
		return nil, fmt.Errorf("read kind of %q: %w", d.Path, err)
	}

	width, err := w.sim.IntProperty(h, IntSize)
	if err != nil {
		return nil, fmt.Errorf("read width of %q: %w", d.Path, err)
	}

	switch ObjectKind(kind) {
	case KindSignal:
		if d.HasRows {
			return nil, fmt.Errorf("%w: node %q has no rows", ErrInvalidRow, d.Path)
		}
	case KindMemory:
		if !d.HasRows {
			return nil, fmt.Errorf("%w: memory %q needs a row range", ErrInvalidRow, d.Path)
		}

		depth, err := w.sim.IntProperty(h, IntDepth)
		if err != nil {
			return nil, fmt.Errorf("read depth of %q: %w", d.Path, err)
		}

		if !inRange(d.First, depth) || !inRange(d.Last, depth) {
			return nil, fmt.Errorf("%w: rows %d..%d outside memory %q of depth %d",
				ErrInvalidRow, d.First, d.Last, d.Path, depth)
		}
	}

	keys := d.Keys()
	out := make([]m.ValueWidth, 0, len(keys))

	for _, key := range keys {
		out = append(out, m.ValueWidth{Key: key, Width: int(width)})
	}

	return out, nil
}

func inRange(row int, depth int64) bool {
	return row >= 0 && int64(row) < depth
}

func (w *walk) collectTree(h Handle, path m.Path, items m.Items) {
	w.collectItems(h, path, items)

	children, err := w.sim.Iterate(RelInternalRegions, h)
	if err != nil {
		w.fail(fmt.Errorf("iterate %q: %w", path, err))
	}

	w.release(h)

	for _, child := range children {
		name, err := w.sim.StringProperty(child, StrName)
		if err != nil {
			w.fail(fmt.Errorf("read child name of %q: %w", path, err))
			w.release(child)

			continue
		}

		w.collectTree(child, path.Join(name), items)
	}
}

func (w *walk) collectItems(h Handle, path m.Path, items m.Items) {
	signals, err := w.sim.Iterate(RelSigDecls, h)
	if err != nil {
		w.fail(fmt.Errorf("iterate signals of %q: %w", path, err))
	}

	for _, sig := range signals {
		w.addItem(sig, path, items, w.node)
	}

	memories, err := w.sim.Iterate(RelMemories, h)
	if err != nil {
		w.fail(fmt.Errorf("iterate memories of %q: %w", path, err))
	}

	for _, mem := range memories {
		w.addItem(mem, path, items, w.memory)
	}
}

func (w *walk) addItem(h Handle, scope m.Path, items m.Items, read func(Handle) (m.Item, error)) {
	defer w.release(h)

	name, err := w.sim.StringProperty(h, StrName)
	if err != nil {
		w.fail(fmt.Errorf("read item name in %q: %w", scope, err))

		return
	}

	path := scope.Join(name)

	item, err := read(h)
	if err != nil {
		w.fail(fmt.Errorf("read item %q: %w", path, err))

		return
	}

	if err := item.Validate(); err != nil {
		w.fail(fmt.Errorf("item %q: %w", path, err))

		return
	}

	items[path] = item
}

func (w *walk) node(h Handle) (m.Item, error) {
	width, err := w.sim.IntProperty(h, IntSize)
	if err != nil {
		return nil, fmt.Errorf("read width: %w", err)
	}

	dir := w.optInt(h, IntDirection)

	src := unknownSource
	if s := w.src(h, StrFileName, IntLineNo); s != nil {
		src = *s
	}

	return m.Node{
		Src:        src,
		Width:      int(width),
		LSBAt:      int(w.optInt(h, IntLSB)),
		Settable:   w.optInt(h, IntSettable) != 0,
		Input:      dir == DirIn || dir == DirInOut,
		Output:     dir == DirOut || dir == DirInOut,
		Attributes: m.Attributes{},
	}, nil
}

func (w *walk) memory(h Handle) (m.Item, error) {
	width, err := w.sim.IntProperty(h, IntSize)
	if err != nil {
		return nil, fmt.Errorf("read width: %w", err)
	}

	depth, err := w.sim.IntProperty(h, IntDepth)
	if err != nil {
		return nil, fmt.Errorf("read depth: %w", err)
	}

	return m.Memory{
		Src:        w.src(h, StrFileName, IntLineNo),
		Width:      int(width),
		LSBAt:      int(w.optInt(h, IntLSB)),
		Depth:      int(depth),
		ZeroAt:     int(w.optInt(h, IntZeroAt)),
		Settable:   w.optInt(h, IntSettable) != 0,
		Attributes: m.Attributes{},
	}, nil
}

func (w *walk) scope(h Handle) m.Scope {
	scope := m.RootScope()
	scope.Definition.Name = w.optString(h, StrDefName)
	scope.Definition.Src = w.src(h, StrDefFileName, IntDefLineNo)
	scope.Instantiation.Src = w.src(h, StrFileName, IntLineNo)

	return scope
}

// src formats "file:line", or just the file when no line is known.
func (w *walk) src(h Handle, file StrProperty, line IntProperty) *string {
	name := w.optString(h, file)
	if name == nil {
		return nil
	}

	n, err := w.sim.IntProperty(h, line)
	if err != nil || n <= 0 {
		return name
	}

	s := *name + ":" + strconv.FormatInt(n, 10)

	return &s
}

// optString reads a property that objects may legitimately lack. Missing
// and empty properties read as nil.
func (w *walk) optString(h Handle, prop StrProperty) *string {
	s, err := w.sim.StringProperty(h, prop)
	if err != nil {
		if !errors.Is(err, ErrNoProperty) {
			w.fail(fmt.Errorf("read string property %d: %w", prop, err))
		}

		return nil
	}

	return m.StringPtr(s)
}

func (w *walk) optInt(h Handle, prop IntProperty) int64 {
	n, err := w.sim.IntProperty(h, prop)
	if err != nil {
		if !errors.Is(err, ErrNoProperty) {
			w.fail(fmt.Errorf("read int property %d: %w", prop, err))
		}

		return 0
	}

	return n
}
