package adapter

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	m "vhpidbg.dev/pkg/vhpidbg/internal/model"
)

// DefaultStepFemtos is the time advanced per simulation step (1 ns).
const DefaultStepFemtos = 1_000_000

// Value generators for signals and memories.
const (
	GeneratorConst   = "const"
	GeneratorCounter = "counter"
	GeneratorClock   = "clock"
)

// Port directions accepted in design files.
const (
	DirectionInternal = "internal"
	DirectionIn       = "in"
	DirectionOut      = "out"
	DirectionInOut    = "inout"
)

// ErrInvalidDesign is returned for design files that fail validation.
var ErrInvalidDesign = errors.New("invalid design")

// Location is a source position.
type Location struct {
	File string `yaml:"file"`
	Line int    `yaml:"line"`
}

// SignalSpec declares a signal of a behavioral design.
type SignalSpec struct {
	Name      string   `yaml:"name"`
	Width     int      `yaml:"width"`
	LSB       int      `yaml:"lsb"`
	Direction string   `yaml:"direction"`
	Settable  bool     `yaml:"settable"`
	Src       Location `yaml:"src"`
	Generator string   `yaml:"generator"`
	Value     uint64   `yaml:"value"`
}

// MemorySpec declares a memory of a behavioral design.
type MemorySpec struct {
	Name      string   `yaml:"name"`
	Width     int      `yaml:"width"`
	LSB       int      `yaml:"lsb"`
	Depth     int      `yaml:"depth"`
	ZeroAt    int      `yaml:"zero_at"`
	Settable  bool     `yaml:"settable"`
	Src       Location `yaml:"src"`
	Generator string   `yaml:"generator"`
	Init      []uint64 `yaml:"init"`
}

// ScopeSpec declares an instance and everything below it.
type ScopeSpec struct {
	Name     string       `yaml:"name"`
	Unit     string       `yaml:"unit"`
	UnitSrc  Location     `yaml:"unit_src"`
	Src      Location     `yaml:"src"`
	Signals  []SignalSpec `yaml:"signals"`
	Memories []MemorySpec `yaml:"memories"`
	Scopes   []ScopeSpec  `yaml:"scopes"`
}

// DesignFile describes a design for the behavioral simulator.
type DesignFile struct {
	// Top is the root instance; nil means an empty design.
	Top *ScopeSpec `yaml:"top"`
	// StepFemtos is the time advanced per step.
	StepFemtos uint64 `yaml:"step_fs"`
	// Tick is the wall-clock delay between steps while running.
	Tick time.Duration `yaml:"tick"`
	// EndTime ends the simulation when reached; empty means never.
	EndTime string `yaml:"end_time"`
}

// LoadDesignFile reads and validates a YAML design file.
func LoadDesignFile(path string) (*DesignFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read design file %s: %w", path, err)
	}

	design, err := ParseDesign(data)
	if err != nil {
		return nil, fmt.Errorf("design file %s: %w", path, err)
	}

	return design, nil
}

// ParseDesign decodes and validates a YAML design.
func ParseDesign(data []byte) (*DesignFile, error) {
	design := &DesignFile{}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(design); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode design: %w", err)
	}

	if design.StepFemtos == 0 {
		design.StepFemtos = DefaultStepFemtos
	}

	if err := design.Validate(); err != nil {
		return nil, err
	}

	return design, nil
}

// End returns the parsed end time, or nil when the design runs forever.
func (d *DesignFile) End() (*m.TimeStamp, error) {
	if d.EndTime == "" {
		return nil, nil
	}

	end, err := m.ParseTimeStamp(d.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: end_time: %w", ErrInvalidDesign, err)
	}

	return &end, nil
}

// Validate checks names, shapes and generators throughout the hierarchy.
func (d *DesignFile) Validate() error {
	if _, err := d.End(); err != nil {
		return err
	}

	if d.Tick < 0 {
		return fmt.Errorf("%w: negative tick %s", ErrInvalidDesign, d.Tick)
	}

	if d.Top == nil {
		return nil
	}

	return d.Top.validate(m.RootPath)
}

func (s *ScopeSpec) validate(parent m.Path) error {
	if err := validateName(s.Name); err != nil {
		return fmt.Errorf("%w: scope under %q: %w", ErrInvalidDesign, parent, err)
	}

	path := parent.Join(s.Name)
	seen := make(map[string]struct{})

	claim := func(name string) error {
		if err := validateName(name); err != nil {
			return fmt.Errorf("%w: in %q: %w", ErrInvalidDesign, path, err)
		}

		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: duplicate name %q in %q", ErrInvalidDesign, name, path)
		}

		seen[name] = struct{}{}

		return nil
	}

	for _, sig := range s.Signals {
		if err := claim(sig.Name); err != nil {
			return err
		}

		if err := sig.validate(); err != nil {
			return fmt.Errorf("%w: signal %q: %w", ErrInvalidDesign, path.Join(sig.Name), err)
		}
	}

	for _, mem := range s.Memories {
		if err := claim(mem.Name); err != nil {
			return err
		}

		if err := mem.validate(); err != nil {
			return fmt.Errorf("%w: memory %q: %w", ErrInvalidDesign, path.Join(mem.Name), err)
		}
	}

	for i := range s.Scopes {
		if err := claim(s.Scopes[i].Name); err != nil {
			return err
		}

		if err := s.Scopes[i].validate(path); err != nil {
			return err
		}
	}

	return nil
}

func (s SignalSpec) validate() error {
	if s.Width <= 0 {
		return fmt.Errorf("width must be positive, got %d", s.Width)
	}

	switch s.Direction {
	case "", DirectionInternal, DirectionIn, DirectionOut, DirectionInOut:
	default:
		return fmt.Errorf("unknown direction %q", s.Direction)
	}

	switch s.Generator {
	case "", GeneratorConst, GeneratorCounter, GeneratorClock:
	default:
		return fmt.Errorf("unknown generator %q", s.Generator)
	}

	return nil
}

func (s MemorySpec) validate() error {
	if s.Width <= 0 {
		return fmt.Errorf("width must be positive, got %d", s.Width)
	}

	if s.Depth <= 0 {
		return fmt.Errorf("depth must be positive, got %d", s.Depth)
	}

	if len(s.Init) > s.Depth {
		return fmt.Errorf("%d initial rows exceed depth %d", len(s.Init), s.Depth)
	}

	switch s.Generator {
	case "", GeneratorConst, GeneratorCounter:
	default:
		return fmt.Errorf("unknown generator %q", s.Generator)
	}

	return nil
}

func validateName(name string) error {
	if name == "" {
		return errors.New("empty name")
	}

	if strings.Contains(name, m.PathSeparator) {
		return fmt.Errorf("name %q contains the path separator", name)
	}

	return nil
}

func (s SignalSpec) direction() int64 {
	switch s.Direction {
	case DirectionIn:
		return DirIn
	case DirectionOut:
		return DirOut
	case DirectionInOut:
		return DirInOut
	default:
		return DirInternal
	}
}
