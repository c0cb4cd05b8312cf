// Package compiler turns pattern documents into executable operation
// sequences. A pattern is a YAML document with an optional machine
// section overriding the default configuration and an ops list of
// operation descriptors. Needles are written in knitout notation
// ("f3", "bs12").
package compiler

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/loomcraft/vbed/pkg/machine"
)

// Pattern is a compiled pattern document, ready to run.
type Pattern struct {
	// Name is the pattern's display name, empty if the document has
	// none.
	Name string

	// Config is the machine configuration: defaults overlaid with the
	// document's machine section.
	Config machine.Config

	// Ops is the operation sequence in document order.
	Ops []machine.Operation
}

// patternDoc is the raw YAML shape before field decoding.
type patternDoc struct {
	Name    string           `yaml:"name"`
	Machine map[string]any   `yaml:"machine"`
	Ops     []map[string]any `yaml:"ops"`
}

// Parser converts raw pattern bytes into a Pattern.
type Parser struct{}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes a YAML pattern document.
func (p *Parser) Parse(data []byte) (*Pattern, error) {
	var doc patternDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse pattern: %w", err)
	}
	if len(doc.Ops) == 0 {
		return nil, fmt.Errorf("pattern has no ops")
	}

	cfg, err := DecodeConfig(doc.Machine)
	if err != nil {
		return nil, err
	}

	ops := make([]machine.Operation, 0, len(doc.Ops))
	for i, raw := range doc.Ops {
		op, err := DecodeOperation(raw)
		if err != nil {
			return nil, fmt.Errorf("op %d: %w", i, err)
		}
		ops = append(ops, op)
	}

	return &Pattern{Name: doc.Name, Config: cfg, Ops: ops}, nil
}

// DecodeConfig overlays a machine section onto the default
// configuration. A nil or empty section yields the defaults.
func DecodeConfig(raw map[string]any) (machine.Config, error) {
	cfg := machine.DefaultConfig()
	if len(raw) == 0 {
		return cfg, nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &cfg,
		ErrorUnused: true,
	})
	if err != nil {
		return cfg, err
	}
	if err := dec.Decode(raw); err != nil {
		return cfg, fmt.Errorf("invalid machine section: %w", err)
	}
	return cfg, nil
}

// DecodeOperation decodes one operation descriptor. Needle fields
// accept knitout strings, direction is "+" or "-".
func DecodeOperation(raw map[string]any) (machine.Operation, error) {
	var op machine.Operation
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &op,
		ErrorUnused: true,
		DecodeHook:  needleHook,
	})
	if err != nil {
		return op, err
	}
	if err := dec.Decode(raw); err != nil {
		return op, fmt.Errorf("invalid operation: %w", err)
	}
	if op.Kind == "" {
		return op, fmt.Errorf("operation missing op field")
	}
	return op, nil
}

var needleType = reflect.TypeOf(machine.Needle{})

// needleHook lets needle fields be written as knitout strings.
func needleHook(from, to reflect.Type, data any) (any, error) {
	if to != needleType || from.Kind() != reflect.String {
		return data, nil
	}
	return machine.ParseNeedle(data.(string))
}
