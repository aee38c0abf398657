package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Options are the driver-facing knobs of the middle-end, read from an
// optional futhark.yaml next to the compiled program.
type Options struct {
	// EntryPoints restricts which entry bindings are kept. Empty means
	// every binding marked entry in the source.
	EntryPoints []string `yaml:"entry_points,omitempty"`

	// Werror promotes accumulated warnings to a fatal error after an
	// otherwise successful run.
	Werror bool `yaml:"werror,omitempty"`

	// SafeOnly rejects programs whose entry signatures are not first
	// order.
	SafeOnly bool `yaml:"safe_only,omitempty"`
}

func DefaultOptions() *Options {
	return &Options{}
}

// LoadOptions reads and parses an options file.
func LoadOptions(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading options %s: %w", path, err)
	}
	return ParseOptions(data, path)
}

// ParseOptions parses options file content. The path argument is used only
// for error messages. Unknown fields are rejected so a typoed knob fails
// loudly instead of being ignored.
func ParseOptions(data []byte, path string) (*Options, error) {
	var opts Options
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&opts); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &opts, nil
}

// WantsEntry reports whether the named binding should be treated as an entry
// point under these options.
func (o *Options) WantsEntry(name string) bool {
	if len(o.EntryPoints) == 0 {
		return true
	}
	for _, e := range o.EntryPoints {
		if e == name {
			return true
		}
	}
	return false
}
