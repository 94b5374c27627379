package driver

import (
	"fmt"
	"strings"
)

// Direction selects the source surface of a conversion.
type Direction uint8

const (
	// ToPlain converts LaTeX into plain text.
	ToPlain Direction = iota
	// ToLatex converts plain text into LaTeX.
	ToLatex
)

func (d Direction) String() string {
	if d == ToLatex {
		return "latex"
	}
	return "plain"
}

// ParseDirection accepts the target name: "plain" or "latex".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "plain", "text":
		return ToPlain, nil
	case "latex", "tex":
		return ToLatex, nil
	}
	return ToPlain, fmt.Errorf("unknown target %q (expected: plain|latex)", s)
}

// Normalization modes applied to the input before tokenizing.
const (
	NormalizeNone = ""
	NormalizeNFC  = "nfc"
)

// Config holds the per-conversion settings.
type Config struct {
	// MaxDepth bounds group nesting; 0 disables the check.
	MaxDepth int
	// Normalize is NormalizeNone or NormalizeNFC.
	Normalize string
	// MaxDiagnostics caps the bag of every conversion; 0 means unlimited.
	MaxDiagnostics int
}

// DefaultConfig returns the settings used when no configuration file exists.
func DefaultConfig() Config {
	return Config{
		MaxDepth:       256,
		Normalize:      NormalizeNone,
		MaxDiagnostics: 100,
	}
}

// Validate reports configuration errors.
func (c Config) Validate() error {
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must not be negative, got %d", c.MaxDepth)
	}
	switch c.Normalize {
	case NormalizeNone, NormalizeNFC:
	default:
		return fmt.Errorf("unknown normalize mode %q (expected: \"\" or %q)", c.Normalize, NormalizeNFC)
	}
	return nil
}

// fingerprint identifies the settings that change a conversion's output.
func (c Config) fingerprint() string {
	return fmt.Sprintf("depth=%d;norm=%s;diags=%d", c.MaxDepth, c.Normalize, c.MaxDiagnostics)
}
