package types

import "strings"

// Quirks selects between the behaviours of historical CHIP-8
// interpreters. Each toggle is resolved once when the machine is
// created.
type Quirks struct {
	// ShiftUsesVY makes 8xy6/8xyE shift VY into VX. When false VX is
	// shifted in place.
	ShiftUsesVY bool
	// IncrementIndex leaves I pointing past the last register
	// stored or loaded by Fx55/Fx65.
	IncrementIndex bool
	// ResetVF clears VF after 8xy1, 8xy2 and 8xy3.
	ResetVF bool
	// DisplayWait holds Dxyn until the next 60Hz tick.
	DisplayWait bool
	// JumpUsesVX makes Bnnn jump to xnn + VX instead of nnn + V0.
	JumpUsesVX bool
	// ClipSprites clips sprites at the screen edge instead of wrapping
	// them around. The starting position always wraps.
	ClipSprites bool
	// ReleaseWait makes Fx0A complete when the key is released rather
	// than when it is pressed.
	ReleaseWait bool
}

// Variant is a named set of Quirks.
type Variant int

const (
	Modern Variant = iota // Modern - what most present day programs expect
	COSMAC                // COSMAC - the original COSMAC VIP interpreter
	SCHIP                 // SCHIP - SUPER-CHIP 1.1 on the HP48
)

var VariantNames = map[Variant]string{
	Modern: "modern",
	COSMAC: "cosmac",
	SCHIP:  "schip",
}

var variantQuirks = map[Variant]Quirks{
	Modern: {
		ShiftUsesVY:    true,
		IncrementIndex: true,
		ResetVF:        true,
	},
	COSMAC: {
		ShiftUsesVY:    true,
		IncrementIndex: true,
		ResetVF:        true,
		DisplayWait:    true,
		ClipSprites:    true,
	},
	SCHIP: {
		JumpUsesVX:  true,
		ClipSprites: true,
	},
}

// StringToVariant converts a string to a Variant, returning false if
// the name is unknown.
func StringToVariant(s string) (Variant, bool) {
	for v, n := range VariantNames {
		if n == strings.ToLower(s) {
			return v, true
		}
	}

	return Modern, false
}

func (v Variant) String() string {
	return VariantNames[v]
}

// Quirks returns the quirk set of the variant.
func (v Variant) Quirks() Quirks {
	return variantQuirks[v]
}

// DefaultQuirks returns the quirks of the Modern variant.
func DefaultQuirks() Quirks {
	return Modern.Quirks()
}
