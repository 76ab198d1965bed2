package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// InstructionType is the wire name of an edit instruction.
type InstructionType string

// Instruction types understood by the renderer.
const (
	InstructionText  InstructionType = "text"
	InstructionImage InstructionType = "image"
)

// RGB is a colour with each channel normalised to [0, 1].
type RGB struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// Hex returns the colour as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", channelByte(c.R), channelByte(c.G), channelByte(c.B))
}

// EditInstruction is one placement the renderer applies to the source PDF.
// X and Y are absolute PDF points with a bottom-left origin.
// PageIndex is 0-based, unlike the rest of the system.
type EditInstruction struct {
	Type      InstructionType `json:"type"`
	PageIndex int             `json:"pageIndex"`
	X         int             `json:"x"`
	Y         int             `json:"y"`

	// Text fields.
	Value string  `json:"value,omitempty"`
	Size  float64 `json:"size,omitempty"`
	Color *RGB    `json:"color,omitempty"`

	// Image fields.
	Src    string `json:"src,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// ParseHexColor converts #RRGGBB (leading # optional, any case) into RGB.
func ParseHexColor(hex string) (RGB, error) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("%w: colour %q is not #RRGGBB", ErrInvalidInput, hex)
	}

	var channels [3]float64
	for i := range channels {
		v, err := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
		if err != nil {
			return RGB{}, fmt.Errorf("%w: colour %q is not #RRGGBB", ErrInvalidInput, hex)
		}
		channels[i] = float64(v) / 255
	}

	return RGB{R: channels[0], G: channels[1], B: channels[2]}, nil
}

func channelByte(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	default:
		return uint8(v*255 + 0.5)
	}
}
