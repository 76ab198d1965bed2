package domain

// Tool is the placement tool armed for the next page click.
// The zero value is ToolNone (idle).
type Tool string

// Available tools.
const (
	// ToolNone means no tool is armed; page clicks are ignored.
	ToolNone Tool = ""

	// ToolText places a text annotation on click.
	ToolText Tool = "text"

	// ToolImage records a pending placement and waits for an image file.
	ToolImage Tool = "image"

	// ToolSignature places a signature annotation on click.
	ToolSignature Tool = "signature"
)

// AllTools returns every armable tool in tool bar order.
func AllTools() []Tool {
	return []Tool{ToolText, ToolImage, ToolSignature}
}

// IsValid returns true if the tool is recognised, including ToolNone.
func (t Tool) IsValid() bool {
	switch t {
	case ToolNone, ToolText, ToolImage, ToolSignature:
		return true
	default:
		return false
	}
}

// IsArmed returns true unless the tool is ToolNone.
func (t Tool) IsArmed() bool {
	return t != ToolNone
}

// Select returns the tool state after the user picks next while t is active.
// Picking the active tool again disarms it; picking another tool switches
// directly without passing through ToolNone.
func (t Tool) Select(next Tool) Tool {
	if next == t {
		return ToolNone
	}
	return next
}

// Kind returns the annotation kind a click with this tool produces.
// The boolean is false for ToolNone.
func (t Tool) Kind() (AnnotationKind, bool) {
	switch t {
	case ToolText:
		return AnnotationText, true
	case ToolImage:
		return AnnotationImage, true
	case ToolSignature:
		return AnnotationSignature, true
	default:
		return "", false
	}
}

// String returns the string representation.
func (t Tool) String() string {
	if t == ToolNone {
		return "none"
	}
	return string(t)
}

// ParseTool converts a user-supplied name into a Tool.
// "none" and the empty string both map to ToolNone.
func ParseTool(s string) (Tool, bool) {
	if s == "none" {
		return ToolNone, true
	}
	t := Tool(s)
	return t, t.IsValid()
}
