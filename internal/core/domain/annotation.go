package domain

// AnnotationKind identifies what an annotation draws.
type AnnotationKind string

// Annotation kinds.
const (
	// AnnotationText is free text drawn in a plain face.
	AnnotationText AnnotationKind = "text"

	// AnnotationImage is an uploaded image drawn at a fixed display size.
	AnnotationImage AnnotationKind = "image"

	// AnnotationSignature is a text annotation presented in a script face.
	// It shares the text data shape and serializes as text.
	AnnotationSignature AnnotationKind = "signature"
)

// Defaults applied when an annotation is created.
const (
	DefaultTextPlaceholder      = "Type text here..."
	DefaultSignaturePlaceholder = "Sign Here"
	DefaultFontSize             = 20.0
	DefaultColor                = "#000000"
	DefaultImageDisplayWidth    = 120

	// FallbackText is serialized when a text annotation was emptied.
	FallbackText = "Text"
)

// IsValid returns true if the kind is recognised.
func (k AnnotationKind) IsValid() bool {
	switch k {
	case AnnotationText, AnnotationImage, AnnotationSignature:
		return true
	default:
		return false
	}
}

// IsTextual returns true for kinds that carry a content string.
func (k AnnotationKind) IsTextual() bool {
	return k == AnnotationText || k == AnnotationSignature
}

// String returns the string representation.
func (k AnnotationKind) String() string {
	return string(k)
}

// Annotation is a mark placed on one page of the open document.
//
// XPercent and YPercent locate the anchor within the rendered page box,
// measured from its top-left corner, each in [0, 100].
type Annotation struct {
	ID        string
	Kind      AnnotationKind
	PageIndex int // 1-based

	XPercent float64
	YPercent float64

	// Content is the literal string for text and signature annotations.
	Content string

	// ImageData is the encoded payload (a data URI) of an image annotation.
	ImageData string

	FontSize float64
	Color    string // #RRGGBB

	// DisplayWidth and DisplayHeight are the image size chosen at placement,
	// used both on screen and as the draw size in the instruction.
	DisplayWidth  int
	DisplayHeight int
}

// AnnotationPatch holds optional in-place changes to an annotation.
// Nil fields are left untouched.
type AnnotationPatch struct {
	Content  *string
	Color    *string
	FontSize *float64
	XPercent *float64
	YPercent *float64
}

// Apply returns a copy of a with the patch applied.
func (p AnnotationPatch) Apply(a Annotation) Annotation {
	if p.Content != nil {
		a.Content = *p.Content
	}
	if p.Color != nil {
		a.Color = *p.Color
	}
	if p.FontSize != nil {
		a.FontSize = *p.FontSize
	}
	if p.XPercent != nil {
		a.XPercent = ClampPercent(*p.XPercent)
	}
	if p.YPercent != nil {
		a.YPercent = ClampPercent(*p.YPercent)
	}
	return a
}

// IsEmpty returns true if the patch changes nothing.
func (p AnnotationPatch) IsEmpty() bool {
	return p.Content == nil && p.Color == nil && p.FontSize == nil &&
		p.XPercent == nil && p.YPercent == nil
}
