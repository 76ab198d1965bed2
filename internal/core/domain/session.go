package domain

import "strings"

// SessionRecordKey is the fixed storage key of the persisted result.
const SessionRecordKey = "kavach_edited_file"

// ProcessedFile is the handle of a file the edit backend produced.
// It is all that is needed to download the result again later.
type ProcessedFile struct {
	FileName     string `json:"fileName"`
	OriginalName string `json:"originalName"`
}

// IsValid returns true if the record names a downloadable file.
func (p ProcessedFile) IsValid() bool {
	return BaseFileName(p.FileName) != ""
}

// BaseFileName strips any directory prefix, splitting on both slash styles.
// Only the trailing segment is a valid download parameter.
func BaseFileName(name string) string {
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSpace(name)
}

// SessionPhase is the stage of the editing session.
type SessionPhase string

// Session phases.
const (
	// PhaseEmpty means no document is open.
	PhaseEmpty SessionPhase = "empty"

	// PhaseEditing means a document is open and annotations may be placed.
	PhaseEditing SessionPhase = "editing"

	// PhaseResult means a save succeeded; the result can be downloaded.
	PhaseResult SessionPhase = "result"
)

// EditRequest is everything the edit backend needs to apply one save.
type EditRequest struct {
	SourcePath   string
	OriginalName string
	Instructions []EditInstruction
}

// ImagePayload is an image file read into memory for the image tool.
type ImagePayload struct {
	// DataURI is the encoded image, e.g. data:image/png;base64,....
	DataURI   string
	MediaType string

	// WidthPx and HeightPx are the decoded image size; zero when unknown.
	WidthPx  int
	HeightPx int
}

// AspectHeight returns the height matching width at the image's aspect ratio.
// Without known dimensions it returns width (a square).
func (p ImagePayload) AspectHeight(width int) int {
	if p.WidthPx <= 0 || p.HeightPx <= 0 {
		return width
	}
	h := (width*p.HeightPx + p.WidthPx/2) / p.WidthPx
	if h < 1 {
		h = 1
	}
	return h
}
