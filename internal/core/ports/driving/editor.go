package driving

import (
	"context"
	"io"

	"github.com/devkavach22/kavach-edit/internal/core/domain"
)

// EditorService runs one PDF editing session: page geometry, tool state,
// annotation placement, serialization, save and download.
//
// Every method is safe for concurrent use. All state is owned by the service;
// callers receive copies.
type EditorService interface {
	// Open starts a new session on the PDF at path, discarding all previous
	// state including the cached result. Page geometry is read eagerly when a
	// geometry source is configured.
	Open(ctx context.Context, path string) (*domain.DocumentInfo, error)

	// RecordPageGeometry stores the intrinsic size of a 1-based page.
	// Reports may arrive in any order; a later report overwrites an earlier one.
	RecordPageGeometry(page int, g domain.PageGeometry) error

	// Document returns the open document, or false when none is open.
	Document() (*domain.DocumentInfo, bool)

	// Geometry returns the recorded size of a 1-based page.
	Geometry(page int) (domain.PageGeometry, bool)

	// SelectTool applies the toggle rule and returns the resulting tool.
	SelectTool(tool domain.Tool) (domain.Tool, error)

	// Disarm returns to the idle tool and drops any pending image placement.
	Disarm()

	// ActiveTool returns the armed tool.
	ActiveTool() domain.Tool

	// ClickPage handles a click at (clickX, clickY) inside the page's on-screen box.
	// Returns the created annotation, or nil when nothing was created (idle
	// tool, or image tool waiting for a file).
	ClickPage(page int, clickX, clickY float64, box domain.BoundingBox) (*domain.Annotation, error)

	// Pending returns the image placement waiting for a file, if any.
	Pending() (*domain.PendingPlacement, bool)

	// SupplyImage loads the image at path and completes the pending placement.
	SupplyImage(ctx context.Context, path string) (*domain.Annotation, error)

	// SupplyImagePayload completes the pending placement with an already
	// encoded image.
	SupplyImagePayload(payload domain.ImagePayload) (*domain.Annotation, error)

	// CancelImage discards the pending placement and disarms the image tool.
	CancelImage()

	// UpdateAnnotation applies a patch in place and returns the result.
	UpdateAnnotation(id string, patch domain.AnnotationPatch) (*domain.Annotation, error)

	// UpdateContent replaces the text of a text or signature annotation.
	UpdateContent(id, content string) error

	// UpdateColor replaces the #RRGGBB colour of a text or signature annotation.
	UpdateColor(id, color string) error

	// Remove deletes an annotation.
	Remove(id string) error

	// Annotations returns all annotations in creation order.
	Annotations() []domain.Annotation

	// AnnotationsOnPage returns annotations on a 1-based page in creation order.
	AnnotationsOnPage(page int) []domain.Annotation

	// BuildInstructions serializes every annotation into absolute-coordinate
	// instructions. Fails as a whole if any page geometry is missing.
	BuildInstructions() ([]domain.EditInstruction, error)

	// Save sends the document and its instructions to the edit backend, caches
	// the result handle and closes the session.
	// Returns domain.ErrSaveInProgress if another save is running.
	Save(ctx context.Context) (*domain.ProcessedFile, error)

	// Download writes the last result into w.
	Download(ctx context.Context, w io.Writer) (*domain.ProcessedFile, error)

	// LastResult returns the result of this session or a previous one.
	// Returns domain.ErrNoResult when there is none.
	LastResult(ctx context.Context) (*domain.ProcessedFile, error)

	// Phase reports the session stage.
	Phase() domain.SessionPhase

	// Reset discards the document, annotations and cached result.
	Reset(ctx context.Context) error
}
