package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/devkavach22/kavach-edit/internal/core/domain"
	"github.com/devkavach22/kavach-edit/internal/core/ports/driven"
	"github.com/devkavach22/kavach-edit/internal/core/ports/driving"
	"github.com/devkavach22/kavach-edit/internal/logger"
)

// Ensure EditorService implements the interface.
var _ driving.EditorService = (*EditorService)(nil)

// EditorService owns one editing session. Every read and write of the
// registry, store and placement state goes through mu; the backend round
// trip of a save runs outside the lock on a snapshot.
type EditorService struct {
	backend  driven.EditBackend
	cache    driven.SessionResultCache
	geometry driven.PageGeometrySource
	images   driven.ImageLoader

	mu         sync.Mutex
	registry   *PageGeometryRegistry
	store      *AnnotationStore
	placement  *PlacementController
	document   *domain.DocumentInfo
	result     *domain.ProcessedFile
	generation uint64

	saving atomic.Bool
}

// NewEditorService creates a new editor service.
// geometry and images are optional; without geometry, page sizes must be
// reported through RecordPageGeometry.
func NewEditorService(
	backend driven.EditBackend,
	cache driven.SessionResultCache,
	geometry driven.PageGeometrySource,
	images driven.ImageLoader,
	newID func() string,
	defaults PlacementDefaults,
) *EditorService {
	store := NewAnnotationStore()
	return &EditorService{
		backend:   backend,
		cache:     cache,
		geometry:  geometry,
		images:    images,
		registry:  NewPageGeometryRegistry(),
		store:     store,
		placement: NewPlacementController(store, newID, defaults),
	}
}

// SetDefaults replaces the defaults used for future annotations.
func (s *EditorService) SetDefaults(d PlacementDefaults) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.placement.SetDefaults(d)
}

// Open starts a new session on the PDF at path.
func (s *EditorService) Open(ctx context.Context, path string) (*domain.DocumentInfo, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", domain.ErrInvalidInput)
	}

	var pages []domain.PageGeometry
	if s.geometry != nil {
		var err error
		pages, err = s.geometry.PageGeometry(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("read page geometry: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Cleared under mu so an in-flight save cannot write its result back.
	if s.cache != nil {
		if err := s.cache.Clear(ctx); err != nil {
			logger.Warn("clear session result: %v", err)
		}
	}
	s.resetLocked()
	for i, g := range pages {
		if err := s.registry.Record(i+1, g); err != nil {
			logger.Warn("skip page %d geometry: %v", i+1, err)
		}
	}
	s.document = &domain.DocumentInfo{
		Path:      path,
		Name:      filepath.Base(path),
		PageCount: len(pages),
	}

	logger.Debug("opened %s (%d pages)", path, len(pages))
	doc := *s.document
	return &doc, nil
}

// RecordPageGeometry stores the intrinsic size of a 1-based page.
func (s *EditorService) RecordPageGeometry(page int, g domain.PageGeometry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.document == nil {
		return domain.ErrNoDocument
	}
	if err := s.registry.Record(page, g); err != nil {
		return err
	}
	if page > s.document.PageCount {
		s.document.PageCount = page
	}
	return nil
}

// Document returns the open document.
func (s *EditorService) Document() (*domain.DocumentInfo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.document == nil {
		return nil, false
	}
	doc := *s.document
	return &doc, true
}

// Geometry returns the recorded size of a 1-based page.
func (s *EditorService) Geometry(page int) (domain.PageGeometry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.Get(page)
}

// SelectTool applies the toggle rule and returns the resulting tool.
func (s *EditorService) SelectTool(tool domain.Tool) (domain.Tool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.editableLocked(); err != nil {
		return s.placement.Tool(), err
	}
	return s.placement.Select(tool)
}

// Disarm returns to the idle tool.
func (s *EditorService) Disarm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.placement.Disarm()
}

// ActiveTool returns the armed tool.
func (s *EditorService) ActiveTool() domain.Tool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.placement.Tool()
}

// ClickPage handles a click inside a page's on-screen box.
func (s *EditorService) ClickPage(page int, clickX, clickY float64, box domain.BoundingBox) (*domain.Annotation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.editableLocked(); err != nil {
		return nil, err
	}
	if s.document.PageCount > 0 && page > s.document.PageCount {
		return nil, fmt.Errorf("%w: page %d of %d", domain.ErrInvalidInput, page, s.document.PageCount)
	}
	return s.placement.Click(page, clickX, clickY, box)
}

// Pending returns the image placement waiting for a file.
func (s *EditorService) Pending() (*domain.PendingPlacement, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.placement.Pending()
	if !ok {
		return nil, false
	}
	return &p, true
}

// SupplyImage loads the image at path and completes the pending placement.
func (s *EditorService) SupplyImage(ctx context.Context, path string) (*domain.Annotation, error) {
	if _, ok := s.Pending(); !ok {
		return nil, domain.ErrNoPendingPlacement
	}
	if s.images == nil {
		return nil, fmt.Errorf("load image: image loader not configured")
	}

	payload, err := s.images.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load image: %w", err)
	}
	return s.SupplyImagePayload(payload)
}

// SupplyImagePayload completes the pending placement with an encoded image.
func (s *EditorService) SupplyImagePayload(payload domain.ImagePayload) (*domain.Annotation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.editableLocked(); err != nil {
		return nil, err
	}
	return s.placement.SupplyImage(payload)
}

// CancelImage discards the pending placement.
func (s *EditorService) CancelImage() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.placement.CancelImage()
}

// UpdateAnnotation applies a patch in place.
func (s *EditorService) UpdateAnnotation(id string, patch domain.AnnotationPatch) (*domain.Annotation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.editableLocked(); err != nil {
		return nil, err
	}

	current, ok := s.store.Get(id)
	if !ok {
		return nil, fmt.Errorf("annotation %s: %w", id, domain.ErrNotFound)
	}
	if (patch.Content != nil || patch.Color != nil || patch.FontSize != nil) && !current.Kind.IsTextual() {
		return nil, fmt.Errorf("%w: %s annotation has no text", domain.ErrInvalidInput, current.Kind)
	}
	if patch.Color != nil {
		if _, err := domain.ParseHexColor(*patch.Color); err != nil {
			return nil, err
		}
	}
	if patch.FontSize != nil && *patch.FontSize <= 0 {
		return nil, fmt.Errorf("%w: font size must be positive", domain.ErrInvalidInput)
	}

	updated, err := s.store.Update(id, patch)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// UpdateContent replaces the text of an annotation.
func (s *EditorService) UpdateContent(id, content string) error {
	_, err := s.UpdateAnnotation(id, domain.AnnotationPatch{Content: &content})
	return err
}

// UpdateColor replaces the colour of an annotation.
func (s *EditorService) UpdateColor(id, color string) error {
	_, err := s.UpdateAnnotation(id, domain.AnnotationPatch{Color: &color})
	return err
}

// Remove deletes an annotation.
func (s *EditorService) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.editableLocked(); err != nil {
		return err
	}
	return s.store.Remove(id)
}

// Annotations returns all annotations in creation order.
func (s *EditorService) Annotations() []domain.Annotation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.All()
}

// AnnotationsOnPage returns the annotations of one page.
func (s *EditorService) AnnotationsOnPage(page int) []domain.Annotation {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.Annotation
	for a := range s.store.ByPage(page) {
		out = append(out, a)
	}
	return out
}

// BuildInstructions serializes every annotation.
func (s *EditorService) BuildInstructions() ([]domain.EditInstruction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.document == nil {
		return nil, domain.ErrNoDocument
	}
	return BuildInstructions(s.store, s.registry)
}

// Save sends the document and instructions to the edit backend.
// At most one save runs at a time; the store is left intact on failure.
func (s *EditorService) Save(ctx context.Context) (*domain.ProcessedFile, error) {
	if !s.saving.CompareAndSwap(false, true) {
		return nil, domain.ErrSaveInProgress
	}
	defer s.saving.Store(false)

	if s.backend == nil {
		return nil, fmt.Errorf("save: edit backend not configured")
	}

	s.mu.Lock()
	if err := s.editableLocked(); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	instructions, err := BuildInstructions(s.store, s.registry)
	if err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("build instructions: %w", err)
	}
	doc := *s.document
	generation := s.generation
	s.mu.Unlock()

	logger.Debug("saving %s with %d instructions", doc.Name, len(instructions))

	result, err := s.backend.Edit(ctx, domain.EditRequest{
		SourcePath:   doc.Path,
		OriginalName: doc.Name,
		Instructions: instructions,
	})
	if err != nil {
		return nil, fmt.Errorf("edit pdf: %w", err)
	}

	processed := domain.ProcessedFile{
		FileName:     domain.BaseFileName(result.FileName),
		OriginalName: result.OriginalName,
	}
	if processed.OriginalName == "" {
		processed.OriginalName = doc.Name
	}
	if !processed.IsValid() {
		return nil, fmt.Errorf("edit pdf: %w", domain.ErrUnrecognisedResponse)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generation != generation {
		logger.Warn("document changed during save; result %s not attached", processed.FileName)
		return &processed, nil
	}
	s.result = &processed
	s.placement.Disarm()

	// Written under mu: Open and Reset clear the cache under the same lock.
	if s.cache != nil {
		if err := s.cache.Save(ctx, processed); err != nil {
			logger.Warn("persist session result: %v", err)
		}
	}

	logger.Info("saved %s as %s", doc.Name, processed.FileName)
	return &processed, nil
}

// Download writes the last result into w.
func (s *EditorService) Download(ctx context.Context, w io.Writer) (*domain.ProcessedFile, error) {
	if s.backend == nil {
		return nil, fmt.Errorf("download: edit backend not configured")
	}

	result, err := s.LastResult(ctx)
	if err != nil {
		return nil, err
	}

	name := domain.BaseFileName(result.FileName)
	if name == "" {
		return nil, domain.ErrNoResult
	}
	if err := s.backend.Download(ctx, name, w); err != nil {
		return nil, fmt.Errorf("download %s: %w", name, err)
	}
	return result, nil
}

// LastResult returns the result of this session, or of a previous one when
// this session has not saved yet.
func (s *EditorService) LastResult(ctx context.Context) (*domain.ProcessedFile, error) {
	s.mu.Lock()
	if s.result != nil {
		r := *s.result
		s.mu.Unlock()
		return &r, nil
	}
	s.mu.Unlock()

	if s.cache == nil {
		return nil, domain.ErrNoResult
	}
	r, err := s.cache.Load(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrNoResult
	}
	if err != nil {
		return nil, fmt.Errorf("load session result: %w", err)
	}
	return r, nil
}

// Phase reports the session stage.
func (s *EditorService) Phase() domain.SessionPhase {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.document == nil:
		return domain.PhaseEmpty
	case s.result != nil:
		return domain.PhaseResult
	default:
		return domain.PhaseEditing
	}
}

// Reset discards the document, annotations and cached result.
func (s *EditorService) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resetLocked()
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Clear(ctx); err != nil {
		return fmt.Errorf("clear session result: %w", err)
	}
	return nil
}

func (s *EditorService) editableLocked() error {
	if s.document == nil {
		return domain.ErrNoDocument
	}
	if s.result != nil {
		return domain.ErrSessionClosed
	}
	return nil
}

func (s *EditorService) resetLocked() {
	s.registry.Clear()
	s.store.Clear()
	s.placement.Reset()
	s.document = nil
	s.result = nil
	s.generation++
}
