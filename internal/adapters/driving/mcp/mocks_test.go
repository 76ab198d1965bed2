package mcp

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/devkavach22/kavach-edit/internal/adapters/driven/imagefile"
	"github.com/devkavach22/kavach-edit/internal/adapters/driven/storage/memory"
	"github.com/devkavach22/kavach-edit/internal/core/domain"
	"github.com/devkavach22/kavach-edit/internal/core/ports/driving"
	"github.com/devkavach22/kavach-edit/internal/core/services"
)

var letter = domain.PageGeometry{WidthPoints: 612, HeightPoints: 792}

// stubGeometry reports fixed page sizes for any path.
type stubGeometry struct {
	pages []domain.PageGeometry
	err   error
}

func (s stubGeometry) PageGeometry(_ context.Context, _ string) ([]domain.PageGeometry, error) {
	return s.pages, s.err
}

// stubBackend records edit requests and serves a fixed body on download.
type stubBackend struct {
	got     domain.EditRequest
	editErr error
}

func (b *stubBackend) Edit(_ context.Context, req domain.EditRequest) (*domain.ProcessedFile, error) {
	if b.editErr != nil {
		return nil, b.editErr
	}
	b.got = req
	return &domain.ProcessedFile{FileName: "/outputs/form_edited_42.pdf"}, nil
}

func (b *stubBackend) Download(_ context.Context, name string, w io.Writer) error {
	_, err := fmt.Fprintf(w, "%%PDF-1.7 %s", name)
	return err
}

// mockPlanService is a mock implementation of driving.PlanService.
type mockPlanService struct {
	annotations []domain.Annotation
	err         error
	path        string
}

func (m *mockPlanService) Apply(_ context.Context, path string) ([]domain.Annotation, error) {
	m.path = path
	return m.annotations, m.err
}

func (m *mockPlanService) ApplyPlan(_ context.Context, _ *domain.PlacementPlan) ([]domain.Annotation, error) {
	return m.annotations, m.err
}

var _ driving.PlanService = (*mockPlanService)(nil)

type testEnv struct {
	server  *Server
	editor  *services.EditorService
	backend *stubBackend
	cache   *memory.SessionCache
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	n := 0
	backend := &stubBackend{}
	cache := memory.NewSessionCache()
	editor := services.NewEditorService(
		backend, cache,
		stubGeometry{pages: []domain.PageGeometry{letter, letter}},
		imagefile.NewLoader(),
		func() string { n++; return fmt.Sprintf("a%d", n) },
		services.DefaultPlacementDefaults(),
	)

	server, err := NewServer(&Ports{Editor: editor})
	require.NoError(t, err)

	return &testEnv{server: server, editor: editor, backend: backend, cache: cache}
}

func (e *testEnv) open(t *testing.T) {
	t.Helper()
	_, _, err := e.server.handleOpen(context.Background(), nil, OpenInput{Path: "/docs/form.pdf"})
	require.NoError(t, err)
}
