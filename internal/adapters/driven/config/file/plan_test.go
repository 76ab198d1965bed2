package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devkavach22/kavach-edit/internal/core/domain"
)

func writePlan(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

// TestPlanStore_Load tests a full plan
func TestPlanStore_Load(t *testing.T) {
	path := writePlan(t, `
[[page]]
number = 1
width = 612
height = 792

[[annotation]]
kind = "Text"
page = 1
x = 50.0
y = 10.0
content = "Approved"
font_size = 14
color = "#cc0000"

[[annotation]]
kind = "signature"
page = 1
x = 20
y = 90

[[annotation]]
kind = "image"
page = 2
x = 70
y = 85
image = "signature.png"
`)

	plan, err := NewPlanStore().Load(path)

	require.NoError(t, err)
	require.Len(t, plan.Pages, 1)
	assert.Equal(t, 1, plan.Pages[0].Number)
	assert.Equal(t, 612.0, plan.Pages[0].Geometry.WidthPoints)

	require.Len(t, plan.Entries, 3)
	assert.Equal(t, domain.PlanEntry{
		Kind: domain.AnnotationText, Page: 1, XPercent: 50, YPercent: 10,
		Content: "Approved", FontSize: 14, Color: "#cc0000",
	}, plan.Entries[0])
	assert.Equal(t, domain.AnnotationSignature, plan.Entries[1].Kind)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "signature.png"), plan.Entries[2].ImagePath)
}

// TestPlanStore_Load_AbsoluteImage tests absolute image paths are kept
func TestPlanStore_Load_AbsoluteImage(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "sig.png")
	path := writePlan(t, "[[annotation]]\nkind = \"image\"\npage = 1\nx = 1\ny = 1\nimage = '"+abs+"'\n")

	plan, err := NewPlanStore().Load(path)

	require.NoError(t, err)
	assert.Equal(t, abs, plan.Entries[0].ImagePath)
}

// TestPlanStore_Load_Errors tests parse and validation failures
func TestPlanStore_Load_Errors(t *testing.T) {
	store := NewPlanStore()

	_, err := store.Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = store.Load(writePlan(t, "[[annotation]\nkind = "))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = store.Load(writePlan(t, "[[annotation]]\nkind = \"text\"\npage = 0\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = store.Load(writePlan(t, "[[annotation]]\nkind = \"image\"\npage = 1\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// TestPlanStore_Load_Empty tests that an empty plan is valid
func TestPlanStore_Load_Empty(t *testing.T) {
	plan, err := NewPlanStore().Load(writePlan(t, ""))

	require.NoError(t, err)
	assert.Empty(t, plan.Entries)
	assert.Empty(t, plan.Pages)
}
