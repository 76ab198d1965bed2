package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTheme(t *testing.T) {
	theme := DefaultTheme()

	require.NotNil(t, theme)
	assert.NotEmpty(t, string(theme.Primary))
	assert.NotEmpty(t, string(theme.Secondary))
	assert.NotEmpty(t, string(theme.Background))
	assert.NotEmpty(t, string(theme.Foreground))
	assert.NotEmpty(t, string(theme.Muted))
	assert.NotEmpty(t, string(theme.Success))
	assert.NotEmpty(t, string(theme.Warning))
	assert.NotEmpty(t, string(theme.Error))
	assert.NotEmpty(t, string(theme.Border))
	assert.NotEmpty(t, string(theme.Paper))
}

func TestDefaultTheme_ColorsAreDistinct(t *testing.T) {
	theme := DefaultTheme()

	//nolint:misspell // using colors for technical accuracy
	colors := []lipgloss.Color{
		theme.Primary,
		theme.Secondary,
		theme.Success,
		theme.Warning,
		theme.Error,
	}

	seen := make(map[string]bool)
	for _, c := range colors { //nolint:misspell // using colors for technical accuracy
		s := string(c)
		assert.False(t, seen[s], "duplicate color: %s", s) //nolint:misspell // using color for technical accuracy
		seen[s] = true
	}
}

func TestNewStyles_WithTheme(t *testing.T) {
	theme := DefaultTheme()
	styles := NewStyles(theme)

	require.NotNil(t, styles)
	assert.Equal(t, theme, styles.Theme())
}

func TestNewStyles_NilTheme(t *testing.T) {
	styles := NewStyles(nil)

	require.NotNil(t, styles)
	assert.NotNil(t, styles.Theme())
}

func TestDefaultStyles(t *testing.T) {
	styles := DefaultStyles()

	require.NotNil(t, styles)
	assert.NotNil(t, styles.Theme())
}

func TestStyles_AllStylesInitialised(t *testing.T) {
	styles := DefaultStyles()

	// All style fields should be initialised (not zero-value)
	assert.NotEqual(t, lipgloss.Style{}, styles.Title)
	assert.NotEqual(t, lipgloss.Style{}, styles.Subtitle)
	assert.NotEqual(t, lipgloss.Style{}, styles.Normal)
	assert.NotEqual(t, lipgloss.Style{}, styles.Muted)
	assert.NotEqual(t, lipgloss.Style{}, styles.Selected)
	assert.NotEqual(t, lipgloss.Style{}, styles.Error)
	assert.NotEqual(t, lipgloss.Style{}, styles.Success)
	assert.NotEqual(t, lipgloss.Style{}, styles.InputField)
	assert.NotEqual(t, lipgloss.Style{}, styles.StatusBar)
	assert.NotEqual(t, lipgloss.Style{}, styles.Help)
	assert.NotEqual(t, lipgloss.Style{}, styles.Border)
	assert.NotEqual(t, lipgloss.Style{}, styles.Page)
	assert.NotEqual(t, lipgloss.Style{}, styles.Cursor)
	assert.NotEqual(t, lipgloss.Style{}, styles.Marker)
	assert.NotEqual(t, lipgloss.Style{}, styles.MarkerSelected)
	assert.NotEqual(t, lipgloss.Style{}, styles.Pending)
	assert.NotEqual(t, lipgloss.Style{}, styles.ToolArmed)
}

func TestStyles_PageCellsSitOnPaper(t *testing.T) {
	styles := DefaultStyles()
	paper := styles.Theme().Paper

	assert.Equal(t, paper, styles.Page.GetBackground())
	assert.Equal(t, paper, styles.Marker.GetBackground())
	assert.Equal(t, paper, styles.Cursor.GetForeground())
}

func TestStyles_SelectionIsInverted(t *testing.T) {
	styles := DefaultStyles()

	assert.Equal(t, styles.Marker.GetForeground(), styles.MarkerSelected.GetBackground())
	assert.Equal(t, styles.Marker.GetBackground(), styles.MarkerSelected.GetForeground())
}

func TestStyles_PendingStandsOut(t *testing.T) {
	styles := DefaultStyles()

	assert.Equal(t, styles.Theme().Warning, styles.Pending.GetBackground())
	assert.NotEqual(t, styles.Cursor.GetBackground(), styles.Pending.GetBackground())
	assert.True(t, styles.ToolArmed.GetBold())
}
