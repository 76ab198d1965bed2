// Package editor provides the page editing view for the TUI.
package editor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/devkavach22/kavach-edit/internal/adapters/driving/tui/components/canvas"
	"github.com/devkavach22/kavach-edit/internal/adapters/driving/tui/components/input"
	"github.com/devkavach22/kavach-edit/internal/adapters/driving/tui/components/status"
	"github.com/devkavach22/kavach-edit/internal/adapters/driving/tui/keymap"
	"github.com/devkavach22/kavach-edit/internal/adapters/driving/tui/messages"
	"github.com/devkavach22/kavach-edit/internal/adapters/driving/tui/styles"
	"github.com/devkavach22/kavach-edit/internal/core/domain"
	"github.com/devkavach22/kavach-edit/internal/core/ports/driving"
)

// fontStep is the font size change per grow or shrink.
const fontStep = 2.0

// ImageTypes are the file extensions offered when picking an image.
var ImageTypes = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"}

// View is the editing screen: the page canvas, the annotation inputs, the
// image picker and the result screen.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	canvas    *canvas.Canvas
	input     *input.FieldInput
	picker    filepicker.Model
	spinner   spinner.Model
	help      help.Model
	statusbar *status.Bar

	editor driving.EditorService
	ctx    context.Context

	docPath     string
	document    *domain.DocumentInfo
	result      *domain.ProcessedFile
	downloadDir string

	mode     messages.Mode
	prevMode messages.Mode
	editing  string
	saving   bool

	width  int
	height int
	ready  bool
	err    error
}

// NewView creates a new editor view.
func NewView(s *styles.Styles, km *keymap.KeyMap, editor driving.EditorService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	fp := filepicker.New()
	fp.AllowedTypes = ImageTypes
	fp.AutoHeight = true
	if cwd, err := os.Getwd(); err == nil {
		fp.CurrentDirectory = cwd
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Title

	return &View{
		styles:      s,
		keymap:      km,
		canvas:      canvas.NewCanvas(s),
		input:       input.NewFieldInput(s),
		picker:      fp,
		spinner:     sp,
		help:        help.New(),
		statusbar:   status.NewBar(s, km),
		editor:      editor,
		ctx:         context.Background(),
		downloadDir: ".",
		mode:        messages.ModeEditing,
		width:       80,
		height:      24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// WithDocument sets the PDF opened when the view starts. Without one the
// view restores the last processed file instead.
func (v *View) WithDocument(path string) *View {
	v.docPath = path
	return v
}

// WithDownloadDir sets where processed files are written.
func (v *View) WithDownloadDir(dir string) *View {
	if dir != "" {
		v.downloadDir = dir
	}
	return v
}

// Init opens the document, or restores the last result when there is none.
func (v *View) Init() tea.Cmd {
	if v.docPath != "" {
		return v.openDocument()
	}
	return v.restoreResult()
}

// Update handles messages for the editor view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		v.ready = true
		var cmd tea.Cmd
		v.picker, cmd = v.picker.Update(msg)
		return v, cmd

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.DocumentOpened:
		return v.handleDocumentOpened(msg)

	case messages.ResultRestored:
		return v.handleResultRestored(msg)

	case messages.ImageSupplied:
		return v.handleImageSupplied(msg)

	case messages.SaveCompleted:
		return v.handleSaveCompleted(msg)

	case messages.DownloadCompleted:
		if msg.Err != nil {
			v.showError(msg.Err)
			return v, nil
		}
		v.err = nil
		v.statusbar.SetState(status.StateResult)
		v.statusbar.SetMessage("Downloaded to " + msg.Path)
		return v, nil

	case messages.ErrorOccurred:
		v.showError(msg.Err)
		return v, nil

	case spinner.TickMsg:
		if !v.saving {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd
	}

	if v.mode == messages.ModePickImage {
		var cmd tea.Cmd
		v.picker, cmd = v.picker.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()
	if v.document != nil || v.result != nil {
		v.clearError()
	}

	switch v.mode {
	case messages.ModeTextInput, messages.ModeColorInput:
		return v.handleInputKey(msg)
	case messages.ModePickImage:
		return v.handlePickerKey(msg)
	case messages.ModeHelp:
		if keymap.Matches(keyStr, v.keymap.Help) || keymap.Matches(keyStr, v.keymap.Cancel) {
			v.mode = v.prevMode
			v.syncStatus()
		}
		return v, nil
	case messages.ModeResult:
		return v.handleResultKey(keyStr)
	case messages.ModeEditing:
	}

	return v.handleEditingKey(keyStr)
}

//nolint:gocyclo // one branch per binding
func (v *View) handleEditingKey(keyStr string) (*View, tea.Cmd) {
	km := v.keymap

	switch {
	case keymap.Matches(keyStr, km.Quit):
		return v, quit
	case keymap.Matches(keyStr, km.Help):
		v.prevMode = v.mode
		v.mode = messages.ModeHelp
		v.statusbar.SetState(status.StateHelp)
		return v, nil
	}

	if v.document == nil || v.saving {
		return v, nil
	}

	switch {
	case keymap.Matches(keyStr, km.Cancel):
		if _, ok := v.canvas.Selected(); ok {
			v.canvas.ClearSelection()
		} else {
			v.editor.Disarm()
		}
	case keymap.Matches(keyStr, km.Up):
		v.canvas.MoveCursor(0, -1)
	case keymap.Matches(keyStr, km.Down):
		v.canvas.MoveCursor(0, 1)
	case keymap.Matches(keyStr, km.Left):
		v.canvas.MoveCursor(-1, 0)
	case keymap.Matches(keyStr, km.Right):
		v.canvas.MoveCursor(1, 0)
	case keymap.Matches(keyStr, km.NextPage):
		v.showPage(v.canvas.Page() + 1)
	case keymap.Matches(keyStr, km.PrevPage):
		v.showPage(v.canvas.Page() - 1)
	case keymap.Matches(keyStr, km.TextTool):
		v.selectTool(domain.ToolText)
	case keymap.Matches(keyStr, km.SignatureTool):
		v.selectTool(domain.ToolSignature)
	case keymap.Matches(keyStr, km.ImageTool):
		v.selectTool(domain.ToolImage)
	case keymap.Matches(keyStr, km.Place):
		return v.place()
	case keymap.Matches(keyStr, km.NextAnnotation):
		v.canvas.CycleSelection(1)
	case keymap.Matches(keyStr, km.PrevAnnotation):
		v.canvas.CycleSelection(-1)
	case keymap.Matches(keyStr, km.Edit):
		return v.startInput(messages.ModeTextInput)
	case keymap.Matches(keyStr, km.Color):
		return v.startInput(messages.ModeColorInput)
	case keymap.Matches(keyStr, km.Grow):
		v.resizeSelected(fontStep)
	case keymap.Matches(keyStr, km.Shrink):
		v.resizeSelected(-fontStep)
	case keymap.Matches(keyStr, km.Move):
		v.moveSelected()
	case keymap.Matches(keyStr, km.Delete):
		v.removeSelected()
	case keymap.Matches(keyStr, km.Save):
		return v.save()
	default:
		return v, nil
	}

	v.refresh()
	return v, nil
}

func (v *View) handleInputKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, v.keymap.Cancel):
		v.endInput()
		return v, nil

	case keymap.Matches(keyStr, v.keymap.Confirm):
		value := v.input.Value()
		var err error
		if v.mode == messages.ModeColorInput {
			err = v.editor.UpdateColor(v.editing, strings.TrimSpace(value))
		} else {
			err = v.editor.UpdateContent(v.editing, value)
		}
		if err != nil {
			v.showError(err)
			return v, nil
		}
		v.endInput()
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handlePickerKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	if keymap.Matches(msg.String(), v.keymap.Cancel) {
		v.editor.CancelImage()
		v.mode = messages.ModeEditing
		v.refresh()
		return v, nil
	}

	var cmd tea.Cmd
	v.picker, cmd = v.picker.Update(msg)

	if ok, path := v.picker.DidSelectFile(msg); ok {
		v.statusbar.SetMessage("Loading " + filepath.Base(path))
		return v, tea.Batch(cmd, v.supplyImage(path))
	}
	if ok, path := v.picker.DidSelectDisabledFile(msg); ok {
		v.showError(fmt.Errorf("%s is not a supported image", filepath.Base(path)))
		return v, cmd
	}
	return v, cmd
}

func (v *View) handleResultKey(keyStr string) (*View, tea.Cmd) {
	km := v.keymap

	switch {
	case keymap.Matches(keyStr, km.Quit):
		return v, quit
	case keymap.Matches(keyStr, km.Help):
		v.prevMode = v.mode
		v.mode = messages.ModeHelp
		v.statusbar.SetState(status.StateHelp)
	case keymap.Matches(keyStr, km.Download):
		if v.result == nil {
			return v, nil
		}
		v.statusbar.SetMessage("Downloading " + v.result.FileName)
		return v, v.download(*v.result)
	case keymap.Matches(keyStr, km.Restart):
		if v.docPath == "" {
			v.showError(errors.New("no document to reopen, start with: kavach edit <file.pdf>"))
			return v, nil
		}
		return v, v.openDocument()
	}
	return v, nil
}

func (v *View) handleDocumentOpened(msg messages.DocumentOpened) (*View, tea.Cmd) {
	if msg.Err != nil {
		v.document = nil
		v.showError(msg.Err)
		return v, nil
	}

	v.err = nil
	v.document = msg.Document
	v.result = nil
	v.mode = messages.ModeEditing
	v.statusbar.SetMessage("")
	v.canvas.ClearSelection()
	v.showPage(1)
	v.refresh()
	return v, nil
}

func (v *View) handleResultRestored(msg messages.ResultRestored) (*View, tea.Cmd) {
	switch {
	case errors.Is(msg.Err, domain.ErrNoResult):
		v.showError(errors.New("no document open, start with: kavach edit <file.pdf>"))
		return v, nil
	case msg.Err != nil:
		v.showError(msg.Err)
		return v, nil
	}

	v.err = nil
	v.result = msg.Result
	v.mode = messages.ModeResult
	v.syncStatus()
	return v, nil
}

func (v *View) handleImageSupplied(msg messages.ImageSupplied) (*View, tea.Cmd) {
	if msg.Err != nil {
		// The placement stays pending so another file can be picked.
		v.showError(msg.Err)
		return v, nil
	}

	v.err = nil
	v.mode = messages.ModeEditing
	v.statusbar.SetMessage("")
	v.refresh()
	if msg.Annotation != nil {
		v.canvas.Select(msg.Annotation.ID)
	}
	return v, nil
}

func (v *View) handleSaveCompleted(msg messages.SaveCompleted) (*View, tea.Cmd) {
	v.saving = false
	if msg.Err != nil {
		v.showError(msg.Err)
		return v, nil
	}

	v.err = nil
	v.result = msg.Result
	v.mode = messages.ModeResult
	v.statusbar.SetMessage("")
	v.syncStatus()
	return v, nil
}

func (v *View) selectTool(tool domain.Tool) {
	if _, err := v.editor.SelectTool(tool); err != nil {
		v.showError(err)
		return
	}
	v.canvas.ClearSelection()
}

// place clicks the page at the cursor. With no tool armed it selects the
// annotation under the cursor instead.
func (v *View) place() (*View, tea.Cmd) {
	tool := v.editor.ActiveTool()
	if !tool.IsArmed() {
		v.selectUnderCursor()
		v.refresh()
		return v, nil
	}

	x, y := v.canvas.ClickPoint()
	a, err := v.editor.ClickPage(v.canvas.Page(), x, y, v.canvas.Box())
	if err != nil {
		v.showError(err)
		return v, nil
	}
	v.refresh()

	if a == nil {
		if _, ok := v.editor.Pending(); ok {
			v.mode = messages.ModePickImage
			v.syncStatus()
			return v, v.picker.Init()
		}
		return v, nil
	}

	v.canvas.Select(a.ID)
	if a.Kind.IsTextual() {
		return v.startInput(messages.ModeTextInput)
	}
	return v, nil
}

func (v *View) selectUnderCursor() {
	if a, ok := v.canvas.AnnotationAtCursor(); ok {
		v.canvas.Select(a.ID)
		return
	}
	v.canvas.ClearSelection()
}

func (v *View) startInput(mode messages.Mode) (*View, tea.Cmd) {
	a, ok := v.canvas.Selected()
	if !ok || !a.Kind.IsTextual() {
		return v, nil
	}

	v.editing = a.ID
	v.mode = mode
	v.syncStatus()
	if mode == messages.ModeColorInput {
		return v, v.input.Start("Colour", a.Color, "#RRGGBB")
	}
	label := "Text"
	if a.Kind == domain.AnnotationSignature {
		label = "Signature"
	}
	return v, v.input.Start(label, a.Content, domain.FallbackText)
}

func (v *View) endInput() {
	v.input.Reset()
	v.editing = ""
	v.mode = messages.ModeEditing
	v.refresh()
}

func (v *View) resizeSelected(delta float64) {
	a, ok := v.canvas.Selected()
	if !ok || !a.Kind.IsTextual() {
		return
	}
	size := a.FontSize + delta
	if size < 1 {
		size = 1
	}
	if _, err := v.editor.UpdateAnnotation(a.ID, domain.AnnotationPatch{FontSize: &size}); err != nil {
		v.showError(err)
	}
}

func (v *View) moveSelected() {
	a, ok := v.canvas.Selected()
	if !ok {
		return
	}
	xp, yp := v.canvas.CursorPercent()
	if _, err := v.editor.UpdateAnnotation(a.ID, domain.AnnotationPatch{XPercent: &xp, YPercent: &yp}); err != nil {
		v.showError(err)
	}
}

func (v *View) removeSelected() {
	a, ok := v.canvas.Selected()
	if !ok {
		return
	}
	if err := v.editor.Remove(a.ID); err != nil {
		v.showError(err)
		return
	}
	v.canvas.ClearSelection()
}

func (v *View) showPage(page int) {
	count := 1
	if v.document != nil {
		count = v.document.PageCount
	}
	if count < 1 {
		count = 1
	}
	if page < 1 || page > count {
		return
	}
	g, ok := v.editor.Geometry(page)
	v.canvas.SetPage(page, count, g, ok)
	v.canvas.ClearSelection()
}

// refresh copies the session state into the canvas and status bar.
func (v *View) refresh() {
	if v.document != nil {
		v.canvas.SetAnnotations(v.editor.AnnotationsOnPage(v.canvas.Page()))
		if p, ok := v.editor.Pending(); ok {
			v.canvas.SetPending(p)
		} else {
			v.canvas.SetPending(nil)
		}
		v.statusbar.SetCount(len(v.editor.Annotations()))
	}
	v.syncStatus()
}

func (v *View) syncStatus() {
	if v.err != nil {
		return
	}

	switch v.mode {
	case messages.ModeTextInput, messages.ModeColorInput:
		v.statusbar.SetState(status.StateInput)
		v.statusbar.SetMessage("Editing " + strings.ToLower(v.input.Label()))
	case messages.ModePickImage:
		v.statusbar.SetState(status.StatePlacing)
		v.statusbar.SetMessage("Choose an image")
	case messages.ModeResult:
		v.statusbar.SetState(status.StateResult)
	case messages.ModeHelp:
		v.statusbar.SetState(status.StateHelp)
	case messages.ModeEditing:
		if v.saving {
			v.statusbar.SetState(status.StateSaving)
			return
		}
		if tool := v.editor.ActiveTool(); tool.IsArmed() {
			v.statusbar.SetState(status.StatePlacing)
			v.statusbar.SetMessage("Placing " + tool.String())
			return
		}
		v.statusbar.SetState(status.StateReady)
		v.statusbar.SetMessage("")
	}
}

func (v *View) showError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

// clearError drops a shown error on the next key press.
func (v *View) clearError() {
	if v.err == nil {
		return
	}
	v.err = nil
	v.statusbar.SetMessage("")
	v.syncStatus()
}

func (v *View) save() (*View, tea.Cmd) {
	v.saving = true
	v.editor.Disarm()
	v.syncStatus()

	editor := v.editor
	ctx := v.ctx
	return v, tea.Batch(v.spinner.Tick, func() tea.Msg {
		result, err := editor.Save(ctx)
		return messages.SaveCompleted{Result: result, Err: err}
	})
}

func (v *View) openDocument() tea.Cmd {
	editor := v.editor
	ctx := v.ctx
	path := v.docPath
	return func() tea.Msg {
		doc, err := editor.Open(ctx, path)
		return messages.DocumentOpened{Document: doc, Err: err}
	}
}

func (v *View) restoreResult() tea.Cmd {
	editor := v.editor
	ctx := v.ctx
	return func() tea.Msg {
		result, err := editor.LastResult(ctx)
		return messages.ResultRestored{Result: result, Err: err}
	}
}

func (v *View) supplyImage(path string) tea.Cmd {
	editor := v.editor
	ctx := v.ctx
	return func() tea.Msg {
		a, err := editor.SupplyImage(ctx, path)
		return messages.ImageSupplied{Annotation: a, Err: err}
	}
}

func (v *View) download(result domain.ProcessedFile) tea.Cmd {
	editor := v.editor
	ctx := v.ctx
	path := filepath.Join(v.downloadDir, domain.BaseFileName(result.FileName))
	return func() tea.Msg {
		return messages.DownloadCompleted{Path: path, Err: downloadTo(ctx, editor, path)}
	}
}

func downloadTo(ctx context.Context, editor driving.EditorService, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := editor.Download(ctx, f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	return f.Close()
}

func quit() tea.Msg {
	return messages.Quit{}
}

// View renders the editor view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var body string
	switch v.mode {
	case messages.ModeHelp:
		body = v.viewHelp()
	case messages.ModeResult:
		body = v.viewResult()
	case messages.ModePickImage:
		body = lipgloss.JoinVertical(lipgloss.Left,
			v.styles.Subtitle.Render("Choose an image for the pending placement"),
			v.picker.View(),
		)
	case messages.ModeEditing, messages.ModeTextInput, messages.ModeColorInput:
		body = v.viewEditing()
	}

	return lipgloss.JoinVertical(lipgloss.Left, v.viewHeader(), body, v.statusbar.View())
}

func (v *View) viewHeader() string {
	title := v.styles.Title.Render("kavach")
	name := ""
	if v.document != nil {
		name = v.styles.Normal.Render(v.document.Name)
	}

	badge := ""
	if v.saving {
		badge = v.spinner.View() + " saving"
	} else if tool := v.editor.ActiveTool(); tool.IsArmed() && v.document != nil {
		badge = v.styles.ToolArmed.Render(strings.ToUpper(tool.String()))
	}

	return strings.Join(nonEmpty(title, name, badge), "  ")
}

func (v *View) viewEditing() string {
	if v.document == nil {
		if v.err != nil {
			return v.styles.Error.Render(v.err.Error())
		}
		return v.styles.Muted.Render("Opening document...")
	}

	parts := []string{v.canvas.View()}
	if a, ok := v.canvas.Selected(); ok {
		parts = append(parts, v.describe(a))
	}
	if v.mode == messages.ModeTextInput || v.mode == messages.ModeColorInput {
		parts = append(parts, v.input.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (v *View) describe(a domain.Annotation) string {
	pos := fmt.Sprintf("%s at %.1f%%, %.1f%%", a.Kind, a.XPercent, a.YPercent)
	if a.Kind.IsTextual() {
		return v.styles.Muted.Render(fmt.Sprintf("%s  %q  %.0fpt %s", pos, a.Content, a.FontSize, a.Color))
	}
	return v.styles.Muted.Render(fmt.Sprintf("%s  %dx%d", pos, a.DisplayWidth, a.DisplayHeight))
}

func (v *View) viewResult() string {
	if v.result == nil {
		return v.styles.Muted.Render("No processed file.")
	}

	lines := []string{
		v.styles.Success.Render("Document processed"),
		"",
		v.styles.Normal.Render("File: " + v.result.FileName),
	}
	if v.result.OriginalName != "" {
		lines = append(lines, v.styles.Muted.Render("From: "+v.result.OriginalName))
	}
	lines = append(lines, "", v.styles.Help.Render("d download  n edit again  q quit"))
	return v.styles.Border.Padding(1, 2).Render(strings.Join(lines, "\n"))
}

func (v *View) viewHelp() string {
	v.help.ShowAll = true
	return lipgloss.JoinVertical(lipgloss.Left,
		v.styles.Subtitle.Render("Keys"),
		v.help.FullHelpView(v.keymap.FullHelp()),
		"",
		v.styles.Muted.Render("? or esc to close"),
	)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	// Header, selection line, input and status bar.
	v.canvas.SetDimensions(width, height-6)
	v.input.SetWidth(width)
	v.statusbar.SetWidth(width)
}

// Mode returns the current mode.
func (v *View) Mode() messages.Mode {
	return v.mode
}

// Ready returns whether the view has received its dimensions.
func (v *View) Ready() bool {
	return v.ready
}

// Err returns the last error shown.
func (v *View) Err() error {
	return v.err
}

// Result returns the processed file shown on the result screen.
func (v *View) Result() *domain.ProcessedFile {
	return v.result
}

// Canvas returns the page canvas.
func (v *View) Canvas() *canvas.Canvas {
	return v.canvas
}

// Saving reports whether a save is running.
func (v *View) Saving() bool {
	return v.saving
}

func nonEmpty(parts ...string) []string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
