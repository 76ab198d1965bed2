package mcp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/devkavach22/kavach-edit/internal/core/domain"
)

// percentBox is used when a click carries no on-screen box, so that x and y
// are read as page percentages.
var percentBox = domain.BoundingBox{Width: 100, Height: 100}

// EmptyInput is the input schema for tools without arguments.
type EmptyInput struct{}

// OpenInput is the input schema for the open_document tool.
type OpenInput struct {
	Path string `json:"path" jsonschema:"path of the PDF to edit"`
}

// DocumentOutput describes the open document.
type DocumentOutput struct {
	Name      string       `json:"name"`
	Path      string       `json:"path"`
	PageCount int          `json:"page_count"`
	Pages     []PageOutput `json:"pages"`
}

// PageOutput is the intrinsic size of one page in PDF points.
type PageOutput struct {
	Page   int     `json:"page"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// GeometryInput is the input schema for the record_page_geometry tool.
type GeometryInput struct {
	Page   int     `json:"page" jsonschema:"1-based page number"`
	Width  float64 `json:"width" jsonschema:"page width in PDF points"`
	Height float64 `json:"height" jsonschema:"page height in PDF points"`
}

// ToolInput is the input schema for the select_tool tool.
type ToolInput struct {
	Tool string `json:"tool" jsonschema:"text, signature, image or none; selecting the armed tool again disarms it"`
}

// ToolOutput reports the armed tool.
type ToolOutput struct {
	Tool string `json:"tool"`
}

// ClickInput is the input schema for the click_page tool.
type ClickInput struct {
	Page      int     `json:"page" jsonschema:"1-based page number"`
	X         float64 `json:"x" jsonschema:"horizontal click position"`
	Y         float64 `json:"y" jsonschema:"vertical click position, measured downwards"`
	BoxLeft   float64 `json:"box_left,omitempty" jsonschema:"left edge of the on-screen page box"`
	BoxTop    float64 `json:"box_top,omitempty" jsonschema:"top edge of the on-screen page box"`
	BoxWidth  float64 `json:"box_width,omitempty" jsonschema:"width of the on-screen page box; omit to pass percentages"`
	BoxHeight float64 `json:"box_height,omitempty" jsonschema:"height of the on-screen page box; omit to pass percentages"`
}

// ClickOutput reports what a click did.
type ClickOutput struct {
	Created    bool              `json:"created"`
	Annotation *AnnotationOutput `json:"annotation,omitempty"`
	Pending    bool              `json:"pending"`
	Tool       string            `json:"tool"`
}

// ImageInput is the input schema for the supply_image tool.
type ImageInput struct {
	Path string `json:"path" jsonschema:"path of a PNG, JPEG, GIF, BMP, TIFF or WebP file"`
}

// AnnotationOutput is an annotation without its image bytes.
type AnnotationOutput struct {
	ID            string  `json:"id"`
	Kind          string  `json:"kind"`
	Page          int     `json:"page"`
	XPercent      float64 `json:"x_percent"`
	YPercent      float64 `json:"y_percent"`
	Content       string  `json:"content,omitempty"`
	FontSize      float64 `json:"font_size,omitempty"`
	Color         string  `json:"color,omitempty"`
	DisplayWidth  int     `json:"display_width,omitempty"`
	DisplayHeight int     `json:"display_height,omitempty"`
	HasImage      bool    `json:"has_image,omitempty"`
}

// UpdateInput is the input schema for the update_annotation tool.
type UpdateInput struct {
	ID       string   `json:"id" jsonschema:"annotation id"`
	Content  *string  `json:"content,omitempty" jsonschema:"new text"`
	Color    *string  `json:"color,omitempty" jsonschema:"new colour as #RRGGBB"`
	FontSize *float64 `json:"font_size,omitempty" jsonschema:"new font size in points"`
	XPercent *float64 `json:"x_percent,omitempty" jsonschema:"new horizontal position, 0 to 100"`
	YPercent *float64 `json:"y_percent,omitempty" jsonschema:"new vertical position from the top, 0 to 100"`
}

// IDInput is the input schema for tools addressing one annotation.
type IDInput struct {
	ID string `json:"id" jsonschema:"annotation id"`
}

// ListInput is the input schema for the list_annotations tool.
type ListInput struct {
	Page int `json:"page,omitempty" jsonschema:"1-based page to list; omit for all pages"`
}

// ListOutput is a list of annotations.
type ListOutput struct {
	Annotations []AnnotationOutput `json:"annotations"`
	Count       int                `json:"count"`
}

// InstructionsOutput is the serialized edit payload.
type InstructionsOutput struct {
	Instructions []domain.EditInstruction `json:"instructions"`
	Count        int                      `json:"count"`
}

// ResultOutput describes a processed file.
type ResultOutput struct {
	FileName     string `json:"file_name"`
	OriginalName string `json:"original_name,omitempty"`
}

// DownloadInput is the input schema for the download tool.
type DownloadInput struct {
	Path string `json:"path,omitempty" jsonschema:"file or directory to write to; defaults to the result name in the working directory"`
}

// DownloadOutput reports a written file.
type DownloadOutput struct {
	Path     string `json:"path"`
	FileName string `json:"file_name"`
	Bytes    int64  `json:"bytes"`
}

// StatusOutput reports the session stage.
type StatusOutput struct {
	Phase string `json:"phase"`
	Tool  string `json:"tool"`
}

// PlanInput is the input schema for the apply_plan tool.
type PlanInput struct {
	Path string `json:"path" jsonschema:"path of a TOML placement plan"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "open_document",
		Description: "Open a PDF for editing, discarding the previous session and result",
	}, s.handleOpen)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "record_page_geometry",
		Description: "Record the intrinsic size of a page in PDF points",
	}, s.handleRecordGeometry)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "select_tool",
		Description: "Arm the text, signature or image tool",
	}, s.handleSelectTool)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "click_page",
		Description: "Click a page with the armed tool to place an annotation",
	}, s.handleClick)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "supply_image",
		Description: "Complete a pending image placement with an image file",
	}, s.handleSupplyImage)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "cancel_image",
		Description: "Abandon a pending image placement",
	}, s.handleCancelImage)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "update_annotation",
		Description: "Change the text, colour, font size or position of an annotation",
	}, s.handleUpdate)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "remove_annotation",
		Description: "Delete an annotation",
	}, s.handleRemove)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_annotations",
		Description: "List annotations in creation order",
	}, s.handleList)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "build_instructions",
		Description: "Show the edit instructions a save would send, in PDF points",
	}, s.handleBuildInstructions)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "save",
		Description: "Send the document and its annotations for processing",
	}, s.handleSave)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "download",
		Description: "Download the processed file",
	}, s.handleDownload)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "last_result",
		Description: "Show the processed file of this or a previous session",
	}, s.handleLastResult)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "reset",
		Description: "Discard the document, annotations and remembered result",
	}, s.handleReset)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "status",
		Description: "Show the session stage and armed tool",
	}, s.handleStatus)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "apply_plan",
		Description: "Place every annotation listed in a TOML plan on the open document",
	}, s.handleApplyPlan)
}

func (s *Server) handleOpen(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input OpenInput,
) (*mcp.CallToolResult, DocumentOutput, error) {
	doc, err := s.ports.Editor.Open(ctx, input.Path)
	if err != nil {
		return nil, DocumentOutput{}, err
	}
	return nil, s.documentOutput(doc), nil
}

func (s *Server) handleRecordGeometry(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input GeometryInput,
) (*mcp.CallToolResult, PageOutput, error) {
	g := domain.PageGeometry{WidthPoints: input.Width, HeightPoints: input.Height}
	if err := s.ports.Editor.RecordPageGeometry(input.Page, g); err != nil {
		return nil, PageOutput{}, err
	}
	return nil, PageOutput(input), nil
}

func (s *Server) handleSelectTool(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ToolInput,
) (*mcp.CallToolResult, ToolOutput, error) {
	tool, ok := domain.ParseTool(input.Tool)
	if !ok {
		return nil, ToolOutput{}, fmt.Errorf("%w: tool %q", domain.ErrInvalidInput, input.Tool)
	}
	armed, err := s.ports.Editor.SelectTool(tool)
	if err != nil {
		return nil, ToolOutput{}, err
	}
	return nil, ToolOutput{Tool: armed.String()}, nil
}

func (s *Server) handleClick(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ClickInput,
) (*mcp.CallToolResult, ClickOutput, error) {
	box := percentBox
	if input.BoxWidth != 0 || input.BoxHeight != 0 {
		box = domain.BoundingBox{
			Left:   input.BoxLeft,
			Top:    input.BoxTop,
			Width:  input.BoxWidth,
			Height: input.BoxHeight,
		}
	}

	editor := s.ports.Editor
	a, err := editor.ClickPage(input.Page, input.X, input.Y, box)
	if err != nil {
		return nil, ClickOutput{}, err
	}

	_, pending := editor.Pending()
	out := ClickOutput{
		Created: a != nil,
		Pending: pending,
		Tool:    editor.ActiveTool().String(),
	}
	if a != nil {
		ao := annotationOutput(*a)
		out.Annotation = &ao
	}
	return nil, out, nil
}

func (s *Server) handleSupplyImage(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ImageInput,
) (*mcp.CallToolResult, AnnotationOutput, error) {
	a, err := s.ports.Editor.SupplyImage(ctx, input.Path)
	if err != nil {
		return nil, AnnotationOutput{}, err
	}
	return nil, annotationOutput(*a), nil
}

func (s *Server) handleCancelImage(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, ToolOutput, error) {
	s.ports.Editor.CancelImage()
	return nil, ToolOutput{Tool: s.ports.Editor.ActiveTool().String()}, nil
}

func (s *Server) handleUpdate(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input UpdateInput,
) (*mcp.CallToolResult, AnnotationOutput, error) {
	patch := domain.AnnotationPatch{
		Content:  input.Content,
		Color:    input.Color,
		FontSize: input.FontSize,
		XPercent: input.XPercent,
		YPercent: input.YPercent,
	}
	if patch.IsEmpty() {
		return nil, AnnotationOutput{}, fmt.Errorf("%w: nothing to update", domain.ErrInvalidInput)
	}
	a, err := s.ports.Editor.UpdateAnnotation(input.ID, patch)
	if err != nil {
		return nil, AnnotationOutput{}, err
	}
	return nil, annotationOutput(*a), nil
}

func (s *Server) handleRemove(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input IDInput,
) (*mcp.CallToolResult, ListOutput, error) {
	if err := s.ports.Editor.Remove(input.ID); err != nil {
		return nil, ListOutput{}, err
	}
	return nil, listOutput(s.ports.Editor.Annotations()), nil
}

func (s *Server) handleList(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ListInput,
) (*mcp.CallToolResult, ListOutput, error) {
	if input.Page > 0 {
		return nil, listOutput(s.ports.Editor.AnnotationsOnPage(input.Page)), nil
	}
	return nil, listOutput(s.ports.Editor.Annotations()), nil
}

func (s *Server) handleBuildInstructions(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, InstructionsOutput, error) {
	instructions, err := s.ports.Editor.BuildInstructions()
	if err != nil {
		return nil, InstructionsOutput{}, err
	}
	return nil, InstructionsOutput{Instructions: instructions, Count: len(instructions)}, nil
}

func (s *Server) handleSave(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, ResultOutput, error) {
	result, err := s.ports.Editor.Save(ctx)
	if err != nil {
		return nil, ResultOutput{}, err
	}
	return nil, resultOutput(result), nil
}

func (s *Server) handleDownload(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DownloadInput,
) (*mcp.CallToolResult, DownloadOutput, error) {
	result, err := s.ports.Editor.LastResult(ctx)
	if err != nil {
		return nil, DownloadOutput{}, err
	}

	path := downloadPath(input.Path, domain.BaseFileName(result.FileName))
	f, err := os.Create(path)
	if err != nil {
		return nil, DownloadOutput{}, fmt.Errorf("create %s: %w", path, err)
	}

	if _, err := s.ports.Editor.Download(ctx, f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return nil, DownloadOutput{}, err
	}
	if err := f.Close(); err != nil {
		return nil, DownloadOutput{}, fmt.Errorf("close %s: %w", path, err)
	}

	out := DownloadOutput{Path: path, FileName: domain.BaseFileName(result.FileName)}
	if info, err := os.Stat(path); err == nil {
		out.Bytes = info.Size()
	}
	return nil, out, nil
}

func (s *Server) handleLastResult(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, ResultOutput, error) {
	result, err := s.ports.Editor.LastResult(ctx)
	if err != nil {
		return nil, ResultOutput{}, err
	}
	return nil, resultOutput(result), nil
}

func (s *Server) handleReset(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, StatusOutput, error) {
	if err := s.ports.Editor.Reset(ctx); err != nil {
		return nil, StatusOutput{}, err
	}
	return nil, s.statusOutput(), nil
}

func (s *Server) handleStatus(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, StatusOutput, error) {
	return nil, s.statusOutput(), nil
}

func (s *Server) handleApplyPlan(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PlanInput,
) (*mcp.CallToolResult, ListOutput, error) {
	if s.ports.Plan == nil {
		return nil, ListOutput{}, ErrPlansUnavailable
	}
	created, err := s.ports.Plan.Apply(ctx, input.Path)
	if err != nil {
		return nil, ListOutput{}, err
	}
	return nil, listOutput(created), nil
}

func (s *Server) documentOutput(doc *domain.DocumentInfo) DocumentOutput {
	out := DocumentOutput{
		Name:      doc.Name,
		Path:      doc.Path,
		PageCount: doc.PageCount,
		Pages:     make([]PageOutput, 0, doc.PageCount),
	}
	for page := 1; page <= doc.PageCount; page++ {
		if g, ok := s.ports.Editor.Geometry(page); ok {
			out.Pages = append(out.Pages, PageOutput{Page: page, Width: g.WidthPoints, Height: g.HeightPoints})
		}
	}
	return out
}

func (s *Server) statusOutput() StatusOutput {
	return StatusOutput{
		Phase: string(s.ports.Editor.Phase()),
		Tool:  s.ports.Editor.ActiveTool().String(),
	}
}

func annotationOutput(a domain.Annotation) AnnotationOutput {
	out := AnnotationOutput{
		ID:       a.ID,
		Kind:     a.Kind.String(),
		Page:     a.PageIndex,
		XPercent: a.XPercent,
		YPercent: a.YPercent,
	}
	if a.Kind.IsTextual() {
		out.Content = a.Content
		out.FontSize = a.FontSize
		out.Color = a.Color
	} else {
		out.DisplayWidth = a.DisplayWidth
		out.DisplayHeight = a.DisplayHeight
		out.HasImage = a.ImageData != ""
	}
	return out
}

func listOutput(annotations []domain.Annotation) ListOutput {
	out := ListOutput{
		Annotations: make([]AnnotationOutput, len(annotations)),
		Count:       len(annotations),
	}
	for i := range annotations {
		out.Annotations[i] = annotationOutput(annotations[i])
	}
	return out
}

func resultOutput(r *domain.ProcessedFile) ResultOutput {
	return ResultOutput{FileName: r.FileName, OriginalName: r.OriginalName}
}

// downloadPath resolves where a download is written: the given file, the
// result name inside the given directory, or the result name in the working
// directory.
func downloadPath(target, name string) string {
	if target == "" {
		return name
	}
	if info, err := os.Stat(target); err == nil && info.IsDir() {
		return filepath.Join(target, name)
	}
	return target
}
