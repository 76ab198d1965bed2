package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/devkavach22/kavach-edit/internal/core/domain"
	"github.com/devkavach22/kavach-edit/internal/core/ports/driven"
	"github.com/devkavach22/kavach-edit/internal/logger"
)

// Ensure Renderer implements the interface.
var _ driven.EditBackend = (*Renderer)(nil)

// unsafeNameChars matches characters replaced in output base names.
var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// Renderer applies edit instructions locally and stores results in a
// directory.
type Renderer struct {
	outputDir string
	conf      *model.Configuration
	now       func() time.Time
}

// NewRenderer creates a renderer writing into outputDir.
func NewRenderer(outputDir string) *Renderer {
	return &Renderer{
		outputDir: outputDir,
		conf:      newConfiguration(),
		now:       time.Now,
	}
}

// Edit stamps every instruction onto its page and writes the result as
// <base>_edited_<unix ms>.pdf.
func (r *Renderer) Edit(ctx context.Context, req domain.EditRequest) (*domain.ProcessedFile, error) {
	if req.SourcePath == "" {
		return nil, fmt.Errorf("%w: no source document", domain.ErrInvalidInput)
	}

	current, err := os.ReadFile(req.SourcePath)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}

	dims, err := api.PageDims(bytes.NewReader(current), r.conf)
	if err != nil {
		return nil, fmt.Errorf("%w: read page sizes: %v", domain.ErrBackend, err)
	}

	for i, in := range req.Instructions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if in.PageIndex < 0 || in.PageIndex >= len(dims) {
			return nil, fmt.Errorf("%w: instruction %d targets page %d of %d",
				domain.ErrInvalidInput, i, in.PageIndex+1, len(dims))
		}

		current, err = r.stamp(current, in)
		if err != nil {
			return nil, fmt.Errorf("%w: instruction %d: %v", domain.ErrBackend, i, err)
		}
	}

	if err := os.MkdirAll(r.outputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	originalName := req.OriginalName
	if originalName == "" {
		originalName = filepath.Base(req.SourcePath)
	}
	name := outputName(originalName, r.now())

	if err := os.WriteFile(filepath.Join(r.outputDir, name), current, 0644); err != nil {
		return nil, fmt.Errorf("write output: %w", err)
	}

	logger.Debug("rendered %d instruction(s) into %s", len(req.Instructions), name)
	return &domain.ProcessedFile{FileName: name, OriginalName: originalName}, nil
}

// Download copies a rendered file into w.
func (r *Renderer) Download(ctx context.Context, fileName string, w io.Writer) error {
	name := domain.BaseFileName(fileName)
	if name == "" {
		return fmt.Errorf("%w: empty file name", domain.ErrInvalidInput)
	}

	f, err := os.Open(filepath.Join(r.outputDir, name))
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, name)
	}
	if err != nil {
		return fmt.Errorf("open output: %w", err)
	}
	defer f.Close()

	_, err = io.Copy(w, f)
	return err
}

// stamp applies a single instruction to the PDF in memory.
func (r *Renderer) stamp(pdf []byte, in domain.EditInstruction) ([]byte, error) {
	var wm *model.Watermark
	var err error

	switch in.Type {
	case domain.InstructionText:
		wm, err = textStamp(in)
	case domain.InstructionImage:
		var cleanup func()
		wm, cleanup, err = imageStamp(in)
		if cleanup != nil {
			defer cleanup()
		}
	default:
		return nil, fmt.Errorf("unknown instruction type %q", in.Type)
	}
	if err != nil {
		return nil, err
	}

	pages := []string{strconv.Itoa(in.PageIndex + 1)}
	var out bytes.Buffer
	if err := api.AddWatermarks(bytes.NewReader(pdf), &out, pages, wm, r.conf); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// textStamp places text with its bottom-left corner at the instruction point.
func textStamp(in domain.EditInstruction) (*model.Watermark, error) {
	size := in.Size
	if size <= 0 {
		size = domain.DefaultFontSize
	}
	color := domain.DefaultColor
	if in.Color != nil {
		color = in.Color.Hex()
	}

	desc := fmt.Sprintf(
		"font:Helvetica, points:%d, scale:1 abs, pos:bl, offset:%d %d, rot:0, fillc:%s, op:1, mode:0",
		int(size+0.5), in.X, in.Y, color)

	return api.TextWatermark(in.Value, desc, true, false, types.POINTS)
}

// imageStamp decodes the data URI to a temporary file, since pdfcpu reads
// image stamps from disk, and scales the image to the instruction width.
func imageStamp(in domain.EditInstruction) (*model.Watermark, func(), error) {
	mediaType, data, err := domain.DecodeDataURI(in.Src)
	if err != nil {
		return nil, nil, err
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("decode %s: %w", mediaType, err)
	}

	f, err := os.CreateTemp("", "kavach-stamp-*"+imageExt(mediaType))
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { os.Remove(f.Name()) }

	if _, err := f.Write(data); err != nil {
		f.Close()
		return nil, cleanup, err
	}
	if err := f.Close(); err != nil {
		return nil, cleanup, err
	}

	width := in.Width
	if width <= 0 {
		width = domain.DefaultImageDisplayWidth
	}
	scale := 1.0
	if cfg.Width > 0 {
		scale = float64(width) / float64(cfg.Width)
	}

	desc := fmt.Sprintf("scale:%.4f abs, pos:bl, offset:%d %d, rot:0, op:1", scale, in.X, in.Y)
	wm, err := api.ImageWatermark(f.Name(), desc, true, false, types.POINTS)
	return wm, cleanup, err
}

func imageExt(mediaType string) string {
	switch mediaType {
	case "image/jpeg":
		return ".jpg"
	case "image/tiff":
		return ".tif"
	default:
		return ".png"
	}
}

// outputName builds the stored name for an edited copy of originalName.
func outputName(originalName string, at time.Time) string {
	base := strings.TrimSuffix(originalName, filepath.Ext(originalName))
	base = unsafeNameChars.ReplaceAllString(base, "_")
	if base == "" {
		base = "document"
	}
	return fmt.Sprintf("%s_edited_%d.pdf", base, at.UnixMilli())
}
