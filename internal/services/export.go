package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gorm.io/gorm"

	"github.com/studyforge/studyforge-backend/internal/logger"
	"github.com/studyforge/studyforge-backend/internal/platform/pptx"
	"github.com/studyforge/studyforge-backend/internal/types"
)

// PDFRenderer prints HTML to PDF bytes. Satisfied by the chromedp
// renderer in platform/pdf.
type PDFRenderer interface {
	Render(ctx context.Context, html string) ([]byte, error)
}

type ExportService interface {
	// Export renders content into the requested format under the exports
	// directory and returns the artifact location. A failed export never
	// leaves a partial file at the download path.
	Export(ctx context.Context, req types.ExportRequest) (*types.ExportArtifact, error)
}

type exportService struct {
	db       *gorm.DB
	log      *logger.Logger
	dir      string
	pdf      PDFRenderer
	markdown goldmark.Markdown
}

func NewExportService(db *gorm.DB, baseLog *logger.Logger, dir string, pdfRenderer PDFRenderer) (ExportService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export directory: %w", err)
	}
	return &exportService{
		db:       db,
		log:      baseLog.With("service", "ExportService"),
		dir:      dir,
		pdf:      pdfRenderer,
		markdown: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}, nil
}

var filenamePattern = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// SanitizeFilename reduces a requested filename to the allowed character
// set so it can never traverse outside the exports directory.
func SanitizeFilename(name string) (string, error) {
	safe := filenamePattern.ReplaceAllString(name, "_")
	if strings.Trim(safe, "_") == "" {
		return "", types.ErrInvalidFilename
	}
	return safe, nil
}

func (s *exportService) Export(ctx context.Context, req types.ExportRequest) (*types.ExportArtifact, error) {
	name, err := SanitizeFilename(req.Filename)
	if err != nil {
		return nil, err
	}

	var (
		fileName string
		data     []byte
	)
	switch req.Format {
	case types.ExportFormatMarkdown:
		fileName = name + ".md"
		data = []byte(req.Content)

	case types.ExportFormatHTML:
		fileName = name + ".html"
		page, err := s.renderHTML(name, req.Content)
		if err != nil {
			return nil, err
		}
		data = []byte(page)

	case types.ExportFormatPDF:
		fileName = name + ".pdf"
		page, err := s.renderHTML(name, req.Content)
		if err != nil {
			return nil, err
		}
		data, err = s.pdf.Render(ctx, page)
		if err != nil {
			return nil, err
		}

	case types.ExportFormatJSON:
		fileName = name + ".json"
		data, err = reindentJSON(req.Content)
		if err != nil {
			return nil, err
		}

	case types.ExportFormatPPTX:
		fileName = name + ".pptx"
		data, err = renderDeck(req.Content)
		if err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("unsupported export format %q", req.Format)
	}

	filePath := filepath.Join(s.dir, fileName)
	if err := s.writeAtomic(filePath, data); err != nil {
		return nil, err
	}

	s.log.Info("Exported artifact", "format", req.Format, "file", fileName, "bytes", len(data))
	return &types.ExportArtifact{
		Format:      req.Format,
		FileName:    fileName,
		FilePath:    filePath,
		DownloadURL: "/exports/" + fileName,
	}, nil
}

const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>%s</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 800px; margin: 0 auto; padding: 20px; line-height: 1.6; }
        h1, h2, h3 { color: #2c3e50; }
        code { background: #f4f4f4; padding: 2px 4px; border-radius: 3px; }
        pre { background: #f4f4f4; padding: 15px; border-radius: 5px; overflow-x: auto; }
        blockquote { border-left: 4px solid #3498db; margin: 0; padding-left: 20px; color: #7f8c8d; }
    </style>
</head>
<body>
%s</body>
</html>`

func (s *exportService) renderHTML(title, markdown string) (string, error) {
	var body bytes.Buffer
	if err := s.markdown.Convert([]byte(markdown), &body); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return fmt.Sprintf(htmlTemplate, html.EscapeString(title), body.String()), nil
}

// reindentJSON validates that the content is JSON and reserializes it
// with two-space indentation. Invalid input is a caller error, not
// recovered.
func reindentJSON(content string) ([]byte, error) {
	var value any
	if err := json.Unmarshal([]byte(content), &value); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidJSON, err)
	}
	return json.MarshalIndent(value, "", "  ")
}

func renderDeck(slidesMarkdown string) ([]byte, error) {
	deck := pptx.NewDeck()
	for _, slide := range ParseSlides(slidesMarkdown) {
		deck.AddSlide(slide.Title, slide.Bullets)
	}
	var buf bytes.Buffer
	if err := deck.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write deck: %w", err)
	}
	return buf.Bytes(), nil
}

// writeAtomic stages the artifact in a temp file and renames it into
// place, so a failure mid-write leaves nothing reachable at the
// download path.
func (s *exportService) writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("stage export file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write export file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close export file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("finalize export file: %w", err)
	}
	return nil
}
