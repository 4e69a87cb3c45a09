package types

// Content kinds a generation request can ask for.
const (
	ContentTypeNotes  = "notes"
	ContentTypeSlides = "slides"
	ContentTypeMCQs   = "mcqs"
	ContentTypeAll    = "all"
)

// GenerationRequest is the inbound body for POST /api/content/generate.
// Field bounds live in the binding tags so gin rejects out-of-range
// requests before they reach the service.
type GenerationRequest struct {
	Topic              string `json:"topic" binding:"required,min=2,max=200"`
	Subject            string `json:"subject" binding:"required,min=2,max=100"`
	Difficulty         string `json:"difficulty" binding:"omitempty,oneof=beginner intermediate advanced"`
	ContentType        string `json:"content_type" binding:"required,oneof=notes slides mcqs all"`
	MCQCount           int    `json:"mcq_count" binding:"omitempty,min=5,max=50"`
	SlideCount         int    `json:"slide_count" binding:"omitempty,min=5,max=20"`
	CustomInstructions string `json:"custom_instructions" binding:"omitempty,max=500"`
}

// ApplyDefaults fills the optional fields the same way the validation
// schema defaults them.
func (r *GenerationRequest) ApplyDefaults() {
	if r.Difficulty == "" {
		r.Difficulty = "intermediate"
	}
	if r.MCQCount == 0 {
		r.MCQCount = 10
	}
	if r.SlideCount == 0 {
		r.SlideCount = 12
	}
}

// GeneratedContent is the canonical payload stored in the
// generated_content column. Only the requested kinds are set.
type GeneratedContent struct {
	Notes  string       `json:"notes,omitempty"`
	Slides string       `json:"slides,omitempty"`
	MCQs   *QuestionSet `json:"mcqs,omitempty"`
}

// QuestionSet holds parsed MCQs. When the model returns something that is
// not the requested JSON shape, Questions is empty, ParseError is true and
// RawResponse keeps the original text for diagnostics. That case is not an
// error: MCQ generation only fails on transport problems.
type QuestionSet struct {
	Questions   []Question `json:"questions"`
	ParseError  bool       `json:"parse_error,omitempty"`
	RawResponse string     `json:"raw_response,omitempty"`
}

// Question is a single multiple-choice question. CorrectAnswer should be
// one of the option labels but the model is not trusted to guarantee it,
// so consumers must tolerate a label that is missing from Options.
type Question struct {
	ID            int               `json:"id"`
	Question      string            `json:"question"`
	Options       map[string]string `json:"options"`
	CorrectAnswer string            `json:"correct_answer"`
	Explanation   string            `json:"explanation"`
}

// Slide is one parsed block of slide-delimited markdown.
type Slide struct {
	Title   string   `json:"title"`
	Bullets []string `json:"bullets"`
	Notes   string   `json:"notes,omitempty"`
}

// Export formats.
const (
	ExportFormatMarkdown = "markdown"
	ExportFormatHTML     = "html"
	ExportFormatPDF      = "pdf"
	ExportFormatJSON     = "json"
	ExportFormatPPTX     = "pptx"
)

// ExportRequest is the inbound body for POST /api/content/export.
type ExportRequest struct {
	Format   string `json:"format" binding:"required,oneof=markdown html pdf json pptx"`
	Content  string `json:"content" binding:"required"`
	Filename string `json:"filename" binding:"required"`
}

// ExportArtifact describes one rendered file. It is returned to the
// caller and not persisted; only the file itself survives the request.
type ExportArtifact struct {
	Format      string `json:"format"`
	FileName    string `json:"filename"`
	FilePath    string `json:"-"`
	DownloadURL string `json:"download_url"`
}

// ModelInfo describes one tier of the upstream model catalog.
type ModelInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	BestFor     string `json:"best_for"`
}
