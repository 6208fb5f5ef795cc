package domain_test

import (
	"context"
	"errors"
	"image"
	"image/color"
	"strings"
	"sync"
	"sync/atomic"

	"kgeyst.com/tikzgen/pkg/tikzgen/domain"
)

type nullLogger struct{}

func (n *nullLogger) Log(string) {}

// fakeLanguageModel replays scripted responses, one per Complete call.
type fakeLanguageModel struct {
	responses []string
	calls     int
	err       error
}

func (f *fakeLanguageModel) Name() string {
	return "fake"
}

func (f *fakeLanguageModel) Complete(prompt string, options domain.CompleteOptions) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if f.calls >= len(f.responses) {
		return prompt + "\n", nil
	}
	response := f.responses[f.calls]
	f.calls++
	if options.OnToken != nil {
		options.OnToken(response)
	}
	return prompt + "\n" + response, nil
}

func (f *fakeLanguageModel) PromptFormatter() domain.PromptFormatter {
	return &fakePromptFormatter{}
}

func (f *fakeLanguageModel) ResponseCleaner() domain.ResponseCleaner {
	return &fakeResponseCleaner{}
}

type fakePromptFormatter struct{}

func (f *fakePromptFormatter) FormatPrompt(caption string) string {
	return caption + "<sep>"
}

type fakeResponseCleaner struct{}

func (f *fakeResponseCleaner) CleanResponse(options domain.CleanOptions) string {
	if len(options.Response) < len(options.Prompt)+1 {
		return ""
	}
	return strings.TrimSpace(options.Response[len(options.Prompt)+1:])
}

// fakeCompiler "compiles" anything containing the word "good" and fails everything else.
type fakeCompiler struct {
	err error
}

func (f *fakeCompiler) Compile(_ context.Context, code string) (*domain.CompileResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	if !strings.Contains(code, "good") {
		return &domain.CompileResult{
			Log:    "! Undefined control sequence.\nl.1 \\bad",
			Errors: []domain.CompileError{{Line: 1, Message: "Undefined control sequence."}},
		}, nil
	}
	result := &domain.CompileResult{PDF: []byte("%PDF-1.5 fake"), Log: "ok"}
	if !strings.Contains(code, "empty") {
		result.SVG = []byte("<svg/>")
	}
	return result, nil
}

// fakeRasterizer draws a black pixel unless the compiled document has no SVG.
type fakeRasterizer struct {
	err   error
	calls int32
}

func (f *fakeRasterizer) Rasterize(result *domain.CompileResult, size int) (image.Image, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.err != nil {
		return nil, f.err
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.Set(x, y, color.White)
		}
	}
	if len(result.SVG) > 0 {
		img.Set(size/2, size/2, color.Black)
	}
	return img, nil
}

type fakeDocumentRepository struct {
	mutex     sync.Mutex
	documents []*domain.TikzDocument
}

func (f *fakeDocumentRepository) Store(document *domain.TikzDocument) error {
	// The sqlite repository persists the content flag, so reading it here exercises the same
	// caller/worker sharing of the document.
	_ = document.HasContent()
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.documents = append(f.documents, document)
	return nil
}

func (f *fakeDocumentRepository) Find(filter domain.DocumentFilter) ([]*domain.TikzDocument, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	documents := f.documents
	if filter.LatestCount > 0 && len(documents) > filter.LatestCount {
		documents = documents[len(documents)-filter.LatestCount:]
	}
	return documents, nil
}

func (f *fakeDocumentRepository) RemoveAll() error {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.documents = nil
	return nil
}

func (f *fakeDocumentRepository) count() int {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return len(f.documents)
}

var errBoom = errors.New("boom")
