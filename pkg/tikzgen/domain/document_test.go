package domain_test

import (
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kgeyst.com/tikzgen/pkg/tikzgen/domain"
)

func TestDocumentHasContent(t *testing.T) {
	result := &domain.CompileResult{PDF: []byte("pdf"), SVG: []byte("<svg/>")}
	document := domain.NewTikzDocument("a red circle", "\\draw good;", result, &fakeRasterizer{})
	assert.True(t, document.IsCompiled())
	assert.True(t, document.HasContent())
}

func TestDocumentHasContentConcurrently(t *testing.T) {
	// The repository worker reads the flag while frontends do the same; the document must be safe to
	// share, and the drawing must be rasterized only once.
	result := &domain.CompileResult{PDF: []byte("pdf"), SVG: []byte("<svg/>")}
	rasterizer := &fakeRasterizer{}
	document := domain.NewTikzDocument("a red circle", "good", result, rasterizer)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.True(t, document.HasContent())
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), atomic.LoadInt32(&rasterizer.calls))
}

func TestDocumentHasNoContentWhenBlank(t *testing.T) {
	// A document can compile and still render nothing, e.g. an empty tikzpicture.
	result := &domain.CompileResult{PDF: []byte("pdf")}
	document := domain.NewTikzDocument("nothing", "good empty", result, &fakeRasterizer{})
	assert.True(t, document.IsCompiled())
	assert.False(t, document.HasContent())
}

func TestDocumentHasNoContentWhenNotCompiled(t *testing.T) {
	document := domain.NewTikzDocument("broken", "\\bad", &domain.CompileResult{}, &fakeRasterizer{})
	assert.False(t, document.IsCompiled())
	assert.False(t, document.HasContent())
}

func TestDocumentHasNoContentWhenRasterizationFails(t *testing.T) {
	result := &domain.CompileResult{PDF: []byte("pdf"), SVG: []byte("<svg/>")}
	document := domain.NewTikzDocument("a red circle", "good", result, &fakeRasterizer{err: errBoom})
	assert.False(t, document.HasContent())
}

func TestDocumentRasterizeNotCompiled(t *testing.T) {
	document := domain.NewTikzDocument("broken", "\\bad", &domain.CompileResult{}, &fakeRasterizer{})
	_, err := document.Rasterize(128)
	assert.ErrorIs(t, err, domain.ErrNotCompiled)
}

func TestDocumentSave(t *testing.T) {
	dir := t.TempDir()
	result := &domain.CompileResult{PDF: []byte("%PDF"), SVG: []byte("<svg/>")}
	document := domain.NewTikzDocument("a red circle", "\\draw (0,0) circle (1);", result, &fakeRasterizer{})
	texPath, err := document.Save(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, document.ID+".tex"), texPath)
	code, err := os.ReadFile(texPath)
	require.NoError(t, err)
	assert.Equal(t, document.Code, string(code))
	pdf, err := os.ReadFile(filepath.Join(dir, document.ID+".pdf"))
	require.NoError(t, err)
	assert.Equal(t, result.PDF, pdf)
}

func TestDocumentSaveNotCompiledWritesOnlyCode(t *testing.T) {
	dir := t.TempDir()
	document := domain.NewTikzDocument("broken", "\\bad", &domain.CompileResult{}, &fakeRasterizer{})
	texPath, err := document.Save(dir)
	require.NoError(t, err)
	_, err = os.Stat(texPath)
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, document.ID+".pdf"))
	assert.True(t, os.IsNotExist(err))
}

func TestDocumentSaveImage(t *testing.T) {
	dir := t.TempDir()
	result := &domain.CompileResult{PDF: []byte("pdf"), SVG: []byte("<svg/>")}
	document := domain.NewTikzDocument("a red circle", "good", result, &fakeRasterizer{})
	pngPath := filepath.Join(dir, "out.png")
	require.NoError(t, document.SaveImage(pngPath, 64))
	info, err := os.Stat(pngPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestStoredDocumentKeepsPersistedContentFlag(t *testing.T) {
	createdAt := time.Now().Add(-time.Hour)
	document := domain.NewStoredTikzDocument("some-id", "a red circle", "\\draw;", true, createdAt)
	assert.True(t, document.HasContent())
	assert.False(t, document.IsCompiled())
	assert.Equal(t, createdAt, document.CreatedAt)
}
