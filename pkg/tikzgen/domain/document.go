package domain

import (
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrNotCompiled = errors.New("document is not compiled")

// TikzDocument a single generated drawing: the code the model produced for a caption, plus the artifacts
// the toolchain compiled from it.
type TikzDocument struct {
	ID        string
	Caption   string
	Code      string
	CreatedAt time.Time

	result     *CompileResult
	rasterizer Rasterizer

	mutex      sync.Mutex
	hasContent *bool // lazily computed, see HasContent()
}

func NewTikzDocument(caption, code string, result *CompileResult, rasterizer Rasterizer) *TikzDocument {
	return &TikzDocument{
		ID:         uuid.NewString(),
		Caption:    caption,
		Code:       code,
		CreatedAt:  time.Now(),
		result:     result,
		rasterizer: rasterizer,
	}
}

// NewStoredTikzDocument recreates a document previously loaded from a repository. Compile artifacts are
// not persisted, so such a document cannot be rasterized again without recompiling its code.
func NewStoredTikzDocument(id, caption, code string, hasContent bool, createdAt time.Time) *TikzDocument {
	return &TikzDocument{
		ID:         id,
		Caption:    caption,
		Code:       code,
		CreatedAt:  createdAt,
		hasContent: &hasContent,
	}
}

func (t *TikzDocument) CompileResult() *CompileResult {
	return t.result
}

func (t *TikzDocument) IsCompiled() bool {
	return t.result.Compiled()
}

// HasContent reports whether the compiled drawing actually renders any visible content. Models sometimes
// emit documents which compile perfectly fine and yet draw nothing, so a successful compilation alone
// is not enough. The check rasterizes the document once and scans for non-background pixels. The result
// is cached under a mutex: the repository worker persists this flag concurrently with the frontends.
func (t *TikzDocument) HasContent() bool {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if t.hasContent != nil {
		return *t.hasContent
	}
	hasContent := false
	if t.IsCompiled() && t.rasterizer != nil {
		img, err := t.rasterizer.Rasterize(t.result, DefaultRasterSize)
		if err == nil {
			hasContent = !isBlankImage(img)
		}
	}
	t.hasContent = &hasContent
	return hasContent
}

// Rasterize renders the document to a bitmap whose longest side is `size` pixels.
func (t *TikzDocument) Rasterize(size int) (image.Image, error) {
	if !t.IsCompiled() {
		return nil, ErrNotCompiled
	}
	if t.rasterizer == nil {
		return nil, ErrNotCompiled
	}
	return t.rasterizer.Rasterize(t.result, size)
}

// Save writes the document's artifacts (code, and the compiled PDF if present) into the given directory,
// named after the document's ID. Returns the path of the written code file.
func (t *TikzDocument) Save(dir string) (string, error) {
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return "", err
	}
	texPath := filepath.Join(dir, t.ID+".tex")
	err = os.WriteFile(texPath, []byte(t.Code), 0644)
	if err != nil {
		return "", err
	}
	if t.IsCompiled() {
		err = os.WriteFile(filepath.Join(dir, t.ID+".pdf"), t.result.PDF, 0644)
		if err != nil {
			return "", err
		}
	}
	return texPath, nil
}

// SaveImage rasterizes the document and writes it as a PNG file.
func (t *TikzDocument) SaveImage(path string, size int) error {
	img, err := t.Rasterize(size)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = file.Close()
	}()
	return png.Encode(file, img)
}

// A pixel counts as background if it's fully transparent or close enough to white. The tolerance absorbs
// antialiasing artifacts around the page border.
func isBlankImage(img image.Image) bool {
	const threshold = 0xF000
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			if r < threshold || g < threshold || b < threshold {
				return false
			}
		}
	}
	return true
}
