package latex

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"kgeyst.com/tikzgen/pkg/common"
	"kgeyst.com/tikzgen/pkg/tikzgen/domain"
)

const (
	// ConfigKeyLatexCommand the LaTeX engine used for compilation
	ConfigKeyLatexCommand = "latexCommand"
	// ConfigKeyDvisvgmCommand the converter used to turn compiled PDFs into SVG for rasterization
	ConfigKeyDvisvgmCommand = "dvisvgmCommand"
	// ConfigKeyCompileTimeout when to give up on a single compilation. Generated code can contain
	// accidental infinite loops (\foreach with a broken step, for example), so a timeout is a must.
	ConfigKeyCompileTimeout = "compileTimeout"
)

// Compiler shells out to a LaTeX toolchain installed on the host. Each compilation happens in a fresh
// temporary directory which is removed afterwards, so repeated runs cannot influence each other.
type Compiler struct {
	namedMutexAcquirer domain.NamedMutexAcquirer
	logger             common.Logger
	latexCommand       string
	dvisvgmCommand     string
	compileTimeout     time.Duration
}

func NewCompiler(
	namedMutexAcquirer domain.NamedMutexAcquirer,
	config *common.Config,
	logger common.Logger,
) *Compiler {
	return &Compiler{
		namedMutexAcquirer: namedMutexAcquirer,
		logger:             logger,
		latexCommand:       config.GetStringOrDefault(ConfigKeyLatexCommand, "pdflatex"),
		dvisvgmCommand:     config.GetStringOrDefault(ConfigKeyDvisvgmCommand, "dvisvgm"),
		compileTimeout:     config.GetDurationOrDefault(ConfigKeyCompileTimeout, time.Minute),
	}
}

func (c *Compiler) Compile(ctx context.Context, code string) (*domain.CompileResult, error) {
	// LaTeX writes a pile of temporary files, and concurrent compilations of the same document name can
	// trip over each other when the temp dir is shared between processes (e.g. in tests).
	namedMutex, err := c.namedMutexAcquirer.AcquireNamedMutex("latexCompile", c.compileTimeout)
	if err != nil {
		return nil, err
	}
	defer namedMutex.Release()
	dir, err := os.MkdirTemp("", "tikzgen-")
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = os.RemoveAll(dir)
	}()
	texPath := filepath.Join(dir, "main.tex")
	err = os.WriteFile(texPath, []byte(EnsureCompleteDocument(code)), 0644)
	if err != nil {
		return nil, err
	}
	compileCtx, cancelFunc := context.WithTimeout(ctx, c.compileTimeout)
	defer cancelFunc()
	cmd := exec.CommandContext(
		compileCtx,
		c.latexCommand,
		"-interaction=nonstopmode",
		"-no-shell-escape",
		"-output-directory", dir,
		texPath,
	)
	cmd.Dir = dir
	// The engine returns a non-zero exit code even for errors it recovered from, so the exit code alone
	// is meaningless; the log and the presence of the PDF tell the real story.
	if err := cmd.Run(); err != nil {
		c.logger.Log("latex exited with an error: " + err.Error() + "\n")
	}
	logBytes, _ := os.ReadFile(filepath.Join(dir, "main.log"))
	result := &domain.CompileResult{
		Log:    string(logBytes),
		Errors: ParseLog(string(logBytes)),
	}
	pdfBytes, err := os.ReadFile(filepath.Join(dir, "main.pdf"))
	if err != nil {
		return result, nil
	}
	result.PDF = pdfBytes
	result.SVG, err = c.convertToSVG(ctx, dir)
	if err != nil {
		c.logger.Log("failed to convert the document to SVG: " + err.Error() + "\n")
	}
	return result, nil
}

// The rasterizer cannot load system fonts, so glyphs are converted to paths during the SVG conversion.
func (c *Compiler) convertToSVG(ctx context.Context, dir string) ([]byte, error) {
	convertCtx, cancelFunc := context.WithTimeout(ctx, c.compileTimeout)
	defer cancelFunc()
	cmd := exec.CommandContext(
		convertCtx,
		c.dvisvgmCommand,
		"--pdf",
		"--no-fonts",
		"-o", filepath.Join(dir, "main.svg"),
		filepath.Join(dir, "main.pdf"),
	)
	cmd.Dir = dir
	err := cmd.Run()
	if err != nil {
		return nil, err
	}
	return os.ReadFile(filepath.Join(dir, "main.svg"))
}

// EnsureCompleteDocument makes the generated code compilable on its own. The model is expected to emit a
// complete document, but candidates are sometimes truncated (token budget) or contain only the picture
// environment, and both cases are cheap to repair instead of rejecting.
func EnsureCompleteDocument(code string) string {
	if !strings.Contains(code, "\\documentclass") {
		return "\\documentclass[tikz]{standalone}\n\\begin{document}\n" + code + "\n\\end{document}\n"
	}
	if !strings.Contains(code, "\\end{document}") {
		return code + "\n\\end{document}\n"
	}
	return code
}
