package domain

import "context"

// CompileError a single error extracted from the LaTeX compilation log.
type CompileError struct {
	// Line the line in the source which triggered the error, or 0 if unknown
	Line int
	// Message the error message as reported by the compiler
	Message string
}

// CompileResult everything the toolchain produced for a single piece of code. The PDF can be present
// even when Errors is non-empty, because the compiler runs in non-stop mode and recovers from many errors.
type CompileResult struct {
	PDF    []byte
	SVG    []byte
	Log    string
	Errors []CompileError
}

// Compiled returns true if the toolchain managed to produce a document at all. A compiled document
// can still be empty, see TikzDocument.HasContent().
func (c *CompileResult) Compiled() bool {
	return c != nil && len(c.PDF) > 0
}

// Compiler turns TikZ code into a compiled vector document.
type Compiler interface {
	Compile(ctx context.Context, code string) (*CompileResult, error)
}
