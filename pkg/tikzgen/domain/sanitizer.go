package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mvdan/xurls"
)

var ErrUnsafeCode = errors.New("unsafe code")

// Primitives which read or write arbitrary files, or escape to a shell. The model has seen them in the
// wild during training and occasionally emits them, so we must refuse to compile such candidates.
var bannedPrimitives = []string{
	"\\write18",
	"\\input",
	"\\include",
	"\\openin",
	"\\openout",
	"\\immediate\\write",
	"\\ShellEscape",
}

// CodeSanitizer checks generated code before it's passed to the compiler. The compiler itself runs with
// shell escape disabled, but rejecting bad candidates early gives the retry loop a chance to sample a safe one.
type CodeSanitizer struct{}

func NewCodeSanitizer() *CodeSanitizer {
	return &CodeSanitizer{}
}

func (c *CodeSanitizer) SanitizeCode(code string) error {
	for _, primitive := range bannedPrimitives {
		if strings.Contains(code, primitive) {
			return fmt.Errorf("%w: contains %s", ErrUnsafeCode, primitive)
		}
	}
	// We use the strict matcher because LaTeX code is full of dotted words which the relaxed matcher
	// mistakes for domain names.
	if url := xurls.Strict.FindString(code); url != "" {
		return fmt.Errorf("%w: references external resource %s", ErrUnsafeCode, url)
	}
	return nil
}
