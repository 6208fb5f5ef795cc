package latex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLog = `This is pdfTeX, Version 3.141592653-2.6-1.40.24 (TeX Live 2022)
entering extended mode
(./main.tex
LaTeX2e <2022-11-01>
! Undefined control sequence.
l.7 \drw
         (0,0) circle (1cm);
?
! LaTeX Error: Environment tikzpicture undefined.

See the LaTeX manual or LaTeX Companion for explanation.
Type  H <return>  for immediate help.
 ...

l.6 \begin{tikzpicture}
Output written on main.pdf (1 page, 1234 bytes).
`

func TestParseLog(t *testing.T) {
	compileErrors := ParseLog(sampleLog)
	require.Len(t, compileErrors, 2)
	assert.Equal(t, "Undefined control sequence.", compileErrors[0].Message)
	assert.Equal(t, 7, compileErrors[0].Line)
	assert.Equal(t, "LaTeX Error: Environment tikzpicture undefined.", compileErrors[1].Message)
	assert.Equal(t, 6, compileErrors[1].Line)
}

func TestParseLogCleanRun(t *testing.T) {
	log := "This is pdfTeX\n(./main.tex)\nOutput written on main.pdf (1 page).\n"
	assert.Empty(t, ParseLog(log))
}

func TestParseLogMissingPackage(t *testing.T) {
	log := "! LaTeX Error: File `tikz-3dplot.sty' not found.\n"
	compileErrors := ParseLog(log)
	require.Len(t, compileErrors, 1)
	assert.Contains(t, compileErrors[0].Message, "tikz-3dplot.sty")
	assert.Equal(t, 0, compileErrors[0].Line)
}
