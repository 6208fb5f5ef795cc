package latex

import (
	"regexp"
	"strconv"
	"strings"

	"kgeyst.com/tikzgen/pkg/tikzgen/domain"
)

var lineNumberPattern = regexp.MustCompile(`^l\.(\d+)`)

// ParseLog extracts errors from a LaTeX compilation log. The engine reports an error as a line starting
// with "! ", optionally followed (a few lines below) by "l.<number>" pointing at the offending source line.
func ParseLog(log string) []domain.CompileError {
	var compileErrors []domain.CompileError
	lines := strings.Split(log, "\n")
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if !strings.HasPrefix(line, "! ") {
			continue
		}
		compileError := domain.CompileError{
			Message: strings.TrimSpace(strings.TrimPrefix(line, "! ")),
		}
		// The line pointer follows within the next few lines, after the engine's context dump.
		for j := i + 1; j < len(lines) && j < i+10; j++ {
			if match := lineNumberPattern.FindStringSubmatch(lines[j]); match != nil {
				compileError.Line, _ = strconv.Atoi(match[1])
				break
			}
		}
		compileErrors = append(compileErrors, compileError)
	}
	return compileErrors
}
