package scan

import (
	"fmt"
	"io"

	"github.com/temirov/uncommitted/internal/repos/shared"
	"github.com/temirov/uncommitted/internal/utils"
)

// reportWriter emits report blocks line by line, flushing buffered sinks after every write.
type reportWriter struct {
	writer io.Writer
}

func newReportWriter(outputWriter io.Writer) *reportWriter {
	if outputWriter == nil {
		outputWriter = io.Discard
	}
	return &reportWriter{writer: utils.NewFlushingWriter(outputWriter)}
}

// writeRepository prints "<directory> - <Name>", the report lines, and a blank separator.
func (report *reportWriter) writeRepository(reference shared.RepositoryReference, lines []string) error {
	if writeError := report.writeLine(fmt.Sprintf(repositoryHeaderTemplateConstant, reference.Directory, reference.Kind.DisplayName())); writeError != nil {
		return writeError
	}
	for _, line := range lines {
		if writeError := report.writeLine(line); writeError != nil {
			return writeError
		}
	}
	return report.writeLine("")
}

func (report *reportWriter) writeIgnored(directory string) error {
	if writeError := report.writeLine(fmt.Sprintf(ignoredRepositoryTemplateConstant, directory)); writeError != nil {
		return writeError
	}
	return report.writeLine("")
}

func (report *reportWriter) writeLine(line string) error {
	if _, writeError := io.WriteString(report.writer, line+"\n"); writeError != nil {
		return fmt.Errorf(reportWriteErrorTemplateConstant, writeError)
	}
	return nil
}
