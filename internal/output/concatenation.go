// Package output writes the concatenated document and its auxiliary summary lines.
package output

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

const (
	// HeaderOpeningBanner starts the directory structure section.
	HeaderOpeningBanner = "===== Directory Structure Header ====="
	// HeaderClosingBanner ends the directory structure section.
	HeaderClosingBanner = "======================================"
	// NoFilesMatchedLine replaces the tree when nothing passed the filters.
	NoFilesMatchedLine = "(No files matched the filters.)"

	startOfFileFormat  = "===== START OF FILE: %s =====\n"
	endOfFileFormat    = "===== END OF FILE: %s =====\n\n"
	readErrorFormat    = "[Error reading file: %v]\n"
	errorWriteFormat   = "writing concatenated output: %w"
	headerLineTemplate = "%s\n"
)

// FileReader loads the raw bytes of a file.
type FileReader func(path string) ([]byte, error)

// ConcatenationWriter renders the directory header followed by every file between delimiter lines.
type ConcatenationWriter struct {
	destination io.Writer
	readFile    FileReader
}

// NewConcatenationWriter returns a writer that reads files from disk.
func NewConcatenationWriter(destination io.Writer) *ConcatenationWriter {
	return &ConcatenationWriter{destination: destination, readFile: os.ReadFile}
}

// WithFileReader replaces the function used to load file content.
func (concatenationWriter *ConcatenationWriter) WithFileReader(readFile FileReader) *ConcatenationWriter {
	concatenationWriter.readFile = readFile
	return concatenationWriter
}

// Write emits the header built from treeLines and then the content of files in the given order.
// A file that cannot be read is replaced by an inline error marker. Only failures of the
// destination itself are returned.
func (concatenationWriter *ConcatenationWriter) Write(treeLines []string, files []string) error {
	bufferedWriter := bufio.NewWriter(concatenationWriter.destination)
	concatenationWriter.writeHeader(bufferedWriter, treeLines)
	for _, filePath := range files {
		concatenationWriter.writeFile(bufferedWriter, filePath)
	}
	if flushError := bufferedWriter.Flush(); flushError != nil {
		return fmt.Errorf(errorWriteFormat, flushError)
	}
	return nil
}

func (concatenationWriter *ConcatenationWriter) writeHeader(bufferedWriter *bufio.Writer, treeLines []string) {
	fmt.Fprintf(bufferedWriter, headerLineTemplate, HeaderOpeningBanner)
	if len(treeLines) == 0 {
		fmt.Fprintf(bufferedWriter, headerLineTemplate, NoFilesMatchedLine)
	}
	for _, treeLine := range treeLines {
		fmt.Fprintf(bufferedWriter, headerLineTemplate, treeLine)
	}
	fmt.Fprintf(bufferedWriter, headerLineTemplate, HeaderClosingBanner)
	bufferedWriter.WriteString(lineFeed)
}

func (concatenationWriter *ConcatenationWriter) writeFile(bufferedWriter *bufio.Writer, filePath string) {
	fmt.Fprintf(bufferedWriter, startOfFileFormat, filePath)
	fileBytes, readError := concatenationWriter.readFile(filePath)
	if readError != nil {
		fmt.Fprintf(bufferedWriter, readErrorFormat, readError)
	} else {
		bufferedWriter.WriteString(DecodeContent(fileBytes))
	}
	fmt.Fprintf(bufferedWriter, endOfFileFormat, filePath)
}
