package output

import (
	"fmt"
	"io"
	"os"
)

const errorOpenOutputFormat = "unable to open output file '%s': %w"

// Sink is the destination of a concatenation: either a file or standard output.
type Sink struct {
	Writer      io.Writer
	Destination string
	file        *os.File
}

// OpenSink creates (or truncates) outputPath, or wraps standardOutput when outputPath is empty.
func OpenSink(outputPath string, standardOutput io.Writer) (*Sink, error) {
	if outputPath == "" {
		return &Sink{Writer: standardOutput}, nil
	}
	outputFile, createError := os.Create(outputPath)
	if createError != nil {
		return nil, fmt.Errorf(errorOpenOutputFormat, outputPath, createError)
	}
	return &Sink{Writer: outputFile, Destination: outputPath, file: outputFile}, nil
}

// IsStandardOutput reports whether the sink writes to standard output.
func (sink *Sink) IsStandardOutput() bool {
	return sink.file == nil
}

// Close releases the output file. Standard output is never closed.
func (sink *Sink) Close() error {
	if sink == nil || sink.file == nil {
		return nil
	}
	return sink.file.Close()
}
