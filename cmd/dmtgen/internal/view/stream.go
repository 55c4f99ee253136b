package view

import (
	"fmt"
	"io"
)

// Stream is the destination of command output.
type Stream struct {
	Writer io.Writer
}

// NewStream returns a stream writing to w.
func NewStream(w io.Writer) *Stream {
	return &Stream{
		Writer: w,
	}
}

// Println formats using the default formats for its operands and writes to
// the stream.
func (s *Stream) Println(args ...any) {
	fmt.Fprintln(s.Writer, args...)
}

// Printf formats according to a format specifier and writes to the stream.
func (s *Stream) Printf(fmtStr string, args ...any) {
	fmt.Fprintf(s.Writer, fmtStr, args...)
}
