package output

import (
	"fmt"
	"io"

	"github.com/lgbarn/connect4-go/internal/worker"
)

// ResultWriter is the interface for writing analysis results to output.
// Different implementations handle different output formats (text, JSON).
type ResultWriter interface {
	// WriteResult writes a single result to the output.
	WriteResult(r worker.ProcessResult) error

	// Flush flushes any buffered data to the underlying writer.
	Flush() error

	// Close closes the writer and releases any resources.
	// For batch writers (like JSON), this also writes any pending output.
	Close() error
}

// NewResultWriter returns a JSON writer when json is set and a text
// writer otherwise.
func NewResultWriter(w io.Writer, json bool) ResultWriter {
	if json {
		return NewJSONWriter(w)
	}
	return NewTextWriter(w)
}

// TextWriter writes one tab-separated line per result.
type TextWriter struct {
	w io.Writer
}

// NewTextWriter creates a new text writer.
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: w}
}

// WriteResult writes a result line. Columns are 0-based like the move
// notation.
func (tw *TextWriter) WriteResult(r worker.ProcessResult) error {
	label := r.Label
	if label == "" {
		label = fmt.Sprintf("#%d", r.Index)
	}
	moves := r.Moves
	if moves == "" {
		moves = "(empty)"
	}

	var err error
	switch {
	case r.Duplicate:
		_, err = fmt.Fprintf(tw.w, "%s\t%s\tduplicate of #%d\n", label, moves, r.DuplicateOf)
	case r.Error != nil:
		_, err = fmt.Fprintf(tw.w, "%s\t%s\terror: %v\n", label, moves, r.Error)
	default:
		_, err = fmt.Fprintf(tw.w, "%s\t%s\tcolumn %d\tscore %d\tnodes %d\n",
			label, moves, r.Result.Column, r.Result.Score, r.Result.Nodes)
	}
	return err
}

// Flush is a no-op; text is written immediately.
func (tw *TextWriter) Flush() error {
	return nil
}

// Close closes the text writer.
func (tw *TextWriter) Close() error {
	return nil
}

// JSONWriter writes results in JSON format.
// It buffers results and writes them as a JSON array on Close or Flush.
type JSONWriter struct {
	w       io.Writer
	results []*AnalysisJSON
	single  bool // If true, write each result immediately instead of batching
}

// NewJSONWriter creates a new JSON writer.
// By default, it batches results and writes them as an array on Close().
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{
		w:       w,
		results: make([]*AnalysisJSON, 0),
	}
}

// NewJSONWriterSingle creates a JSON writer that writes each result immediately.
func NewJSONWriterSingle(w io.Writer) *JSONWriter {
	return &JSONWriter{
		w:      w,
		single: true,
	}
}

// WriteResult buffers a result for JSON output (or writes immediately in single mode).
func (jw *JSONWriter) WriteResult(r worker.ProcessResult) error {
	if jw.single {
		return WriteJSON(jw.w, ResultToJSON(r))
	}
	jw.results = append(jw.results, ResultToJSON(r))
	return nil
}

// Flush writes all buffered results as a JSON array.
func (jw *JSONWriter) Flush() error {
	if jw.single || len(jw.results) == 0 {
		return nil
	}

	err := WriteJSON(jw.w, &AnalysisOutput{Positions: jw.results})

	// Clear buffer after writing
	jw.results = jw.results[:0]

	return err
}

// Close flushes and closes the JSON writer.
func (jw *JSONWriter) Close() error {
	return jw.Flush()
}
