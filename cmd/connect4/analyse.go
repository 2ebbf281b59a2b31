package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lgbarn/connect4-go/internal/errors"
	"github.com/lgbarn/connect4-go/internal/hashing"
	"github.com/lgbarn/connect4-go/internal/output"
	"github.com/lgbarn/connect4-go/internal/worker"
)

// inputLine is one position read from a batch file.
type inputLine struct {
	item worker.WorkItem
	line int
}

func runAnalyse(ctx context.Context, e *env, args []string) error {
	var opts analyseOptions
	fs := newAnalyseFlags(&opts, e.stderr)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	opts.apply(e.cfg)
	if err := e.cfg.Validate(); err != nil {
		return err
	}

	lines, err := readAllInputs(fs.Args(), e.stdin)
	if err != nil {
		return err
	}
	items := make([]worker.WorkItem, len(lines))
	for i, l := range lines {
		items[i] = l.item
	}

	a := worker.NewAnalyzer(ctx, e.cfg.Search.Depth)
	a.FeatureThreshold = e.cfg.Search.FeatureThreshold
	a.Log = e.log
	if e.cfg.Duplicate.Suppress {
		a.Detector = hashing.NewThreadSafePositionDetector(e.cfg.Duplicate.Mirror, e.cfg.Duplicate.Capacity)
	}
	results := worker.Analyze(items, a, e.cfg.Workers)

	w := output.NewResultWriter(e.stdout, e.cfg.Output.JSON)
	var failed, duplicates int
	for _, r := range results {
		var pe *errors.ParseError
		if errors.As(r.Error, &pe) {
			pe.Line = lines[r.Index].line
		}
		switch {
		case r.Duplicate:
			duplicates++
		case r.Error != nil:
			failed++
		}
		if err := w.WriteResult(r); err != nil {
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}

	e.log.Info().
		Int("positions", len(results)).
		Int("duplicates", duplicates).
		Int("failed", failed).
		Msg("analysis-done")
	if err := ctx.Err(); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d position(s) could not be analysed", failed, len(results))
	}
	return nil
}

// readAllInputs reads every named file, or stdin when none is named.
func readAllInputs(files []string, stdin io.Reader) ([]inputLine, error) {
	if len(files) == 0 {
		return readPositions(stdin, "stdin", nil)
	}
	var lines []inputLine
	for _, filename := range files {
		file, err := os.Open(filename) //nolint:gosec // G304: CLI tool opens user-specified files
		if err != nil {
			return nil, errors.Wrapf(err, "opening %s", filename)
		}
		lines, err = readPositions(file, filename, lines)
		file.Close() //nolint:errcheck,gosec // G104: read-only file
		if err != nil {
			return nil, err
		}
	}
	return lines, nil
}

// readPositions appends the positions in r to lines. Each line holds a move
// string, optionally preceded by a label. Blank lines and lines starting
// with '#' are skipped.
func readPositions(r io.Reader, name string, lines []inputLine) ([]inputLine, error) {
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		item := worker.WorkItem{Index: len(lines), Label: fmt.Sprintf("%s:%d", name, n)}
		fields := strings.Fields(text)
		switch len(fields) {
		case 1:
			item.Moves = fields[0]
		case 2:
			item.Label, item.Moves = fields[0], fields[1]
		default:
			return nil, &errors.ParseError{
				Err:    errors.ErrInvalidNotation,
				Input:  text,
				Offset: -1,
				Got:    fmt.Sprintf("%d fields", len(fields)),
				Line:   n,
			}
		}
		lines = append(lines, inputLine{item: item, line: n})
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading %s", name)
	}
	return lines, nil
}
