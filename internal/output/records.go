package output

import (
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/lgbarn/connect4-go/internal/storage"
)

// WriteRecords writes stored records as a table with one row per record.
// Nothing is written for an empty list.
func WriteRecords(w io.Writer, records []storage.Record) error {
	if len(records) == 0 {
		return nil
	}
	ew := &errWriter{w: w}
	table := tablewriter.NewWriter(ew)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader([]string{"ID", "Kind", "Moves", "Saved"})
	for _, r := range records {
		moves := r.Moves
		if moves == "" {
			moves = "(empty)"
		}
		table.Append([]string{
			strconv.FormatInt(r.ID, 10),
			r.Kind.String(),
			moves,
			r.CreatedAt.Local().Format(time.DateTime),
		})
	}
	table.Render()
	return ew.err
}

// errWriter keeps the first write error, since the table renderer
// discards them.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	ew.err = err
	return n, err
}
