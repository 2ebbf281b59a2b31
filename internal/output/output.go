// Package output renders positions and analysis results as text or JSON.
package output

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/lgbarn/connect4-go/internal/board"
	"github.com/lgbarn/connect4-go/internal/config"
)

// WriteGrid writes g using the configured markers. With a border, every
// cell is boxed and a 1-based column index heads the grid.
func WriteGrid(w io.Writer, g board.Grid, cfg *config.OutputConfig) error {
	_, err := io.WriteString(w, FormatGrid(g, cfg))
	return err
}

// FormatGrid returns the text WriteGrid would write.
func FormatGrid(g board.Grid, cfg *config.OutputConfig) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	if cfg.Border {
		header := make([]string, board.Columns)
		for col := range header {
			header[col] = strconv.Itoa(col + 1)
		}
		table.SetHeader(header)
		table.SetRowLine(true)
	} else {
		table.SetBorder(false)
		table.SetNoWhiteSpace(true)
		table.SetTablePadding(" ")
	}

	for _, row := range g {
		cells := make([]string, len(row))
		for col, cell := range row {
			cells[col] = string(cfg.Markers[cell])
		}
		table.Append(cells)
	}
	table.Render()

	if cfg.Border {
		return buf.String()
	}
	// Borderless rows end with the padding of the last column.
	return strings.ReplaceAll(buf.String(), " \n", "\n")
}

// StatusLine describes the state of b in one line, naming players by their
// markers.
func StatusLine(b *board.Board, cfg *config.OutputConfig) string {
	marker := func(p board.Player) rune {
		return cfg.Markers[board.Cell(p)+1]
	}
	switch b.Status() {
	case board.Won:
		winner, _ := b.Winner()
		return fmt.Sprintf("%c wins after %d plies", marker(winner), b.Plies())
	case board.Drawn:
		return "draw"
	}
	return fmt.Sprintf("%c to move, ply %d", marker(b.ToMove()), b.Plies()+1)
}

// WritePosition writes the grid of b followed by its status line.
func WritePosition(w io.Writer, b *board.Board, cfg *config.OutputConfig) error {
	if err := WriteGrid(w, b.Render(), cfg); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, StatusLine(b, cfg))
	return err
}
