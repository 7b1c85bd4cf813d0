package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	nameColor     = color.New(color.Bold)
	disabledColor = color.New(color.Faint)
	targetColor   = color.New(color.FgYellow)
	auxColor      = color.New(color.FgMagenta)
	okColor       = color.New(color.FgGreen)
	badColor      = color.New(color.FgRed)
)

// isTerminal reports whether f is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func setupColor(cmd *cobra.Command) error {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	switch strings.ToLower(mode) {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "auto", "":
		color.NoColor = !isTerminal(os.Stdout)
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
	return nil
}

// table accumulates rows and pads cells by display width.
type table struct {
	rows   [][]string
	colors [][]*color.Color
}

func (t *table) add(cells []string, colors []*color.Color) {
	t.rows = append(t.rows, cells)
	t.colors = append(t.colors, colors)
}

func (t *table) write(w io.Writer) {
	var widths []int
	for _, row := range t.rows {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	for r, row := range t.rows {
		var sb strings.Builder
		for i, cell := range row {
			if i > 0 {
				sb.WriteString("  ")
			}
			padded := cell
			if i < len(row)-1 {
				padded = runewidth.FillRight(cell, widths[i])
			}
			if c := colorAt(t.colors[r], i); c != nil {
				padded = c.Sprint(padded)
			}
			sb.WriteString(padded)
		}
		fmt.Fprintln(w, strings.TrimRight(sb.String(), " "))
	}
}

func colorAt(colors []*color.Color, i int) *color.Color {
	if i < len(colors) {
		return colors[i]
	}
	return nil
}
