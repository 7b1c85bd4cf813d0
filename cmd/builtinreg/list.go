package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"builtinreg/internal/builtins"
)

var (
	listFlags   sessionFlags
	listAll     bool
	listSegment string
	listFormat  string
)

func init() {
	listFlags.register(listCmd)
	listCmd.Flags().BoolVar(&listAll, "all", false, "include builtins that are not tagged")
	listCmd.Flags().StringVar(&listSegment, "segment", "", "only show one segment (core|target|aux)")
	listCmd.Flags().StringVar(&listFormat, "format", "text", "output format (text|json)")
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List builtins tagged for the active language and targets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var segment builtins.Segment
		switch strings.ToLower(listSegment) {
		case "":
		case "core":
			segment = builtins.SegmentCore
		case "target":
			segment = builtins.SegmentTarget
		case "aux":
			segment = builtins.SegmentAux
		default:
			return fmt.Errorf("invalid --segment %q (expected core|target|aux)", listSegment)
		}
		format := strings.ToLower(listFormat)
		if format != "text" && format != "json" {
			return fmt.Errorf("unsupported format %q (must be text or json)", listFormat)
		}

		s, err := openSession(cmd, &listFlags)
		if err != nil {
			return err
		}
		entries := collectListEntries(s, segment, listAll)
		if format == "json" {
			return renderListJSON(cmd.OutOrStdout(), entries)
		}
		renderListText(cmd.OutOrStdout(), s, entries)
		return nil
	},
}

type listEntry struct {
	ID       builtins.ID `json:"id"`
	Segment  string      `json:"segment"`
	Name     string      `json:"name"`
	Type     string      `json:"type"`
	Attrs    string      `json:"attrs,omitempty"`
	Header   string      `json:"header,omitempty"`
	Features string      `json:"features,omitempty"`
	Tagged   bool        `json:"tagged"`
}

func collectListEntries(s *session, segment builtins.Segment, all bool) []listEntry {
	var out []listEntry
	for id, res := range s.reg.Space().All() {
		if segment != 0 && res.Segment != segment {
			continue
		}
		tagged := s.tagged(id)
		if !tagged && !all {
			continue
		}
		out = append(out, listEntry{
			ID:       id,
			Segment:  res.Segment.String(),
			Name:     res.Info.Name,
			Type:     res.Info.Type,
			Attrs:    res.Info.Attrs().String(),
			Header:   res.Info.HeaderName,
			Features: res.Info.Features,
			Tagged:   tagged,
		})
	}
	return out
}

func renderListJSON(w io.Writer, entries []listEntry) error {
	if entries == nil {
		entries = []listEntry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

func renderListText(w io.Writer, s *session, entries []listEntry) {
	var t table
	t.add([]string{"ID", "SEGMENT", "NAME", "ATTRS", "HEADER", "FEATURES"}, []*color.Color{nameColor, nameColor, nameColor, nameColor, nameColor, nameColor})
	for _, e := range entries {
		colors := []*color.Color{nil, segmentColor(e.Segment), nil}
		if !e.Tagged {
			colors = []*color.Color{disabledColor, disabledColor, disabledColor, disabledColor, disabledColor, disabledColor}
		}
		t.add([]string{strconv.FormatUint(uint64(e.ID), 10), e.Segment, e.Name, dash(e.Attrs), dash(e.Header), dash(e.Features)}, colors)
	}
	t.write(w)

	aux := ""
	if s.aux != nil {
		aux = " + " + s.aux.Triple
	}
	fmt.Fprintf(w, "\n%d of %d builtins tagged for %s%s (%s)\n",
		s.idents.TaggedCount(), s.reg.Space().Len(), s.primary.Triple, aux, describeLang(s.opts))
}

func segmentColor(seg string) *color.Color {
	switch seg {
	case "target":
		return targetColor
	case "aux":
		return auxColor
	default:
		return nil
	}
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func describeLang(opts builtins.LangOptions) string {
	parts := []string{opts.Dialect.String()}
	if opts.GNUMode {
		parts = append(parts, "gnu")
	}
	if opts.MSMode {
		parts = append(parts, "ms")
	}
	if opts.OpenCL {
		parts = append(parts, "opencl")
	}
	if opts.NoBuiltin {
		parts = append(parts, "no-builtin")
	}
	if opts.NoMathBuiltin {
		parts = append(parts, "no-math-builtin")
	}
	return strings.Join(parts, ", ")
}
