package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"builtinreg/internal/ui"
)

var browseFlags sessionFlags

func init() {
	browseFlags.register(browseCmd)
}

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the registry interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !isTerminal(os.Stdout) {
			return fmt.Errorf("browse needs a terminal; use 'builtinreg list' instead")
		}
		s, err := openSession(cmd, &browseFlags)
		if err != nil {
			return err
		}
		rows := make([]ui.Row, 0, s.reg.Space().Len())
		for id, res := range s.reg.Space().All() {
			info := res.Info
			var formats []string
			for _, fc := range info.Formats() {
				f := fmt.Sprintf("%s arg %d", fc.Kind, fc.Index)
				if fc.VAList {
					f += " (va_list)"
				}
				formats = append(formats, f)
			}
			format := strings.Join(formats, ", ")
			rows = append(rows, ui.Row{
				ID:       uint32(id),
				Name:     info.Name,
				Segment:  res.Segment.String(),
				Type:     info.Type,
				Attrs:    info.Attrs().String(),
				Header:   info.HeaderName,
				Features: info.Features,
				Format:   format,
				Langs:    info.Langs.String(),
				Enabled:  s.tagged(id),
			})
		}
		title := fmt.Sprintf("builtins for %s (%s)", s.primary.Triple, describeLang(s.opts))
		program := tea.NewProgram(ui.NewBrowserModel(title, rows), tea.WithOutput(os.Stdout), tea.WithAltScreen())
		_, err = program.Run()
		return err
	},
}
