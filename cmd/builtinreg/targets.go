package main

import (
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"builtinreg/internal/target"
)

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "List known targets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var t table
		header := []*color.Color{nameColor, nameColor, nameColor, nameColor, nameColor}
		t.add([]string{"TRIPLE", "ARCH", "PTR", "BUILTINS", "FEATURES"}, header)
		for _, triple := range target.Triples() {
			info, err := target.Lookup(triple)
			if err != nil {
				return err
			}
			t.add([]string{
				info.Triple,
				info.Arch,
				strconv.Itoa(info.PtrSize*8) + "-bit",
				strconv.Itoa(len(info.Builtins)),
				strings.Join(info.Features, ","),
			}, nil)
		}
		t.write(cmd.OutOrStdout())
		return nil
	},
}
