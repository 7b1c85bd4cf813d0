package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"builtinreg/internal/builtins"
)

var queryFlags sessionFlags

func init() {
	queryFlags.register(queryCmd)
}

var queryCmd = &cobra.Command{
	Use:   "query NAME|ID...",
	Short: "Show everything the registry knows about builtins",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd, &queryFlags)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		var failed []string
		for i, arg := range args {
			if i > 0 {
				fmt.Fprintln(out)
			}
			id, err := s.resolveArg(arg)
			if err == nil {
				err = renderQuery(cmd, out, s, id)
			}
			if err != nil {
				fmt.Fprintf(out, "%s: %s\n", arg, badColor.Sprint(err))
				failed = append(failed, arg)
			}
		}
		if len(failed) > 0 {
			return fmt.Errorf("no builtin for %s", strings.Join(failed, ", "))
		}
		return nil
	},
}

func (s *session) resolveArg(arg string) (builtins.ID, error) {
	if n, err := strconv.ParseUint(arg, 10, 32); err == nil {
		id := builtins.ID(n)
		if _, err := s.reg.Resolve(id); err != nil {
			return builtins.NotBuiltin, err
		}
		return id, nil
	}
	id, ok := s.reg.Lookup(arg)
	if !ok {
		if s.reg.IsBuiltinFunc(strings.TrimPrefix(arg, "__builtin_")) {
			return builtins.NotBuiltin, fmt.Errorf("not a builtin here, but %q is a library builtin", strings.TrimPrefix(arg, "__builtin_"))
		}
		return builtins.NotBuiltin, errors.New("not a builtin")
	}
	return id, nil
}

func renderQuery(cmd *cobra.Command, w io.Writer, s *session, id builtins.ID) error {
	res, err := s.reg.Resolve(id)
	if err != nil {
		return err
	}
	info := res.Info
	fmt.Fprintf(w, "%s  #%d (%s)\n", nameColor.Sprint(info.Name), id, res.Segment)
	if res.Segment == builtins.SegmentAux {
		local, err := s.reg.AuxLocalID(id)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  aux id:    #%d on %s\n", local, s.aux.Triple)
	}
	fmt.Fprintf(w, "  type:      %s\n", dash(info.Type))
	fmt.Fprintf(w, "  attrs:     %s\n", dash(info.Attrs().String()))
	if props := properties(info); len(props) > 0 {
		fmt.Fprintf(w, "  props:     %s\n", strings.Join(props, ", "))
	}
	fmt.Fprintf(w, "  langs:     %s\n", info.Langs)
	fmt.Fprintf(w, "  header:    %s\n", dash(info.HeaderName))
	for _, fc := range info.Formats() {
		tail := "variadic"
		if fc.VAList {
			tail = "va_list"
		}
		fmt.Fprintf(w, "  format:    %s, format string is argument %d, %s tail\n", fc.Kind, fc.Index, tail)
	}
	if info.Features != "" {
		missing, err := s.reg.MissingFeatures(cmd.Context(), id)
		if err != nil {
			return err
		}
		status := okColor.Sprint("enabled")
		if len(missing) > 0 {
			status = badColor.Sprintf("missing %s", strings.Join(missing, ","))
		}
		fmt.Fprintf(w, "  features:  %s (%s)\n", info.Features, status)
	}
	supported, err := s.reg.IsSupported(id, s.opts)
	if err != nil {
		return err
	}
	switch {
	case s.tagged(id):
		fmt.Fprintf(w, "  status:    %s\n", okColor.Sprint("tagged"))
	case supported:
		fmt.Fprintf(w, "  status:    %s\n", disabledColor.Sprint("enabled but not tagged (forgotten or shadowed)"))
	default:
		fmt.Fprintf(w, "  status:    %s under %s\n", badColor.Sprint("disabled"), describeLang(s.opts))
	}
	return nil
}

func properties(info *builtins.Info) []string {
	var props []string
	add := func(ok bool, label string) {
		if ok {
			props = append(props, label)
		}
	}
	add(info.IsPure(), "pure")
	add(info.IsConst(), "const")
	add(info.IsConstWithoutErrno(), "const-without-errno")
	add(info.IsNoThrow(), "nothrow")
	add(info.IsNoReturn(), "noreturn")
	add(info.IsReturnsTwice(), "returns-twice")
	add(info.IsUnevaluated(), "unevaluated-args")
	add(info.IsLibFunction(), "lib-function")
	add(info.IsPredefinedLibFunction(), "predefined-lib")
	add(info.IsPredefinedRuntimeFunction(), "predefined-runtime")
	add(info.HasCustomTypechecking(), "custom-typecheck")
	add(info.HasPtrArgsOrResult(), "pointer-args")
	return props
}
