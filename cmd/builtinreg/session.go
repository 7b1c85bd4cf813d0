package main

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"builtinreg/internal/builtins"
	"builtinreg/internal/catalog"
	"builtinreg/internal/ident"
	"builtinreg/internal/observ"
	"builtinreg/internal/target"
	"builtinreg/internal/trace"
)

const defaultTriple = "x86_64-linux-gnu"

// sessionFlags are shared by every command that builds a registry.
type sessionFlags struct {
	target         string
	auxTarget      string
	features       string
	auxFeatures    string
	lang           string
	gnu            bool
	ms             bool
	opencl         bool
	noBuiltin      bool
	noBuiltinFuncs []string
	noMathBuiltin  bool
	userWins       bool
	declare        []string
	forget         []string
	coreTables     []string
	targetTables   []string
	auxTables      []string
	noCache        bool
	jobs           int
	timings        bool
}

func (f *sessionFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.target, "target", defaultTriple, "primary target triple")
	fl.StringVar(&f.auxTarget, "aux-target", "", "auxiliary target triple (e.g. nvptx64-nvidia-cuda)")
	fl.StringVar(&f.features, "features", "", "primary target feature edits (e.g. +sse4.2,-sse)")
	fl.StringVar(&f.auxFeatures, "aux-features", "", "auxiliary target feature edits")
	fl.StringVar(&f.lang, "lang", "c", "source dialect (c|c++|objc)")
	fl.BoolVar(&f.gnu, "gnu", false, "enable GNU extensions")
	fl.BoolVar(&f.ms, "ms", false, "enable Microsoft extensions")
	fl.BoolVar(&f.opencl, "opencl", false, "compile as OpenCL C")
	fl.BoolVar(&f.noBuiltin, "no-builtin", false, "do not treat library functions as builtins")
	fl.StringSliceVar(&f.noBuiltinFuncs, "no-builtin-func", nil, "library function not to treat as a builtin (repeatable)")
	fl.BoolVar(&f.noMathBuiltin, "no-math-builtin", false, "do not treat math.h functions as builtins")
	fl.BoolVar(&f.userWins, "user-wins", false, "leave names declared with --declare untagged")
	fl.StringSliceVar(&f.declare, "declare", nil, "give a name a user meaning before initialization (repeatable)")
	fl.StringSliceVar(&f.forget, "forget", nil, "forget a builtin after initialization (repeatable)")
	fl.StringSliceVar(&f.coreTables, "table", nil, "extra core table file (repeatable)")
	fl.StringSliceVar(&f.targetTables, "target-table", nil, "extra primary target table file (repeatable)")
	fl.StringSliceVar(&f.auxTables, "aux-table", nil, "extra auxiliary target table file (repeatable)")
	fl.BoolVar(&f.noCache, "no-cache", false, "do not use the on-disk table cache")
	fl.IntVar(&f.jobs, "jobs", 0, "parallel table loads (0 = GOMAXPROCS)")
	fl.BoolVar(&f.timings, "timings", false, "print phase timings to stderr")
}

// mergeManifest fills every flag the user did not set from the manifest.
func (f *sessionFlags) mergeManifest(cmd *cobra.Command, m *projectManifest) {
	if m == nil {
		return
	}
	changed := cmd.Flags().Changed
	cfg := m.Config
	if !changed("target") && cfg.Target.Triple != "" {
		f.target = cfg.Target.Triple
	}
	if !changed("features") && cfg.Target.Features != "" {
		f.features = cfg.Target.Features
	}
	if !changed("aux-target") && cfg.Target.AuxTriple != "" {
		f.auxTarget = cfg.Target.AuxTriple
	}
	if !changed("aux-features") && cfg.Target.AuxFeatures != "" {
		f.auxFeatures = cfg.Target.AuxFeatures
	}
	if !changed("lang") && cfg.Language.Dialect != "" {
		f.lang = cfg.Language.Dialect
	}
	if !changed("gnu") {
		f.gnu = cfg.Language.GNU
	}
	if !changed("ms") {
		f.ms = cfg.Language.MS
	}
	if !changed("opencl") {
		f.opencl = cfg.Language.OpenCL
	}
	if !changed("no-builtin") {
		f.noBuiltin = cfg.Language.NoBuiltin
	}
	if !changed("no-builtin-func") {
		f.noBuiltinFuncs = cfg.Language.NoBuiltinFuncs
	}
	if !changed("no-math-builtin") {
		f.noMathBuiltin = cfg.Language.NoMathBuiltin
	}
	f.coreTables = append(slices.Clone(cfg.Tables.Core), f.coreTables...)
	f.targetTables = append(slices.Clone(cfg.Tables.Target), f.targetTables...)
	f.auxTables = append(slices.Clone(cfg.Tables.Aux), f.auxTables...)
}

func (f *sessionFlags) langOptions() (builtins.LangOptions, error) {
	dialect, err := builtins.ParseDialect(f.lang)
	if err != nil {
		return builtins.LangOptions{}, err
	}
	return builtins.LangOptions{
		Dialect:        dialect,
		GNUMode:        f.gnu,
		MSMode:         f.ms,
		OpenCL:         f.opencl,
		NoBuiltin:      f.noBuiltin,
		NoBuiltinFuncs: f.noBuiltinFuncs,
		NoMathBuiltin:  f.noMathBuiltin,
	}, nil
}

// session is one registry built and initialized for a command.
type session struct {
	reg        *builtins.Registry
	opts       builtins.LangOptions
	idents     *ident.Table
	registered int
	primary    target.Info
	aux        *target.Info
}

func openSession(cmd *cobra.Command, f *sessionFlags) (*session, error) {
	ctx := cmd.Context()
	var timer *observ.Timer
	if f.timings {
		timer = observ.NewTimer()
		defer timer.WriteSummary(cmd.ErrOrStderr())
	}

	endPhase := timer.Begin("config")
	configPath, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	manifest, err := loadManifest(configPath)
	if err != nil {
		return nil, err
	}
	f.mergeManifest(cmd, manifest)

	opts, err := f.langOptions()
	if err != nil {
		return nil, err
	}
	primary, err := resolveTarget(f.target, f.features)
	if err != nil {
		return nil, err
	}
	var aux *target.Info
	if f.auxTarget != "" {
		info, err := resolveTarget(f.auxTarget, f.auxFeatures)
		if err != nil {
			return nil, err
		}
		aux = &info
	}
	endPhase(primary.Triple)

	endPhase = timer.Begin("tables")
	loader := &catalog.Loader{Jobs: f.jobs}
	if !f.noCache {
		cache, err := catalog.OpenCache("builtinreg")
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: table cache disabled: %v\n", err)
		} else {
			loader.Cache = cache
		}
	}
	core, err := loadWith(ctx, loader, builtins.CoreTable(), f.coreTables)
	if err != nil {
		return nil, err
	}
	primary.Builtins, err = loadWith(ctx, loader, primary.Builtins, f.targetTables)
	if err != nil {
		return nil, err
	}
	var auxTable *builtins.TargetTable
	if aux != nil {
		aux.Builtins, err = loadWith(ctx, loader, aux.Builtins, f.auxTables)
		if err != nil {
			return nil, err
		}
		t := aux.Table()
		auxTable = &t
	} else if len(f.auxTables) > 0 {
		return nil, fmt.Errorf("--aux-table requires --aux-target")
	}
	endPhase(strconv.Itoa(len(f.coreTables)+len(f.targetTables)+len(f.auxTables)) + " extra files")

	endPhase = timer.Begin("registry")
	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "registry.build", trace.CurrentSpan(ctx).SpanID)
	reg, err := builtins.New(core, primary.Table(), auxTable)
	if err != nil {
		span.End("failed")
		return nil, err
	}
	span.WithExtra("ids", strconv.Itoa(reg.Space().Len())).End(primary.Triple)
	endPhase(strconv.Itoa(reg.Space().Len()) + " ids")

	endPhase = timer.Begin("initialize")
	policy := ident.PolicyBuiltinWins
	if f.userWins {
		policy = ident.PolicyUserWins
	}
	idents := ident.New(policy)
	for _, name := range f.declare {
		idents.Declare(name)
	}
	registered := reg.Initialize(ctx, idents, opts)
	for _, name := range f.forget {
		id, ok := reg.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("--forget %s: not a builtin", name)
		}
		if err := reg.Forget(ctx, id, idents); err != nil {
			return nil, err
		}
	}
	endPhase(strconv.Itoa(registered) + " tagged")

	return &session{
		reg:        reg,
		opts:       opts,
		idents:     idents,
		registered: registered,
		primary:    primary,
		aux:        aux,
	}, nil
}

func resolveTarget(triple, features string) (target.Info, error) {
	info, err := target.Lookup(triple)
	if err != nil {
		return target.Info{}, err
	}
	if features == "" {
		return info, nil
	}
	return info.WithFeatures(features)
}

func loadWith(ctx context.Context, loader *catalog.Loader, base []builtins.Descriptor, paths []string) ([]builtins.Descriptor, error) {
	if len(paths) == 0 {
		return base, nil
	}
	extra, err := loader.LoadFiles(ctx, paths)
	if err != nil {
		return nil, err
	}
	return append(base, extra...), nil
}

// tagged reports whether id is still tagged in the session's identifier table.
func (s *session) tagged(id builtins.ID) bool {
	info, err := s.reg.Info(id)
	if err != nil {
		return false
	}
	return s.idents.BuiltinID(info.Name) == id
}
