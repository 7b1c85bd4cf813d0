package builtins

import (
	"context"
	"fmt"
	"strconv"

	"builtinreg/internal/trace"
)

// IdentifierTable is the part of the compiler's identifier table the registry
// writes to. Conflict handling on Tag is the table's own policy.
type IdentifierTable interface {
	Tag(name string, id ID)
	Untag(id ID)
}

// TargetTable carries one target's builtin records and enabled features.
type TargetTable struct {
	Triple   string
	Records  []Descriptor
	Features FeatureSet
}

// Registry answers builtin queries for one compilation.
//
// Tables are compiled once in New and never change afterwards, so every query
// method is safe for concurrent use. Initialize and Forget mutate only the
// identifier table passed to them and must be serialized by the caller.
type Registry struct {
	space   *IDSpace
	primary TargetTable
	aux     *TargetTable

	byName map[string]ID
	core   map[string]ID
}

// New builds a registry over the core table, the primary target and an
// optional auxiliary target.
func New(core []Descriptor, primary TargetTable, aux *TargetTable) (*Registry, error) {
	var auxRecords []Descriptor
	if aux != nil {
		auxRecords = aux.Records
	}
	space, err := NewIDSpace(core, primary.Records, auxRecords)
	if err != nil {
		return nil, err
	}
	r := &Registry{
		space:   space,
		primary: primary,
		aux:     aux,
		byName:  make(map[string]ID, space.Len()),
		core:    make(map[string]ID, len(core)),
	}
	for id, res := range space.All() {
		r.byName[res.Info.Name] = id
		if res.Segment == SegmentCore {
			if _, seen := r.core[res.Info.Name]; !seen {
				r.core[res.Info.Name] = id
			}
		}
	}
	return r, nil
}

// Space exposes the underlying ID layout.
func (r *Registry) Space() *IDSpace { return r.space }

// Primary returns the primary target's triple.
func (r *Registry) Primary() string { return r.primary.Triple }

// Aux returns the aux target's triple, or "" when there is none.
func (r *Registry) Aux() string {
	if r.aux == nil {
		return ""
	}
	return r.aux.Triple
}

// Initialize tags every builtin enabled under opts in the identifier table and
// returns how many were tagged. Calling it again re-tags the same names.
func (r *Registry) Initialize(ctx context.Context, table IdentifierTable, opts LangOptions) int {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "builtins.initialize", trace.CurrentSpan(ctx).SpanID)
	registered := 0
	for id, res := range r.space.All() {
		if !isSupported(res.Info, opts) {
			continue
		}
		table.Tag(res.Info.Name, id)
		registered++
	}
	span.WithExtra("registered", strconv.Itoa(registered)).
		WithExtra("dialect", opts.Dialect.String()).
		End(r.primary.Triple)
	return registered
}

// Forget drops the builtin meaning of id from the table. Forgetting an ID that
// is not tagged is a no-op.
func (r *Registry) Forget(ctx context.Context, id ID, table IdentifierTable) error {
	res, err := r.space.Resolve(id)
	if err != nil {
		return err
	}
	table.Untag(id)
	trace.Point(trace.FromContext(ctx), trace.ScopeNode, "builtins.forget", res.Info.Name)
	return nil
}

// Resolve maps id to its record and segment.
func (r *Registry) Resolve(id ID) (Resolved, error) {
	return r.space.Resolve(id)
}

// Info returns the compiled record for id.
func (r *Registry) Info(id ID) (*Info, error) {
	res, err := r.space.Resolve(id)
	if err != nil {
		return nil, err
	}
	return res.Info, nil
}

// MustInfo is Info for callers holding IDs produced by this registry.
// It panics on an invalid ID.
func (r *Registry) MustInfo(id ID) *Info {
	info, err := r.Info(id)
	if err != nil {
		panic(err)
	}
	return info
}

// Lookup returns the ID a name maps to. When tables repeat a name the later
// table wins, matching the order Initialize tags them in.
func (r *Registry) Lookup(name string) (ID, bool) {
	id, ok := r.byName[name]
	return id, ok
}

// IsBuiltinFunc reports whether name is a predefined library function of the
// core table, e.g. "malloc".
func (r *Registry) IsBuiltinFunc(name string) bool {
	id, ok := r.core[name]
	if !ok {
		return false
	}
	return r.MustInfo(id).IsPredefinedLibFunction()
}

// IsSupported evaluates the language gate for a single ID.
func (r *Registry) IsSupported(id ID, opts LangOptions) (bool, error) {
	info, err := r.Info(id)
	if err != nil {
		return false, err
	}
	return isSupported(info, opts), nil
}

func (r *Registry) IsTargetSpecific(id ID) (bool, error) { return r.space.IsTargetSpecific(id) }
func (r *Registry) IsAux(id ID) (bool, error) { return r.space.IsAux(id) }

// AuxLocalID translates an aux ID into the aux target's own numbering.
func (r *Registry) AuxLocalID(id ID) (ID, error) { return r.space.AuxLocalID(id) }

// MissingFeatures lists the required features of id that its owning target
// does not enable.
func (r *Registry) MissingFeatures(ctx context.Context, id ID) ([]string, error) {
	res, err := r.space.Resolve(id)
	if err != nil {
		return nil, err
	}
	if res.Segment != SegmentAux {
		return r.primary.Features.Missing(res.Info.Features), nil
	}
	local, err := r.space.AuxLocalID(id)
	if err != nil {
		return nil, err
	}
	missing := r.aux.Features.Missing(res.Info.Features)
	if len(missing) > 0 {
		trace.Point(trace.FromContext(ctx), trace.ScopeNode, "builtins.aux_features",
			fmt.Sprintf("%s#%d missing %v", r.aux.Triple, local, missing))
	}
	return missing, nil
}

func (r *Registry) Name(id ID) (string, error) {
	info, err := r.Info(id)
	if err != nil {
		return "", err
	}
	return info.Name, nil
}

func (r *Registry) TypeSignature(id ID) (string, error) {
	info, err := r.Info(id)
	if err != nil {
		return "", err
	}
	return info.Type, nil
}

// HeaderName returns the header declaring a library builtin, or "".
func (r *Registry) HeaderName(id ID) (string, error) {
	info, err := r.Info(id)
	if err != nil {
		return "", err
	}
	return info.HeaderName, nil
}

func (r *Registry) RequiredFeatures(id ID) (string, error) {
	info, err := r.Info(id)
	if err != nil {
		return "", err
	}
	return info.Features, nil
}

func (r *Registry) has(id ID, attr Attrs) (bool, error) {
	info, err := r.Info(id)
	if err != nil {
		return false, err
	}
	return info.attrs.Has(attr), nil
}

func (r *Registry) IsPure(id ID) (bool, error) { return r.has(id, AttrPure) }
func (r *Registry) IsConst(id ID) (bool, error) { return r.has(id, AttrConst) }
func (r *Registry) IsConstWithoutErrno(id ID) (bool, error) {
	return r.has(id, AttrConstWithoutErrno)
}
func (r *Registry) IsNoThrow(id ID) (bool, error) { return r.has(id, AttrNoThrow) }
func (r *Registry) IsNoReturn(id ID) (bool, error) { return r.has(id, AttrNoReturn) }
func (r *Registry) IsReturnsTwice(id ID) (bool, error) { return r.has(id, AttrReturnsTwice) }
func (r *Registry) IsUnevaluated(id ID) (bool, error) { return r.has(id, AttrUnevaluated) }
func (r *Registry) IsLibFunction(id ID) (bool, error) { return r.has(id, AttrLibFunction) }
func (r *Registry) IsPredefinedLibFunction(id ID) (bool, error) {
	return r.has(id, AttrPredefinedLib)
}
func (r *Registry) IsPredefinedRuntimeFunction(id ID) (bool, error) {
	return r.has(id, AttrPredefinedRuntime)
}
func (r *Registry) HasCustomTypechecking(id ID) (bool, error) {
	return r.has(id, AttrCustomTypecheck)
}

func (r *Registry) HasPtrArgsOrResult(id ID) (bool, error) {
	info, err := r.Info(id)
	if err != nil {
		return false, err
	}
	return info.hasPtr, nil
}

// IsPrintfLike returns the printf format descriptor of id, if it has one.
func (r *Registry) IsPrintfLike(id ID) (FormatCheck, bool, error) {
	info, err := r.Info(id)
	if err != nil {
		return FormatCheck{}, false, err
	}
	fc, ok := info.IsPrintfLike()
	return fc, ok, nil
}

// IsScanfLike returns the scanf format descriptor of id, if it has one.
func (r *Registry) IsScanfLike(id ID) (FormatCheck, bool, error) {
	info, err := r.Info(id)
	if err != nil {
		return FormatCheck{}, false, err
	}
	fc, ok := info.IsScanfLike()
	return fc, ok, nil
}
