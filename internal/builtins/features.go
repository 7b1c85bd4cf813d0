package builtins

import "strings"

// SplitFeatures splits a comma-separated feature list, dropping empty entries.
func SplitFeatures(list string) []string {
	if list == "" {
		return nil
	}
	parts := strings.Split(list, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// FeatureSet is the set of target features enabled for one target.
type FeatureSet map[string]bool

// NewFeatureSet builds a set from plain feature names.
func NewFeatureSet(names ...string) FeatureSet {
	fs := make(FeatureSet, len(names))
	for _, n := range names {
		fs[n] = true
	}
	return fs
}

// Missing returns the required features that are not enabled, in declaration order.
func (fs FeatureSet) Missing(required string) []string {
	var missing []string
	for _, f := range SplitFeatures(required) {
		if !fs[f] {
			missing = append(missing, f)
		}
	}
	return missing
}
