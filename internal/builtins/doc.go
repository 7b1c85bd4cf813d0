// Package builtins is the registry of compiler builtin functions.
//
// Three descriptor tables (core, primary target, auxiliary target) share one
// flat ID space:
//
//	0                      NotBuiltin
//	1 .. C                 core table
//	C+1 .. C+T             primary target (FirstTargetSpecific = C+1)
//	C+T+1 .. C+T+A         auxiliary target
//
// An aux ID minus T is the ID the builtin has when the aux target is compiled
// on its own.
//
// Attribute strings are decoded once when a table is loaded. Registry.Initialize
// tags every builtin enabled for the active LangOptions in an IdentifierTable;
// Registry.Forget removes one tag again.
package builtins
