// Package frontend is the strata engine behind a parse session. It registers
// itself with the provider registry under the name "strata".
//
// A Program accumulates units into one AST arena, one symbol table and one
// semantic result, so later units resolve against earlier declarations.
package frontend
