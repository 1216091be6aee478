// Package syntaxtree exports the syntax trees of a program as JSON.
//
// The document is recomputed on every request and never mutates the
// program: for the same program and options the output is byte-identical.
package syntaxtree
