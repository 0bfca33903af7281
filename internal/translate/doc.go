// Package translate maps JSON tool arguments to pcli2 command lines.
//
// Each tool carries a declarative Spec: a fixed argv prefix naming the
// pcli2 sub-command, an ordered list of argument mappings, and the
// tool's required-argument policy. One generic interpreter walks the
// spec, so adding a tool means adding a table entry rather than a new
// translation function.
//
// Translation is pure and deterministic: the same spec and arguments
// always produce the same argv, regardless of prior calls.
package translate
