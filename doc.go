// Package flowlint statically analyzes workflow documents.
//
// A document is parsed into a workflow graph, and checkers from the
// rule catalog report structural problems, embedded secrets, quality
// issues and performance risks as diagnostics. Nothing is executed.
package flowlint
