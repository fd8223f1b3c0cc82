// Package sema implements the two semantic passes of the analyzer.
//
// BuildSymbols walks the tree once in preorder, opening a scope for every
// function and compound statement, declaring names and recording uses. It
// stamps the handle of each scope on its compound statement.
//
// TypeCheck walks the same tree again, re-entering the stamped scopes, and
// types every expression bottom-up in its post-order callback.
//
// Both passes share a Context; a Context analyses exactly one tree.
package sema
