// Package fuzztests houses Go fuzz harnesses for the tree decoder and the
// semantic passes. Arbitrary bytes must either fail to decode with an error
// or analyse without panicking and leave the scope stack empty.
//
// Run locally with:
//
//	go test ./internal/fuzz -run=^$ -fuzz=FuzzAnalyzeJSON -fuzztime=30s
package fuzztests
