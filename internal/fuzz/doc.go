// Package fuzztests houses Go fuzz harnesses for the analysis engine. They
// feed arbitrary documents through the pipeline and the editor providers and
// guard against panics, hangs and broken token encodings.
package fuzztests
