// Package pattern decodes episode numbering out of release filenames.
//
// The pattern library is an explicit ordered table of rules, most specific
// first (S01E05-style markers before bare numbers), so the specificity order
// is independently verifiable in tests. Extraction is a pure function of the
// filename, memoized behind a bounded LRU because directory batches look the
// same filenames up repeatedly.
package pattern
