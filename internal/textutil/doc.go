// Package textutil provides text processing utilities for slugs and
// similarity ranking.
//
// Slug produces filesystem-safe lowercase identifiers from record titles.
// Fingerprints are term-frequency vectors used by library search to rank
// results by cosine similarity against the query.
package textutil
