/*
Package tatamigo provides a single polymorphic interface for two-dimensional
numeric matrices of arbitrary backing storage: dense in-memory arrays,
compressed sparse row/column storage, and file-backed chunked storage behind
an LRU or oracle-predicted chunk cache.

A Matrix does not expose its elements directly. Instead it vends Extractors:
stateful objects bound to one axis (row or column), one density (dense or
sparse) and one selection (the full axis, a contiguous block, or an arbitrary
ascending index set). Extractors own all of their own scratch state, so
independent extractors over the same Matrix may be driven concurrently from
separate goroutines; the Matrix itself is immutable once constructed.

Lazily evaluated transformations - subsetting, element-wise operations,
axis binding, type casts and transposition - live in the delayed
sub-package and wrap a child Matrix without copying its data. Extraction
calls descend through the wrapper tree at fetch time.

The chunked sub-package implements the chunk-caching core that makes
out-of-core, file-backed matrices practical: an LRU cache for unpredictable
access patterns and an oracle-driven cache that prefetches and swaps chunks
ahead of a known future access sequence.
*/
package tatamigo
