package service

// hasMore reports whether elements remain beyond the batch that starts at
// offset. Concatenating batches at offsets 0, batch, 2*batch, ... walks the
// whole collection exactly once.
func hasMore(offset int, batch int, total int64) bool {
	return int64(offset+batch) < total
}
