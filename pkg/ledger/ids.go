package ledger

// NextStudentID returns the smallest positive integer not in ids.
// ids must be sorted ascending; duplicates and non-positive values are ignored.
func NextStudentID(ids []int64) int64 {
	next := int64(1)
	for _, id := range ids {
		if id < next {
			continue
		}
		if id > next {
			break
		}
		next++
	}
	return next
}
