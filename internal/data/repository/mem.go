package repository

import "sort"

// nextID allocates identifiers the way the storage always has: one past
// the highest id currently in the pool, starting at 1 when empty. After
// deleting the entity with the highest id that id is handed out again.
func nextID[T any](pool map[int64]T) int64 {
	var max int64
	for id := range pool {
		if id > max {
			max = id
		}
	}
	return max + 1
}

// insertSorted adds v to an ascending id slice, keeping order and set
// semantics.
func insertSorted(ids []int64, v int64) []int64 {
	i := sort.Search(len(ids), func(i int) bool { return ids[i] >= v })
	if i < len(ids) && ids[i] == v {
		return ids
	}
	ids = append(ids, 0)
	copy(ids[i+1:], ids[i:])
	ids[i] = v
	return ids
}

// removeSorted removes v from an ascending id slice if present.
func removeSorted(ids []int64, v int64) []int64 {
	i := sort.Search(len(ids), func(i int) bool { return ids[i] >= v })
	if i < len(ids) && ids[i] == v {
		return append(ids[:i], ids[i+1:]...)
	}
	return ids
}

func cloneIDs(ids []int64) []int64 {
	if ids == nil {
		return nil
	}
	out := make([]int64, len(ids))
	copy(out, ids)
	return out
}

func sortedIDs[T any](pool map[int64]T) []int64 {
	ids := make([]int64, 0, len(pool))
	for id := range pool {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
