package utils

import "slices"

// Remove drops the first occurrence of item from arr, keeping the order of the rest.
//
// The dispatcher uses it to unregister handlers; the backing array is reused, so callers must keep the returned slice.
//
// Args:
//   - arr: The slice to remove the item from.
//   - item: The item to remove.
//
// Returns:
//   - []T: arr without item, or arr unchanged when item is absent.
func Remove[T comparable](arr []T, item T) []T {
	if i := slices.Index(arr, item); i >= 0 {
		return slices.Delete(arr, i, i+1)
	}

	return arr
}
