package pvclient

import (
	"sort"

	"github.com/n0h4rt/pvclient/models"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// Suggest returns up to n available identifiers closest to mid by edit distance.
//
// Only valid identifiers other than mid (see [models.AllMIDs]) that are neither taken nor reserved in the current snapshot
// are considered. Ties keep the catalog order. A non-positive n falls back to [SUGGEST_DEFAULT].
//
// Args:
//   - mid: The requested identifier, usually one that is not available.
//   - n: The maximum number of suggestions.
//
// Returns:
//   - []string: The suggestions, closest first.
func (s *Store) Suggest(mid string, n int) []string {
	if n <= 0 {
		n = SUGGEST_DEFAULT
	}

	type candidate struct {
		mid      string
		distance int
	}

	db := s.Elements()
	source := []rune(mid)

	var candidates []candidate
	for _, c := range models.AllMIDs() {
		if c == mid || !db.IsAvailable(c) {
			continue
		}
		candidates = append(candidates, candidate{
			mid:      c,
			distance: levenshtein.DistanceForStrings(source, []rune(c), levenshtein.DefaultOptions),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})

	suggestions := make([]string, 0, min(n, len(candidates)))
	for _, c := range candidates[:min(n, len(candidates))] {
		suggestions = append(suggestions, c.mid)
	}

	return suggestions
}
