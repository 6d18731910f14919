package watched

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrInvalidSelection reports an index expression that is malformed, out
// of bounds, or a reversed range. Selections are all-or-nothing: one bad
// token rejects the whole expression.
var ErrInvalidSelection = errors.New("invalid selection")

// ParseIndices interprets a user-supplied selection over a list of
// maxIndex items. Accepted forms: "" or "none" (nothing), "all"
// (everything), and comma-separated 1-based numbers or inclusive "a-b"
// ranges. The result is deduplicated, sorted, and 0-based.
func ParseIndices(input string, maxIndex int) ([]int, error) {
	input = strings.ToLower(strings.TrimSpace(input))

	if input == "" || input == "none" {
		return []int{}, nil
	}
	if input == "all" {
		indices := make([]int, 0, maxIndex)
		for i := 0; i < maxIndex; i++ {
			indices = append(indices, i)
		}
		return indices, nil
	}

	seen := make(map[int]struct{})
	for _, token := range strings.Split(input, ",") {
		token = strings.TrimSpace(token)
		if first, second, isRange := strings.Cut(token, "-"); isRange {
			start, err := parseIndex(first, maxIndex)
			if err != nil {
				return nil, err
			}
			end, err := parseIndex(second, maxIndex)
			if err != nil {
				return nil, err
			}
			if start > end {
				return nil, fmt.Errorf("%w: reversed range %q", ErrInvalidSelection, token)
			}
			for i := start; i <= end; i++ {
				seen[i] = struct{}{}
			}
			continue
		}
		idx, err := parseIndex(token, maxIndex)
		if err != nil {
			return nil, err
		}
		seen[idx] = struct{}{}
	}

	indices := make([]int, 0, len(seen))
	for idx := range seen {
		indices = append(indices, idx)
	}
	sort.Ints(indices)
	return indices, nil
}

func parseIndex(token string, maxIndex int) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(token))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidSelection, token)
	}
	idx := value - 1
	if idx < 0 || idx >= maxIndex {
		return 0, fmt.Errorf("%w: %d is out of range 1-%d", ErrInvalidSelection, value, maxIndex)
	}
	return idx, nil
}
