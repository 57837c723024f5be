package episodes

import (
	"strconv"
	"strings"
)

// ParseCount validates a requested episode count. An empty value selects
// def; values above limit are capped to it.
func ParseCount(raw string, def, limit int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return min(def, limit), nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, NewValidationError("count", "must be an integer")
	}
	if n <= 0 {
		return 0, NewValidationError("count", "must be positive")
	}
	return min(n, limit), nil
}
