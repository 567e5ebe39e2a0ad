package recording

import (
	"strconv"
	"strings"
)

const coordinateSeparator = "|"

// Coordinate formats the stack into a human-readable iteration coordinate,
// e.g., "rank0:driver|6|root|6|mda|45". The rendering is pure. The same
// stack state and rank always produce the same string.
//
// The coordinate starts with "<prefix>_" when the stack carries a prefix,
// followed by "rank<rankID>:", followed by the open frames in insertion
// order, each rendered as "<name>|<iter count>" and joined with "|". An
// empty stack yields just the prefix and rank segments.
func Coordinate(s *IterationStack, rankID int) string {
	prefix := ""
	if s.prefix != "" {
		prefix = s.prefix + "_"
	}

	prefix += "rank" + strconv.Itoa(rankID) + ":"

	segments := make([]string, 0, len(s.frames))
	for _, f := range s.frames {
		segments = append(segments,
			f.Name+coordinateSeparator+strconv.Itoa(f.IterCount))
	}

	return prefix + strings.Join(segments, coordinateSeparator)
}
