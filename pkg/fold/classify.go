package fold

import "strings"

// Role is the part a single pretty-printed line plays in the nesting structure
type Role int

const (
	// Content is a key, scalar value or empty container ({} or [])
	Content Role = iota
	// Opener ends with an array or object opening delimiter
	Opener
	// Closer is a closing delimiter, optionally followed by an item separator
	Closer
)

func (r Role) String() string {
	switch r {
	case Opener:
		return "opener"
	case Closer:
		return "closer"
	default:
		return "content"
	}
}

// Classify determines the role of a raw line from its trimmed text.
// The opener suffix is checked first, so a combined line like "}, {" is an opener.
func Classify(line string) Role {
	trimmed := strings.TrimSpace(line)
	if strings.HasSuffix(trimmed, "{") || strings.HasSuffix(trimmed, "[") {
		return Opener
	}
	switch trimmed {
	case "}", "]", "},", "],":
		return Closer
	}
	return Content
}
