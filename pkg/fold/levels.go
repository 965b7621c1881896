package fold

// levels holds the buffered lines of every open, still undecided nesting level,
// outermost first. A level is removed as soon as its fate is known.
type levels struct {
	stack [][]string
}

func (l *levels) empty() bool {
	return len(l.stack) == 0
}

func (l *levels) depth() int {
	return len(l.stack)
}

// push opens a new innermost level
func (l *levels) push() {
	l.stack = append(l.stack, nil)
}

// file appends a line to the innermost level. It reports false when no level is open.
func (l *levels) file(line string) bool {
	if l.empty() {
		return false
	}
	top := len(l.stack) - 1
	l.stack[top] = append(l.stack[top], line)
	return true
}

// pop removes and returns the innermost level
func (l *levels) pop() []string {
	top := len(l.stack) - 1
	closed := l.stack[top]
	l.stack[top] = nil
	l.stack = l.stack[:top]
	return closed
}

// drain returns every buffered line, outermost level first, and clears the stack
func (l *levels) drain() []string {
	var out []string
	for _, level := range l.stack {
		out = append(out, level...)
	}
	clear(l.stack)
	l.stack = l.stack[:0]
	return out
}
