package tokens

import "github.com/pilgerone/PHP-CS-Fixer/internal/token"

const noPair = -1

// buildPairs pairs openers and closers with a single stack.
// A closer that does not fit the top of the stack stays unmatched and
// does not pop, so pairs are nested by construction.
func buildPairs(toks []token.Token) []int {
	pair := make([]int, len(toks))
	stack := make([]int, 0, 16)
	for i, t := range toks {
		pair[i] = noPair
		switch {
		case t.Kind.IsOpener():
			stack = append(stack, i)
		case t.Kind.IsCloser():
			if n := len(stack); n > 0 && toks[stack[n-1]].Kind.Closer() == t.Kind {
				open := stack[n-1]
				stack = stack[:n-1]
				pair[open] = i
				pair[i] = open
			}
		}
	}
	return pair
}

// balanced reports whether toks form a self-contained region: every
// structural token is paired inside it. Running the stack over such a
// region leaves the outer stack untouched, so outer pairs stay valid.
func balanced(toks []token.Token) ([]int, bool) {
	pair := buildPairs(toks)
	for i, t := range toks {
		if t.Kind.IsStructural() && pair[i] == noPair {
			return nil, false
		}
	}
	return pair, true
}
