// Package tokens holds the mutable token stream a fixer works on.
//
// Invariants:
//   - indices are always contiguous 0..Len()-1 after any mutation;
//   - Source() is the concatenation of token texts, byte-exact with the input
//     until a mutation changes it;
//   - the block map pairs every opener with at most one closer of the matching
//     kind at a larger index, pairs never cross;
//   - every effective mutation bumps Revision and sets the changed flag.
package tokens
