package cache

import (
	"runtime"

	"github.com/cespare/xxhash/v2"

	"github.com/pilgerone/PHP-CS-Fixer/internal/ruleset"
)

// Hash returns the content hash stored for a file.
func Hash(content []byte) uint64 {
	return xxhash.Sum64(content)
}

// Signature identifies the configuration a cache was built with.
type Signature struct {
	RuntimeVersion string
	ToolVersion    string
	Rules          ruleset.Rules
}

// NewSignature builds the signature of the running binary.
func NewSignature(toolVersion string, rules ruleset.Rules) Signature {
	return Signature{RuntimeVersion: runtime.Version(), ToolVersion: toolVersion, Rules: rules}
}

// Equals compares deeply; rules are compared in canonical JSON form so the
// decoder that produced them does not matter.
func (s Signature) Equals(o Signature) bool {
	return s.RuntimeVersion == o.RuntimeVersion &&
		s.ToolVersion == o.ToolVersion &&
		ruleset.Equal(s.Rules, o.Rules)
}
