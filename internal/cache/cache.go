package cache

import (
	"bytes"
	"encoding/json"
	"maps"
	"slices"
	"strconv"
	"strings"

	"fortio.org/safecast"

	"github.com/pilgerone/PHP-CS-Fixer/internal/ruleset"
)

// Cache is the in-memory form of one cache document. Not safe for
// concurrent use; the runner funnels every mutation through one goroutine.
type Cache struct {
	sig    Signature
	hashes map[string]uint64
}

// New returns an empty cache for sig.
func New(sig Signature) *Cache {
	return &Cache{sig: sig, hashes: make(map[string]uint64)}
}

func (c *Cache) Signature() Signature { return c.sig }

func (c *Cache) Has(path string) bool {
	_, ok := c.hashes[path]
	return ok
}

// Get returns the stored hash of path.
func (c *Cache) Get(path string) (uint64, bool) {
	h, ok := c.hashes[path]
	return h, ok
}

func (c *Cache) Set(path string, hash uint64) { c.hashes[path] = hash }

func (c *Cache) Clear(path string) { delete(c.hashes, path) }

func (c *Cache) Len() int { return len(c.hashes) }

// Paths returns the cached paths in sorted order.
func (c *Cache) Paths() []string {
	return slices.Sorted(maps.Keys(c.hashes))
}

const (
	keyRuntime = "runtimeVersion"
	keyTool    = "toolVersion"
	keyRules   = "rules"
	keyHashes  = "hashes"
)

type document struct {
	RuntimeVersion string            `json:"runtimeVersion"`
	ToolVersion    string            `json:"toolVersion"`
	Rules          map[string]any    `json:"rules"`
	Hashes         map[string]uint64 `json:"hashes"`
}

// Serialize encodes the cache as a JSON document. Map keys are sorted by
// encoding/json, so equal caches serialize to equal bytes. Strings that are
// not valid UTF-8 are stored escaped and restored by Deserialize.
func (c *Cache) Serialize() ([]byte, error) {
	rules := map[string]any{}
	if c.sig.Rules != nil {
		rules = escapeValue(map[string]any(c.sig.Rules)).(map[string]any)
	}
	hashes := make(map[string]uint64, len(c.hashes))
	for p, h := range c.hashes {
		hashes[escapeString(p)] = h
	}
	return json.Marshal(document{
		RuntimeVersion: escapeString(c.sig.RuntimeVersion),
		ToolVersion:    escapeString(c.sig.ToolVersion),
		Rules:          rules,
		Hashes:         hashes,
	})
}

// Deserialize parses a document written by Serialize. A document that is not
// JSON, lacks a required key or holds a value of the wrong shape fails with
// *InvalidFormatError as a whole; unknown keys are ignored.
func Deserialize(data []byte) (*Cache, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, formatErr(err, "not a JSON object")
	}
	for _, key := range []string{keyRuntime, keyTool, keyRules, keyHashes} {
		raw, ok := top[key]
		if !ok || isNull(raw) {
			return nil, formatErr(nil, "missing required key %q", key)
		}
	}

	var sig Signature
	if err := decodeString(top[keyRuntime], &sig.RuntimeVersion); err != nil {
		return nil, formatErr(err, "%q must be a string", keyRuntime)
	}
	if err := decodeString(top[keyTool], &sig.ToolVersion); err != nil {
		return nil, formatErr(err, "%q must be a string", keyTool)
	}
	var rawRules map[string]any
	if err := json.Unmarshal(top[keyRules], &rawRules); err != nil {
		return nil, formatErr(err, "%q must be an object", keyRules)
	}
	unescaped, err := unescapeValue(rawRules)
	if err != nil {
		return nil, formatErr(err, "%q", keyRules)
	}
	rules, err := ruleset.Normalize(unescaped.(map[string]any))
	if err != nil {
		return nil, formatErr(err, "%q", keyRules)
	}
	sig.Rules = rules

	var rawHashes map[string]json.Number
	dec := json.NewDecoder(bytes.NewReader(top[keyHashes]))
	dec.UseNumber()
	if err := dec.Decode(&rawHashes); err != nil {
		return nil, formatErr(err, "%q must map paths to integers", keyHashes)
	}
	c := New(sig)
	for key, n := range rawHashes {
		path, err := unescapeString(key)
		if err != nil {
			return nil, formatErr(err, "path %q", key)
		}
		h, err := parseHash(n)
		if err != nil {
			return nil, formatErr(err, "hash of %q", path)
		}
		c.hashes[path] = h
	}
	return c, nil
}

func decodeString(raw json.RawMessage, dst *string) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return err
	}
	s, err := unescapeString(s)
	if err != nil {
		return err
	}
	*dst = s
	return nil
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

// parseHash accepts any non-negative integer that fits 64 bits.
func parseHash(n json.Number) (uint64, error) {
	if strings.ContainsAny(n.String(), ".eE") {
		return 0, strconv.ErrSyntax
	}
	if i, err := n.Int64(); err == nil {
		return safecast.Conv[uint64](i)
	}
	return strconv.ParseUint(n.String(), 10, 64)
}
