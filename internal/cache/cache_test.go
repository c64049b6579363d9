package cache_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pilgerone/PHP-CS-Fixer/internal/cache"
	"github.com/pilgerone/PHP-CS-Fixer/internal/ruleset"
)

func testSignature() cache.Signature {
	return cache.Signature{
		RuntimeVersion: "go1.25.1",
		ToolVersion:    "2.0",
		Rules:          ruleset.Rules{"foo": true, "bar": true},
	}
}

func TestDefaults(t *testing.T) {
	c := cache.New(testSignature())
	assert.False(t, c.Has("test.php"))
	_, ok := c.Get("test.php")
	assert.False(t, ok)
	assert.True(t, c.Signature().Equals(testSignature()))
}

func TestSetGetClear(t *testing.T) {
	c := cache.New(testSignature())
	h := cache.Hash([]byte("hello"))
	c.Set("test.php", h)
	assert.True(t, c.Has("test.php"))
	got, ok := c.Get("test.php")
	require.True(t, ok)
	assert.Equal(t, h, got)

	c.Clear("test.php")
	assert.False(t, c.Has("test.php"))
	assert.Zero(t, c.Len())
}

func TestRoundTrip(t *testing.T) {
	sigs := []cache.Signature{
		testSignature(),
		{
			RuntimeVersion: "go1.25.1",
			ToolVersion:    "2.1.0",
			Rules: ruleset.Rules{
				"line_ending":          map[string]any{"line_ending": "\r\n"},
				"function_to_constant": map[string]any{"functions": []any{"pi"}},
				"cast_spaces":          false,
			},
		},
		{
			RuntimeVersion: "go1.25.1",
			ToolVersion:    "2.1.0",
			// Latin-1, не UTF-8
			Rules: ruleset.Rules{"header_comment": map[string]any{"header": "Dariusz Rumi\xf1ski"}},
		},
	}
	for _, sig := range sigs {
		c := cache.New(sig)
		c.Set("test.php", cache.Hash([]byte("hello")))
		c.Set("big.php", ^uint64(0))

		data, err := c.Serialize()
		require.NoError(t, err)
		back, err := cache.Deserialize(data)
		require.NoError(t, err)

		assert.True(t, back.Signature().Equals(sig))
		assert.Equal(t, c.Paths(), back.Paths())
		for _, p := range c.Paths() {
			want, _ := c.Get(p)
			got, _ := back.Get(p)
			assert.Equal(t, want, got, p)
		}
	}
}

func TestDeserializeRejectsInvalidJSON(t *testing.T) {
	_, err := cache.Deserialize([]byte(`{"foo`))
	var formatErr *cache.InvalidFormatError
	require.ErrorAs(t, err, &formatErr)
}

func TestDeserializeRequiresEveryKey(t *testing.T) {
	full := map[string]any{
		"runtimeVersion": "go1.25.1",
		"toolVersion":    "2.0",
		"rules":          map[string]any{"foo": true, "bar": false},
		"hashes":         map[string]any{},
	}
	for key := range full {
		t.Run("without "+key, func(t *testing.T) {
			doc := map[string]any{}
			for k, v := range full {
				if k != key {
					doc[k] = v
				}
			}
			data, err := json.Marshal(doc)
			require.NoError(t, err)
			_, err = cache.Deserialize(data)
			var formatErr *cache.InvalidFormatError
			require.ErrorAs(t, err, &formatErr)
		})
	}
}

func TestDeserializeRejectsBadShapes(t *testing.T) {
	docs := []string{
		`[]`,
		`{"runtimeVersion":"x","toolVersion":"1","rules":{},"hashes":null}`,
		`{"runtimeVersion":1,"toolVersion":"1","rules":{},"hashes":{}}`,
		`{"runtimeVersion":"x","toolVersion":"1","rules":[],"hashes":{}}`,
		`{"runtimeVersion":"x","toolVersion":"1","rules":{"a":"yes"},"hashes":{}}`,
		`{"runtimeVersion":"x","toolVersion":"1","rules":{},"hashes":{"a.php":-1}}`,
		`{"runtimeVersion":"x","toolVersion":"1","rules":{},"hashes":{"a.php":1.5}}`,
		`{"runtimeVersion":"x","toolVersion":"1","rules":{},"hashes":{"a.php":true}}`,
		`{"runtimeVersion":"x","toolVersion":"1","rules":{},"hashes":{"a.php":18446744073709551616}}`,
	}
	for _, doc := range docs {
		_, err := cache.Deserialize([]byte(doc))
		var formatErr *cache.InvalidFormatError
		assert.ErrorAs(t, err, &formatErr, doc)
	}
}

func TestDeserializeIgnoresUnknownKeys(t *testing.T) {
	c, err := cache.Deserialize([]byte(`{"runtimeVersion":"x","toolVersion":"1","rules":{},"hashes":{"a.php":7},"extra":[1,2]}`))
	require.NoError(t, err)
	h, ok := c.Get("a.php")
	require.True(t, ok)
	assert.Equal(t, uint64(7), h)
}

func TestSignatureSensitivity(t *testing.T) {
	base := testSignature()
	changed := []cache.Signature{
		{RuntimeVersion: "go1.24.0", ToolVersion: base.ToolVersion, Rules: base.Rules},
		{RuntimeVersion: base.RuntimeVersion, ToolVersion: "2.1", Rules: base.Rules},
		{RuntimeVersion: base.RuntimeVersion, ToolVersion: base.ToolVersion, Rules: ruleset.Rules{"foo": true}},
		{RuntimeVersion: base.RuntimeVersion, ToolVersion: base.ToolVersion, Rules: ruleset.Rules{"foo": true, "bar": false}},
	}
	for _, sig := range changed {
		assert.False(t, base.Equals(sig), "%+v", sig)
	}
	same := cache.Signature{
		RuntimeVersion: base.RuntimeVersion,
		ToolVersion:    base.ToolVersion,
		Rules:          ruleset.Rules{"bar": true, "foo": true},
	}
	assert.True(t, base.Equals(same))
}

func TestSignatureComparesOptionBytes(t *testing.T) {
	latin1 := func(header string) cache.Signature {
		return cache.Signature{
			RuntimeVersion: "go1.25.1",
			ToolVersion:    "2.0",
			Rules:          ruleset.Rules{"header_comment": map[string]any{"header": header}},
		}
	}
	assert.False(t, latin1("Rumi\xf1ski").Equals(latin1("Rumi\xe9ski")))
	assert.True(t, latin1("Rumi\xf1ski").Equals(latin1("Rumi\xf1ski")))
}

func TestRoundTripKeepsPathBytes(t *testing.T) {
	paths := []string{
		"caf\xe9.php",
		"café.php",
		"\x00raw:looks-escaped.php",
	}
	c := cache.New(testSignature())
	for i, p := range paths {
		c.Set(p, uint64(i+1))
	}

	data, err := c.Serialize()
	require.NoError(t, err)
	back, err := cache.Deserialize(data)
	require.NoError(t, err)

	assert.Equal(t, c.Paths(), back.Paths())
	for i, p := range paths {
		require.True(t, back.Has(p), "%q", p)
		h, _ := back.Get(p)
		assert.Equal(t, uint64(i+1), h, "%q", p)
	}
}

func TestDeserializeRejectsBrokenEscape(t *testing.T) {
	_, err := cache.Deserialize([]byte(`{"runtimeVersion":"x","toolVersion":"1","rules":{},"hashes":{"\u0000raw:!!":1}}`))
	var formatErr *cache.InvalidFormatError
	require.ErrorAs(t, err, &formatErr)
}
