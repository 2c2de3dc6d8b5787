package cache

import "strings"

// ScopedKeyer namespaces the keys of another [Keyer], so several bots can
// share one Redis database without reading each other's artifacts.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "bot:stocks")
//	// keys look like "bot:stocks:artifact:<hash>"
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer prefixes every key of inner (the default keyer when nil).
// A missing ":" separator is appended to prefix. An empty prefix returns
// inner unchanged.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	if prefix == "" {
		return inner
	}
	return &ScopedKeyer{inner: inner, prefix: scope(prefix)}
}

// ArtifactMatch returns the glob matching every artifact key written by the
// default keyer under prefix (unprefixed when empty).
func ArtifactMatch(prefix string) string {
	return scope(prefix) + artifactKeyType + ":*"
}

func scope(prefix string) string {
	if prefix != "" && !strings.HasSuffix(prefix, ":") {
		prefix += ":"
	}
	return prefix
}

// Prefix returns the namespace including its trailing separator.
func (k *ScopedKeyer) Prefix() string { return k.prefix }

// ArtifactKey returns the inner key under the namespace.
func (k *ScopedKeyer) ArtifactKey(tableHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(tableHash, opts)
}
