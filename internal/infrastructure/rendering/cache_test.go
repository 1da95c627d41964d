package rendering

import (
	"fmt"
	"html/template"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseTestTemplate(t *testing.T, name string) *template.Template {
	t.Helper()
	tmpl, err := template.New(name).Parse("x")
	require.NoError(t, err)
	return tmpl
}

func TestTemplateCache_GetPut(t *testing.T) {
	cache := newTemplateCache(2)

	_, ok := cache.Get("missing")
	assert.False(t, ok)

	tmpl := parseTestTemplate(t, "a")
	cache.Put("a", tmpl)

	got, ok := cache.Get("a")
	require.True(t, ok)
	assert.Same(t, tmpl, got)
	assert.Equal(t, 1, cache.Len())
}

func TestTemplateCache_EvictsLeastRecentlyUsed(t *testing.T) {
	cache := newTemplateCache(2)

	cache.Put("a", parseTestTemplate(t, "a"))
	cache.Put("b", parseTestTemplate(t, "b"))

	// Touch "a" so "b" becomes the eviction candidate
	_, ok := cache.Get("a")
	require.True(t, ok)

	cache.Put("c", parseTestTemplate(t, "c"))

	_, ok = cache.Get("b")
	assert.False(t, ok)
	_, ok = cache.Get("a")
	assert.True(t, ok)
	_, ok = cache.Get("c")
	assert.True(t, ok)
	assert.Equal(t, 2, cache.Len())
}

func TestTemplateCache_PutReplacesExisting(t *testing.T) {
	cache := newTemplateCache(2)

	cache.Put("a", parseTestTemplate(t, "a1"))
	updated := parseTestTemplate(t, "a2")
	cache.Put("a", updated)

	got, ok := cache.Get("a")
	require.True(t, ok)
	assert.Same(t, updated, got)
	assert.Equal(t, 1, cache.Len())
}

func TestTemplateCache_Invalidate(t *testing.T) {
	cache := newTemplateCache(2)

	cache.Put("a", parseTestTemplate(t, "a"))
	cache.Invalidate("a")

	_, ok := cache.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Len())

	// Invalidating an absent key is a no-op
	cache.Invalidate("missing")
}

func TestTemplateCache_DefaultCapacity(t *testing.T) {
	cache := newTemplateCache(0)

	for i := 0; i < defaultCacheCapacity+10; i++ {
		key := fmt.Sprintf("tmpl-%d", i)
		cache.Put(key, parseTestTemplate(t, key))
	}

	assert.Equal(t, defaultCacheCapacity, cache.Len())
}
