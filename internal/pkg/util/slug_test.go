package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveSlug(t *testing.T) {
	assert.Equal(t, "hello-world", DeriveSlug("Hello, World!"))
	assert.Equal(t, "hello-world-foo", DeriveSlug("  Hello, World!  Foo "))
	assert.Equal(t, "whats-new-in-2026", DeriveSlug("What's New in 2026?"))
	assert.Equal(t, "", DeriveSlug("!!!"))
}

func TestNormalizeSlug(t *testing.T) {
	got, ok := NormalizeSlug("My-Post")
	assert.True(t, ok)
	assert.Equal(t, "my-post", got)

	got, ok = NormalizeSlug("  hello-world-2026  ")
	assert.True(t, ok)
	assert.Equal(t, "hello-world-2026", got)

	for _, bad := range []string{"", "-leading", "trailing-", "two--dashes", "has space", "emoji💡", strings.Repeat("a", MaxSlugLength+1)} {
		_, ok = NormalizeSlug(bad)
		assert.False(t, ok, bad)
	}
}

func TestDeriveSlug_Truncates(t *testing.T) {
	long := strings.Repeat("abcde ", 20)
	slug := DeriveSlug(long)
	assert.LessOrEqual(t, len(slug), MaxSlugLength)
	assert.True(t, strings.HasPrefix(slug, "abcde-abcde"))
}
