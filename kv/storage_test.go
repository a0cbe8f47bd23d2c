package kv

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStorage(t *testing.T) {
	t.Run("add and get", func(t *testing.T) {
		s := New().Add("hello", "world").Add("foo", "bar")
		value, found := s.Get("hello")
		require.True(t, found)
		require.Equal(t, "world", value)
		require.Equal(t, "bar", s.Value("foo"))
		require.Equal(t, 2, s.Len())
	})

	t.Run("lookup is case-sensitive", func(t *testing.T) {
		s := New().Add("content-length", "5")
		require.False(t, s.Has("Content-Length"))
		require.True(t, s.Has("content-length"))
	})

	t.Run("set overwrites in place", func(t *testing.T) {
		s := New().Set("host", "a").Set("host", "b").Set("host", "c")
		require.Equal(t, 1, s.Len())
		require.Equal(t, "c", s.Value("host"))
	})

	t.Run("add keeps duplicates", func(t *testing.T) {
		s := New().Add("set-cookie", "a=1").Add("set-cookie", "b=2")
		require.Equal(t, 2, s.Len())
		require.Equal(t, []string{"set-cookie"}, s.Keys())
	})

	t.Run("value or", func(t *testing.T) {
		s := New()
		require.Equal(t, "fallback", s.ValueOr("missing", "fallback"))
		require.Equal(t, "", s.Value("missing"))
	})

	t.Run("from map", func(t *testing.T) {
		s := NewFromMap(map[string]string{"a": "1", "b": "2"})
		require.Equal(t, "1", s.Value("a"))
		require.Equal(t, "2", s.Value("b"))
	})

	t.Run("clone is deep", func(t *testing.T) {
		s := New().Add("a", "1")
		c := s.Clone()
		s.Set("a", "2")
		require.Equal(t, "1", c.Value("a"))
	})

	t.Run("clear", func(t *testing.T) {
		s := New().Add("a", "1").Clear()
		require.True(t, s.Empty())
	})
}
