package repositories

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostKey(t *testing.T) {
	t.Run("canonical id", func(t *testing.T) {
		key, ok := postKey("0190a1b2-c3d4-7e5f-8a6b-7c8d9e0f1a2b")
		require.True(t, ok)
		assert.Equal(t, "post:0190a1b2-c3d4-7e5f-8a6b-7c8d9e0f1a2b", string(key))
	})

	t.Run("upper case id maps to the same key", func(t *testing.T) {
		key, ok := postKey(strings.ToUpper("0190a1b2-c3d4-7e5f-8a6b-7c8d9e0f1a2b"))
		require.True(t, ok)
		assert.Equal(t, "post:0190a1b2-c3d4-7e5f-8a6b-7c8d9e0f1a2b", string(key))
	})

	t.Run("malformed ids", func(t *testing.T) {
		for _, id := range []string{"", "1", "not-a-uuid", "post:1", "0190a1b2-c3d4"} {
			_, ok := postKey(id)
			assert.False(t, ok, id)
		}
	})
}

func TestNewPostIDOrdering(t *testing.T) {
	prev, err := newPostID()
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		next, err := newPostID()
		require.NoError(t, err)
		assert.Less(t, prev, next)
		prev = next
	}
}

func TestMarshalEntity(t *testing.T) {
	type entity struct {
		Name string `json:"name"`
	}

	data, err := marshalEntity(entity{Name: "doc"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"doc"}`, string(data))

	var out entity
	require.NoError(t, unmarshalEntity(data, &out))
	assert.Equal(t, "doc", out.Name)

	assert.Error(t, unmarshalEntity([]byte("{"), &out))
	_, err = marshalEntity(make(chan int))
	assert.Error(t, err)
}
