package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProjectDictionaryKey(t *testing.T) {
	assert.Equal(t, "dictionary:project:42", ProjectDictionaryKey(42))
}

func TestNewRedisCacheRejectsBadURL(t *testing.T) {
	_, err := NewRedisCache("not-a-redis-url")
	assert.Error(t, err)
}
