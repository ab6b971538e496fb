package redis

import "fmt"

const (
	// KeyPrefixKV is the prefix for every client key-value entry
	KeyPrefixKV = "namax:kv:"
)

// KVKey returns the Redis key for a (scoped) logical key
func KVKey(key string) string {
	return KeyPrefixKV + key
}

// ExtractKey strips the namespace prefix from a Redis key
func ExtractKey(redisKey string) (string, error) {
	if len(redisKey) <= len(KeyPrefixKV) || redisKey[:len(KeyPrefixKV)] != KeyPrefixKV {
		return "", fmt.Errorf("invalid kv key: %s", redisKey)
	}
	return redisKey[len(KeyPrefixKV):], nil
}
