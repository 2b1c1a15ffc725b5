package cache

import "hash/fnv"

// Fingerprint hashes statement text into the cache key space (FNV-1a).
func Fingerprint(sql string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(sql))
	return h.Sum64()
}
