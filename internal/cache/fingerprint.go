package cache

import (
	"hash/fnv"
	"sort"
	"strconv"
	"strings"
)

// Fingerprint derives a short deterministic cache key from the primary text
// and an option map. Text is lowercased and trimmed; options are serialized
// as sorted key:value pairs so map ordering never affects the result.
func Fingerprint(text string, options map[string]string) string {
	keys := make([]string, 0, len(options))
	for k := range options {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = k + ":" + options[k]
	}

	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(strings.TrimSpace(text))))
	h.Write([]byte("::"))
	h.Write([]byte(strings.Join(pairs, "|")))
	return strconv.FormatUint(uint64(h.Sum32()), 36)
}
