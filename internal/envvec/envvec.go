// Package envvec builds the environment vectors handed to genuine
// process-creation calls.
//
// A vector is a sequence of KEY=VALUE entries in caller order. Transforms
// here preserve the position of every entry they touch and never alias the
// input they are given to copy.
package envvec

import (
	"strings"

	"github.com/agentsh/execlog/internal/strarr"
)

// Pair is one environment binding to force into a child environment.
type Pair struct {
	Key   string
	Value string
}

// Entry formats a single KEY=VALUE environment entry.
func Entry(key, value string) string {
	return key + "=" + value
}

// Set forces key to value in vec and returns the updated vector. The first
// entry whose key matches is rewritten in place, keeping its position and
// the vector's length; when no entry matches, a new one is appended. Set
// takes ownership of vec and may return it or a grown copy.
func Set(vec []string, key, value string) []string {
	for i, entry := range vec {
		if hasKey(entry, key) {
			vec[i] = Entry(key, value)
			return vec
		}
	}
	return append(vec, Entry(key, value))
}

// Apply clones input and forces every pair into the clone, in pair order.
// The input vector is left untouched; the result is exclusively the
// caller's. A nil input is treated as an empty environment.
func Apply(input []string, pairs []Pair) []string {
	out := strarr.Clone(input)
	for _, p := range pairs {
		out = Set(out, p.Key, p.Value)
	}
	return out
}

// hasKey reports whether entry binds key. Entries without a separator
// never match, and a key that is only a prefix of the entry's key does
// not match either.
func hasKey(entry, key string) bool {
	return len(entry) > len(key) && entry[len(key)] == '=' && strings.HasPrefix(entry, key)
}
