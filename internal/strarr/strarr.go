// Package strarr provides owned copies of the string vectors that cross
// process-creation boundaries: argument lists and environment blocks.
//
// Every function returns storage the caller exclusively owns; nothing in
// this package retains a reference to its inputs or results.
package strarr

// Clone returns a freshly backed copy of in. The result never aliases in,
// so neither side can observe mutation of the other. A nil input yields an
// empty, non-nil vector.
func Clone(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// FromList collects a leading argument and its tail into an owned vector.
// This is the shape the exec*l calling conventions deliver arguments in:
// at least one argument, followed by zero or more until the list ends.
func FromList(arg string, rest ...string) []string {
	out := make([]string, 0, len(rest)+1)
	out = append(out, arg)
	return append(out, rest...)
}
