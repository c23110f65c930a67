package vcf

import "strings"

// infoPair locates the first key=value pair for key in the INFO column.
// It returns the split pairs and the index of the match, or -1.
// Flag entries without '=' never match.
func (r *Record) infoPair(key string) ([]string, int) {
	pairs := strings.Split(r.fields[ColInfo], ";")
	for i, p := range pairs {
		k, _, ok := strings.Cut(p, "=")
		if ok && k == key {
			return pairs, i
		}
	}
	return pairs, -1
}

// Info returns the value of an INFO key, or "" when the key is absent.
// Use HasInfo to tell a missing key from an empty value.
func (r *Record) Info(key string) string {
	pairs, i := r.infoPair(key)
	if i < 0 {
		return ""
	}
	_, v, _ := strings.Cut(pairs[i], "=")
	return v
}

// HasInfo reports whether key is set in the INFO column.
func (r *Record) HasInfo(key string) bool {
	_, i := r.infoPair(key)
	return i >= 0
}

// SetInfo sets an INFO key in place. An existing pair keeps its position and
// every other pair is left byte-identical; a new key is appended after a ';'
// even when the column is "." or empty.
func (r *Record) SetInfo(key, value string) {
	kv := key + "=" + value
	info := r.fields[ColInfo]

	pairs, i := r.infoPair(key)
	switch {
	case i == 0:
		// First pair: no leading separator to keep.
		rest := strings.TrimPrefix(info, pairs[0])
		r.fields[ColInfo] = kv + rest
	case i > 0:
		pairs[i] = kv
		r.fields[ColInfo] = strings.Join(pairs, ";")
	default:
		r.fields[ColInfo] = info + ";" + kv
	}
}
