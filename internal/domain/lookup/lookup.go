package lookup

// LookupByExactKey returns the first entry, in slice order, whose key equals
// normalizedKey. An empty key never matches.
func LookupByExactKey[T any](entries []T, key func(T) string, normalizedKey string) (T, bool) {
	var zero T
	if normalizedKey == "" {
		return zero, false
	}
	for _, e := range entries {
		if key(e) == normalizedKey {
			return e, true
		}
	}
	return zero, false
}
