package parse

// Tolerant accessors over the decoded module-args blob. The page's own
// field fallbacks use "a or b" semantics: the first truthy key wins,
// otherwise the last key that is present (even if zero/empty) is used.

func obj(m map[string]any, path ...string) map[string]any {
	cur := m
	for _, key := range path {
		next, ok := cur[key].(map[string]any)
		if !ok {
			return nil
		}
		cur = next
	}
	return cur
}

func anyList(m map[string]any, key string) []any {
	l, _ := m[key].([]any)
	return l
}

func strList(m map[string]any, key string) []string {
	items := anyList(m, key)
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s, ok := it.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func str(m map[string]any, keys ...string) *string {
	for i, k := range keys {
		s, ok := m[k].(string)
		if !ok {
			continue
		}
		if s != "" || i == len(keys)-1 {
			return &s
		}
	}
	return nil
}

func num(m map[string]any, keys ...string) *float64 {
	for i, k := range keys {
		f, ok := m[k].(float64)
		if !ok {
			continue
		}
		if f != 0 || i == len(keys)-1 {
			return &f
		}
	}
	return nil
}

func integer(m map[string]any, keys ...string) *int64 {
	f := num(m, keys...)
	if f == nil {
		return nil
	}
	n := int64(*f)
	return &n
}
