package site

// Dedupe returns order with repeated names removed, keeping the first
// occurrence of each.
func Dedupe(order []string) []string {
	seen := make(map[string]bool, len(order))
	out := make([]string, 0, len(order))
	for _, s := range order {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// Contains reports whether name appears in order.
func Contains(order []string, name string) bool {
	return IndexOf(order, name) >= 0
}

// IndexOf returns the position of name in order, or -1.
func IndexOf(order []string, name string) int {
	for i, s := range order {
		if s == name {
			return i
		}
	}
	return -1
}

// Without returns order minus every name in drop.
func Without(order []string, drop ...string) []string {
	skip := make(map[string]bool, len(drop))
	for _, d := range drop {
		skip[d] = true
	}
	out := make([]string, 0, len(order))
	for _, s := range order {
		if !skip[s] {
			out = append(out, s)
		}
	}
	return out
}
