package canonical

// Title removes one leading and one trailing double quote from a title.
// Each end is checked on its own, so `"` alone reduces to "".
func Title(raw string) string {
	v := raw
	if v == "" {
		return ""
	}
	if v[0] == '"' {
		v = v[1:]
	}
	if v != "" && v[len(v)-1] == '"' {
		v = v[:len(v)-1]
	}
	return v
}
