package prompt

// Option resolution is a strict three-tier merge: an explicit flag wins over
// an interactive answer, which wins over the built-in default. Each option is
// resolved exactly once, at the command boundary.

// ResolveString treats the empty string as "not provided"
func ResolveString(flag, answer, def string) string {
	if flag != "" {
		return flag
	}
	if answer != "" {
		return answer
	}
	return def
}

// ResolveBool needs explicit "was it set" markers since false is a valid value
func ResolveBool(flagSet, flag, answered, answer, def bool) bool {
	if flagSet {
		return flag
	}
	if answered {
		return answer
	}
	return def
}

// ResolveInt treats zero as "not provided"
func ResolveInt(flag, answer, def int) int {
	if flag != 0 {
		return flag
	}
	if answer != 0 {
		return answer
	}
	return def
}
