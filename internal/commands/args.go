package commands

import "strings"

// legacyFlags maps single-dash long flags from earlier releases onto their
// current spelling. pflag would otherwise read "-im" as the shorthands -i -m.
var legacyFlags = map[string]string{ //nolint:gochecknoglobals
	"-im": "--image",
}

// NormalizeArgs rewrites legacy flags in args. Everything after "--" is left alone.
func NormalizeArgs(args []string) []string {
	out := make([]string, 0, len(args))

	for i, arg := range args {
		if arg == "--" {
			return append(out, args[i:]...)
		}

		name, value, hasValue := strings.Cut(arg, "=")

		if replacement, ok := legacyFlags[name]; ok {
			if hasValue {
				arg = replacement + "=" + value
			} else {
				arg = replacement
			}
		}

		out = append(out, arg)
	}

	return out
}
