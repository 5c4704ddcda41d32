package recaptcha

import "strings"

// Extract returns the value of the first field whose key starts with
// inputIDPrefix, or "" when none does.
func Extract(fields []Field, inputIDPrefix string) string {
	for _, f := range fields {
		if strings.HasPrefix(f.Key, inputIDPrefix) {
			return f.Value
		}
	}
	return ""
}
