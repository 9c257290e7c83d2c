package proxy

import "regexp"

var placeholder = regexp.MustCompile(`{([^{}]*)}`)

// Supplant replaces every {name} placeholder in template with the matching
// string or number from values. Placeholders without a usable value are kept
// as they are. Substituted text is not scanned again.
func Supplant(template string, values Params) string {
	if len(values) == 0 {
		return template
	}

	return placeholder.ReplaceAllStringFunc(template, func(match string) string {
		v, ok := values.Lookup(match[1 : len(match)-1])
		if !ok {
			return match
		}

		text, ok := scalarText(v)
		if !ok {
			return match
		}

		return text
	})
}
