package rendering

import "strings"

type channel struct {
	key    string
	label  string
	prefix string
}

// contactChannels lists the recognized channels in display order.
var contactChannels = []channel{
	{key: "email", label: "Email", prefix: "mailto:"},
	{key: "linkedin", label: "LinkedIn", prefix: "https://www.linkedin.com/in/"},
	{key: "github", label: "GitHub", prefix: "https://github.com/"},
	{key: "personalwebsite", label: "Website", prefix: "https://"},
	{key: "address", label: "Address"},
	{key: "phone", label: "Mobile", prefix: "tel:"},
}

// isURL reports whether v already is a fully-qualified http(s) URL.
func isURL(v string) bool {
	lower := strings.ToLower(v)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// buildContacts returns the non-empty contact channels. Keys are matched
// case-insensitively.
func buildContacts(values map[string]string) []Contact {
	if len(values) == 0 {
		return nil
	}

	lookup := make(map[string]string, len(values))
	for k, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			lookup[strings.ToLower(k)] = v
		}
	}

	var contacts []Contact
	for _, ch := range contactChannels {
		v, ok := lookup[ch.key]
		if !ok {
			continue
		}
		contacts = append(contacts, Contact{
			Channel: ch.key,
			Label:   ch.label,
			Text:    v,
			Link:    contactLink(ch, v),
		})
	}
	return contacts
}

func contactLink(ch channel, v string) string {
	switch {
	case ch.prefix == "":
		return ""
	case isURL(v):
		return v
	case ch.key == "phone":
		return ch.prefix + strings.Join(strings.Fields(v), "")
	case ch.key == "linkedin" || ch.key == "github":
		return ch.prefix + strings.Trim(strings.TrimPrefix(v, "@"), "/")
	default:
		return ch.prefix + v
	}
}
