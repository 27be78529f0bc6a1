package convert

import "strings"

// Cookie is one name/value pair of a Cookie header.
type Cookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ParseCookies splits a Cookie header value into pairs. Parts are split on
// the first "="; a part without one has an empty value.
func ParseCookies(input string) []Cookie {
	cookies := []Cookie{}
	for _, part := range strings.Split(input, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, value, _ := strings.Cut(part, "=")
		cookies = append(cookies, Cookie{Name: name, Value: value})
	}
	return cookies
}

// CookiesToJSON renders ParseCookies(input) as a JSON array.
func CookiesToJSON(input string) (string, error) {
	return marshal(ParseCookies(input))
}
