package anonymask

import (
	"net/url"
	"strings"
	"unicode"
)

// CategoryName is the conventional custom category for person names.
// It is not a built-in detector; Occurrence.Masked uses it for display.
const CategoryName = "name"

// Masker produces a partial, display-only rendering of a value.
// Masked output is not reversible and never appears in a Mapping.
type Masker interface {
	Mask(value string) string
}

// MaskerFunc adapts a function to Masker.
type MaskerFunc func(value string) string

// Mask calls f(value).
func (f MaskerFunc) Mask(value string) string {
	return f(value)
}

var categoryMaskers = map[string]Masker{
	CategoryEmail:      MaskerFunc(maskEmail),
	CategoryPhone:      MaskerFunc(maskPhone),
	CategorySSN:        MaskerFunc(maskSSN),
	CategoryCreditCard: MaskerFunc(maskCard),
	CategoryIPAddress:  MaskerFunc(maskIP),
	CategoryURL:        MaskerFunc(maskURL),
	CategoryName:       MaskerFunc(maskName),
}

// MaskerFor returns the masker for a category. Categories without a
// dedicated masker get one that keeps only the first rune.
func MaskerFor(category string) Masker {
	if m, ok := categoryMaskers[strings.ToLower(category)]; ok {
		return m
	}
	return MaskerFunc(maskGeneric)
}

// maskEmail: alice@example.com -> a***@example.com
func maskEmail(value string) string {
	at := strings.LastIndex(value, "@")
	if at < 1 {
		return stars(value)
	}
	local := []rune(value[:at])
	return string(local[0]) + "***" + value[at:]
}

// maskPhone: (555) 123-4567 -> (***) ***-4567, 555-1234 -> ***-1234
func maskPhone(value string) string {
	digits := digitsOf(value)
	if len(digits) < 4 {
		return stars(value)
	}
	last4 := digits[len(digits)-4:]
	switch {
	case strings.HasPrefix(value, "(") && len(digits) >= 10:
		return "(***) ***-" + last4
	case len(digits) >= 10:
		return "***-***-" + last4
	default:
		return "***-" + last4
	}
}

// maskSSN: 123-45-6789 -> ***-**-6789
func maskSSN(value string) string {
	digits := digitsOf(value)
	if len(digits) < 4 {
		return stars(value)
	}
	return "***-**-" + digits[len(digits)-4:]
}

// maskCard keeps the last four digits and the separator layout:
// 4111-1111-1111-1111 -> ****-****-****-1111
func maskCard(value string) string {
	digits := digitsOf(value)
	if len(digits) < 4 {
		return stars(value)
	}
	keep := len(digits) - 4
	var b strings.Builder
	seen := 0
	for _, r := range value {
		if r < '0' || r > '9' {
			b.WriteRune(r)
			continue
		}
		if seen < keep {
			b.WriteByte('*')
		} else {
			b.WriteRune(r)
		}
		seen++
	}
	return b.String()
}

// maskIP keeps the network half: 192.168.1.100 -> 192.168.xxx.xxx,
// 2001:db8::1 -> 2001:db8:xxxx:xxxx
func maskIP(value string) string {
	if strings.Contains(value, ":") {
		groups := strings.Split(value, ":")
		kept := make([]string, 0, 4)
		for _, g := range groups {
			if g == "" {
				continue
			}
			kept = append(kept, g)
			if len(kept) == 2 {
				break
			}
		}
		return strings.Join(append(kept, "xxxx", "xxxx"), ":")
	}
	octets := strings.Split(value, ".")
	if len(octets) != 4 {
		return stars(value)
	}
	return octets[0] + "." + octets[1] + ".xxx.xxx"
}

// maskURL keeps the scheme and host: https://example.com/a?b -> https://example.com/***
func maskURL(value string) string {
	u, err := url.Parse(value)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return maskGeneric(value)
	}
	host := u.Hostname()
	if u.Path == "" && u.RawQuery == "" && u.Fragment == "" {
		return u.Scheme + "://" + host
	}
	return u.Scheme + "://" + host + "/***"
}

// maskName: John Smith -> J*** S****
func maskName(value string) string {
	words := strings.Fields(value)
	if len(words) == 0 {
		return stars(value)
	}
	for i, w := range words {
		words[i] = maskGeneric(w)
	}
	return strings.Join(words, " ")
}

// maskGeneric keeps the first rune: secret -> s*****
func maskGeneric(value string) string {
	runes := []rune(value)
	if len(runes) <= 1 {
		return stars(value)
	}
	return string(runes[0]) + strings.Repeat("*", len(runes)-1)
}

// stars masks every rune.
func stars(value string) string {
	return strings.Repeat("*", len([]rune(value)))
}

// digitsOf returns the ASCII and Unicode decimal digits of s.
func digitsOf(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
