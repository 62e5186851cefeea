package validator

import (
	"fmt"
	"net/mail"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"
)

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Number is any built-in numeric type.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Required fails when value is empty or whitespace only.
func Required(field, value string) Rule {
	return Rule{
		Check:     func() bool { return strings.TrimSpace(value) != "" },
		Violation: Violation{Field: field, Code: "required", Message: "is required"},
	}
}

// MaxLength fails when value has more than n runes.
func MaxLength(field, value string, n int) Rule {
	return Rule{
		Check:     func() bool { return utf8.RuneCountInString(value) <= n },
		Violation: Violation{Field: field, Code: "max_length", Message: fmt.Sprintf("must be at most %d characters", n)},
	}
}

// HexColor fails unless value is a six-digit hex color such as "#1a2B3c".
func HexColor(field, value string) Rule {
	return Rule{
		Check:     func() bool { return IsHexColor(value) },
		Violation: Violation{Field: field, Code: "hex_color", Message: "must be a color like #112233"},
	}
}

// IsHexColor reports whether value is a six-digit hex color.
func IsHexColor(value string) bool {
	return hexColor.MatchString(value)
}

// InRange fails when value is outside [lo, hi].
func InRange[T Number](field string, value, lo, hi T) Rule {
	return Rule{
		Check:     func() bool { return value >= lo && value <= hi },
		Violation: Violation{Field: field, Code: "range", Message: fmt.Sprintf("must be between %v and %v", lo, hi)},
	}
}

// OneOf fails unless value is one of allowed.
func OneOf[T comparable](field string, value T, allowed ...T) Rule {
	return Rule{
		Check:     func() bool { return slices.Contains(allowed, value) },
		Violation: Violation{Field: field, Code: "one_of", Message: fmt.Sprintf("must be one of %v", allowed)},
	}
}

// Email fails unless value is a single bare address.
func Email(field, value string) Rule {
	return Rule{
		Check: func() bool {
			addr, err := mail.ParseAddress(value)
			return err == nil && addr.Address == value
		},
		Violation: Violation{Field: field, Code: "email", Message: "must be a valid email address"},
	}
}

// ImageDataURL fails unless value is a base64 data URL with an image media type.
func ImageDataURL(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return strings.HasPrefix(value, "data:image/") && strings.Contains(value, ";base64,")
		},
		Violation: Violation{Field: field, Code: "image_data_url", Message: "must be an embedded image"},
	}
}
