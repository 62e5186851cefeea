package templateconfig

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/dmitrymomot/emailcraft/pkg/validator"
)

const (
	maxFontLength = 200
	maxTextLength = 2000
)

var fontFamily = regexp.MustCompile(`^[A-Za-z0-9 ,'"\-]+$`)

// Normalize validates value for f and returns its canonical form. For
// visibility fields the parsed flag is returned as well.
func Normalize(f Field, value string) (string, bool, error) {
	switch f.Kind {
	case KindColor:
		value = strings.TrimSpace(value)
		if err := validator.Apply(validator.HexColor(f.Path, value)); err != nil {
			return "", false, errors.Join(ErrInvalidValue, err)
		}
		return strings.ToLower(value), false, nil

	case KindFont:
		value = strings.TrimSpace(value)
		if err := validator.Apply(
			validator.Required(f.Path, value),
			validator.MaxLength(f.Path, value, maxFontLength),
			validator.Rule{
				Check:     func() bool { return value == "" || fontFamily.MatchString(value) },
				Violation: validator.Violation{Field: f.Path, Code: "font_family", Message: "must be a list of font names"},
			},
		); err != nil {
			return "", false, errors.Join(ErrInvalidValue, err)
		}
		return value, false, nil

	case KindText:
		value = strings.ReplaceAll(value, "\r\n", "\n")
		if err := validator.Apply(validator.MaxLength(f.Path, value, maxTextLength)); err != nil {
			return "", false, errors.Join(ErrInvalidValue, err)
		}
		return value, false, nil

	case KindVisibility:
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "true", "on", "1", "yes":
			return "true", true, nil
		case "false", "off", "0", "no", "":
			return "false", false, nil
		}
		return "", false, errors.Join(ErrInvalidValue,
			validator.Errors{{Field: f.Path, Code: "bool", Message: "must be true or false"}})

	case KindImage:
		value = strings.TrimSpace(value)
		if value == "" || isImageRef(value) {
			return value, false, nil
		}
		return "", false, errors.Join(ErrInvalidValue,
			validator.Errors{{Field: f.Path, Code: "image", Message: "must be an embedded image or an http(s) URL"}})
	}
	return "", false, fmt.Errorf("%w: %s", ErrUnknownField, f.Path)
}

func isImageRef(v string) bool {
	if validator.ImageDataURL("", v).Check() {
		return true
	}
	u, err := url.Parse(v)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
