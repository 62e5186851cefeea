package templateconfig

import "errors"

// Merge lays a partial config over the defaults, key by key inside every
// group. Missing keys keep their default, unknown keys are dropped, and
// invalid values keep their default and are reported in the returned error.
// The merged config is always complete.
func Merge(partial TemplateConfig) (TemplateConfig, error) {
	out := Defaults()
	var errs []error
	for _, f := range fields {
		raw, ok := partial.Value(f)
		if !ok {
			continue
		}
		norm, visible, err := Normalize(f, raw)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out.set(f, norm, visible)
	}
	return out, errors.Join(errs...)
}

// Equal reports whether a and b hold the same values for every field.
func Equal(a, b TemplateConfig) bool {
	for _, f := range fields {
		av, aok := a.Value(f)
		bv, bok := b.Value(f)
		if aok != bok || av != bv {
			return false
		}
	}
	return true
}
