// Package templateconfig holds the editable settings of the email template:
// colors, fonts, text content, section visibility and slot images.
//
// Every editable value has exactly one row in the field table. A row ties the
// dotted config path ("colors.primary") to its kind, its CSS variable, the
// preview marker it drives and the editor control that edits it, so no name
// is ever derived from another at runtime.
//
//	store := templateconfig.NewStore()
//	field, err := store.Set("colors.primary", "#112233")
//
// Configs round-trip through JSON and YAML. Decoding yields a partial config;
// Merge lays it over the defaults.
package templateconfig
