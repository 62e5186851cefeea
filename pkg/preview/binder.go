package preview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/emailcraft/pkg/logger"
	"github.com/dmitrymomot/emailcraft/pkg/templateconfig"
)

// Binder keeps a Preview in step with a templateconfig.Store.
type Binder struct {
	store   *templateconfig.Store
	preview Preview
	log     *slog.Logger
}

// NewBinder wires store to preview. A nil logger discards.
func NewBinder(store *templateconfig.Store, preview Preview, log *slog.Logger) *Binder {
	if log == nil {
		log = logger.Discard()
	}
	return &Binder{store: store, preview: preview, log: log.With(logger.Component("preview"))}
}

// Set validates value, stores it and mirrors it into the preview.
// Only validation errors are returned.
func (b *Binder) Set(path, value string) error {
	f, norm, err := b.store.Set(path, value)
	if err != nil {
		return err
	}
	b.apply(f, norm)
	return nil
}

// SetImage stores src for an image slot such as "hero-image".
func (b *Binder) SetImage(slot, src string) error {
	f, ok := templateconfig.ImageSlot(slot)
	if !ok {
		return fmt.Errorf("%w: image slot %q", templateconfig.ErrUnknownField, slot)
	}
	return b.Set(f.Path, src)
}

// ApplyConfig merges partial over the defaults, replaces the store and
// re-runs every field update. Values that fail validation keep their
// default; they are returned joined, but the merged config is applied anyway.
func (b *Binder) ApplyConfig(partial templateconfig.TemplateConfig) error {
	merged, err := templateconfig.Merge(partial)
	b.store.Replace(merged)
	b.Sync()
	if err != nil {
		b.log.Warn("config values fell back to defaults", logger.Error(err))
	}
	return err
}

// Reset restores the defaults.
func (b *Binder) Reset() {
	b.store.Replace(templateconfig.Defaults())
	b.Sync()
}

// Sync pushes every field of the store into the preview.
func (b *Binder) Sync() {
	cfg := b.store.Snapshot()
	for _, f := range templateconfig.Fields() {
		v, _ := cfg.Value(f)
		b.apply(f, v)
	}
}

// Variables returns the CSS variables of the current config.
func (b *Binder) Variables() map[string]string {
	cfg := b.store.Snapshot()
	vars := map[string]string{}
	for _, f := range templateconfig.Fields() {
		if f.Variable == "" {
			continue
		}
		if v, ok := cfg.Value(f); ok {
			vars[f.Variable] = cssValue(v)
		}
	}
	return vars
}

// HTML returns the live preview markup.
func (b *Binder) HTML() ([]byte, error) {
	return b.preview.HTML()
}

// ExportHTML returns the preview as a standalone document with every
// template variable replaced by its literal value.
func (b *Binder) ExportHTML() ([]byte, error) {
	doc, err := b.preview.HTML()
	if err != nil {
		return nil, err
	}
	return InlineDocument(doc, b.Variables())
}

func (b *Binder) apply(f templateconfig.Field, value string) {
	var err error
	switch f.Kind {
	case templateconfig.KindColor, templateconfig.KindFont:
		err = b.preview.SetVariable(f.Variable, cssValue(value))
	case templateconfig.KindText:
		err = b.preview.SetText(f.Marker, value, f.LineBreaks)
	case templateconfig.KindVisibility:
		err = b.preview.SetVisibility(f.Marker, value == "true")
	case templateconfig.KindImage:
		err = b.preview.SetImage(f.Marker, value)
	}
	if err == nil {
		return
	}

	level := slog.LevelWarn
	if errors.Is(err, ErrDocumentUnavailable) {
		level = slog.LevelDebug
	}
	b.log.Log(context.Background(), level, "preview update skipped",
		logger.Field(f.Path),
		logger.Error(err),
	)
}
