package editor

import (
	"context"
	_ "embed"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/emailcraft/pkg/async"
	"github.com/dmitrymomot/emailcraft/pkg/broadcast"
	"github.com/dmitrymomot/emailcraft/pkg/imageedit"
	"github.com/dmitrymomot/emailcraft/pkg/imagegen"
	"github.com/dmitrymomot/emailcraft/pkg/logger"
	"github.com/dmitrymomot/emailcraft/pkg/preview"
	"github.com/dmitrymomot/emailcraft/pkg/templateconfig"
)

//go:embed template.html
var defaultTemplate []byte

const hubBuffer = 16

// ChangeKind tells subscribers what to re-render.
type ChangeKind string

const (
	ChangePreview     ChangeKind = "preview"
	ChangeImage       ChangeKind = "image"
	ChangeGeneration  ChangeKind = "generation"
	ChangeConfig      ChangeKind = "config"
	ChangeImageEditor ChangeKind = "image_editor"
)

// Change is published after every mutation.
type Change struct {
	Kind    ChangeKind
	Version uint64
	Slot    string
}

// Generation states.
const (
	GenerationPending = "pending"
	GenerationDone    = "done"
	GenerationFailed  = "failed"
)

// GenerationStatus is the last generation outcome for a slot.
type GenerationStatus struct {
	Slot     string
	Provider string
	State    string
	Err      error
}

// Generation is a running image generation.
type Generation struct {
	Ticket string
	Slot   string
	done   chan struct{}
}

// Wait blocks until the result was applied or dropped.
func (g *Generation) Wait(ctx context.Context) error {
	select {
	case <-g.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Editor is the single editor controller.
type Editor struct {
	mu      sync.Mutex
	cfg     Config
	log     *slog.Logger
	store   *templateconfig.Store
	doc     *preview.HTMLDocument
	binder  *preview.Binder
	gen     *imagegen.Generator
	fetcher *imagegen.Fetcher
	fonts   *imageedit.FontBank
	hub     *broadcast.Hub[Change]

	session *imageedit.Session
	tickets map[string]string
	status  map[string]GenerationStatus
	version uint64
}

// EditorOption configures an Editor.
type EditorOption func(*Editor)

// WithLogger sets the editor logger.
func WithLogger(log *slog.Logger) EditorOption {
	return func(e *Editor) {
		if log != nil {
			e.log = log
		}
	}
}

// WithFetcher sets the fetcher used to inline remote slot images before editing.
func WithFetcher(f *imagegen.Fetcher) EditorOption {
	return func(e *Editor) {
		if f != nil {
			e.fetcher = f
		}
	}
}

// NewEditor loads the template and applies the default configuration.
func NewEditor(cfg Config, gen *imagegen.Generator, opts ...EditorOption) (*Editor, error) {
	src := defaultTemplate
	if cfg.TemplatePath != "" {
		data, err := os.ReadFile(cfg.TemplatePath)
		if err != nil {
			return nil, fmt.Errorf("read template: %w", err)
		}
		src = data
	}
	doc, err := preview.NewHTMLDocument(src)
	if err != nil {
		return nil, err
	}

	e := &Editor{
		cfg:     cfg,
		log:     logger.Discard(),
		store:   templateconfig.NewStore(),
		doc:     doc,
		gen:     gen,
		fetcher: imagegen.NewFetcher(nil, cfg.MaxUploadSize),
		fonts:   imageedit.NewFontBank(),
		hub:     broadcast.NewHub[Change](hubBuffer),
		tickets: map[string]string{},
		status:  map[string]GenerationStatus{},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.With(logger.Component("editor"))
	e.binder = preview.NewBinder(e.store, e.doc, e.log)
	e.binder.Sync()
	return e, nil
}

// Close ends every subscription.
func (e *Editor) Close() {
	e.hub.Close()
}

// Subscribe returns the change feed. The channel closes with ctx.
func (e *Editor) Subscribe(ctx context.Context) (<-chan Change, func()) {
	return e.hub.Subscribe(ctx)
}

// Providers lists the image generation providers.
func (e *Editor) Providers() []string {
	return e.gen.Providers()
}

// Config returns a copy of the current configuration.
func (e *Editor) Config() templateconfig.TemplateConfig {
	return e.store.Snapshot()
}

// Version is bumped by every mutation.
func (e *Editor) Version() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.version
}

// PreviewHTML renders the live preview document.
func (e *Editor) PreviewHTML() ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.binder.HTML()
}

// SetField validates and applies one control value.
func (e *Editor) SetField(path, value string) error {
	f, ok := templateconfig.Lookup(path)
	if !ok {
		return fmt.Errorf("%w: %q", templateconfig.ErrUnknownField, path)
	}
	if f.Kind == templateconfig.KindImage {
		return e.SetImage(f.Key, value)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.binder.Set(path, value); err != nil {
		return err
	}
	e.publish(ChangePreview, "")
	return nil
}

// SetImage sets a slot image. It supersedes a pending generation for the slot.
func (e *Editor) SetImage(slot, src string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.binder.SetImage(slot, src); err != nil {
		return err
	}
	delete(e.tickets, slot)
	delete(e.status, slot)
	e.publish(ChangeImage, slot)
	return nil
}

// UploadImage stores raw image bytes as a data URL in slot.
func (e *Editor) UploadImage(slot string, data []byte, contentType string) error {
	return e.SetImage(slot, "data:"+contentType+";base64,"+base64.StdEncoding.EncodeToString(data))
}

// Image returns the image of a slot.
func (e *Editor) Image(slot string) (string, bool) {
	return e.store.Image(slot)
}

// Generate starts image generation for slot. The result is applied only if
// no newer generation, manual image change or reset happened meanwhile.
func (e *Editor) Generate(ctx context.Context, slot string, req imagegen.Request) (*Generation, error) {
	f, ok := templateconfig.ImageSlot(slot)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSlot, slot)
	}
	req.Slot = f.SlotType

	g := &Generation{Ticket: uuid.NewString(), Slot: slot, done: make(chan struct{})}

	e.mu.Lock()
	e.tickets[slot] = g.Ticket
	e.status[slot] = GenerationStatus{Slot: slot, Provider: req.Provider, State: GenerationPending}
	e.publish(ChangeGeneration, slot)
	e.mu.Unlock()

	runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.cfg.GenerationTimeout)
	async.Run(runCtx, func(ctx context.Context) (imagegen.Image, error) {
		return e.gen.Generate(ctx, req)
	}).OnComplete(func(img imagegen.Image, err error) {
		defer close(g.done)
		defer cancel()
		e.finishGeneration(g, req.Provider, img, err)
	})
	return g, nil
}

func (e *Editor) finishGeneration(g *Generation, provider string, img imagegen.Image, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.tickets[g.Slot] != g.Ticket {
		e.log.Debug("dropping stale generation result", logger.Slot(g.Slot), logger.Provider(provider))
		return
	}
	delete(e.tickets, g.Slot)

	if err == nil {
		err = e.binder.SetImage(g.Slot, img.Src)
	}
	if err != nil {
		e.status[g.Slot] = GenerationStatus{Slot: g.Slot, Provider: provider, State: GenerationFailed, Err: err}
		e.publish(ChangeGeneration, g.Slot)
		return
	}
	e.status[g.Slot] = GenerationStatus{Slot: g.Slot, Provider: img.Provider, State: GenerationDone}
	e.publish(ChangeImage, g.Slot)
}

// GenerationStatus returns the last generation status of slot.
func (e *Editor) GenerationStatus(slot string) (GenerationStatus, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.status[slot]
	return s, ok
}

// OpenImageEditor starts an edit session on the image of slot. Remote
// images are downloaded first.
func (e *Editor) OpenImageEditor(ctx context.Context, slot string) (*imageedit.Session, error) {
	if _, ok := templateconfig.ImageSlot(slot); !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSlot, slot)
	}
	src, ok := e.store.Image(slot)
	if !ok {
		return nil, ErrEmptySlot
	}
	data, err := e.fetcher.DataURL(ctx, src)
	if err != nil {
		return nil, err
	}

	s := imageedit.New(slot,
		imageedit.WithMaxWidth(e.cfg.MaxImageWidth),
		imageedit.WithHistoryLimit(e.cfg.HistoryLimit),
		imageedit.WithFontBank(e.fonts),
		imageedit.WithLogger(e.log),
	)
	if err := s.Load(ctx, []byte(data)); err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.session = s
	e.publish(ChangeImageEditor, slot)
	e.mu.Unlock()
	return s, nil
}

// ImageEditor returns the open edit session.
func (e *Editor) ImageEditor() (*imageedit.Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return nil, ErrNoEditSession
	}
	return e.session, nil
}

// EditImage runs fn on the open session while holding the editor lock, so
// the shared font bank is never used concurrently.
func (e *Editor) EditImage(fn func(*imageedit.Session) error) (*imageedit.Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return nil, ErrNoEditSession
	}
	if err := fn(e.session); err != nil {
		return e.session, err
	}
	return e.session, nil
}

// SaveImage writes the edited image back to its slot and closes the session.
func (e *Editor) SaveImage(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return ErrNoEditSession
	}
	res, err := e.session.Save(ctx)
	if err != nil {
		return err
	}
	if err := e.binder.SetImage(res.Slot, res.DataURL); err != nil {
		return err
	}
	delete(e.tickets, res.Slot)
	delete(e.status, res.Slot)
	e.session = nil
	e.publish(ChangeImage, res.Slot)
	return nil
}

// CloseImageEditor discards the open session.
func (e *Editor) CloseImageEditor() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session != nil {
		e.session = nil
		e.publish(ChangeImageEditor, "")
	}
}

// RenderTextPreview draws the overlay style swatch.
func (e *Editor) RenderTextPreview(text string, style imageedit.TextStyle) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return imageedit.RenderTextPreview(e.fonts, text, style)
}

// ExportHTML returns the standalone customized template.
func (e *Editor) ExportHTML() ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.binder.ExportHTML()
}

// ExportConfig encodes the current configuration.
func (e *Editor) ExportConfig(format templateconfig.Format) ([]byte, error) {
	return templateconfig.Encode(e.store.Snapshot(), format)
}

// ImportConfig replaces the configuration with data merged over the
// defaults. Malformed input leaves everything untouched. Invalid values
// keep their default; the import still happens and the returned error
// wraps ErrPartialImport.
func (e *Editor) ImportConfig(data []byte, format templateconfig.Format) error {
	cfg, err := templateconfig.Decode(data, format)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	clear(e.tickets)
	clear(e.status)
	applyErr := e.binder.ApplyConfig(cfg)
	e.publish(ChangeConfig, "")
	if applyErr != nil {
		return errors.Join(ErrPartialImport, applyErr)
	}
	return nil
}

// Reset restores the default configuration and drops pending generations
// and the open edit session.
func (e *Editor) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	clear(e.tickets)
	clear(e.status)
	e.session = nil
	e.binder.Reset()
	e.publish(ChangeConfig, "")
}

// Must be called with e.mu held.
func (e *Editor) publish(kind ChangeKind, slot string) {
	e.version++
	e.hub.Publish(Change{Kind: kind, Version: e.version, Slot: slot})
}
