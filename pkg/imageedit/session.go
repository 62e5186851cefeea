package imageedit

import (
	"context"
	"image"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/emailcraft/pkg/logger"
	"github.com/dmitrymomot/emailcraft/pkg/statemachine"
)

// Overlay is a solid color laid over the whole image.
type Overlay struct {
	Color   string `json:"color"`
	Opacity int    `json:"opacity"` // percent, 0-100
}

// Snapshot describes a session for rendering.
type Snapshot struct {
	ID            string
	Slot          string
	State         State
	Width         int
	Height        int
	HistoryDepth  int
	Clearable     bool
	OverlayActive bool
	Overlay       Overlay
	Selection     image.Rectangle
	HasSelection  bool
}

// Result is the output of Save.
type Result struct {
	Slot    string
	DataURL string
}

// Session edits one image for one template slot.
type Session struct {
	mu       sync.Mutex
	id       string
	slot     string
	maxWidth int
	fonts    *FontBank
	log      *slog.Logger
	machine  *statemachine.Machine[State, Event]

	base    *image.RGBA
	working *image.RGBA
	history history

	overlayActive bool
	overlay       Overlay

	crop crop
}

// New returns an idle session for slot.
func New(slot string, opts ...Option) *Session {
	s := &Session{
		id:       uuid.NewString(),
		slot:     slot,
		maxWidth: DefaultMaxWidth,
		history:  history{limit: DefaultHistoryLimit},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.fonts == nil {
		s.fonts = NewFontBank()
	}
	if s.log != nil {
		s.log = s.log.With(logger.Component("imageedit"), logger.Slot(slot))
	}
	s.machine = s.newMachine()
	return s
}

// ID identifies the session.
func (s *Session) ID() string { return s.id }

// Slot is the template image slot being edited.
func (s *Session) Slot() string { return s.slot }

// State returns the lifecycle state.
func (s *Session) State() State { return s.machine.Current() }

// Fonts returns the session's font bank.
func (s *Session) Fonts() *FontBank { return s.fonts }

// Load decodes data, a data URL or raw image bytes, scales it to the
// maximum width and makes it both base and working raster.
func (s *Session) Load(ctx context.Context, data []byte) error {
	img, err := Decode(data)
	if err != nil {
		return err
	}
	base := fit(img, s.maxWidth)

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.do(ctx, EventLoad, func() error {
		s.restart(base)
		return nil
	})
}

// Reset reloads the base image, discarding crops, text and overlays.
func (s *Session) Reset(ctx context.Context, confirmed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.do(ctx, EventReset, func() error {
		if !confirmed {
			return ErrConfirmationRequired
		}
		s.restart(s.base)
		return nil
	})
}

// Save commits a pending color overlay and returns the working raster as a
// PNG data URL. The session is finished afterwards.
func (s *Session) Save(ctx context.Context) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var res Result
	err := s.do(ctx, EventSave, func() error {
		if s.overlayActive {
			s.working = s.composite(false)
			s.overlayActive = false
		}
		s.crop = crop{}
		url, err := EncodeDataURL(s.working)
		if err != nil {
			return err
		}
		res = Result{Slot: s.slot, DataURL: url}
		return nil
	})
	return res, err
}

// Render returns what the editor canvas shows: the working raster with the
// color overlay preview and, while cropping, the selection feedback.
func (s *Session) Render() (*image.RGBA, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.working == nil {
		return nil, ErrNotLoaded
	}
	return s.composite(s.machine.Is(StateCropping)), nil
}

// RenderDataURL is Render encoded as a PNG data URL.
func (s *Session) RenderDataURL() (string, error) {
	img, err := s.Render()
	if err != nil {
		return "", err
	}
	return EncodeDataURL(img)
}

// Snapshot returns the session's current description.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		ID:            s.id,
		Slot:          s.slot,
		State:         s.machine.Current(),
		HistoryDepth:  s.history.depth(),
		Clearable:     !s.history.empty(),
		OverlayActive: s.overlayActive,
		Overlay:       s.overlay,
	}
	if s.working != nil {
		snap.Width, snap.Height = s.working.Bounds().Dx(), s.working.Bounds().Dy()
	}
	if r, ok := s.crop.rect(); ok {
		snap.Selection, snap.HasSelection = r, true
	}
	return snap
}

// do runs fn and then fires ev. When ev cannot fire from the current state
// fn is skipped and the machine's typed error is returned; when fn fails the
// state is kept. Must be called with s.mu held.
func (s *Session) do(ctx context.Context, ev Event, fn func() error) error {
	if !s.machine.CanFire(ctx, ev) {
		return s.machine.Fire(ctx, ev)
	}
	if fn != nil {
		if err := fn(); err != nil {
			return err
		}
	}
	return s.machine.Fire(ctx, ev)
}

func (s *Session) restart(base *image.RGBA) {
	s.base = base
	s.working = clone(base)
	s.history.clear()
	s.overlayActive = false
	s.overlay = Overlay{}
	s.crop = crop{}
}

func (s *Session) observe(from, to State, ev Event) {
	s.log.Debug("image edit transition",
		logger.Event(string(ev)),
		slog.String("from", string(from)),
		logger.State(string(to)),
	)
}
