package editor

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/emailcraft/handler"
	"github.com/dmitrymomot/emailcraft/pkg/binder"
	"github.com/dmitrymomot/emailcraft/pkg/email"
	"github.com/dmitrymomot/emailcraft/pkg/file"
	"github.com/dmitrymomot/emailcraft/pkg/imageedit"
	"github.com/dmitrymomot/emailcraft/pkg/imagegen"
	"github.com/dmitrymomot/emailcraft/pkg/logger"
	"github.com/dmitrymomot/emailcraft/pkg/preview"
	"github.com/dmitrymomot/emailcraft/pkg/templateconfig"
	"github.com/dmitrymomot/emailcraft/pkg/validator"
)

// maxConfigSize bounds imported configuration files.
const maxConfigSize = 1 << 20

// Service serves the editor UI.
type Service struct {
	editor       *Editor
	storage      file.Storage
	mailer       email.EmailSender
	log          *slog.Logger
	errorHandler handler.ErrorHandler[handler.Context]
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithStorage enables storing exports as artifacts.
func WithStorage(s file.Storage) ServiceOption {
	return func(svc *Service) { svc.storage = s }
}

// WithMailer enables test emails.
func WithMailer(m email.EmailSender) ServiceOption {
	return func(svc *Service) { svc.mailer = m }
}

// WithErrorHandler replaces the default toast and error page handler.
func WithErrorHandler(h handler.ErrorHandler[handler.Context]) ServiceOption {
	return func(svc *Service) {
		if h != nil {
			svc.errorHandler = h
		}
	}
}

// NewService builds the HTTP service around e.
func NewService(e *Editor, opts ...ServiceOption) *Service {
	s := &Service{
		editor: e,
		log:    e.log.With(logger.Component("editor_http")),
	}
	s.errorHandler = handler.NewErrorHandler(s.log, handler.ErrorHandlerConfig{
		ErrorPage:   errorPageView,
		ErrorToast:  toastView,
		ToastTarget: "#" + idToasts,
	})
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func wrap[R any](s *Service, h handler.HandlerFunc[handler.Context, R], binders ...handler.Bind) http.HandlerFunc {
	return handler.Wrap(h,
		handler.WithBinders[handler.Context, R](binders...),
		handler.WithErrorHandler[handler.Context, R](s.errorHandler),
	)
}

// Handle returns the editor routes.
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()

	r.Get("/", wrap(s, s.page))
	r.Get("/preview", wrap(s, s.preview))
	r.Get("/preview/stream", wrap(s, s.stream))

	r.Post("/fields", wrap(s, s.setField, binder.Query(), binder.Signals(), binder.Form()))

	r.Route("/images/{slot}", func(r chi.Router) {
		// Multipart bodies carry the datastar header too, so signals are not read here.
		r.Post("/upload", wrap(s, s.uploadImage, binder.Form()))
		r.Post("/clear", wrap(s, s.clearImage))
	})
	r.Post("/generate", wrap(s, s.generate, binder.Signals(), binder.Form()))
	r.Post("/generate/prompt", wrap(s, s.defaultPrompt, binder.Signals(), binder.Form()))

	r.Route("/image-editor", func(r chi.Router) {
		r.Post("/open", wrap(s, s.openImageEditor, binder.Query()))
		r.Post("/close", wrap(s, s.closeImageEditor))
		r.Post("/reset", wrap(s, s.resetImage, binder.Query()))
		r.Post("/save", wrap(s, s.saveImage))

		r.Post("/crop/start", wrap(s, s.startCrop))
		r.Post("/crop/drag", wrap(s, s.dragCrop, binder.Query()))
		r.Post("/crop/apply", wrap(s, s.applyCrop))
		r.Post("/crop/cancel", wrap(s, s.cancelCrop))

		r.Post("/text", wrap(s, s.addText, binder.Signals()))
		r.Post("/text/start", wrap(s, s.startText))
		r.Post("/text/finish", wrap(s, s.finishText))
		r.Post("/text/undo", wrap(s, s.undoText))
		r.Post("/text/clear", wrap(s, s.clearText, binder.Query()))
		r.Post("/text/preview", wrap(s, s.textPreview, binder.Signals()))

		r.Post("/overlay/preview", wrap(s, s.previewOverlay, binder.Signals()))
		r.Post("/overlay/commit", wrap(s, s.commitOverlay))
		r.Post("/overlay/remove", wrap(s, s.removeOverlay))
	})

	r.Get("/export/html", wrap(s, s.exportHTML))
	r.Get("/export/config", wrap(s, s.exportConfig, binder.Query()))
	r.Post("/export/store", wrap(s, s.storeExport, binder.Query()))
	r.Post("/import", wrap(s, s.importConfig, binder.Form()))

	r.Post("/reset", wrap(s, s.reset))
	r.Post("/test-email", wrap(s, s.testEmail, binder.Signals(), binder.Form()))

	return r
}

func (s *Service) pageData() PageData {
	d := PageData{
		Config:    s.editor.Config(),
		Version:   s.editor.Version(),
		Providers: s.editor.Providers(),
		Status:    map[string]GenerationStatus{},
	}
	for _, f := range templateconfig.FieldsOf(templateconfig.KindImage) {
		if st, ok := s.editor.GenerationStatus(f.Key); ok {
			d.Status[f.Key] = st
		}
	}
	return d
}

func (s *Service) page(_ handler.Context, _ struct{}) handler.Response {
	return handler.Templ(pageView(s.pageData()))
}

func (s *Service) preview(_ handler.Context, _ struct{}) handler.Response {
	html, err := s.editor.PreviewHTML()
	if err != nil {
		return handler.Error(err)
	}
	return handler.Templ(templ.Raw(string(html)))
}

// stream pushes re-rendered fragments for every change until the client leaves.
func (s *Service) stream(_ handler.Context, _ struct{}) handler.Response {
	return handler.SSE(func(st handler.StreamContext) error {
		changes, unsubscribe := s.editor.Subscribe(st.Request().Context())
		defer unsubscribe()
		for ch := range changes {
			patches := s.changePatches(ch)
			if len(patches) == 0 {
				continue
			}
			if err := st.SendMultiple(patches...); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Service) changePatches(ch Change) []handler.TemplPatch {
	if ch.Kind == ChangeImageEditor {
		return nil
	}
	patches := []handler.TemplPatch{handler.Patch(previewFrameView(ch.Version))}
	switch ch.Kind {
	case ChangeConfig:
		patches = append(patches, handler.Patch(controlsView(s.pageData())))
	case ChangeImage:
		patches = append(patches, s.slotPatch(ch.Slot))
		if st, ok := s.editor.GenerationStatus(ch.Slot); ok {
			patches = append(patches, handler.Patch(generationStatusView(st)))
		}
	case ChangeGeneration:
		if st, ok := s.editor.GenerationStatus(ch.Slot); ok {
			patches = append(patches, handler.Patch(generationStatusView(st)))
		}
	}
	return patches
}

func (s *Service) slotPatch(slot string) handler.TemplPatch {
	f, _ := templateconfig.ImageSlot(slot)
	src, _ := s.editor.Image(slot)
	return handler.Patch(slotCardView(f, src))
}

func (s *Service) previewPatch() handler.TemplPatch {
	return handler.Patch(previewFrameView(s.editor.Version()))
}

// FieldRequest carries one control value.
type FieldRequest struct {
	Path  string `query:"path" form:"path"`
	Value string `json:"value" form:"value"`
}

func (s *Service) setField(_ handler.Context, req FieldRequest) handler.Response {
	if err := s.editor.SetField(req.Path, req.Value); err != nil {
		return handler.Error(httpError(err))
	}
	return handler.TemplMulti(s.previewPatch())
}

// UploadRequest carries an image upload for a slot.
type UploadRequest struct {
	File *multipart.FileHeader `file:"file"`
}

func (s *Service) uploadImage(ctx handler.Context, req UploadRequest) handler.Response {
	slot := chi.URLParam(ctx.Request(), "slot")
	if _, ok := templateconfig.ImageSlot(slot); !ok {
		return handler.Error(httpError(ErrUnknownSlot))
	}
	data, contentType, err := file.ReadImage(req.File, s.editor.cfg.MaxUploadSize)
	if err != nil {
		return handler.Error(httpError(err))
	}
	if err := s.editor.UploadImage(slot, data, contentType); err != nil {
		return handler.Error(httpError(err))
	}
	return handler.TemplMulti(s.slotPatch(slot), s.previewPatch())
}

func (s *Service) clearImage(ctx handler.Context, _ struct{}) handler.Response {
	slot := chi.URLParam(ctx.Request(), "slot")
	if _, ok := templateconfig.ImageSlot(slot); !ok {
		return handler.Error(httpError(ErrUnknownSlot))
	}
	if err := s.editor.SetImage(slot, ""); err != nil {
		return handler.Error(httpError(err))
	}
	return handler.TemplMulti(s.slotPatch(slot), s.previewPatch())
}

// GenerateRequest asks for a generated slot image.
type GenerateRequest struct {
	Slot     string `json:"genSlot" form:"genSlot"`
	Provider string `json:"genProvider" form:"genProvider"`
	Prompt   string `json:"genPrompt" form:"genPrompt"`
	APIKey   string `json:"genApiKey" form:"genApiKey"`
}

func (s *Service) generate(ctx handler.Context, req GenerateRequest) handler.Response {
	if err := validator.Apply(
		validator.Required("genSlot", req.Slot),
		validator.Required("genPrompt", req.Prompt),
		validator.OneOf("genProvider", req.Provider, s.editor.Providers()...),
	); err != nil {
		return handler.Error(err)
	}
	g, err := s.editor.Generate(ctx.Request().Context(), req.Slot, imagegen.Request{
		Provider: req.Provider,
		Prompt:   req.Prompt,
		APIKey:   req.APIKey,
	})
	if err != nil {
		return handler.Error(httpError(err))
	}
	s.log.InfoContext(ctx.Request().Context(), "image generation started",
		logger.Slot(g.Slot), logger.Provider(req.Provider))
	return handler.Templ(generationStatusView(GenerationStatus{Slot: g.Slot, Provider: req.Provider, State: GenerationPending}))
}

func (s *Service) defaultPrompt(_ handler.Context, req GenerateRequest) handler.Response {
	f, ok := templateconfig.ImageSlot(req.Slot)
	if !ok {
		return handler.Error(httpError(ErrUnknownSlot))
	}
	return handler.TemplWithSignals(map[string]any{"genPrompt": imagegen.DefaultPrompt(f.SlotType)})
}

// SlotRequest names an image slot.
type SlotRequest struct {
	Slot string `query:"slot"`
}

// ConfirmRequest carries the answer of a confirmation dialog.
type ConfirmRequest struct {
	Confirmed bool `query:"confirmed"`
}

func (s *Service) openImageEditor(ctx handler.Context, req SlotRequest) handler.Response {
	if _, err := s.editor.OpenImageEditor(ctx.Request().Context(), req.Slot); err != nil {
		return handler.Error(httpError(err))
	}
	return s.edit(ctx, nil)
}

func (s *Service) closeImageEditor(_ handler.Context, _ struct{}) handler.Response {
	s.editor.CloseImageEditor()
	return handler.Templ(closedImageEditorView())
}

func (s *Service) resetImage(ctx handler.Context, req ConfirmRequest) handler.Response {
	return s.edit(ctx, func(sess *imageedit.Session, c context.Context) error {
		return sess.Reset(c, req.Confirmed)
	})
}

func (s *Service) saveImage(ctx handler.Context, _ struct{}) handler.Response {
	sess, err := s.editor.ImageEditor()
	if err != nil {
		return handler.Error(httpError(err))
	}
	slot := sess.Slot()
	if err := s.editor.SaveImage(ctx.Request().Context()); err != nil {
		return handler.Error(httpError(err))
	}
	return handler.TemplMulti(
		handler.Patch(closedImageEditorView()),
		s.slotPatch(slot),
		s.previewPatch(),
		s.notice("Image updated successfully!", "success"),
	)
}

func (s *Service) startCrop(ctx handler.Context, _ struct{}) handler.Response {
	return s.edit(ctx, (*imageedit.Session).StartCrop)
}

// DragRequest is a pointer event on the displayed canvas.
type DragRequest struct {
	Phase  string  `query:"phase"`
	X      float64 `query:"x"`
	Y      float64 `query:"y"`
	Width  float64 `query:"w"`
	Height float64 `query:"h"`
}

func (s *Service) dragCrop(ctx handler.Context, req DragRequest) handler.Response {
	var view EditorView
	_, err := s.editor.EditImage(func(sess *imageedit.Session) error {
		snap := sess.Snapshot()
		p := imageedit.ScalePoint(imageedit.Point{X: req.X, Y: req.Y}, req.Width, req.Height, snap.Width, snap.Height)
		c := ctx.Request().Context()
		var err error
		switch req.Phase {
		case "start":
			err = sess.DragStart(c, p)
		case "move":
			err = sess.DragMove(c, p)
		case "end":
			err = sess.DragEnd(c, p)
		default:
			err = ErrUnknownDragPhase
		}
		if err != nil {
			return err
		}
		view, err = s.editorView(sess)
		return err
	})
	if err != nil {
		return handler.Error(httpError(err))
	}
	return handler.Templ(canvasView(view))
}

func (s *Service) applyCrop(ctx handler.Context, _ struct{}) handler.Response {
	return s.edit(ctx, (*imageedit.Session).ApplyCrop)
}

func (s *Service) cancelCrop(ctx handler.Context, _ struct{}) handler.Response {
	return s.edit(ctx, (*imageedit.Session).CancelCrop)
}

// TextRequest carries the overlay text inputs.
type TextRequest struct {
	Text  string              `json:"overlayText"`
	Style imageedit.TextStyle `json:"textStyle"`
}

func (s *Service) startText(ctx handler.Context, _ struct{}) handler.Response {
	return s.edit(ctx, (*imageedit.Session).StartText)
}

func (s *Service) finishText(ctx handler.Context, _ struct{}) handler.Response {
	return s.edit(ctx, (*imageedit.Session).FinishText)
}

func (s *Service) addText(ctx handler.Context, req TextRequest) handler.Response {
	p, err := s.editPatch(ctx, func(sess *imageedit.Session, c context.Context) error {
		return sess.AddTextOverlay(c, req.Text, req.Style)
	})
	if err != nil {
		return handler.Error(httpError(err))
	}
	return handler.TemplWithSignals(map[string]any{"overlayText": ""}, p)
}

func (s *Service) undoText(ctx handler.Context, _ struct{}) handler.Response {
	return s.edit(ctx, (*imageedit.Session).UndoTextOverlay)
}

func (s *Service) clearText(ctx handler.Context, req ConfirmRequest) handler.Response {
	return s.edit(ctx, func(sess *imageedit.Session, c context.Context) error {
		return sess.ClearAllTextOverlays(c, req.Confirmed)
	})
}

func (s *Service) textPreview(_ handler.Context, req TextRequest) handler.Response {
	src, err := s.editor.RenderTextPreview(req.Text, req.Style)
	if err != nil {
		return handler.Error(httpError(err))
	}
	return handler.Templ(textPreviewView(src))
}

// OverlayRequest carries the color overlay inputs.
type OverlayRequest struct {
	Overlay imageedit.Overlay `json:"overlay"`
}

func (s *Service) previewOverlay(ctx handler.Context, req OverlayRequest) handler.Response {
	var view EditorView
	_, err := s.editor.EditImage(func(sess *imageedit.Session) error {
		if err := sess.PreviewColorOverlay(ctx.Request().Context(), req.Overlay); err != nil {
			return err
		}
		var err error
		view, err = s.editorView(sess)
		return err
	})
	if err != nil {
		return handler.Error(httpError(err))
	}
	return handler.TemplMulti(
		handler.Patch(canvasView(view)),
		handler.Patch(overlayActionsView(view.Snapshot.OverlayActive)),
	)
}

func (s *Service) commitOverlay(ctx handler.Context, _ struct{}) handler.Response {
	p, err := s.editPatch(ctx, (*imageedit.Session).CommitColorOverlay)
	if err != nil {
		return handler.Error(httpError(err))
	}
	return handler.TemplMulti(p, s.notice("Color overlay applied! You can add more overlays or save your changes.", "success"))
}

func (s *Service) removeOverlay(ctx handler.Context, _ struct{}) handler.Response {
	return s.edit(ctx, (*imageedit.Session).RemoveColorOverlay)
}

// edit runs op on the open session and re-renders the editor modal.
func (s *Service) edit(ctx handler.Context, op func(*imageedit.Session, context.Context) error) handler.Response {
	p, err := s.editPatch(ctx, op)
	if err != nil {
		return handler.Error(httpError(err))
	}
	return handler.TemplMulti(p)
}

func (s *Service) editPatch(ctx handler.Context, op func(*imageedit.Session, context.Context) error) (handler.TemplPatch, error) {
	var view EditorView
	_, err := s.editor.EditImage(func(sess *imageedit.Session) error {
		if op != nil {
			if err := op(sess, ctx.Request().Context()); err != nil {
				return err
			}
		}
		var err error
		view, err = s.editorView(sess)
		return err
	})
	if err != nil {
		return handler.TemplPatch{}, err
	}
	return handler.Patch(imageEditorView(view)), nil
}

// editorView renders the session. Must run inside Editor.EditImage.
func (s *Service) editorView(sess *imageedit.Session) (EditorView, error) {
	canvas, err := sess.RenderDataURL()
	if err != nil {
		return EditorView{}, err
	}
	return EditorView{
		Snapshot: sess.Snapshot(),
		Canvas:   canvas,
		Style:    imageedit.DefaultTextStyle(),
	}, nil
}

func (s *Service) exportHTML(_ handler.Context, _ struct{}) handler.Response {
	data, err := s.editor.ExportHTML()
	if err != nil {
		return handler.Error(httpError(err))
	}
	return handler.Download(preview.ExportFilename, htmlContentType, data)
}

// ExportRequest selects an export.
type ExportRequest struct {
	Format string `query:"format"`
	Kind   string `query:"kind"`
}

func (s *Service) exportConfig(_ handler.Context, req ExportRequest) handler.Response {
	format, err := templateconfig.ParseFormat(req.Format)
	if err != nil {
		return handler.Error(httpError(err))
	}
	data, err := s.editor.ExportConfig(format)
	if err != nil {
		return handler.Error(httpError(err))
	}
	return handler.Download(format.Filename(), format.ContentType(), data)
}

const htmlContentType = "text/html; charset=utf-8"

// export renders the artifact selected by kind.
func (s *Service) export(kind string) (name, contentType string, data []byte, err error) {
	if kind == "" || kind == "html" {
		data, err = s.editor.ExportHTML()
		return preview.ExportFilename, htmlContentType, data, err
	}
	format, err := templateconfig.ParseFormat(kind)
	if err != nil {
		return "", "", nil, errors.Join(ErrUnknownExportKind, err)
	}
	data, err = s.editor.ExportConfig(format)
	return format.Filename(), format.ContentType(), data, err
}

func (s *Service) storeExport(ctx handler.Context, req ExportRequest) handler.Response {
	if s.storage == nil {
		return handler.Error(httpError(ErrStorageDisabled))
	}
	name, contentType, data, err := s.export(req.Kind)
	if err != nil {
		return handler.Error(httpError(err))
	}
	key := path.Join(s.editor.cfg.ArtifactPrefix, uuid.NewString(), name)
	f, err := s.storage.Put(ctx.Request().Context(), key, data, contentType)
	if err != nil {
		return handler.Error(err)
	}
	s.log.InfoContext(ctx.Request().Context(), "export stored",
		slog.String("path", f.Path), slog.Int64("size", f.Size))
	return handler.TemplMulti(s.notice("Export stored at "+f.URL, "success"))
}

// ImportRequest carries a configuration file upload.
type ImportRequest struct {
	File *multipart.FileHeader `file:"config"`
}

func (s *Service) importConfig(ctx handler.Context, req ImportRequest) handler.Response {
	data, err := file.ReadAll(req.File, maxConfigSize)
	if err != nil {
		return handler.Error(httpError(err))
	}
	format := templateconfig.FormatFromFilename(req.File.Filename)

	msg, kind := "Configuration loaded successfully!", "success"
	if err := s.editor.ImportConfig(data, format); err != nil {
		if !errors.Is(err, ErrPartialImport) {
			return handler.Error(httpError(err))
		}
		s.log.WarnContext(ctx.Request().Context(), "configuration imported with invalid values", logger.Error(err))
		msg, kind = "Configuration loaded. Some values were invalid and kept their defaults.", "warning"
	}
	return handler.TemplMulti(
		handler.Patch(controlsView(s.pageData())),
		s.previewPatch(),
		s.notice(msg, kind),
	)
}

func (s *Service) reset(_ handler.Context, _ struct{}) handler.Response {
	s.editor.Reset()
	return handler.TemplMulti(
		handler.Patch(controlsView(s.pageData())),
		s.previewPatch(),
		handler.Patch(closedImageEditorView()),
	)
}

// TestEmailRequest names the test email recipient.
type TestEmailRequest struct {
	To string `json:"emailTo" form:"emailTo"`
}

func (s *Service) testEmail(ctx handler.Context, req TestEmailRequest) handler.Response {
	if s.mailer == nil {
		return handler.Error(httpError(ErrMailerDisabled))
	}
	if err := validator.Apply(
		validator.Required("emailTo", req.To),
		validator.Email("emailTo", req.To),
	); err != nil {
		return handler.Error(err)
	}
	body, err := s.editor.ExportHTML()
	if err != nil {
		return handler.Error(httpError(err))
	}
	err = s.mailer.SendEmail(ctx.Request().Context(), email.SendEmailParams{
		SendTo:   req.To,
		Subject:  s.editor.cfg.TestEmailSubject,
		BodyHTML: string(body),
		BodyText: email.PlainText(string(body)),
		Tag:      "template-preview",
	})
	if err != nil {
		return handler.Error(httpError(err))
	}
	return handler.TemplMulti(s.notice("Test email sent to "+req.To, "success"))
}

func (s *Service) notice(message, kind string) handler.TemplPatch {
	return handler.Patch(noticeView(message, kind),
		handler.WithTarget("#"+idToasts),
		handler.WithPatchMode(handler.PatchPrepend),
	)
}
