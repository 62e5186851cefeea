// Package editor serves the email template editor.
//
// An Editor is the single in-process controller: it owns the configuration
// store, the server-side preview document, the image generation tickets and
// the open image edit session, and serializes every mutation behind one
// mutex. Each change bumps a version and is published on a broadcast hub;
// the preview stream turns those changes into datastar patches.
//
// Service mounts the HTTP surface:
//
//	editor, _ := editor.NewEditor(cfg, generator, editor.WithLogger(log))
//	svc := editor.NewService(editor, storage, mailer, editor.WithServiceLogger(log))
//	r.Mount("/", svc.Handle())
package editor
