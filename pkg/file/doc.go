// Package file stores exported artifacts and reads image uploads.
//
// Storage is implemented by LocalStorage (a directory served under a URL
// prefix) and S3Storage (any S3-compatible bucket). New selects one from
// Config:
//
//	store, err := file.New(ctx, cfg)
//	f, err := store.Put(ctx, "exports/email-template-customized.html", html, "text/html; charset=utf-8")
//	link := f.URL
//
// ReadImage reads a multipart upload, enforcing a size limit and an image
// MIME type sniffed from the content.
package file
