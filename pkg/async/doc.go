// Package async runs work in the background and hands back a typed Future.
//
// The editor uses it for slow network calls (image generation, URL fetches)
// so request handlers return immediately and apply the result later:
//
//	f := async.Run(ctx, func(ctx context.Context) (string, error) {
//		return provider.Generate(ctx, req)
//	})
//	f.OnComplete(func(url string, err error) { ... })
package async
