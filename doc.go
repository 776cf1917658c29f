// Package fetch implements the web-standard fetch contract over native
// sockets. Call sites look like they would in a browser host: a URL, an
// optional method/headers/body, a redirect policy, and a cancellation
// source, producing a Response whose body is a lazy byte stream. Redirects
// are followed and content codings (gzip, br, deflate in either framing)
// are decoded transparently.
//
// # Basic Usage
//
// Create a client and fetch:
//
//	client := fetch.NewClient()
//	resp, err := client.Fetch(ctx, "https://example.com/")
//	if err != nil {
//	    return err
//	}
//	text, err := resp.Text()
//
// Post a form:
//
//	form := fetch.NewFormData()
//	form.Append("a", "1")
//	form.AppendBlob("file", fetch.NewFile(data, "report.csv", "text/csv"))
//
//	resp, err := client.Fetch(ctx, url,
//	    fetch.WithMethod("POST"),
//	    fetch.WithBody(form),
//	)
//
// # Body Inputs
//
// WithBody accepts a string, []byte, *bytes.Buffer, *bytes.Reader, *Blob,
// *File, *FormData, *URLSearchParams, any io.Reader, an iter.Seq[[]byte],
// a <-chan []byte, or a pre-assembled MultipartStream. Anything else is
// stringified. Known-length inputs produce an exact Content-Length;
// opaque streams are sent chunked.
//
// # Redirects
//
// The default policy follows up to 20 hops, rewriting 303 (and 301/302
// POST) hops to bodyless GETs and replaying replayable bodies on 307/308.
// RedirectManual returns the 3xx itself with an absolutized Location;
// RedirectError rejects:
//
//	resp, err := client.Fetch(ctx, url, fetch.WithRedirect(fetch.RedirectManual))
//
// # Cancellation
//
// The context is the abort signal. Cancel causes become the returned
// error, both before the response and while the body is being consumed:
//
//	ctx, cancel := context.WithCancelCause(context.Background())
//	go func() { cancel(errors.New("user navigated away")) }()
//	resp, err := client.Fetch(ctx, url)
//
// # Error Handling
//
// Validation failures are *TypeError. Redirect-policy failures wrap
// sentinel errors:
//
//	if errors.Is(err, fetch.ErrTooManyRedirects) {
//	    // 20-hop cap exceeded
//	}
//
// For exchange context, use errors.As with *FetchError:
//
//	var fe *fetch.FetchError
//	if errors.As(err, &fe) {
//	    fmt.Println(fe.Op, fe.URL, fe.StatusCode)
//	}
package fetch
