// Package main implements fetchctl, a small curl-like driver for the fetch
// client. It exercises the full pipeline: body extraction, redirects,
// content decoding, and cancellation via interrupt.
//
// Usage:
//
//	fetchctl [flags] URL
//
//	fetchctl https://example.com/
//	fetchctl -X POST -d 'a=1' -H 'Content-Type: application/x-www-form-urlencoded' https://example.com/submit
//	fetchctl -redirect manual -v https://example.com/moved
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"

	"go.uber.org/zap"

	fetch "github.com/webfetch/fetch-go"
)

type headerFlags []string

func (h *headerFlags) String() string { return strings.Join(*h, ", ") }

func (h *headerFlags) Set(v string) error {
	*h = append(*h, v)
	return nil
}

func main() {
	var (
		method   = flag.String("X", "GET", "HTTP method")
		data     = flag.String("d", "", "request body")
		redirect = flag.String("redirect", "follow", "redirect mode: follow, manual, error")
		include  = flag.Bool("i", false, "include response status and headers in output")
		verbose  = flag.Bool("v", false, "enable debug logging")
		headers  headerFlags
	)
	flag.Var(&headers, "H", "request header as 'Name: value' (repeatable)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: fetchctl [flags] URL")
		os.Exit(2)
	}
	url := flag.Arg(0)

	var clientOpts []fetch.ClientOption
	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintln(os.Stderr, "fetchctl:", err)
			os.Exit(1)
		}
		defer logger.Sync()
		clientOpts = append(clientOpts, fetch.WithLogger(logger))
	}
	client := fetch.NewClient(clientOpts...)

	opts := []fetch.RequestOption{
		fetch.WithMethod(*method),
		fetch.WithRedirect(fetch.RedirectMode(*redirect)),
	}
	for _, h := range headers {
		name, value, ok := strings.Cut(h, ":")
		if !ok {
			fmt.Fprintf(os.Stderr, "fetchctl: malformed header %q\n", h)
			os.Exit(2)
		}
		opts = append(opts, fetch.WithHeader(strings.TrimSpace(name), strings.TrimSpace(value)))
	}
	if *data != "" {
		opts = append(opts, fetch.WithBody(*data))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	resp, err := client.Fetch(ctx, url, opts...)
	if err != nil {
		fmt.Fprintln(os.Stderr, "fetchctl:", err)
		os.Exit(1)
	}
	defer resp.Close()

	if *include {
		fmt.Printf("%d %s\n", resp.Status, resp.StatusText)
		names := make([]string, 0, len(resp.Header))
		for name := range resp.Header {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			for _, value := range resp.Header[name] {
				fmt.Printf("%s: %s\n", name, value)
			}
		}
		fmt.Println()
	}

	if resp.Body != nil {
		if _, err := io.Copy(os.Stdout, resp.Body); err != nil {
			fmt.Fprintln(os.Stderr, "fetchctl:", err)
			os.Exit(1)
		}
	}
}
