// Package fetchtest provides testing utilities for fetch clients.
//
// The package includes a local loopback mock origin with echo, inspection,
// redirect, and content-coding routes, useful for exercising client
// behavior without external network dependencies.
//
// Example:
//
//	func TestMyCode(t *testing.T) {
//	    server := fetchtest.NewMockServer()
//	    defer server.Close()
//
//	    client := fetch.NewClient(fetch.WithHTTPTransport(server.Transport()))
//	    resp, err := client.Fetch(ctx, server.URL()+"/echo", ...)
//	    // ...
//	}
package fetchtest
