// Package client implements the relay transport on top of go-resty/resty.
//
// The resty client is mounted on the pooled net/http transport built by
// hashicorp/go-retryablehttp and configured as a plain transport primitive:
//   - No retries: the relay surfaces every failure to its caller
//   - Headers are appended, so repeated names are all sent in order
//   - Bodies are sent verbatim for every method, without an inferred Content-Type
//   - Responses are left unparsed so body read failures stay distinguishable
//   - No cookie jar, so no response affects a later call
//
// Response text honors a byte order mark first, then the declared charset,
// then UTF-8. Invalid bytes become U+FFFD; no charset is guessed.
//
// Example Usage:
//
//	c := client.NewClient(client.DefaultConfig())
//	r := relay.New(c)
package client
