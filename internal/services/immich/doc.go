// Package immich wraps the parts of the Immich REST API that immich-stack
// needs: the duplicates feed, album listings, and stack creation.
//
// The Client authenticates with an API key, stamps the run correlation ID on
// every request, classifies failures with the services error markers, and
// retries rate-limited or temporarily unavailable responses with capped
// exponential backoff. DuplicatesSource and AlbumSource adapt the API into
// candidate groups for the pairing engine; the Client itself is the stacking
// sink.
package immich
