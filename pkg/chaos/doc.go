// Package chaos provides the response-shaping primitives used to simulate
// a misbehaving backend.
//
// # Faults
//
//   - Retryable rejections: 429/503 responses with an optional
//     Retry-After header (WriteRetryable)
//   - Chunked delivery: a body split into ordered parts, each flushed to
//     the client as its own chunk (WriteChunked)
//   - Latency: a blocking pause before the response (Sleeper)
//
// The latency fault is a blocking wait on the request goroutine. Combined
// with the engine's one-request-at-a-time middleware it stalls every other
// client as well, which is the head-of-line blocking a slow database shows.
package chaos
