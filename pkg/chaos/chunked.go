package chaos

import "net/http"

// DefaultChunkParts is the number of parts a chunked body is split into.
const DefaultChunkParts = 3

// SplitChunks splits body into parts pieces whose concatenation is body.
// Piece j ends at floor(j*len/parts)+1, clamped to the body length, so for
// three parts the first two pieces are one byte longer than a plain third.
func SplitChunks(body []byte, parts int) [][]byte {
	if parts < 1 {
		parts = 1
	}
	n := len(body)
	chunks := make([][]byte, 0, parts)
	start := 0
	for j := 1; j < parts; j++ {
		end := min(j*n/parts+1, n)
		end = max(end, start)
		chunks = append(chunks, body[start:end])
		start = end
	}
	return append(chunks, body[start:])
}

// WriteChunked writes the status and then body as parts separate writes,
// flushing after each so the client receives them as distinct chunks.
// No Content-Length is set, which makes the server use chunked transfer
// encoding.
func WriteChunked(w http.ResponseWriter, statusCode int, body []byte, parts int) error {
	w.Header().Del("Content-Length")
	w.WriteHeader(statusCode)
	flush(w)
	for _, chunk := range SplitChunks(body, parts) {
		if len(chunk) == 0 {
			continue
		}
		if _, err := w.Write(chunk); err != nil {
			return err
		}
		flush(w)
	}
	return nil
}

func flush(w http.ResponseWriter) {
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}
