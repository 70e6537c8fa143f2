// Package engine provides the data plane of the mock: the HTTP handler
// emulating the database API and the Server that runs it.
//
// # Architecture
//
//	┌──────────────────────────────────────────────────────────┐
//	│  Management API (:998)          package engine/api       │
//	│  /start /stop /status /log /metrics                      │
//	└──────────────────────────────┬───────────────────────────┘
//	                               │ Start / Stop / IsRunning
//	                               ▼
//	┌──────────────────────────────────────────────────────────┐
//	│  Server (:999)                  package engine           │
//	│                                                          │
//	│  request id → serialize → access log → metrics → gzip    │
//	│                               │                          │
//	│                            Handler                       │
//	│        write / query / delete / buckets / orgs           │
//	│                               │                          │
//	│                     simulation.State                     │
//	└──────────────────────────────────────────────────────────┘
//
// Requests are served one at a time. An injected query delay therefore
// stalls every other client until it has elapsed.
//
// # Control directives
//
// A write whose first point carries a "direction" tag reprograms the mock
// instead of storing that point, for example:
//
//	cpu,direction=429-1 value=1      → 429 with Retry-After: 10
//	cpu,direction=timeout,timeout=5 value=1
//	                                 → the next query sleeps 5s
//	cpu,direction=permanent-set,x-code=503 value=1
//	                                 → every write fails with 503 until
//	                                   direction=permanent-unset
//
// See package simulation for the full directive table.
//
// # Basic Usage
//
//	cfg := config.Default()
//	srv := engine.NewServer(cfg, engine.WithLogger(log))
//	if err := srv.Start(); err != nil {
//	    return err
//	}
//	defer srv.Stop()
package engine
