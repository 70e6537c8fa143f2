// Package api provides the management listener of the mock.
//
// It runs on its own port and stays up while the data plane is started
// and stopped, so a test harness can control the mock between test cases:
//
//	GET  /start    201 "Listening on http://<addr>", 204 when already running
//	GET  /stop     200, 404 when not running (stopping resets all state)
//	GET  /status   200 "running" or 404 "stopped"
//	GET  /state    JSON snapshot of the simulation state
//	POST /log      writes the body to the server log, 204
//	GET  /metrics  Prometheus text exposition
//
// There is no authentication. Bind it to a trusted interface.
package api
