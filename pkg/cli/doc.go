// Package cli implements the influxmock command line.
//
// "influxmock serve" runs the management listener and, on demand, the
// data plane. The remaining commands are thin clients of a running
// management listener:
//
//	influxmock serve --autostart
//	influxmock start
//	influxmock status
//	influxmock log "test case 3"
//	influxmock stop
package cli
