// Package server exposes the analytics API over HTTP and WebSocket: the
// sentiment scorer at /analyze, statistical analysis under /api, health and
// metrics endpoints, and an event stream at /ws.
package server
