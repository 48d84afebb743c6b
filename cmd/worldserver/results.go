package main

import (
	"fmt"
	"net"

	"ownworld/internal/router"
)

// writeResult renders a router.Result to conn as one line. This is
// deliberately minimal prose — the router itself never produces text
// (spec.md §3.17) — good enough for the reference transport without
// pretending to be a full renderer.
func writeResult(conn net.Conn, res router.Result) {
	switch res.Kind {
	case router.ResultOK:
		fmt.Fprintf(conn, "ok %v\n", res.Data)
	case router.ResultRefused:
		fmt.Fprintf(conn, "refused: %v\n", res.Err)
	case router.ResultFailed:
		fmt.Fprintf(conn, "failed: %v\n", res.Err)
	case router.ResultUnknownCommand:
		fmt.Fprintln(conn, "unknown command")
	}
}
