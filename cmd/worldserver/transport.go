package main

import (
	"bufio"
	"fmt"
	"net"
	"sync"

	"github.com/google/uuid"

	"ownworld/internal/fanout"
	"ownworld/internal/ids"
	"ownworld/internal/obslog"
	"ownworld/internal/router"
)

// lineTransport is the reference TCP transport named in spec.md §1 as
// out of scope beyond "a minimal reference transport exists": one
// newline-terminated command in, one newline-terminated line out per
// fanout.Line, nothing else. Any richer client protocol is left to
// whoever wires a real frontend onto the router.
type lineTransport struct {
	router       *router.Router
	log          *obslog.Logger
	avatarPrefab ids.EntityID
	spawnRoom    ids.EntityID

	mu    sync.Mutex
	conns map[uuid.UUID]net.Conn
}

func newLineTransport(r *router.Router, log *obslog.Logger, avatarPrefab, spawnRoom ids.EntityID) *lineTransport {
	return &lineTransport{
		router:       r,
		log:          log,
		avatarPrefab: avatarPrefab,
		spawnRoom:    spawnRoom,
		conns:        make(map[uuid.UUID]net.Conn),
	}
}

// Deliver implements fanout.Sink, resolving line.To back to a live
// connection via the router's avatar->session table.
func (t *lineTransport) Deliver(line fanout.Line) {
	sessionID, ok := t.router.SessionFor(line.To)
	if !ok {
		return
	}
	t.mu.Lock()
	conn, ok := t.conns[sessionID]
	t.mu.Unlock()
	if !ok {
		return
	}
	fmt.Fprintln(conn, line.Text)
}

func (t *lineTransport) serve(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	t.log.Info.Info().Str("addr", addr).Msg("line transport listening")
	for {
		conn, err := ln.Accept()
		if err != nil {
			t.log.Error.Warn().Err(err).Msg("accept failed")
			continue
		}
		go t.handle(conn)
	}
}

func (t *lineTransport) handle(conn net.Conn) {
	defer conn.Close()
	sessionID := t.router.Connect(5, 10)

	t.mu.Lock()
	t.conns[sessionID] = conn
	t.mu.Unlock()
	defer func() {
		t.mu.Lock()
		delete(t.conns, sessionID)
		t.mu.Unlock()
		t.router.Disconnect(sessionID)
	}()

	scanner := bufio.NewScanner(conn)

	fmt.Fprintln(conn, "login:")
	if !scanner.Scan() {
		return
	}
	login := scanner.Text()
	avatar, err := t.router.Login(sessionID, login, t.avatarPrefab, t.spawnRoom)
	if err != nil {
		fmt.Fprintf(conn, "login failed: %v\n", err)
		return
	}
	fmt.Fprintf(conn, "welcome, avatar %d\n", avatar)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		result := t.router.Dispatch(sessionID, line)
		writeResult(conn, result)
	}
}
