// Command worldserver boots the engine: load prefabs, restore the
// latest snapshot if one exists, run the tick loop, periodically
// snapshot, and serve the reference line-protocol transport. This
// replaces the teacher's main.go boot sequence (setupLogging,
// initConfig, initDB, go runGameLoop(), http.ListenAndServe) with the
// engine's own tick.Driver and router in place of the teacher's
// colony-economy HTTP handlers.
package main

import (
	"os"
	"time"

	"github.com/jessevdk/go-flags"

	"ownworld/internal/fanout"
	"ownworld/internal/ids"
	"ownworld/internal/metrics"
	"ownworld/internal/obslog"
	"ownworld/internal/router"
	"ownworld/internal/snapshot"
	"ownworld/internal/tick"
	"ownworld/internal/world"
)

func main() {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	parser.Name = "worldserver"
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	log := obslog.Default()

	cat, err := loadPrefabDir(opts.PrefabDir)
	if err != nil {
		log.Error.Fatal().Err(err).Msg("failed to load prefab directory")
	}
	log.Info.Info().Int("records", cat.Len()).Msg("prefab catalog loaded")

	store, err := openStore(&opts)
	if err != nil {
		log.Error.Fatal().Err(err).Msg("failed to open snapshot store")
	}

	w := world.New(opts.Seed)
	if data, err := store.Load("world"); err == nil {
		if err := snapshot.Restore(data, w); err != nil {
			log.Error.Fatal().Err(err).Msg("failed to restore snapshot")
		}
		log.Info.Info().Int64("tick", w.TickCount).Msg("snapshot restored")
	} else {
		log.Info.Info().Msg("no snapshot found, starting fresh world")
	}

	mc := metrics.New()

	// transport and router are mutually referential (the router needs a
	// fanout.Sink, the transport needs the router to resolve sessions),
	// so transport is built first with its router field set afterward.
	transport := newLineTransport(nil, log, ids.EntityID(opts.AvatarPrefab), ids.EntityID(opts.RespawnRoom))
	out := fanout.New(w, transport)
	r := router.New(w, cat, out, ids.EntityID(opts.RespawnRoom))
	transport.router = r

	driver := tick.New(w, cat, out, log, mc, ids.EntityID(opts.RespawnRoom), opts.corpseTTL())

	go func() {
		if err := transport.serve(opts.ListenAddr); err != nil {
			log.Error.Fatal().Err(err).Msg("line transport failed")
		}
	}()

	ticker := time.NewTicker(time.Duration(opts.TickInterval) * time.Millisecond)
	defer ticker.Stop()

	for range ticker.C {
		driver.Advance(opts.tickInterval())

		if opts.SnapshotInterval > 0 && w.TickCount%int64(opts.SnapshotInterval) == 0 {
			data, err := snapshot.Save(w)
			if err != nil {
				log.Error.Warn().Err(err).Msg("snapshot encode failed")
				continue
			}
			if err := store.Save("world", data); err != nil {
				log.Error.Warn().Err(err).Msg("snapshot save failed")
			}
		}
	}
}

// openStore opens the configured backend: a flat-file store rooted at
// SnapshotPath (a directory), or a SQLite store at SnapshotPath (a
// file) when --snapshot-sqlite is set.
func openStore(opts *options) (snapshot.Store, error) {
	if opts.SnapshotSQLite {
		return snapshot.OpenSQLiteStore(opts.SnapshotPath)
	}
	dir := opts.SnapshotPath
	return snapshot.NewFileStore(dir)
}
