package main

import "ownworld/internal/world"

// options is the server's command-line configuration, parsed by
// github.com/jessevdk/go-flags in place of the teacher's
// OWNWORLD_COMMAND_CONTROL / OWNWORLD_PEERING_MODE env vars
// (initConfig in the teacher's main.go).
type options struct {
	TickInterval     int    `long:"tick-interval-ms" description:"Milliseconds of simulated time advanced per tick" default:"1000"`
	SnapshotPath     string `long:"snapshot-path" description:"Snapshot store location: a directory for the file store, or a .db file for --snapshot-sqlite" default:"./data/snapshots"`
	SnapshotSQLite   bool   `long:"snapshot-sqlite" description:"Use a SQLite-backed snapshot store instead of a flat file"`
	SnapshotInterval int    `long:"snapshot-interval-ticks" description:"Ticks between automatic snapshots (0 disables)" default:"100"`
	PrefabDir        string `long:"prefab-dir" description:"Directory of prefab JSON documents to load at boot" default:"./prefabs"`
	Seed             uint64 `long:"seed" description:"World RNG seed"`
	ListenAddr       string `long:"listen" description:"Address for the reference line-protocol transport" default:":4000"`
	RespawnRoom      uint64 `long:"respawn-room" description:"Entity id an avatar respawns at on death" required:"true"`
	AvatarPrefab     uint64 `long:"avatar-prefab" description:"Static id instantiated for a first-time login" required:"true"`
	CorpseTTLMs      int    `long:"corpse-ttl-ms" description:"Milliseconds a corpse persists before decaying" default:"20000"`
}

func (o *options) tickInterval() world.Time { return world.Time(o.TickInterval) * 1e6 }
func (o *options) corpseTTL() world.Time    { return world.Time(o.CorpseTTLMs) * 1e6 }
