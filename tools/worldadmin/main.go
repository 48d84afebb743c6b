// Command worldadmin is an offline inspection REPL for snapshot files
// and prefab catalogs, adapted from the teacher's tools/console.go
// bufio.Scanner menu loop (there: list/register/delete users against
// the live SQLite file; here: list/validate against a snapshot or a
// prefab directory, with no mutation).
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"

	"ownworld/internal/prefab"
	"ownworld/internal/snapshot"
	"ownworld/internal/world"
)

func main() {
	if len(os.Args) > 1 {
		runCLI(os.Args[1:])
		return
	}
	runMenu()
}

func runCLI(args []string) {
	switch args[0] {
	case "inspect":
		if len(args) < 2 {
			fmt.Println("usage: worldadmin inspect <snapshot-file>")
			os.Exit(1)
		}
		inspectSnapshot(args[1])
	case "validate":
		if len(args) < 2 {
			fmt.Println("usage: worldadmin validate <prefab-dir>")
			os.Exit(1)
		}
		validatePrefabs(args[1])
	case "hash":
		if len(args) < 2 {
			fmt.Println("usage: worldadmin hash <snapshot-file>")
			os.Exit(1)
		}
		hashSnapshot(args[1])
	default:
		fmt.Println("Unknown command. Available commands: inspect, validate, hash")
		os.Exit(1)
	}
}

func runMenu() {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Println("\n========================================")
		fmt.Println("   WORLD ADMINISTRATION CONSOLE")
		fmt.Println("========================================")
		fmt.Println("1. Inspect snapshot file")
		fmt.Println("2. Validate prefab directory")
		fmt.Println("3. Print snapshot content hash")
		fmt.Println("4. Exit")
		fmt.Println("========================================")
		fmt.Print("Select option: ")

		if !scanner.Scan() {
			break
		}
		switch strings.TrimSpace(scanner.Text()) {
		case "1":
			fmt.Print("Snapshot file: ")
			scanner.Scan()
			inspectSnapshot(strings.TrimSpace(scanner.Text()))
		case "2":
			fmt.Print("Prefab directory: ")
			scanner.Scan()
			validatePrefabs(strings.TrimSpace(scanner.Text()))
		case "3":
			fmt.Print("Snapshot file: ")
			scanner.Scan()
			hashSnapshot(strings.TrimSpace(scanner.Text()))
		case "4":
			fmt.Println("Exiting.")
			return
		default:
			fmt.Println("Invalid option.")
		}
	}
}

func inspectSnapshot(path string) {
	store, name, err := openSnapshotArg(path)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	data, err := store.Load(name)
	if err != nil {
		fmt.Printf("Error loading %s: %v\n", path, err)
		return
	}

	w := world.New(0)
	if err := snapshot.Restore(data, w); err != nil {
		fmt.Printf("Error restoring snapshot: %v\n", err)
		return
	}

	fmt.Printf("Clock:        %s\n", w.Clock)
	fmt.Printf("Tick:         %s\n", humanize.Comma(w.TickCount))
	fmt.Printf("Payload size: %s\n", humanize.Bytes(uint64(len(data))))
	fmt.Println()
	fmt.Printf("%-18s | %s\n", "Component", "Count")
	fmt.Println(strings.Repeat("-", 32))
	fmt.Printf("%-18s | %d\n", "labels", w.Labels.Len())
	fmt.Printf("%-18s | %d\n", "rooms", w.Rooms.Len())
	fmt.Printf("%-18s | %d\n", "mobs", w.Mobs.Len())
	fmt.Printf("%-18s | %d\n", "items", w.Items.Len())
	fmt.Printf("%-18s | %d\n", "ships", w.Ships.Len())
	fmt.Printf("%-18s | %d\n", "astro bodies", w.AstroBodies.Len())
	fmt.Printf("%-18s | %d\n", "sectors", w.Sectors.Len())
	fmt.Printf("%-18s | %d\n", "spawns", w.Spawns.Len())
	fmt.Printf("%-18s | %d\n", "vendors", w.Vendors.Len())
	fmt.Printf("%-18s | %d\n", "AI-controlled", w.AIs.Len())
	fmt.Printf("%-18s | %d\n", "players", w.Players.Len())
	fmt.Printf("%-18s | %d\n", "random zones", w.RandomZones.Len())
	fmt.Printf("next runtime id:  %s\n", humanize.Comma(int64(w.Allocator.NextRuntime())))
}

func validatePrefabs(dir string) {
	cat := prefab.NewCatalog()
	entries, err := os.ReadDir(dir)
	if err != nil {
		fmt.Printf("Error reading %s: %v\n", dir, err)
		return
	}

	var docs []prefab.Document
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		raw, err := os.ReadFile(dir + "/" + entry.Name())
		if err != nil {
			fmt.Printf("Error reading %s: %v\n", entry.Name(), err)
			return
		}
		var doc prefab.Document
		if err := json.Unmarshal(raw, &doc); err != nil {
			fmt.Printf("Error parsing %s: %v\n", entry.Name(), err)
			return
		}
		docs = append(docs, doc)
		fmt.Printf("[+] %s: %d records\n", entry.Name(), len(doc.Records))
	}

	if err := cat.Merge(docs...); err != nil {
		fmt.Printf("Merge failed: %v\n", err)
		return
	}
	if err := cat.Validate(); err != nil {
		fmt.Printf("Validation failed: %v\n", err)
		return
	}
	if err := cat.Normalize(); err != nil {
		fmt.Printf("Normalization failed: %v\n", err)
		return
	}
	fmt.Printf("OK: %d prefabs, all parent/child references resolve.\n", cat.Len())
}

func hashSnapshot(path string) {
	store, name, err := openSnapshotArg(path)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	data, err := store.Load(name)
	if err != nil {
		fmt.Printf("Error loading %s: %v\n", path, err)
		return
	}
	fmt.Println(snapshot.ContentHash(data))
}

// openSnapshotArg opens a snapshot store chosen by the path itself
// (cmd/worldserver's openStore chooses by its --snapshot-sqlite flag
// instead): a SQLite database when path ends in .db, otherwise a
// flat-file store directory holding one "world" entry.
func openSnapshotArg(path string) (snapshot.Store, string, error) {
	if strings.HasSuffix(path, ".db") {
		store, err := snapshot.OpenSQLiteStore(path)
		if err != nil {
			return nil, "", err
		}
		return store, "world", nil
	}
	store, err := snapshot.NewFileStore(path)
	if err != nil {
		return nil, "", err
	}
	return store, "world", nil
}

