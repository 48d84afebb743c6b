package router

import (
	"strings"

	"github.com/google/uuid"

	"ownworld/internal/errs"
	"ownworld/internal/fanout"
	"ownworld/internal/ids"
	"ownworld/internal/prefab"
	"ownworld/internal/subsystem/inventory"
	"ownworld/internal/subsystem/ship"
	"ownworld/internal/world"
)

// ResultKind classifies a dispatched command's outcome so a renderer
// can pick the right prose without the router ever producing any.
type ResultKind int

const (
	ResultOK ResultKind = iota
	ResultRefused
	ResultFailed
	ResultUnknownCommand
)

// Result is what Dispatch returns: a classification, the raw engine
// value (if any) for the renderer to format, and the error that
// produced a non-OK kind.
type Result struct {
	Kind ResultKind
	Data interface{}
	Err  error
}

// Router holds the session table and the engine handles every command
// needs.
type Router struct {
	w               *world.World
	cat             *prefab.Catalog
	out             *fanout.Fanout
	respawnRoom     ids.EntityID
	avatarAdmin     map[ids.EntityID]bool
	sessions        map[uuid.UUID]*Session
	avatarToSession map[ids.EntityID]uuid.UUID
}

// New returns a Router over w.
func New(w *world.World, cat *prefab.Catalog, out *fanout.Fanout, respawnRoom ids.EntityID) *Router {
	return &Router{
		w:               w,
		cat:             cat,
		out:             out,
		respawnRoom:     respawnRoom,
		avatarAdmin:     make(map[ids.EntityID]bool),
		sessions:        make(map[uuid.UUID]*Session),
		avatarToSession: make(map[ids.EntityID]uuid.UUID),
	}
}

// SessionFor returns the session currently bound to avatar, if any, so
// a transport can map a fanout.Line's target entity back to a
// connection.
func (r *Router) SessionFor(avatar ids.EntityID) (uuid.UUID, bool) {
	id, ok := r.avatarToSession[avatar]
	return id, ok
}

// Connect opens a new session, allowing up to burst input lines at
// rate lines/sec thereafter.
func (r *Router) Connect(rate float64, burst int) uuid.UUID {
	s := newSession(rate, burst)
	r.sessions[s.ID] = s
	return s.ID
}

// Disconnect drops a session's table entry. It does not touch the
// bound avatar; the avatar persists in the world until a future login
// rebinds it.
func (r *Router) Disconnect(id uuid.UUID) {
	if s, ok := r.sessions[id]; ok && s.Avatar != 0 {
		delete(r.avatarToSession, s.Avatar)
	}
	delete(r.sessions, id)
}

// GrantAdmin marks an avatar as allowed to use the admin command
// surface (spec.md §6 "admin ..."; gating is a caller-supplied
// capability flag per SPEC_FULL.md §4, not a new auth mechanism).
func (r *Router) GrantAdmin(avatar ids.EntityID) { r.avatarAdmin[avatar] = true }

// Login binds session to the avatar controlled by login, instantiating
// a fresh avatar from avatarPrefab at spawnRoom on first login.
func (r *Router) Login(sessionID uuid.UUID, login string, avatarPrefab, spawnRoom ids.EntityID) (ids.EntityID, error) {
	session, ok := r.sessions[sessionID]
	if !ok {
		return 0, errs.NotFoundf("router: no session %s", sessionID)
	}

	for _, playerID := range r.w.Players.Ids() {
		p, _ := r.w.Players.Get(playerID)
		if p.Login == login {
			session.Avatar = p.Avatar
			r.avatarToSession[p.Avatar] = sessionID
			return p.Avatar, nil
		}
	}

	avatarID, err := r.cat.Instantiate(avatarPrefab, spawnRoom, r.w)
	if err != nil {
		return 0, err
	}
	mob, _ := r.w.Mobs.Get(avatarID)
	mob.IsAvatar = true
	r.w.Mobs.Update(avatarID, mob)

	playerID := r.w.Allocator.Fresh()
	r.w.Players.Add(playerID, world.Player{Login: login, Avatar: avatarID})
	session.Avatar = avatarID
	r.avatarToSession[avatarID] = sessionID
	return avatarID, nil
}

// Dispatch tokenizes line into verb+args and routes it to an engine
// operation on behalf of session's bound avatar.
func (r *Router) Dispatch(sessionID uuid.UUID, line string) Result {
	session, ok := r.sessions[sessionID]
	if !ok {
		return Result{Kind: ResultFailed, Err: errs.NotFoundf("router: no session %s", sessionID)}
	}
	if !session.Allow() {
		return Result{Kind: ResultRefused, Err: errs.Conflictf("router: input rate exceeded")}
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Result{Kind: ResultUnknownCommand}
	}
	verb, args := fields[0], fields[1:]
	avatar := session.Avatar

	switch verb {
	case "n", "s", "e", "w", "u", "d":
		return r.move(avatar, world.Direction(verb))
	case "look", "l":
		return r.look(avatar)
	case "kill", "k":
		return r.kill(avatar, args)
	case "say":
		return r.say(avatar, strings.Join(args, " "))
	case "rest":
		return r.rest(avatar)
	case "get":
		return r.get(avatar, args)
	case "drop":
		return r.drop(avatar, args)
	case "equip":
		return r.equip(avatar, args)
	case "remove":
		return r.unequip(avatar, args)
	case "move":
		return r.shipMove(avatar, args)
	case "land":
		return r.shipLand(avatar, args)
	case "launch":
		return r.shipLaunch(avatar)
	case "jump":
		return r.shipJump(avatar)
	case "buy":
		return r.buy(avatar, args)
	case "sell":
		return r.sell(avatar, args)
	case "hire":
		return r.hire(avatar, args)
	case "admin":
		return r.admin(avatar, args)
	default:
		return Result{Kind: ResultUnknownCommand}
	}
}

func (r *Router) move(avatar ids.EntityID, dir world.Direction) Result {
	room, ok := r.w.Graph.Parent(avatar)
	if !ok {
		return refuse(errs.InvalidStatef("router: avatar %d has no current room", avatar))
	}
	roomComp, ok := r.w.Rooms.Get(room)
	if !ok {
		return refuse(errs.InvalidStatef("router: %d is not a room", room))
	}
	dest, ok := roomComp.ExitTo(dir)
	if !ok {
		return refuse(errs.InvalidArgumentf("router: no exit %s from %d", dir, room))
	}
	r.w.Graph.Set(avatar, dest)
	return Result{Kind: ResultOK, Data: dest}
}

func (r *Router) look(avatar ids.EntityID) Result {
	room, ok := r.w.Graph.Parent(avatar)
	if !ok {
		return refuse(errs.InvalidStatef("router: avatar %d has no current room", avatar))
	}
	return Result{Kind: ResultOK, Data: r.w.Graph.Children(room)}
}

func (r *Router) kill(avatar ids.EntityID, args []string) Result {
	target, ok := r.resolveTarget(avatar, args)
	if !ok {
		return refuse(errs.NotFoundf("router: no such target"))
	}
	mob, ok := r.w.Mobs.Get(avatar)
	if !ok {
		return refuse(errs.InvalidStatef("router: %d is not a mob", avatar))
	}
	mob.Command = world.MobCommand{Kind: world.MobKill, Target: target}
	mob.Action = world.ActionCombat
	r.w.Mobs.Update(avatar, mob)
	return Result{Kind: ResultOK, Data: target}
}

func (r *Router) say(avatar ids.EntityID, text string) Result {
	room, ok := r.w.Graph.Parent(avatar)
	if !ok {
		return refuse(errs.InvalidStatef("router: avatar %d has no current room", avatar))
	}
	r.out.Broadcast(room, avatar, text)
	return Result{Kind: ResultOK}
}

func (r *Router) rest(avatar ids.EntityID) Result {
	mob, ok := r.w.Mobs.Get(avatar)
	if !ok {
		return refuse(errs.InvalidStatef("router: %d is not a mob", avatar))
	}
	if mob.Command.Kind == world.MobKill {
		return refuse(errs.InvalidStatef("router: cannot rest while fighting"))
	}
	mob.Action = world.ActionResting
	r.w.Mobs.Update(avatar, mob)
	return Result{Kind: ResultOK}
}

func (r *Router) get(avatar ids.EntityID, args []string) Result {
	room, ok := r.w.Graph.Parent(avatar)
	if !ok {
		return refuse(errs.InvalidStatef("router: avatar %d has no current room", avatar))
	}
	item, ok := r.resolveItem(room, args)
	if !ok {
		return refuse(errs.NotFoundf("router: no such item"))
	}
	if err := inventory.Move(r.w, item, avatar); err != nil {
		return failed(err)
	}
	return Result{Kind: ResultOK, Data: item}
}

func (r *Router) drop(avatar ids.EntityID, args []string) Result {
	item, ok := r.resolveItem(avatar, args)
	if !ok {
		return refuse(errs.NotFoundf("router: no such item"))
	}
	room, ok := r.w.Graph.Parent(avatar)
	if !ok {
		return refuse(errs.InvalidStatef("router: avatar %d has no current room", avatar))
	}
	if err := inventory.Move(r.w, item, room); err != nil {
		return failed(err)
	}
	return Result{Kind: ResultOK, Data: item}
}

func (r *Router) equip(avatar ids.EntityID, args []string) Result {
	item, ok := r.resolveItem(avatar, args)
	if !ok {
		return refuse(errs.NotFoundf("router: no such item"))
	}
	if err := inventory.Equip(r.w, avatar, item); err != nil {
		return failed(err)
	}
	return Result{Kind: ResultOK, Data: item}
}

func (r *Router) unequip(avatar ids.EntityID, args []string) Result {
	item, ok := r.resolveItem(avatar, args)
	if !ok {
		return refuse(errs.NotFoundf("router: no such item"))
	}
	if err := inventory.Unequip(r.w, avatar, item); err != nil {
		return failed(err)
	}
	return Result{Kind: ResultOK, Data: item}
}

// ownedShip returns a ship owned by avatar, if any.
func (r *Router) ownedShip(avatar ids.EntityID) (ids.EntityID, bool) {
	for _, id := range r.w.OwnedBy(avatar) {
		if r.w.Ships.Exists(id) {
			return id, true
		}
	}
	return 0, false
}

func (r *Router) shipMove(avatar ids.EntityID, args []string) Result {
	shipID, ok := r.ownedShip(avatar)
	if !ok {
		return refuse(errs.InvalidStatef("router: %d does not own a ship", avatar))
	}
	target, ok := r.resolveBodyByName(args)
	if !ok {
		return refuse(errs.NotFoundf("router: no such destination"))
	}
	if err := ship.MoveTo(r.w, r.w.Clock, shipID, target); err != nil {
		return failed(err)
	}
	return Result{Kind: ResultOK, Data: target}
}

func (r *Router) shipLand(avatar ids.EntityID, args []string) Result {
	shipID, ok := r.ownedShip(avatar)
	if !ok {
		return refuse(errs.InvalidStatef("router: %d does not own a ship", avatar))
	}
	room, ok := r.resolveRoomByName(strings.Join(args, " "))
	if len(args) == 0 || !ok {
		return refuse(errs.NotFoundf("router: no such landing site"))
	}
	if err := ship.Land(r.w, shipID, room); err != nil {
		return failed(err)
	}
	return Result{Kind: ResultOK}
}

func (r *Router) shipLaunch(avatar ids.EntityID) Result {
	shipID, ok := r.ownedShip(avatar)
	if !ok {
		return refuse(errs.InvalidStatef("router: %d does not own a ship", avatar))
	}
	if err := ship.Launch(r.w, shipID); err != nil {
		return failed(err)
	}
	return Result{Kind: ResultOK}
}

func (r *Router) shipJump(avatar ids.EntityID) Result {
	shipID, ok := r.ownedShip(avatar)
	if !ok {
		return refuse(errs.InvalidStatef("router: %d does not own a ship", avatar))
	}
	if err := ship.Jump(r.w, shipID); err != nil {
		return failed(err)
	}
	return Result{Kind: ResultOK}
}

func (r *Router) buy(avatar ids.EntityID, args []string) Result {
	if len(args) == 0 {
		return r.listVendor(avatar)
	}
	vendor, ok := r.resolveVendor(avatar)
	if !ok {
		return refuse(errs.NotFoundf("router: no vendor here"))
	}
	prefabID, ok := r.resolvePrefabByName(vendor, args)
	if !ok {
		return refuse(errs.NotFoundf("router: vendor does not sell that"))
	}
	newID, err := inventory.Buy(r.w, r.cat, avatar, vendor, prefabID)
	if err != nil {
		return failed(err)
	}
	return Result{Kind: ResultOK, Data: newID}
}

func (r *Router) sell(avatar ids.EntityID, args []string) Result {
	if len(args) == 0 {
		return r.listVendor(avatar)
	}
	vendor, ok := r.resolveVendor(avatar)
	if !ok {
		return refuse(errs.NotFoundf("router: no vendor here"))
	}
	item, ok := r.resolveItem(avatar, args)
	if !ok {
		return refuse(errs.NotFoundf("router: no such item"))
	}
	label, _ := r.w.Labels.Get(item)
	prefabID, ok := r.resolvePrefabByName(vendor, []string{label.Code})
	if !ok {
		return refuse(errs.NotFoundf("router: vendor does not buy that"))
	}
	if err := inventory.Sell(r.w, avatar, vendor, item, prefabID); err != nil {
		return failed(err)
	}
	return Result{Kind: ResultOK}
}

func (r *Router) hire(avatar ids.EntityID, args []string) Result {
	target, ok := r.resolveTarget(avatar, args)
	if !ok {
		return refuse(errs.NotFoundf("router: no such target"))
	}
	if err := inventory.Hire(r.w, avatar, target); err != nil {
		return failed(err)
	}
	return Result{Kind: ResultOK, Data: target}
}

func (r *Router) admin(avatar ids.EntityID, args []string) Result {
	if !r.avatarAdmin[avatar] {
		return refuse(errs.InvalidStatef("router: %d is not an admin", avatar))
	}
	if len(args) == 0 {
		return Result{Kind: ResultUnknownCommand}
	}
	switch args[0] {
	case "suicide":
		mob, ok := r.w.Mobs.Get(avatar)
		if !ok {
			return refuse(errs.InvalidStatef("router: %d is not a mob", avatar))
		}
		mob.Attributes.HPCurrent = -1
		r.w.Mobs.Update(avatar, mob)
		return Result{Kind: ResultOK}
	case "teleport":
		if len(args) < 2 {
			return refuse(errs.InvalidArgumentf("router: admin teleport <room-code>"))
		}
		dest, ok := r.resolveRoomByName(args[1])
		if !ok {
			return refuse(errs.NotFoundf("router: no such room"))
		}
		r.w.Graph.Set(avatar, dest)
		return Result{Kind: ResultOK, Data: dest}
	case "spawn":
		if len(args) < 2 {
			return refuse(errs.InvalidArgumentf("router: admin spawn <prefab-code>"))
		}
		room, ok := r.w.Graph.Parent(avatar)
		if !ok {
			return refuse(errs.InvalidStatef("router: avatar %d has no current room", avatar))
		}
		prefabID, ok := r.resolvePrefabByCode(args[1])
		if !ok {
			return refuse(errs.NotFoundf("router: no such prefab"))
		}
		newID, err := r.cat.Instantiate(prefabID, room, r.w)
		if err != nil {
			return failed(err)
		}
		return Result{Kind: ResultOK, Data: newID}
	default:
		return Result{Kind: ResultUnknownCommand}
	}
}

func refuse(err error) Result { return Result{Kind: ResultRefused, Err: err} }
func failed(err error) Result {
	if errs.KindOf(err) == errs.NotImplemented {
		return Result{Kind: ResultFailed, Err: err}
	}
	return Result{Kind: ResultRefused, Err: err}
}
