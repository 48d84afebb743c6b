package prefab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ownworld/internal/ids"
	"ownworld/internal/world"
)

func sampleDoc() Document {
	return Document{Records: []Record{
		{ID: 1, Children: []ids.EntityID{2}, Label: &world.Label{Code: "room", Name: "A Room"}, Room: &world.Room{}},
		{ID: 2, Parent: 1, Label: &world.Label{Code: "coins", Name: "a pile of coins"}, Item: &world.Item{Money: true, Amount: 10, Weight: 0.1}},
	}}
}

func TestMergeRejectsDuplicateStaticID(t *testing.T) {
	c := NewCatalog()
	require.NoError(t, c.Merge(sampleDoc()))
	err := c.Merge(sampleDoc())
	require.Error(t, err)
}

func TestValidateRejectsDanglingParent(t *testing.T) {
	c := NewCatalog()
	require.NoError(t, c.Merge(Document{Records: []Record{{ID: 1, Parent: 99}}}))
	err := c.Validate()
	require.Error(t, err)
}

func TestNormalizeFillsMissingChildSide(t *testing.T) {
	c := NewCatalog()
	require.NoError(t, c.Merge(Document{Records: []Record{
		{ID: 1, Children: []ids.EntityID{2}},
		{ID: 2},
	}}))
	require.NoError(t, c.Validate())
	require.NoError(t, c.Normalize())

	rec, ok := c.Get(2)
	require.True(t, ok)
	assert.Equal(t, ids.EntityID(1), rec.Parent)
}

func TestNormalizeRejectsConflictingParent(t *testing.T) {
	c := NewCatalog()
	require.NoError(t, c.Merge(Document{Records: []Record{
		{ID: 1, Children: []ids.EntityID{2}},
		{ID: 2, Parent: 3},
		{ID: 3},
	}}))
	err := c.Normalize()
	require.Error(t, err)
}

func TestInstantiateMintsFreshRuntimeIdsAndPreservesSubtree(t *testing.T) {
	c := NewCatalog()
	require.NoError(t, c.Merge(sampleDoc()))
	require.NoError(t, c.Validate())
	require.NoError(t, c.Normalize())

	w := world.New(1)
	roomStatic := ids.EntityID(1)
	root, err := c.Instantiate(roomStatic, 0, w)
	require.NoError(t, err)
	assert.True(t, root.IsStatic() == false, "instantiated entities must get runtime ids")

	children := w.Graph.Children(root)
	require.Len(t, children, 1)
	item, ok := w.Items.Get(children[0])
	require.True(t, ok)
	assert.Equal(t, 10, item.Amount)
}

func TestInstantiateTwiceProducesIndependentEntities(t *testing.T) {
	c := NewCatalog()
	require.NoError(t, c.Merge(sampleDoc()))
	require.NoError(t, c.Validate())
	require.NoError(t, c.Normalize())

	w := world.New(1)
	first, err := c.Instantiate(1, 0, w)
	require.NoError(t, err)
	second, err := c.Instantiate(1, 0, w)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestInstantiateUnknownStaticIDFails(t *testing.T) {
	c := NewCatalog()
	_, err := c.Instantiate(999, 0, world.New(1))
	require.Error(t, err)
}

func TestLoadReservesStaticIdsAndRestoresRuntimeFloor(t *testing.T) {
	c := NewCatalog()
	_ = c
	w := world.New(1)
	doc := Document{Records: []Record{
		{ID: 1, Label: &world.Label{Code: "room"}, Room: &world.Room{}},
		{ID: ids.StaticCeiling + 50, Label: &world.Label{Code: "runtime-thing"}},
	}}
	require.NoError(t, Load(doc, w))

	assert.True(t, w.Allocator.IsReserved(1))
	assert.Equal(t, ids.StaticCeiling+51, w.Allocator.NextRuntime())
}

func TestSnapshotRoundTripPreservesComponentsAndGraph(t *testing.T) {
	c := NewCatalog()
	require.NoError(t, c.Merge(sampleDoc()))
	require.NoError(t, c.Validate())
	require.NoError(t, c.Normalize())

	w := world.New(1)
	root, err := c.Instantiate(1, 0, w)
	require.NoError(t, err)

	doc := Snapshot(w)
	w2 := world.New(1)
	require.NoError(t, Load(doc, w2))

	_, ok := w2.Rooms.Get(root)
	assert.True(t, ok)
	children := w2.Graph.Children(root)
	assert.Len(t, children, 1)
}

func TestEachVisitsEveryRecord(t *testing.T) {
	c := NewCatalog()
	require.NoError(t, c.Merge(sampleDoc()))

	seen := map[ids.EntityID]bool{}
	c.Each(func(id ids.EntityID, rec Record) { seen[id] = true })
	assert.Len(t, seen, 2)
}
