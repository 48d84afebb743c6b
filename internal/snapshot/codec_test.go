package snapshot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ownworld/internal/prefab"
	"ownworld/internal/world"
)

func TestEncodeIsStableSortedById(t *testing.T) {
	doc := prefab.Document{Records: []prefab.Record{
		{ID: 3, Label: &world.Label{Code: "c"}},
		{ID: 1, Label: &world.Label{Code: "a"}},
		{ID: 2, Label: &world.Label{Code: "b"}},
	}}

	a, err := Encode(nil, doc)
	require.NoError(t, err)
	b, err := Encode(nil, doc)
	require.NoError(t, err)
	assert.Equal(t, a, b, "two encodes of the same state must be byte-identical")
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	headers := []Header{{Name: "tick", Value: []byte("5")}}
	doc := prefab.Document{Records: []prefab.Record{
		{ID: 1, Label: &world.Label{Code: "rat"}, Mob: &world.Mob{Attributes: world.Attributes{HPMax: 10}}},
	}}

	data, err := Encode(headers, doc)
	require.NoError(t, err)

	gotHeaders, gotDoc, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, gotHeaders, 1)
	assert.Equal(t, "tick", gotHeaders[0].Name)
	require.Len(t, gotDoc.Records, 1)
	assert.Equal(t, "rat", gotDoc.Records[0].Label.Code)
}

func TestDecodeRejectsDuplicateEntityID(t *testing.T) {
	doc := prefab.Document{Records: []prefab.Record{
		{ID: 1, Label: &world.Label{Code: "a"}},
	}}
	data, err := Encode(nil, doc)
	require.NoError(t, err)

	_, _, err = Decode(append(data, data...))
	require.Error(t, err)
}

func TestDecodeRejectsMalformedLine(t *testing.T) {
	_, _, err := Decode([]byte("not json\n"))
	require.Error(t, err)
}
