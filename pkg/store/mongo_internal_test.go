package store

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestMongoDocumentRoundTrip(t *testing.T) {
	t.Parallel()

	in := []byte(`{"id":"a-1","status":"draft","score":3,"ratio":1.5,"tags":["x","y"],"meta":{"k":"v"}}`)

	doc, err := jsonDocument(in)
	require.NoError(t, err)

	raw, err := bson.Marshal(bson.D{{Key: "_id", Value: "a-1"}, {Key: "data", Value: doc}})
	require.NoError(t, err)

	out, err := documentJSON(raw)
	require.NoError(t, err)
	assert.JSONEq(t, string(in), string(out))
}

func TestMongoDocumentErrors(t *testing.T) {
	t.Parallel()

	_, err := jsonDocument([]byte(`[1,2]`))
	assert.ErrorIs(t, err, ErrEncodeFailed)

	raw, err := bson.Marshal(bson.D{{Key: "_id", Value: "a-1"}})
	require.NoError(t, err)
	_, err = documentJSON(raw)
	assert.ErrorIs(t, err, ErrDecodeFailed)

	raw, err = bson.Marshal(bson.D{{Key: "data", Value: "text"}})
	require.NoError(t, err)
	_, err = documentJSON(raw)
	assert.ErrorIs(t, err, ErrDecodeFailed)
}

func TestMigrationsEmbedded(t *testing.T) {
	t.Parallel()

	data, err := fs.ReadFile(Migrations, "00001_create_fsm_resources.sql")
	require.NoError(t, err)
	assert.Contains(t, string(data), "CREATE TABLE IF NOT EXISTS fsm_resources")
}
