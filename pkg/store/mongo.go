package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Mongo stores each resource as {_id, data, updated_at} in one collection.
// data is a native sub-document converted from the resource's JSON form, so
// it stays queryable from the mongo shell.
type Mongo[T any] struct {
	coll *mongo.Collection
	key  KeyFunc[T]
}

// NewMongo creates a store backed by coll.
func NewMongo[T any](coll *mongo.Collection, key KeyFunc[T]) *Mongo[T] {
	return &Mongo[T]{coll: coll, key: key}
}

func (m *Mongo[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	raw, err := m.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Raw()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return zero, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return zero, fmt.Errorf("find %s: %w", id, err)
	}
	data, err := documentJSON(raw)
	if err != nil {
		return zero, err
	}
	return decode[T](data)
}

func (m *Mongo[T]) Save(ctx context.Context, v T) error {
	id := m.key(v)
	if id == "" {
		return ErrEmptyKey
	}
	data, err := encode(v)
	if err != nil {
		return err
	}
	doc, err := jsonDocument(data)
	if err != nil {
		return err
	}

	_, err = m.coll.ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{
			{Key: "_id", Value: id},
			{Key: "data", Value: doc},
			{Key: "updated_at", Value: time.Now().UTC()},
		},
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("replace %s: %w", id, err)
	}
	return nil
}

// jsonDocument converts an encoded resource into a BSON document.
func jsonDocument(data []byte) (bson.D, error) {
	var doc bson.D
	if err := bson.UnmarshalExtJSON(data, false, &doc); err != nil {
		return nil, errors.Join(ErrEncodeFailed, err)
	}
	return doc, nil
}

// documentJSON extracts the data sub-document as relaxed extended JSON,
// which is plain JSON for values that came from JSON in the first place.
func documentJSON(raw bson.Raw) ([]byte, error) {
	val, err := raw.LookupErr("data")
	if err != nil {
		return nil, errors.Join(ErrDecodeFailed, err)
	}
	doc, ok := val.DocumentOK()
	if !ok {
		return nil, fmt.Errorf("%w: data is %s, not a document", ErrDecodeFailed, val.Type)
	}
	data, err := bson.MarshalExtJSON(doc, false, false)
	if err != nil {
		return nil, errors.Join(ErrDecodeFailed, err)
	}
	return data, nil
}
