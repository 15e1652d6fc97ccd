package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNoConnectionString means the mongo driver was selected without a URL.
var ErrNoConnectionString = errors.New("database url not set")

// Unavailable stands in when no store could be built at startup. Every
// operation fails with a StorageError wrapping Err, so API routes answer 500
// while the process keeps serving / and /test.
type Unavailable struct {
	Err error
}

func NewUnavailable(err error) *Unavailable { return &Unavailable{Err: err} }

func (u *Unavailable) fail(op, collection string) error {
	observe(collection, op, u.Err)
	return &StorageError{Op: op, Collection: collection, Err: u.Err}
}

func (u *Unavailable) Insert(_ context.Context, collection string, _ any) (primitive.ObjectID, error) {
	return primitive.NilObjectID, u.fail("insert", collection)
}

func (u *Unavailable) Find(_ context.Context, collection string, _ Filter, _ int, _ any) error {
	return u.fail("find", collection)
}

func (u *Unavailable) Exists(_ context.Context, collection string, _ Filter) (bool, error) {
	return false, u.fail("count", collection)
}

func (u *Unavailable) CollectionNames(context.Context) ([]string, error) {
	return nil, &StorageError{Op: "list collections", Err: u.Err}
}

func (u *Unavailable) Ping(context.Context) error {
	return &StorageError{Op: "ping", Err: u.Err}
}

func (u *Unavailable) Close(context.Context) error { return nil }
