// Package store is the document persistence adapter: create and exact-match
// query over named collections. Records are never updated or deleted.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Filter is an exact-match filter on top-level document fields.
type Filter = bson.M

type Store interface {
	// Insert stores doc with created_at/updated_at and returns the generated id.
	Insert(ctx context.Context, collection string, doc any) (primitive.ObjectID, error)
	// Find decodes up to limit matching documents, in insertion order, into
	// out, which must be a pointer to a slice.
	Find(ctx context.Context, collection string, filter Filter, limit int, out any) error
	Exists(ctx context.Context, collection string, filter Filter) (bool, error)
	CollectionNames(ctx context.Context) ([]string, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// StorageError wraps any failure of the underlying store.
type StorageError struct {
	Op         string
	Collection string
	Err        error
}

func (e *StorageError) Error() string {
	if e.Collection == "" {
		return fmt.Sprintf("store %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("store %s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

var ErrUnsupportedDriver = errors.New("unsupported database driver")

var opsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{Name: "store_operations_total", Help: "Count of document store operations"},
	[]string{"collection", "op", "result"},
)

func init() { prometheus.MustRegister(opsTotal) }

func observe(collection, op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	opsTotal.WithLabelValues(collection, op, result).Inc()
}

// withTimestamps encodes doc to a bson document and stamps it. Caller-set
// _id values are dropped; the store always generates one.
func withTimestamps(doc any, id primitive.ObjectID, now primitive.DateTime) (bson.D, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var in bson.D
	if err := bson.Unmarshal(raw, &in); err != nil {
		return nil, err
	}
	out := make(bson.D, 0, len(in)+3)
	out = append(out, bson.E{Key: "_id", Value: id})
	for _, e := range in {
		switch e.Key {
		case "_id", "created_at", "updated_at":
			continue
		}
		out = append(out, e)
	}
	out = append(out,
		bson.E{Key: "created_at", Value: now},
		bson.E{Key: "updated_at", Value: now},
	)
	return out, nil
}
