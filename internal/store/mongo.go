package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type MongoOpts struct {
	URI              string
	Database         string
	MaxPoolSize      uint64
	MinPoolSize      uint64
	MaxConnIdle      time.Duration
	ConnectTimeout   time.Duration
	SelectionTimeout time.Duration
}

// Mongo is the production Store: one client shared by every request.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
	log    *zap.Logger
}

// NewMongo builds the client and pings once. The driver dials lazily, so a
// failed ping is only logged: the client is kept and later calls surface the
// error. The caller owns Close.
func NewMongo(ctx context.Context, o MongoOpts, l *zap.Logger) (*Mongo, error) {
	if o.URI == "" {
		return nil, fmt.Errorf("mongo: %w", ErrNoConnectionString)
	}
	if o.Database == "" {
		return nil, errors.New("mongo: empty database name")
	}
	opts := options.Client().
		ApplyURI(o.URI).
		SetMaxPoolSize(o.MaxPoolSize).
		SetMinPoolSize(o.MinPoolSize).
		SetMaxConnIdleTime(o.MaxConnIdle).
		SetServerSelectionTimeout(o.SelectionTimeout).
		SetConnectTimeout(o.ConnectTimeout)

	cctx, cancel := context.WithTimeout(ctx, max(o.ConnectTimeout, time.Second))
	defer cancel()

	client, err := mongo.Connect(cctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(cctx, nil); err != nil {
		l.Warn("mongo ping failed, serving anyway", zap.String("database", o.Database), zap.Error(err))
	} else {
		l.Info("mongo connected", zap.String("database", o.Database))
	}
	return &Mongo{client: client, db: client.Database(o.Database), log: l}, nil
}

func (m *Mongo) Insert(ctx context.Context, collection string, doc any) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	d, err := withTimestamps(doc, id, primitive.NewDateTimeFromTime(time.Now().UTC()))
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("encode %s document: %w", collection, err)
	}
	_, err = m.db.Collection(collection).InsertOne(ctx, d)
	observe(collection, "insert", err)
	if err != nil {
		m.log.Error("insert failed", zap.String("collection", collection), zap.Error(err))
		return primitive.NilObjectID, &StorageError{Op: "insert", Collection: collection, Err: err}
	}
	return id, nil
}

func (m *Mongo) Find(ctx context.Context, collection string, filter Filter, limit int, out any) error {
	if limit <= 0 {
		return emptyInto(out)
	}
	if filter == nil {
		filter = bson.M{}
	}
	cur, err := m.db.Collection(collection).Find(ctx, filter, options.Find().SetLimit(int64(limit)))
	if err == nil {
		err = cur.All(ctx, out)
	}
	observe(collection, "find", err)
	if err != nil {
		m.log.Error("find failed", zap.String("collection", collection), zap.Error(err))
		return &StorageError{Op: "find", Collection: collection, Err: err}
	}
	return ensureNonNil(out)
}

func (m *Mongo) Exists(ctx context.Context, collection string, filter Filter) (bool, error) {
	n, err := m.db.Collection(collection).CountDocuments(ctx, filter, options.Count().SetLimit(1))
	observe(collection, "count", err)
	if err != nil {
		return false, &StorageError{Op: "count", Collection: collection, Err: err}
	}
	return n > 0, nil
}

func (m *Mongo) CollectionNames(ctx context.Context) ([]string, error) {
	names, err := m.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, &StorageError{Op: "list collections", Err: err}
	}
	return names, nil
}

func (m *Mongo) Ping(ctx context.Context) error {
	if err := m.client.Ping(ctx, nil); err != nil {
		return &StorageError{Op: "ping", Err: err}
	}
	return nil
}

func (m *Mongo) Close(ctx context.Context) error {
	if err := m.client.Disconnect(ctx); err != nil {
		m.log.Error("mongo disconnect failed", zap.Error(err))
		return err
	}
	m.log.Info("mongo disconnected")
	return nil
}
