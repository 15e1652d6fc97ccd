package store

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var errClosed = errors.New("memory store closed")

// Memory keeps documents as encoded bson in insertion order. It backs tests
// and the "memory" database driver.
type Memory struct {
	mu     sync.RWMutex
	colls  map[string][]bson.Raw
	closed bool
	now    func() time.Time
}

func NewMemory() *Memory {
	return &Memory{colls: map[string][]bson.Raw{}, now: time.Now}
}

func (m *Memory) Insert(_ context.Context, collection string, doc any) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	d, err := withTimestamps(doc, id, primitive.NewDateTimeFromTime(m.now().UTC()))
	if err != nil {
		return primitive.NilObjectID, err
	}
	raw, err := bson.Marshal(d)
	if err != nil {
		return primitive.NilObjectID, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		observe(collection, "insert", errClosed)
		return primitive.NilObjectID, &StorageError{Op: "insert", Collection: collection, Err: errClosed}
	}
	m.colls[collection] = append(m.colls[collection], raw)
	observe(collection, "insert", nil)
	return id, nil
}

func (m *Memory) Find(_ context.Context, collection string, filter Filter, limit int, out any) error {
	if limit <= 0 {
		return emptyInto(out)
	}
	want, err := encodeFilter(filter)
	if err != nil {
		return err
	}

	m.mu.RLock()
	if m.closed {
		m.mu.RUnlock()
		observe(collection, "find", errClosed)
		return &StorageError{Op: "find", Collection: collection, Err: errClosed}
	}
	var hits []bson.Raw
	for _, raw := range m.colls[collection] {
		if matches(raw, want) {
			hits = append(hits, raw)
			if len(hits) == limit {
				break
			}
		}
	}
	m.mu.RUnlock()
	observe(collection, "find", nil)

	sv := reflect.ValueOf(out)
	if sv.Kind() != reflect.Ptr || sv.Elem().Kind() != reflect.Slice {
		return errors.New("memory store: out must be a pointer to a slice")
	}
	slice := reflect.MakeSlice(sv.Elem().Type(), 0, len(hits))
	elem := sv.Elem().Type().Elem()
	for _, raw := range hits {
		p := reflect.New(elem)
		if err := bson.Unmarshal(raw, p.Interface()); err != nil {
			return &StorageError{Op: "decode", Collection: collection, Err: err}
		}
		slice = reflect.Append(slice, p.Elem())
	}
	sv.Elem().Set(slice)
	return nil
}

func (m *Memory) Exists(_ context.Context, collection string, filter Filter) (bool, error) {
	want, err := encodeFilter(filter)
	if err != nil {
		return false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return false, &StorageError{Op: "count", Collection: collection, Err: errClosed}
	}
	for _, raw := range m.colls[collection] {
		if matches(raw, want) {
			return true, nil
		}
	}
	return false, nil
}

func (m *Memory) CollectionNames(context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, &StorageError{Op: "list collections", Err: errClosed}
	}
	names := make([]string, 0, len(m.colls))
	for name := range m.colls {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (m *Memory) Ping(context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return &StorageError{Op: "ping", Err: errClosed}
	}
	return nil
}

// Close makes every later call fail like an unreachable server would.
func (m *Memory) Close(context.Context) error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}

func encodeFilter(f Filter) (map[string]bson.RawValue, error) {
	want := make(map[string]bson.RawValue, len(f))
	for k, v := range f {
		t, data, err := bson.MarshalValue(v)
		if err != nil {
			return nil, err
		}
		want[k] = bson.RawValue{Type: t, Value: data}
	}
	return want, nil
}

func matches(raw bson.Raw, want map[string]bson.RawValue) bool {
	for k, v := range want {
		got, err := raw.LookupErr(k)
		if err != nil || !got.Equal(v) {
			return false
		}
	}
	return true
}

func emptyInto(out any) error {
	sv := reflect.ValueOf(out)
	if sv.Kind() != reflect.Ptr || sv.Elem().Kind() != reflect.Slice {
		return errors.New("store: out must be a pointer to a slice")
	}
	sv.Elem().Set(reflect.MakeSlice(sv.Elem().Type(), 0, 0))
	return nil
}

// ensureNonNil keeps empty results encoding as [] rather than null.
func ensureNonNil(out any) error {
	sv := reflect.ValueOf(out)
	if sv.Kind() == reflect.Ptr && sv.Elem().Kind() == reflect.Slice && sv.Elem().IsNil() {
		return emptyInto(out)
	}
	return nil
}
