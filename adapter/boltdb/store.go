// Package boltdb implements the shop repository ports on an embedded BoltDB file.
//
// Every entity type lives in its own bucket, keyed by its ID, with gob encoded values.
package boltdb

import (
	"bytes"
	"context"
	"encoding/gob"
	"time"

	bolt "go.etcd.io/bbolt"
	"go.llib.dev/frameless/pkg/errorkit"
	"go.llib.dev/frameless/port/crud"
	"go.llib.dev/frameless/port/crud/extid"
)

const ErrMissingIDGenerator errorkit.Error = "ErrMissingIDGenerator"

// Open the database file at path, and make sure every shop bucket exists.
// The file is created when missing.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	s := &Store{DB: db}
	if err := s.ensureBuckets(bucketUsers, bucketCartItems, bucketOrders); err != nil {
		return nil, errorkit.Merge(err, db.Close())
	}
	return s, nil
}

type Store struct {
	DB *bolt.DB
}

// Close the database and release the file lock.
func (s *Store) Close() error {
	return s.DB.Close()
}

func (s *Store) ensureBuckets(names ...string) error {
	return s.DB.Update(func(tx *bolt.Tx) error {
		for _, name := range names {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	})
}

// Repository stores one entity type in a single bucket.
// The entity's identifier is the field tagged with `ext:"id"`.
type Repository[ENT any, ID ~string] struct {
	Store  *Store
	Bucket string
	MakeID func(context.Context) (ID, error)
}

func (r Repository[ENT, ID]) Create(ctx context.Context, ptr *ENT) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	id, ok := extid.Lookup[ID](*ptr)
	if !ok {
		if r.MakeID == nil {
			return ErrMissingIDGenerator
		}
		newID, err := r.MakeID(ctx)
		if err != nil {
			return err
		}
		if err := extid.Set(ptr, newID); err != nil {
			return err
		}
		id = newID
	}
	value, err := encode(*ptr)
	if err != nil {
		return err
	}
	return r.Store.DB.Update(func(tx *bolt.Tx) error {
		bucket, err := r.bucketFor(tx)
		if err != nil {
			return err
		}
		if bucket.Get([]byte(id)) != nil {
			return crud.ErrAlreadyExists.F(`%T already exists with id: %v`, *ptr, id)
		}
		return bucket.Put([]byte(id), value)
	})
}

func (r Repository[ENT, ID]) FindByID(ctx context.Context, id ID) (ENT, bool, error) {
	var (
		ent   ENT
		found bool
	)
	if err := ctx.Err(); err != nil {
		return ent, false, err
	}
	err := r.Store.DB.View(func(tx *bolt.Tx) error {
		bucket, err := r.bucketFor(tx)
		if err != nil {
			return err
		}
		data := bucket.Get([]byte(id))
		if data == nil {
			return nil
		}
		found = true
		return decode(data, &ent)
	})
	return ent, found, err
}

func (r Repository[ENT, ID]) Update(ctx context.Context, ptr *ENT) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	id, ok := extid.Lookup[ID](*ptr)
	if !ok {
		return errNotFound(*ptr, id)
	}
	value, err := encode(*ptr)
	if err != nil {
		return err
	}
	return r.Store.DB.Update(func(tx *bolt.Tx) error {
		bucket, err := r.bucketFor(tx)
		if err != nil {
			return err
		}
		if bucket.Get([]byte(id)) == nil {
			return errNotFound(*ptr, id)
		}
		return bucket.Put([]byte(id), value)
	})
}

func (r Repository[ENT, ID]) DeleteByID(ctx context.Context, id ID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.Store.DB.Update(func(tx *bolt.Tx) error {
		bucket, err := r.bucketFor(tx)
		if err != nil {
			return err
		}
		if bucket.Get([]byte(id)) == nil {
			return errNotFound(*new(ENT), id)
		}
		return bucket.Delete([]byte(id))
	})
}

// FindBy returns every entity in the bucket that matches the filter, in key order.
func (r Repository[ENT, ID]) FindBy(ctx context.Context, filter func(ENT) bool) ([]ENT, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []ENT
	err := r.Store.DB.View(func(tx *bolt.Tx) error {
		bucket, err := r.bucketFor(tx)
		if err != nil {
			return err
		}
		return bucket.ForEach(func(_, data []byte) error {
			var ent ENT
			if err := decode(data, &ent); err != nil {
				return err
			}
			if filter(ent) {
				out = append(out, ent)
			}
			return nil
		})
	})
	return out, err
}

func (r Repository[ENT, ID]) bucketFor(tx *bolt.Tx) (*bolt.Bucket, error) {
	bucket := tx.Bucket([]byte(r.Bucket))
	if bucket == nil {
		return nil, ErrMissingBucket.F("%s", r.Bucket)
	}
	return bucket, nil
}

const ErrMissingBucket errorkit.Error = "bucket is missing"

func errNotFound(T, id any) error {
	return crud.ErrNotFound.F(`%T entity not found by id: %v`, T, id)
}

func encode(v any) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := gob.NewEncoder(buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decode(data []byte, ptr any) error {
	return gob.NewDecoder(bytes.NewBuffer(data)).Decode(ptr)
}
