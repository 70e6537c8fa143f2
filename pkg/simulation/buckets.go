package simulation

import (
	"fmt"
	"sync"
	"time"

	"github.com/getmockd/influxmock/internal/id"
)

// Bucket is a named container of the emulated instance. Expire is the
// retention period in seconds, 0 meaning infinite.
type Bucket struct {
	ID        string
	Name      string
	OrgID     string
	Expire    int64
	CreatedAt time.Time
}

// Buckets is the bucket registry. Names and ids are unique. List order is
// creation order.
type Buckets struct {
	mu      sync.RWMutex
	orgID   string
	seed    string
	items   []Bucket
	newID   func() string
	nowFunc func() time.Time
}

// NewBuckets creates a registry for orgID. When seed is not empty a bucket
// with that name always exists after creation and after Clear.
func NewBuckets(orgID, seed string) *Buckets {
	b := &Buckets{
		orgID:   orgID,
		seed:    seed,
		newID:   id.Short,
		nowFunc: time.Now,
	}
	b.reseed()
	return b
}

// Create adds a bucket. orgID must be the registry's organization id.
func (b *Buckets) Create(name, orgID string, expire int64) (Bucket, error) {
	if name == "" {
		return Bucket{}, ErrBucketNameRequired
	}
	if orgID != b.orgID {
		return Bucket{}, fmt.Errorf("%w: orgID %q", ErrOrgMismatch, orgID)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.findByName(name); ok {
		return Bucket{}, fmt.Errorf("%w: %q", ErrBucketExists, name)
	}
	bucket := b.add(name, expire)
	return bucket, nil
}

// Get returns the bucket with the given id.
func (b *Buckets) Get(bucketID string) (Bucket, error) {
	if !id.IsShort(bucketID) {
		return Bucket{}, ErrInvalidBucketID
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	i := b.indexOf(bucketID)
	if i < 0 {
		return Bucket{}, fmt.Errorf("%w: %q", ErrBucketNotFound, bucketID)
	}
	return b.items[i], nil
}

// FindByName returns the bucket with the given name.
func (b *Buckets) FindByName(name string) (Bucket, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.findByName(name)
}

// Delete removes the bucket with the given id.
func (b *Buckets) Delete(bucketID string) error {
	if !id.IsShort(bucketID) {
		return ErrInvalidBucketID
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.indexOf(bucketID)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrBucketNotFound, bucketID)
	}
	b.items = append(b.items[:i], b.items[i+1:]...)
	return nil
}

// List returns a copy of all buckets.
func (b *Buckets) List() []Bucket {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Bucket, len(b.items))
	copy(out, b.items)
	return out
}

// Len returns the number of buckets.
func (b *Buckets) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.items)
}

// Clear removes all buckets and re-creates the seed bucket.
func (b *Buckets) Clear() {
	b.mu.Lock()
	b.items = nil
	b.mu.Unlock()
	b.reseed()
}

func (b *Buckets) reseed() {
	if b.seed == "" {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.findByName(b.seed); !ok {
		b.add(b.seed, 0)
	}
}

// add must be called with the write lock held.
func (b *Buckets) add(name string, expire int64) Bucket {
	bucketID := b.newID()
	for b.indexOf(bucketID) >= 0 {
		bucketID = b.newID()
	}
	bucket := Bucket{
		ID:        bucketID,
		Name:      name,
		OrgID:     b.orgID,
		Expire:    expire,
		CreatedAt: b.nowFunc().UTC(),
	}
	b.items = append(b.items, bucket)
	return bucket
}

func (b *Buckets) findByName(name string) (Bucket, bool) {
	for _, bucket := range b.items {
		if bucket.Name == name {
			return bucket, true
		}
	}
	return Bucket{}, false
}

func (b *Buckets) indexOf(bucketID string) int {
	for i, bucket := range b.items {
		if bucket.ID == bucketID {
			return i
		}
	}
	return -1
}
