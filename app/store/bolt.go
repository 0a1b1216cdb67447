package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
)

const (
	usersBktName        = "users"
	jobsBktName         = "jobs"
	applicationsBktName = "applications"
)

// Bolt is a storage that uses BoltDB as a backend.
type Bolt struct {
	db  *bolt.DB
	now func() time.Time
}

// NewBolt creates new Bolt storage.
func NewBolt(dir string) (*Bolt, error) {
	db, err := bolt.Open(path.Join(dir, "jobnest.db"), 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to make boltdb for %s: %w", dir, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{usersBktName, jobsBktName, applicationsBktName} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("create top-level bucket %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("make buckets: %w", err)
	}

	return &Bolt{db: db, now: time.Now}, nil
}

// PutUser puts user to storage.
func (b *Bolt) PutUser(_ context.Context, u User) error {
	if err := b.put(usersBktName, u.ID, u); err != nil {
		return fmt.Errorf("put user: %w", err)
	}
	return nil
}

// GetUser returns user from storage.
func (b *Bolt) GetUser(_ context.Context, id string) (u User, err error) {
	if err = b.get(usersBktName, id, &u); err != nil {
		return User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// ListUsers returns all users from storage.
func (b *Bolt) ListUsers(context.Context) ([]User, error) {
	var result []User
	err := b.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(usersBktName)).ForEach(func(k, v []byte) error {
			var u User
			if err := json.Unmarshal(v, &u); err != nil {
				return fmt.Errorf("unmarshal user %s: %w", k, err)
			}
			result = append(result, u)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("view storage: %w", err)
	}
	return result, nil
}

// PutJob creates or updates the job posting.
// Empty ID and status are filled with defaults.
func (b *Bolt) PutJob(_ context.Context, j Job) error {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	if j.Status == "" {
		j.Status = JobOpen
	}
	if j.CreatedAt.IsZero() {
		j.CreatedAt = b.stamp()
	}

	if err := b.put(jobsBktName, j.ID, j); err != nil {
		return fmt.Errorf("put job: %w", err)
	}
	return nil
}

// GetJob returns the job by its id.
func (b *Bolt) GetJob(_ context.Context, id string) (j Job, err error) {
	if err = b.get(jobsBktName, id, &j); err != nil {
		return Job{}, fmt.Errorf("get job: %w", err)
	}
	return j, nil
}

// ListJobs returns jobs, newest first.
func (b *Bolt) ListJobs(_ context.Context, req ListJobsRequest) ([]Job, error) {
	var result []Job
	err := b.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(jobsBktName)).ForEach(func(k, v []byte) error {
			var j Job
			if err := json.Unmarshal(v, &j); err != nil {
				return fmt.Errorf("unmarshal job %s: %w", k, err)
			}
			if req.OnlyOpen && j.Closed() {
				return nil
			}
			result = append(result, j)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("view storage: %w", err)
	}

	sort.SliceStable(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

// Apply records the application of the user for the job.
func (b *Bolt) Apply(_ context.Context, jobID, userID string) (Application, error) {
	app := Application{ID: uuid.NewString(), JobID: jobID, UserID: userID, CreatedAt: b.stamp()}

	err := b.db.Update(func(tx *bolt.Tx) error {
		bts := tx.Bucket([]byte(jobsBktName)).Get([]byte(jobID))
		if bts == nil {
			return ErrNotFound
		}

		var j Job
		if err := json.Unmarshal(bts, &j); err != nil {
			return fmt.Errorf("unmarshal job: %w", err)
		}

		if j.Closed() {
			return ErrJobClosed
		}

		bkt := tx.Bucket([]byte(applicationsBktName))
		key := applicationKey(userID, jobID)
		if bkt.Get(key) != nil {
			return ErrAlreadyApplied
		}

		bts, err := json.Marshal(app)
		if err != nil {
			return fmt.Errorf("marshal application: %w", err)
		}

		if err = bkt.Put(key, bts); err != nil {
			return fmt.Errorf("put application to storage: %w", err)
		}

		return nil
	})
	if err != nil {
		return Application{}, fmt.Errorf("apply for job %s: %w", jobID, err)
	}

	return app, nil
}

// ListApplications returns all applications of the user.
func (b *Bolt) ListApplications(_ context.Context, userID string) ([]Application, error) {
	var result []Application
	err := b.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(applicationsBktName)).Cursor()
		prefix := []byte(userID + "/")
		for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
			var app Application
			if err := json.Unmarshal(v, &app); err != nil {
				return fmt.Errorf("unmarshal application %s: %w", k, err)
			}
			result = append(result, app)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("view storage: %w", err)
	}
	return result, nil
}

// stamp returns the current time the way it reads back from storage:
// in UTC and without the monotonic clock reading.
func (b *Bolt) stamp() time.Time { return b.now().Round(0).UTC() }

// Close closes the storage.
func (b *Bolt) Close() error { return b.db.Close() }

func (b *Bolt) put(bucket, key string, v any) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		bts, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshal: %w", err)
		}

		if err := tx.Bucket([]byte(bucket)).Put([]byte(key), bts); err != nil {
			return fmt.Errorf("put to storage: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("update storage: %w", err)
	}
	return nil
}

func (b *Bolt) get(bucket, key string, v any) error {
	err := b.db.View(func(tx *bolt.Tx) error {
		bts := tx.Bucket([]byte(bucket)).Get([]byte(key))
		if bts == nil {
			return ErrNotFound
		}

		if err := json.Unmarshal(bts, v); err != nil {
			return fmt.Errorf("unmarshal: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("view storage: %w", err)
	}
	return nil
}

func applicationKey(userID, jobID string) []byte { return []byte(userID + "/" + jobID) }
