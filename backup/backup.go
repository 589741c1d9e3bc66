// Package backup keeps numbered snapshots of documents on disk.
//
// A Store writes each snapshot to {sequence}.snapshot in its
// directory, atomically, with the save time recorded next to the
// document. Sequence numbers grow monotonically; an optional keep
// limit prunes the oldest snapshots as new ones land.
package backup

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/plkit/plkit/codec"
	"github.com/plkit/plkit/value"
)

var ErrStore = errors.New("backup error")

const snapshotSuffix = ".snapshot"

// Store is a snapshot directory. The zero value is not usable; make
// one with NewStore.
type Store struct {
	dir  string
	keep int
}

// NewStore returns a store rooted at dir, pruning to keep snapshots
// after each save. keep <= 0 keeps everything. The directory is
// created on first save.
func NewStore(dir string, keep int) *Store {
	return &Store{dir: dir, keep: keep}
}

// Snapshot is one saved document and its metadata.
type Snapshot struct {
	Sequence int64
	SavedAt  time.Time
	Document *value.Value
}

func snapshotFilename(seq int64) string {
	return strconv.FormatInt(seq, 10) + snapshotSuffix
}

// Save writes v as the next numbered snapshot and returns its
// sequence number. The write is a temp file rename, so a crash never
// leaves a torn snapshot behind.
func (s *Store) Save(v *value.Value) (int64, error) {
	if v == nil {
		return 0, fmt.Errorf("%w: nil document", ErrStore)
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return 0, fmt.Errorf("%w: create store: %v", ErrStore, err)
	}
	seqs, err := s.List()
	if err != nil {
		return 0, err
	}
	seq := int64(1)
	if len(seqs) > 0 {
		seq = seqs[len(seqs)-1] + 1
	}

	meta := value.FromPairs([]value.Pair{
		value.NewPair("sequence", value.FromInt(seq)),
		value.NewPair("savedAt", value.FromDate(time.Now().UTC())),
		value.NewPair("document", v.Clone()),
	})
	d, err := codec.EncodeYAML(meta)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStore, err)
	}

	path := filepath.Join(s.dir, snapshotFilename(seq))
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, d, 0644); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStore, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return 0, fmt.Errorf("%w: %v", ErrStore, err)
	}

	if s.keep > 0 {
		seqs = append(seqs, seq)
		for len(seqs) > s.keep {
			if err := s.Delete(seqs[0]); err != nil {
				return seq, err
			}
			seqs = seqs[1:]
		}
	}
	return seq, nil
}

// Load reads the snapshot with the given sequence number.
func (s *Store) Load(seq int64) (*Snapshot, error) {
	d, err := os.ReadFile(filepath.Join(s.dir, snapshotFilename(seq)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	meta, err := codec.DecodeYAML(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	if meta.Kind != value.DictionaryKind {
		return nil, fmt.Errorf("%w: snapshot %d is not a dictionary", ErrStore, seq)
	}
	snap := &Snapshot{}
	if sv := dictValue(meta.Dict, "sequence"); sv != nil && sv.Int64 != nil {
		snap.Sequence = *sv.Int64
	}
	if tv := dictValue(meta.Dict, "savedAt"); tv != nil && tv.Kind == value.DateKind {
		snap.SavedAt = tv.Time
	}
	snap.Document = dictValue(meta.Dict, "document")
	if snap.Document == nil {
		return nil, fmt.Errorf("%w: snapshot %d has no document", ErrStore, seq)
	}
	if snap.Sequence != seq {
		return nil, fmt.Errorf("%w: snapshot %d records sequence %d", ErrStore, seq, snap.Sequence)
	}
	return snap, nil
}

// Latest loads the newest snapshot, or returns nil when the store is
// empty.
func (s *Store) Latest() (*Snapshot, error) {
	seqs, err := s.List()
	if err != nil {
		return nil, err
	}
	if len(seqs) == 0 {
		return nil, nil
	}
	return s.Load(seqs[len(seqs)-1])
}

// List returns the stored sequence numbers in ascending order. A
// store whose directory does not exist yet is empty, not an error.
func (s *Store) List() ([]int64, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	var seqs []int64
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), snapshotSuffix) {
			continue
		}
		seq, err := strconv.ParseInt(strings.TrimSuffix(entry.Name(), snapshotSuffix), 10, 64)
		if err != nil {
			continue
		}
		seqs = append(seqs, seq)
	}
	slices.Sort(seqs)
	return seqs, nil
}

// Delete removes one snapshot.
func (s *Store) Delete(seq int64) error {
	if err := os.Remove(filepath.Join(s.dir, snapshotFilename(seq))); err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}
	return nil
}

func dictValue(d *value.Dictionary, key string) *value.Value {
	i := d.IndexOfKey(key)
	if i < 0 {
		return nil
	}
	return d.PairAt(i).Value
}
