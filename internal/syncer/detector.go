package syncer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/tradeblocks/blocksync/internal/adapter"
	"github.com/tradeblocks/blocksync/internal/domain"
	"github.com/tradeblocks/blocksync/internal/hasher"
	"github.com/tradeblocks/blocksync/internal/store"
	"github.com/tradeblocks/blocksync/internal/store/schema"
)

// Worklist is the change detector's output: which sources need a (re)sync,
// which are already up to date, which known sources disappeared from disk,
// and which feed files exist.
type Worklist struct {
	ToSync    []domain.Source
	Unchanged []domain.Source
	ToDelete  []domain.Source
	Feeds     []domain.Source
}

// Detector diffs the current filesystem state against the stored sync state.
// It consults content fingerprints only, never timestamps: two files with
// identical bytes are unchanged no matter when they were copied.
type Detector struct {
	baseDir string
	fs      adapter.FileSystem
	store   store.Store
}

// NewDetector creates a change detector rooted at baseDir
func NewDetector(baseDir string, filesystem adapter.FileSystem, st store.Store) *Detector {
	return &Detector{baseDir: baseDir, fs: filesystem, store: st}
}

// Detect computes the worklist for one sync pass. Sync state is read fresh
// from the store on every call; there is no in-memory cache of it.
func (d *Detector) Detect(ctx context.Context) (*Worklist, error) {
	entries, err := d.fs.ReadDir(d.baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read base directory %s: %w", d.baseDir, err)
	}

	knownIDs, err := d.store.ListBlockIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list known blocks: %w", err)
	}

	onDisk := make(map[string]bool)
	wl := &Worklist{}
	for _, entry := range entries {
		if !entry.IsDir() || !domain.IsBlockDirName(entry.Name()) {
			continue
		}
		onDisk[entry.Name()] = true

		src := domain.BlockSource(d.baseDir, entry.Name())
		state, err := d.store.GetBlockState(ctx, src.ID)
		if err != nil {
			return nil, err
		}
		changed, err := d.blockChanged(src, state)
		if err != nil {
			// An unreadable block still goes on the worklist so the block
			// syncer reports it per-source instead of failing detection.
			wl.ToSync = append(wl.ToSync, src)
			continue
		}
		if changed {
			wl.ToSync = append(wl.ToSync, src)
		} else {
			wl.Unchanged = append(wl.Unchanged, src)
		}
	}

	for _, id := range knownIDs {
		if !onDisk[id] {
			wl.ToDelete = append(wl.ToDelete, domain.BlockSource(d.baseDir, id))
		}
	}

	wl.Feeds = d.listFeeds()
	return wl, nil
}

// blockChanged reports whether a block's content fingerprints differ from
// its stored sync state. A change in the optional daily log alone still
// forces a re-sync of the whole block, since cached records may join data
// from both files.
func (d *Detector) blockChanged(src domain.Source, state *schema.BlockSyncState) (bool, error) {
	if state == nil {
		return true, nil
	}
	if state.SchemaVersion != schema.BlockSchemaVersion {
		return true, nil
	}

	_, primaryHash, err := hasher.File(d.fs, src.PrimaryFile())
	if err != nil {
		return false, err
	}
	if primaryHash != state.PrimaryHash {
		return true, nil
	}

	secondary, err := d.secondaryHashes(src)
	if err != nil {
		return false, err
	}
	return !mapsEqual(secondary, state.SecondaryHashes.Data()), nil
}

// secondaryHashes fingerprints the block's optional companion files that
// are present on disk.
func (d *Detector) secondaryHashes(src domain.Source) (map[string]string, error) {
	hashes := map[string]string{}
	path := src.DailyLogFile()
	_, h, err := hasher.File(d.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return hashes, nil
		}
		return nil, err
	}
	hashes[filepath.Base(path)] = h
	return hashes, nil
}

// listFeeds returns every market feed file currently on disk. A missing or
// empty market data folder is not an error; there is simply nothing to
// merge.
func (d *Detector) listFeeds() []domain.Source {
	entries, err := d.fs.ReadDir(filepath.Join(d.baseDir, domain.MarketDataDirName))
	if err != nil {
		return nil
	}

	var feeds []domain.Source
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		feeds = append(feeds, domain.FeedSource(d.baseDir, entry.Name()))
	}
	return feeds
}

func mapsEqual(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}
