package scan

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"runtime"

	"github.com/blackwell-systems/retroshelf/internal/catalog"
	"github.com/blackwell-systems/retroshelf/internal/naming"
	"go.uber.org/zap"
)

const (
	// commitBatchSize is how many new entries accumulate before the catalog
	// is flushed mid-scan.
	commitBatchSize = 50
	// containerYield is how many containers are processed between voluntary
	// yields.
	containerYield = 5
)

// ErrScanInProgress rejects overlapping scan sessions; the catalog document
// assumes a single writer.
var ErrScanInProgress = errors.New("a scan session is already running")

// Decider is the UI-facing collaborator consulted per discovered container.
// remember applies the same answer to every later container in the session
// without asking again.
type Decider interface {
	DecideOnContainer(name string) (expand, remember bool)
}

// DeciderFunc adapts a function to the Decider interface.
type DeciderFunc func(name string) (bool, bool)

func (f DeciderFunc) DecideOnContainer(name string) (bool, bool) { return f(name) }

// MetadataFunc supplies display metadata for a newly cataloged title. All
// results may be empty.
type MetadataFunc func(displayName string) (year, publisher, boxArtURL string)

// Progress receives running counts while a scan session is underway.
type Progress func(added, skipped, fromContainers int)

// Summary is the final tally of one scan session.
type Summary struct {
	Found          int // deduplicated payload files discovered on disk
	FromContainers int // payload records collected out of expanded archives
	Added          int
	Skipped        int
}

// Orchestrator drives one end-to-end scan-to-catalog session.
type Orchestrator struct {
	store    *catalog.Store
	walker   *Walker
	expander *Expander
	meta     MetadataFunc
	decide   Decider
	progress Progress
	log      *zap.Logger

	// PathPrefix is prepended to stored entry paths so catalogs keep
	// absolute source locations while the walker stays fs-relative.
	PathPrefix string

	scanning bool
}

// NewOrchestrator wires the scan pipeline. meta, decide, and progress may
// be nil; missing collaborators default to empty metadata, skip-all, and
// no reporting.
func NewOrchestrator(store *catalog.Store, meta MetadataFunc, decide Decider, progress Progress, log *zap.Logger) *Orchestrator {
	if meta == nil {
		meta = func(string) (string, string, string) { return "", "", "" }
	}
	if decide == nil {
		decide = DeciderFunc(func(string) (bool, bool) { return false, true })
	}
	if progress == nil {
		progress = func(int, int, int) {}
	}
	return &Orchestrator{
		store:    store,
		walker:   NewWalker(log),
		expander: NewExpander(log),
		meta:     meta,
		decide:   decide,
		progress: progress,
		log:      log,
	}
}

// Run scans the tree under root and reconciles every discovered file into
// the catalog. Containers are expanded per the decision collaborator, new
// entries are committed in batches, and already-cataloged filenames are
// skipped. Cancellation is honored at each suspension point; entries
// flushed before cancellation stay committed.
func (o *Orchestrator) Run(ctx context.Context, fsys fs.FS, root string) (Summary, error) {
	if o.scanning {
		return Summary{}, ErrScanInProgress
	}
	o.scanning = true
	defer func() { o.scanning = false }()

	var sum Summary

	files, containers := o.walker.Walk(fsys, root)
	sum.Found = len(files)

	var remembered *bool
	for i, c := range containers {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		if i > 0 && i%containerYield == 0 {
			runtime.Gosched()
		}

		expand := false
		if remembered != nil {
			expand = *remembered
		} else {
			var remember bool
			expand, remember = o.decide.DecideOnContainer(c.Name)
			if remember {
				v := expand
				remembered = &v
			}
		}
		if !expand {
			continue
		}

		cont, err := c.Open()
		if err != nil {
			o.log.Warn("container unreadable, skipping",
				zap.String("path", c.Path), zap.Error(err))
			continue
		}
		recs := o.expander.Expand(cont, c.Path, 0)
		sum.FromContainers += len(recs)
		files = append(files, recs...)
		o.progress(sum.Added, sum.Skipped, sum.FromContainers)
	}

	existing := make(map[string]bool)
	for _, e := range o.store.Entries() {
		existing[e.Filename] = true
	}

	pending := 0
	for _, rec := range files {
		// Raw filename match only: a same-named file from another directory
		// is treated as already cataloged. Longstanding behavior the UI
		// depends on.
		if existing[rec.Name] {
			sum.Skipped++
			o.progress(sum.Added, sum.Skipped, sum.FromContainers)
			continue
		}

		meta := catalog.Metadata{}
		meta.Year, meta.Publisher, meta.BoxArtURL = o.meta(displayNameFor(rec))

		if _, err := o.store.AddEntry(o.addInput(rec), meta, true); err != nil {
			return sum, err
		}
		existing[rec.Name] = true
		sum.Added++
		pending++
		o.progress(sum.Added, sum.Skipped, sum.FromContainers)

		if pending >= commitBatchSize {
			if err := o.flush(); err != nil {
				return sum, err
			}
			pending = 0
			if err := ctx.Err(); err != nil {
				return sum, err
			}
			runtime.Gosched()
		}
	}

	if err := o.flush(); err != nil {
		return sum, err
	}
	return sum, nil
}

// flush commits the catalog, retrying once on a storage fault. The document
// is retained across a failed save, so the retry sees the full batch.
func (o *Orchestrator) flush() error {
	if err := o.store.Commit(); err != nil {
		o.log.Warn("catalog flush failed, retrying", zap.Error(err))
		return o.store.Commit()
	}
	return nil
}

func (o *Orchestrator) addInput(rec FileRecord) catalog.AddInput {
	in := catalog.AddInput{
		Filename:      rec.Name,
		Path:          rec.Path,
		Ext:           rec.Ext,
		Size:          rec.Size,
		ModTime:       rec.ModTime,
		Origin:        rec.Origin,
		ContainerPath: rec.ContainerPath,
		MemberPath:    rec.MemberPath,
	}
	if o.PathPrefix != "" {
		in.Path = filepath.Join(o.PathPrefix, filepath.FromSlash(rec.Path))
		if rec.ContainerPath != "" {
			in.ContainerPath = filepath.Join(o.PathPrefix, filepath.FromSlash(rec.ContainerPath))
		}
	}
	return in
}

func displayNameFor(rec FileRecord) string {
	return naming.DisplayName(rec.Name)
}
