package modes

import (
	"context"

	"github.com/google/uuid"

	"github.com/dshills/quill/internal/event"
	"github.com/dshills/quill/internal/index"
)

// Open finds files under the workspace root. The index is built in the
// background; until it arrives the mode accepts a query but has no results.
type Open struct {
	SearchSelect[string]

	// Token identifies this Open mode instance. Index completions carrying
	// another token belong to an earlier instance and are ignored.
	Token uuid.UUID

	root       string
	exclusions []string
	index      *index.Index
}

// NewOpen returns Open mode for root. Call Start to begin indexing.
func NewOpen(root string, exclusions []string, maxResults int) *Open {
	return &Open{
		SearchSelect: newSearchSelect[string](nil, identity, maxResults),
		Token:        uuid.New(),
		root:         root,
		exclusions:   exclusions,
	}
}

func (*Open) Kind() Kind { return KindOpen }
func (*Open) mode()      {}

// Root returns the directory being indexed.
func (o *Open) Root() string { return o.root }

// Start builds the index on a new goroutine and sends an
// OpenModeIndexComplete event when done. A failed walk delivers an empty
// index along with the error. Indexing stops early if the queue closes.
func (o *Open) Start(sender event.Sender) {
	root, exclusions, token := o.root, o.exclusions, o.Token

	go func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			select {
			case <-sender.Done():
				cancel()
			case <-ctx.Done():
			}
		}()

		idx, err := index.Build(ctx, root, exclusions)
		if err != nil {
			idx = index.New(root, nil)
		}
		sender.Send(event.OpenModeIndexComplete{Token: token, Index: idx, Err: err})
	}()
}

// Indexing reports whether the index has not arrived yet.
func (o *Open) Indexing() bool { return o.index == nil }

// SetIndex installs a completed index.
func (o *Open) SetIndex(idx *index.Index) {
	o.index = idx
}

// Search refreshes results from the index using the current query.
func (o *Open) Search() {
	if o.index == nil {
		o.setResults(nil)
		return
	}
	o.setResults(o.index.Find(o.query, o.maxResults))
}

// Message reports indexing progress.
func (o *Open) Message() string {
	switch {
	case o.index == nil:
		return "Indexing files..."
	case len(o.results) == 0:
		return "No matching files found."
	default:
		return ""
	}
}
