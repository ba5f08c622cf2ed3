package feed

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/korvo-dev/echofeed/backend/internal/hackernews"
	"github.com/korvo-dev/echofeed/backend/internal/models"
)

const (
	DefaultWorkers      = 16
	DefaultFetchTimeout = 10 * time.Second
)

// Result is one assembled feed: the surviving posts in rank order plus the
// number of items dropped because their detail fetch failed.
type Result struct {
	Posts   []models.Post
	Skipped int
}

// Aggregator fans out detail fetches for the ranked id list, filters the
// noise and assembles the feed in rank order.
type Aggregator struct {
	source       hackernews.Client
	workers      int
	fetchTimeout time.Duration
	log          zerolog.Logger
}

// NewAggregator creates an Aggregator over the given item source.
func NewAggregator(source hackernews.Client, workers int, fetchTimeout time.Duration, log zerolog.Logger) *Aggregator {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if fetchTimeout <= 0 {
		fetchTimeout = DefaultFetchTimeout
	}
	return &Aggregator{
		source:       source,
		workers:      workers,
		fetchTimeout: fetchTimeout,
		log:          log,
	}
}

// Aggregate lists the ranked ids and fetches every detail record through a
// bounded worker pool, each call under its own timeout. A failed detail
// fetch drops that item and counts it as skipped; only a failed id listing
// fails the whole aggregation. Output order is the external rank order
// regardless of completion order.
func (a *Aggregator) Aggregate(ctx context.Context) (*Result, error) {
	ids, err := a.source.BestStoryIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing ranked ids: %w", err)
	}

	// Results land in a pre-sized buffer indexed by rank; a nil slot means
	// the fetch failed.
	fetched := make([]*models.Post, len(ids))
	var skipped atomic.Int64

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < a.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				post, err := a.fetchOne(ctx, ids[idx])
				if err != nil {
					skipped.Add(1)
					a.log.Warn().Int64("id", ids[idx]).Err(err).Msg("dropping feed item")
					continue
				}
				fetched[idx] = post
			}
		}()
	}

	for idx := range ids {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	posts := make([]models.Post, 0, len(ids))
	for _, post := range fetched {
		if post == nil {
			continue
		}
		if IsNoise(post.Title) {
			continue
		}
		posts = append(posts, *post)
	}

	return &Result{Posts: posts, Skipped: int(skipped.Load())}, nil
}

func (a *Aggregator) fetchOne(ctx context.Context, id int64) (*models.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, a.fetchTimeout)
	defer cancel()

	item, err := a.source.Item(ctx, id)
	if err != nil {
		return nil, err
	}
	post := item.ToPost()
	return &post, nil
}

// IsNoise reports whether a title marks an editorial/meta posting that the
// feed drops.
func IsNoise(title string) bool {
	return strings.Contains(title, "HN: ")
}
