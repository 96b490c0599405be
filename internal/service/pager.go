package service

import (
	"context"
	"time"

	"likesync/internal/domain"
)

type pageFunc func(ctx context.Context, offset int) (*domain.Page, error)

// Pager walks the upstream collection one page at a time from a starting
// offset until upstream reports no further page.
type Pager struct {
	fetch  pageFunc
	offset int
	done   bool
}

func NewPager(fetch pageFunc, offset int) *Pager {
	return &Pager{fetch: fetch, offset: offset}
}

// Next fetches the next page. It returns nil once the collection is exhausted.
func (p *Pager) Next(ctx context.Context) (*domain.Page, error) {
	if p.done {
		return nil, nil
	}

	page, err := p.fetch(ctx, p.offset)
	if err != nil {
		return nil, err
	}

	p.offset += page.Size
	if !page.HasNext || page.Size == 0 {
		p.done = true
	}
	return page, nil
}

// Offset is where the next page starts.
func (p *Pager) Offset() int {
	return p.offset
}

func (p *Pager) Done() bool {
	return p.done
}

// incrementalWindow keeps only tracks added after the watermark and reports
// exhaustion after a run of consecutive older tracks. Upstream lists newest
// first, so the run bounds the scan; a non-monotonic upstream order can make
// it miss tracks.
type incrementalWindow struct {
	watermark   time.Time
	limit       int
	consecutive int
	stopped     bool
}

func newIncrementalWindow(watermark time.Time, limit int) *incrementalWindow {
	return &incrementalWindow{watermark: watermark, limit: max(limit, 1)}
}

func (w *incrementalWindow) filter(tracks []domain.Track) []domain.Track {
	var newer []domain.Track
	for _, t := range tracks {
		if t.AddedAt.After(w.watermark) {
			newer = append(newer, t)
			w.consecutive = 0
			continue
		}
		w.consecutive++
		if w.consecutive >= w.limit {
			w.stopped = true
		}
	}
	return newer
}

func (w *incrementalWindow) exhausted() bool {
	return w.stopped
}
