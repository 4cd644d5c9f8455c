package usecase

import (
	"context"
	"fmt"
	"sync"

	"storefront/internal/domain"

	"github.com/sirupsen/logrus"
)

// Pager accumulates pages from the catalog source into one ordered
// sequence, deduplicated by product id. The cursor is the number of
// pages loaded; at most one fetch is in flight at a time, so pages are
// always applied in request order.
type Pager interface {
	Seed(page domain.ProductPage)
	FetchNextPage(ctx context.Context) error
	HasMore() bool
	Fetching() bool
	Products() []domain.Product
	Total() int
	Loaded() int
	Reset()
}

type pager struct {
	source   domain.CatalogSource
	pageSize int
	log      *logrus.Logger

	mu          sync.Mutex
	products    []domain.Product
	seen        map[int]bool
	total       int
	pagesLoaded int
	fetching    bool
	generation  int
}

func NewPager(source domain.CatalogSource, pageSize int, logger *logrus.Logger) Pager {
	return &pager{
		source:   source,
		pageSize: pageSize,
		seen:     make(map[int]bool),
		log:      logger,
	}
}

// Seed installs a pre-fetched first page so the initial render does
// not cost a redundant fetch. Ignored unless the pager is at its
// starting state.
func (p *pager) Seed(page domain.ProductPage) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pagesLoaded != 0 || p.fetching {
		p.log.Warn("Pager: Seed ignored, pages already loaded")
		return
	}
	p.applyLocked(page)
	p.log.Infof("Pager: Seeded with %d products (total %d)", len(page.Products), page.Total)
}

// FetchNextPage advances the cursor by one page. It is a silent no-op
// when no more pages exist or a fetch is already in flight; a failed
// fetch surfaces the error and leaves the accumulated state unchanged.
func (p *pager) FetchNextPage(ctx context.Context) error {
	p.mu.Lock()
	if !p.hasMoreLocked() {
		p.mu.Unlock()
		p.log.Debug("Pager: FetchNextPage after termination, ignoring")
		return nil
	}
	if p.fetching {
		p.mu.Unlock()
		p.log.Debug("Pager: Fetch already in flight, dropping duplicate request")
		return nil
	}
	p.fetching = true
	skip := p.pagesLoaded * p.pageSize
	generation := p.generation
	p.mu.Unlock()

	page, err := p.source.List(ctx, skip, p.pageSize)

	p.mu.Lock()
	defer p.mu.Unlock()
	if generation != p.generation {
		// The pager was reset while this fetch was in flight; the
		// result belongs to a discarded session.
		p.log.Warnf("Pager: Dropping stale page for skip=%d from a previous session", skip)
		return nil
	}
	p.fetching = false
	if err != nil {
		p.log.Errorf("Pager: Fetch for skip=%d failed: %v", skip, err)
		return fmt.Errorf("failed to fetch next page: %w", err)
	}
	p.applyLocked(page)
	p.log.Infof("Pager: Applied page %d, accumulated %d of %d products", p.pagesLoaded, len(p.products), p.total)
	return nil
}

func (p *pager) applyLocked(page domain.ProductPage) {
	for _, product := range page.Products {
		if p.seen[product.ID] {
			continue
		}
		p.seen[product.ID] = true
		p.products = append(p.products, product)
	}
	p.total = page.Total
	p.pagesLoaded++
}

func (p *pager) hasMoreLocked() bool {
	if p.pagesLoaded == 0 {
		return true
	}
	return p.pagesLoaded*p.pageSize < p.total
}

func (p *pager) HasMore() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hasMoreLocked()
}

func (p *pager) Fetching() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fetching
}

func (p *pager) Products() []domain.Product {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.Product, len(p.products))
	copy(out, p.products)
	return out
}

func (p *pager) Total() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.total
}

func (p *pager) Loaded() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.products)
}

// Reset returns the pager to its starting state; a terminal pager
// becomes fetchable again.
func (p *pager) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.products = nil
	p.seen = make(map[int]bool)
	p.total = 0
	p.pagesLoaded = 0
	p.fetching = false
	p.generation++
	p.log.Info("Pager: Reset")
}
