package usecase

import (
	"context"
	"sync"

	"storefront/internal/domain"

	"github.com/sirupsen/logrus"
)

// CartUseCase is the single-writer cart aggregate. Every operation is
// total: unknown ids are silent no-ops and quantities are floored at 1,
// so there is no error path.
type CartUseCase interface {
	AddItem(product domain.Product, quantity int)
	RemoveItem(productID int)
	UpdateQuantity(productID, quantity int)
	TotalItems() int
	TotalPrice() float64
	Lines() []domain.CartLine
	Clear()
}

type cartUseCase struct {
	mu        sync.Mutex
	lines     []domain.CartLine
	store     domain.CartSnapshotStore
	storeName string
	log       *logrus.Logger
}

// NewCartUseCase creates an empty cart, or restores it from the
// snapshot store when one is configured. A nil store disables
// persistence entirely.
func NewCartUseCase(store domain.CartSnapshotStore, storeName string, logger *logrus.Logger) CartUseCase {
	uc := &cartUseCase{
		store:     store,
		storeName: storeName,
		log:       logger,
	}
	if store != nil {
		snapshot, ok, err := store.Load(context.Background(), storeName)
		if err != nil {
			logger.Warnf("Cart: Failed to restore snapshot '%s', starting empty: %v", storeName, err)
		} else if ok {
			uc.lines = sanitizeLines(snapshot.Lines)
			logger.Infof("Cart: Restored %d lines from snapshot '%s'", len(uc.lines), storeName)
		}
	}
	return uc
}

// sanitizeLines re-applies the aggregate invariants to externally
// stored data: one line per product id, quantity at least 1.
func sanitizeLines(lines []domain.CartLine) []domain.CartLine {
	seen := make(map[int]int, len(lines))
	out := make([]domain.CartLine, 0, len(lines))
	for _, line := range lines {
		if idx, ok := seen[line.ID]; ok {
			out[idx].Quantity += max(1, line.Quantity)
			continue
		}
		if line.Quantity < 1 {
			line.Quantity = 1
		}
		seen[line.ID] = len(out)
		out = append(out, line)
	}
	return out
}

func (uc *cartUseCase) AddItem(product domain.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	uc.mu.Lock()
	for i := range uc.lines {
		if uc.lines[i].ID == product.ID {
			uc.lines[i].Quantity += quantity
			uc.mu.Unlock()
			uc.log.Infof("Cart: Incremented quantity for product ID %d by %d", product.ID, quantity)
			uc.persist()
			return
		}
	}
	uc.lines = append(uc.lines, domain.CartLine{Product: product, Quantity: quantity})
	uc.mu.Unlock()

	uc.log.Infof("Cart: Added product ID %d ('%s') with quantity %d", product.ID, product.Title, quantity)
	uc.persist()
}

func (uc *cartUseCase) RemoveItem(productID int) {
	uc.mu.Lock()
	removed := false
	for i := range uc.lines {
		if uc.lines[i].ID == productID {
			uc.lines = append(uc.lines[:i], uc.lines[i+1:]...)
			removed = true
			break
		}
	}
	uc.mu.Unlock()

	if !removed {
		uc.log.Debugf("Cart: RemoveItem for absent product ID %d, ignoring", productID)
		return
	}
	uc.log.Infof("Cart: Removed product ID %d", productID)
	uc.persist()
}

func (uc *cartUseCase) UpdateQuantity(productID, quantity int) {
	if quantity < 1 {
		uc.log.Warnf("Cart: Non-positive quantity %d for product ID %d, clamping to 1", quantity, productID)
		quantity = 1
	}

	uc.mu.Lock()
	updated := false
	for i := range uc.lines {
		if uc.lines[i].ID == productID {
			uc.lines[i].Quantity = quantity
			updated = true
			break
		}
	}
	uc.mu.Unlock()

	if !updated {
		uc.log.Debugf("Cart: UpdateQuantity for absent product ID %d, ignoring", productID)
		return
	}
	uc.log.Infof("Cart: Set quantity for product ID %d to %d", productID, quantity)
	uc.persist()
}

func (uc *cartUseCase) TotalItems() int {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	total := 0
	for _, line := range uc.lines {
		total += line.Quantity
	}
	return total
}

// TotalPrice sums price times quantity at full precision; rounding for
// display is the delivery layer's concern.
func (uc *cartUseCase) TotalPrice() float64 {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	total := 0.0
	for _, line := range uc.lines {
		total += line.Price * float64(line.Quantity)
	}
	return total
}

func (uc *cartUseCase) Lines() []domain.CartLine {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	out := make([]domain.CartLine, len(uc.lines))
	copy(out, uc.lines)
	return out
}

func (uc *cartUseCase) Clear() {
	uc.mu.Lock()
	uc.lines = nil
	uc.mu.Unlock()
	uc.log.Info("Cart: Cleared")
	uc.persist()
}

// persist saves the current lines best-effort; a failed save is only
// logged since cart operations never fail.
func (uc *cartUseCase) persist() {
	if uc.store == nil {
		return
	}
	snapshot := domain.CartSnapshot{Lines: uc.Lines()}
	if err := uc.store.Save(context.Background(), uc.storeName, snapshot); err != nil {
		uc.log.Errorf("Cart: Failed to save snapshot '%s': %v", uc.storeName, err)
	}
}
