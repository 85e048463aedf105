package store

import (
	"context"
	"fmt"
	"time"

	"lunchlink/internal/models"
)

// OrderByID returns an order by id
func (s *Store) OrderByID(id string) (models.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	return o, ok
}

// Orders returns every cached order for a company
func (s *Store) Orders(companyID string) []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	orders := make([]models.Order, 0, len(s.orders))
	for _, o := range s.orders {
		if o.CompanyID == companyID {
			orders = append(orders, o)
		}
	}
	return orders
}

// OrdersForUser returns a user's own orders
func (s *Store) OrdersForUser(userID string) []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	orders := make([]models.Order, 0)
	for _, o := range s.orders {
		if o.UserID == userID {
			orders = append(orders, o)
		}
	}
	return orders
}

// OrdersForDate returns a company's orders against a menu date
func (s *Store) OrdersForDate(date, companyID string) []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	orders := make([]models.Order, 0)
	for _, o := range s.orders {
		if o.MenuDate == date && o.CompanyID == companyID {
			orders = append(orders, o)
		}
	}
	return orders
}

// PlaceOrder creates a new order in the pending state
func (s *Store) PlaceOrder(ctx context.Context, order models.Order) models.Order {
	s.mu.Lock()
	order.ID = newID("order")
	order.Status = models.OrderStatusPending
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	s.orders[order.ID] = order
	s.mu.Unlock()

	logWriteErr("order", order.ID, s.backend.SaveOrder(ctx, &order))
	return order
}

// UpdateOrderStatus advances an order through its lifecycle. Transitions
// only move forward; anything else is rejected.
func (s *Store) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) (models.Order, error) {
	s.mu.Lock()
	order, ok := s.orders[id]
	if !ok {
		s.mu.Unlock()
		return models.Order{}, fmt.Errorf("order %s not found", id)
	}
	if !order.Status.CanTransitionTo(status) {
		s.mu.Unlock()
		return models.Order{}, fmt.Errorf("order %s cannot move from %s to %s", id, order.Status, status)
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	s.orders[id] = order
	s.mu.Unlock()

	logWriteErr("order", id, s.backend.SaveOrder(ctx, &order))
	return order, nil
}

// MarkBatchDelivered transitions the listed orders to delivered. The
// local update is applied as one batch; persistence happens as N
// sequential independent writes with no atomicity, so a partial failure
// leaves local and remote state diverged until the next full load.
func (s *Store) MarkBatchDelivered(ctx context.Context, orderIDs []string) []models.Order {
	s.mu.Lock()
	updated := make([]models.Order, 0, len(orderIDs))
	for _, id := range orderIDs {
		order, ok := s.orders[id]
		if !ok {
			continue
		}
		if !order.Status.CanTransitionTo(models.OrderStatusDelivered) {
			continue
		}
		order.Status = models.OrderStatusDelivered
		order.UpdatedAt = time.Now()
		s.orders[id] = order
		updated = append(updated, order)
	}
	s.mu.Unlock()

	for i := range updated {
		logWriteErr("order", updated[i].ID, s.backend.SaveOrder(ctx, &updated[i]))
	}
	return updated
}
