package models

import "time"

// OrderStatus represents the possible states of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusFulfilled OrderStatus = "fulfilled"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// statusRank orders the lifecycle; transitions only move to a higher rank.
// Cancellation ranks above everything so any live order can still be
// cancelled, and no order leaves the cancelled state.
var statusRank = map[OrderStatus]int{
	OrderStatusPending:   1,
	OrderStatusConfirmed: 2,
	OrderStatusFulfilled: 3,
	OrderStatusDelivered: 4,
	OrderStatusCancelled: 5,
}

// IsValid reports whether the status is one of the known statuses
func (s OrderStatus) IsValid() bool {
	_, ok := statusRank[s]
	return ok
}

// CanTransitionTo reports whether the lifecycle allows moving from the
// current status to next. There is no defined back-transition.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	from, ok := statusRank[s]
	if !ok {
		return false
	}
	to, ok := statusRank[next]
	if !ok {
		return false
	}
	return to > from
}

// Order represents a lunch order against a daily menu
type Order struct {
	ID           string      `gorm:"primary_key" json:"id"`
	UserID       string      `json:"userId,omitempty"`
	GuestName    string      `json:"guestName,omitempty"`
	HostContact  string      `json:"hostContact,omitempty"`
	MenuDate     string      `json:"menuDate"` // YYYY-MM-DD, keys the DailyMenu
	ItemIDs      StringSlice `gorm:"type:text" json:"itemIds"`
	Instructions string      `json:"instructions,omitempty"`
	Status       OrderStatus `json:"status"`
	CompanyID    string      `json:"companyId,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// TableName sets the table name for Order
func (Order) TableName() string {
	return "orders"
}

// IsGuestOrder reports whether the order came through the guest portal
func (o *Order) IsGuestOrder() bool {
	return o.UserID == "" && o.GuestName != ""
}
