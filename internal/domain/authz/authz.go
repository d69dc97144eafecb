// Package authz holds the pure authorization predicates evaluated before
// every state-changing or resource-read operation. Every predicate receives
// the resolved Actor explicitly — nothing here reads ambient request state.
package authz

import "github.com/turbocafe/turbocafe-api/internal/domain/entity"

// Actor is the authenticated identity a request acts as, resolved by the
// auth middleware from the token claims.
type Actor struct {
	ID        string
	Role      entity.Role
	Superuser bool
}

// IsAdmin reports admin privileges: the admin role or the superuser flag.
func (a Actor) IsAdmin() bool {
	return a.Role == entity.RoleAdmin || a.Superuser
}

// CanManageMenu reports whether the actor may create menu items.
func CanManageMenu(a Actor) bool {
	return a.Role == entity.RoleVendor
}

// OwnsMenuItem reports whether the actor may update, delete or toggle the
// item. Only the owning vendor qualifies; admins deliberately do not.
func OwnsMenuItem(a Actor, item *entity.MenuItem) bool {
	return a.Role == entity.RoleVendor && a.ID == item.VendorID
}

// CanPlaceOrder reports whether the actor may create orders.
func CanPlaceOrder(a Actor) bool {
	return a.Role == entity.RoleStudent
}

// CanAdvanceOrder reports whether the actor may drive the order's status
// forward. Only the vendor the order was placed against qualifies.
func CanAdvanceOrder(a Actor, order *entity.Order) bool {
	return a.Role == entity.RoleVendor && a.ID == order.VendorID
}

// CanCancelOrder reports whether the actor may request cancellation. Only
// the placing user qualifies; whether the order is still cancellable is the
// state machine's decision, kept separate so denial and terminal-state
// failures stay distinguishable.
func CanCancelOrder(a Actor, order *entity.Order) bool {
	return a.ID == order.UserID
}

// CanViewOrder reports whether the actor may read the order: the placing
// user, the order's vendor, or an admin.
func CanViewOrder(a Actor, order *entity.Order) bool {
	return a.ID == order.UserID || a.ID == order.VendorID || a.IsAdmin()
}

// ListScope returns the ownership filter a collection query must carry for
// this actor. Admins see everything; students see their own orders; vendors
// see orders placed against them. The scope is applied inside the SQL query,
// never as a post-filter, so counts do not leak.
func ListScope(a Actor) (userID, vendorID string) {
	if a.IsAdmin() {
		return "", ""
	}
	switch a.Role {
	case entity.RoleVendor:
		return "", a.ID
	case entity.RoleStudent:
		return a.ID, ""
	default:
		// Unknown roles never reach here for registered users; scope to the
		// actor's own orders as the conservative fallback.
		return a.ID, ""
	}
}
