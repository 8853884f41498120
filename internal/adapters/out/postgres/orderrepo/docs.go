// Package orderrepo persists order aggregates in the orders and order_items tables.
//
// # Tables
//
//   - orders: one row per order with status, failure messages (text[]) and a
//     version column used for optimistic locking
//   - order_items: one row per item, keyed by (order_id, id) where id runs 1..N
//
// # Optimistic locking
//
// Get and GetByTrackingID record the version they read with the unit of work.
// Update writes only when the row is still at that version and bumps it by one.
// A row that moved on, a serialization failure (SQLSTATE 40001) or a deadlock
// (40P01) is reported as errs.VersionIsInvalidError, which lets the caller run
// the whole command again.
//
// Example:
//
//	o, err := uow.OrderRepository().Get(ctx, orderID)
//	if err != nil {
//	    return err
//	}
//	if err = o.Pay(); err != nil {
//	    return err
//	}
//	if err = uow.OrderRepository().Update(ctx, o); errors.Is(err, errs.ErrVersionIsInvalid) {
//	    // another consumer changed the order first; retry from Get
//	}
//
// An order that was neither loaded nor added through the same unit of work cannot
// be updated (ErrOrderIsNotTracked). Items are written once by Add and never
// rewritten.
package orderrepo
