// Package outboxrepo stores messages that wait to be relayed to the message bus.
//
// Messages are added in the same transaction as the order change that produced
// them. The relay later reads them back in creation order:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	pending, err := uow.OutboxRepository().GetPending(ctx, 50)
//	if err != nil {
//	    return err
//	}
//	for _, m := range pending {
//	    // publish, then m.MarkSent(now) or m.MarkFailed(err)
//	    if err = uow.OutboxRepository().Update(ctx, m); err != nil {
//	        return err
//	    }
//	}
//	return uow.Commit(ctx)
//
// # Locking
//
// GetPending selects with FOR UPDATE SKIP LOCKED, so concurrent relays never pick
// the same row. The locks last until the surrounding transaction ends; outside a
// transaction they are released right after the select.
//
// # Retention
//
// Sent messages stay in the table until DeleteSentBefore removes them. Pending
// messages are never deleted.
package outboxrepo
