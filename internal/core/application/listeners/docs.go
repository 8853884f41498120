// Package listeners turns asynchronous responses from the restaurant and payment
// services into order commands.
//
// Brokers deliver at least once, so every listener tolerates replays. A message id
// seen before is skipped without touching the database. A replay that reaches the
// order anyway is recognized by the status it left the order in: the command is
// rejected as an illegal transition while the order already sits in the status the
// message would have produced. Such replays are acknowledged; every other error is
// returned so the transport redelivers or dead-letters the message.
package listeners
