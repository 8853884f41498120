package listeners

import (
	"errors"
	"slices"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/order"

	lru "github.com/hashicorp/golang-lru/v2"
)

// processedMessages remembers the ids of the most recently handled messages.
type processedMessages struct {
	cache *lru.Cache[string, struct{}]
}

func newProcessedMessages(size int) (*processedMessages, error) {
	cache, err := lru.New[string, struct{}](size)
	if err != nil {
		return nil, err
	}
	return &processedMessages{cache: cache}, nil
}

func (p *processedMessages) Seen(id string) bool {
	return id != "" && p.cache.Contains(id)
}

func (p *processedMessages) Add(id string) {
	if id != "" {
		p.cache.Add(id, struct{}{})
	}
}

// alreadyIn reports whether err is a rejected transition of an order that sits in
// one of the given statuses.
func alreadyIn(err error, statuses ...order.Status) (order.Status, bool) {
	var rejected *commands.TransitionRejectedError
	if !errors.As(err, &rejected) || !errors.Is(err, order.ErrStatusTransitionIsNotAllowed) {
		return order.Unknown, false
	}
	return rejected.Status, slices.Contains(statuses, rejected.Status)
}
