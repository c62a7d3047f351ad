package pubsub

import (
	"encoding/json"

	"ridehail/internal/domain/service"

	"github.com/pkg/errors"
)

// accountMessage is an AccountEvent encoded for the wire. Events of one account
// share an ordering key so consumers see registration before revocation.
type accountMessage struct {
	data        []byte
	attributes  map[string]string
	orderingKey string
}

func encodeEvent(event *service.AccountEvent) (*accountMessage, error) {
	if event == nil {
		return nil, errors.New("account event is nil")
	}

	data, err := json.Marshal(event)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode account event")
	}

	attributes := map[string]string{
		"event_type": event.Type,
		"account_id": event.AccountID,
		"role":       event.Role,
	}
	if event.RequestID != "" {
		attributes["request_id"] = event.RequestID
	}

	return &accountMessage{
		data:        data,
		attributes:  attributes,
		orderingKey: event.AccountID,
	}, nil
}
