package pubsub

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	deliverycontext "ridehail/internal/delivery/context"
	"ridehail/internal/domain/constants"
	"ridehail/internal/domain/lifecycle"
	"ridehail/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// PushMessage is the JSON envelope Google Pub/Sub uses for push subscriptions.
// The local publisher posts the same shape so consumers can be developed offline.
type PushMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
		OrderingKey string            `json:"orderingKey,omitempty"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// localPublisher posts account events to an HTTP endpoint.
type localPublisher struct {
	endpoint string
	client   *http.Client
	logger   *slog.Logger
	now      func() time.Time
}

// NewLocalHTTPPublisher creates a publisher that pushes to endpoint.
func NewLocalHTTPPublisher(endpoint string, logger *slog.Logger) service.EventPublisher {
	return &localPublisher{
		endpoint: endpoint,
		client:   &http.Client{Timeout: lifecycle.DefaultTimeout},
		logger:   logger,
		now:      time.Now,
	}
}

func (p *localPublisher) PublishAccountEvent(ctx context.Context, event *service.AccountEvent) error {
	msg, err := encodeEvent(event)
	if err != nil {
		return err
	}

	var envelope PushMessage
	envelope.Subscription = constants.LocalAccountSubscription
	envelope.Message.Data = base64.StdEncoding.EncodeToString(msg.data)
	envelope.Message.Attributes = msg.attributes
	envelope.Message.MessageID = event.EventID
	envelope.Message.PublishTime = p.now().UTC().Format(time.RFC3339Nano)
	envelope.Message.OrderingKey = msg.orderingKey

	body, err := json.Marshal(envelope)
	if err != nil {
		return errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if event.RequestID != "" {
		req.Header.Set(echo.HeaderXRequestID, event.RequestID)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "failed to push %s", event.Type)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return errors.Errorf("push endpoint returned status %d", resp.StatusCode)
	}

	deliverycontext.LoggerFromContext(ctx, p.logger).Debug("Account event pushed",
		slog.String("endpoint", p.endpoint),
		slog.String("event_type", event.Type),
		slog.String("event_id", event.EventID),
	)

	return nil
}

func (p *localPublisher) Close() error {
	p.client.CloseIdleConnections()

	return nil
}
