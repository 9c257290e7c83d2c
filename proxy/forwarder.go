package proxy

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/prognoshealth/vpcproxy/lambdautils"
)

// Forwarder handles invocation events by forwarding them to the backend they
// describe.
//
// Example:
//
//	func main() {
//		logger, _ := lambdautils.NewLogger("info", "json")
//		forwarder := proxy.NewForwarder(proxy.NewHTTPClient(false), logger, &lambdautils.Container{})
//		lambda.Start(forwarder.Handle)
//	}
type Forwarder struct {
	client    HTTPClient
	logger    logrus.FieldLogger
	container *lambdautils.Container
}

// NewForwarder returns a Forwarder sending requests through client. A nil
// container gets a fresh one.
func NewForwarder(client HTTPClient, logger logrus.FieldLogger, container *lambdautils.Container) *Forwarder {
	if container == nil {
		container = &lambdautils.Container{}
	}

	return &Forwarder{
		client:    client,
		logger:    logger,
		container: container,
	}
}

// Handle is the lambda handler. It decodes the raw payload itself so a payload
// that does not fit Event still gets a Pong or a failure envelope. It returns
// a PingResponse for warm up pings, an *Envelope when the backend answered 200
// and a *FailureError otherwise.
func (f *Forwarder) Handle(ctx context.Context, payload json.RawMessage) (interface{}, error) {
	event, err := DecodeEvent(payload)
	return f.serve(ctx, event, err)
}

// HandleEvent is Handle for an already decoded Event.
func (f *Forwarder) HandleEvent(ctx context.Context, event Event) (interface{}, error) {
	return f.serve(ctx, event, nil)
}

func (f *Forwarder) serve(ctx context.Context, event Event, decodeErr error) (interface{}, error) {
	meta := lambdautils.GetLambdaMetaData(ctx)
	containerID := f.container.Claim(meta.RequestID())

	log := f.logger.WithFields(meta.Fields()).WithField("container_id", containerID)
	log.WithField("event", event).Debug("received event")

	if event.IsPing() {
		log.Info("request from pinger")
		return NewPingResponse(), nil
	}

	if decodeErr != nil {
		log.WithError(decodeErr).Error("rejected invocation event")
		return nil, NewFailureError(TransportFailure(), decodeErr)
	}

	if err := event.Validate(); err != nil {
		log.WithError(err).Error("rejected invocation event")
		return nil, NewFailureError(TransportFailure(), err)
	}

	request, err := BuildRequest(event)
	if err != nil {
		log.WithError(err).Error("failed building outbound request")
		return nil, NewFailureError(TransportFailure(), errors.Wrap(ErrTransport, err.Error()))
	}

	envelope, err := f.Forward(ctx, request, log)
	if err != nil {
		return nil, err
	}

	return envelope, nil
}

// Forward sends request and translates the outcome. Any error returned is a
// *FailureError.
func (f *Forwarder) Forward(ctx context.Context, request *OutboundRequest, log logrus.FieldLogger) (*Envelope, error) {
	log = log.WithField("upstream", request.String())
	log.WithField("headers", request.Headers).Debug("sending request")

	if request.Body != nil {
		log.WithField("body", string(request.Body)).Debug("sending request body")
	}

	req, err := request.HTTPRequest(ctx)
	if err != nil {
		return nil, f.transportFailure(log, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, f.transportFailure(log, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, f.transportFailure(log, errors.Wrap(err, "failed reading response body"))
	}

	envelope, err := Translate(resp.StatusCode, resp.Header, body)
	if err != nil {
		entry := log.WithField("status", resp.StatusCode).WithField("body", string(body))

		if errors.Is(err, ErrMalformedUpstreamBody) {
			entry.Error("upstream returned malformed body")
		} else {
			entry.Warn("upstream returned failure")
		}

		return nil, err
	}

	log.WithField("output", envelope).Debug("forwarded request")
	return envelope, nil
}

func (f *Forwarder) transportFailure(log logrus.FieldLogger, err error) error {
	log.WithError(err).Error("problem with request")
	return NewFailureError(TransportFailure(), errors.Wrap(ErrTransport, err.Error()))
}

// Translate maps a completed backend exchange onto the handler result. A 200
// with a json body yields an Envelope. Other statuses report the raw body text
// in a Failure, and a 200 that is not json is reported as a 502.
func Translate(status int, header http.Header, body []byte) (*Envelope, error) {
	if status != http.StatusOK {
		failure := Failure{Status: status, BodyJSON: string(body)}
		return nil, NewFailureError(failure, errors.Wrapf(ErrUpstreamStatus, "status %d", status))
	}

	if !json.Valid(body) {
		failure := Failure{Status: http.StatusBadGateway, BodyJSON: string(body)}
		return nil, NewFailureError(failure, ErrMalformedUpstreamBody)
	}

	return &Envelope{
		Status:   status,
		BodyJSON: json.RawMessage(body),
		Headers:  flattenHeaders(header),
	}, nil
}
