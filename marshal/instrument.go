package marshal

import (
	"context"

	"tgram/metrics"
	"tgram/types"
)

type instrument struct {
	next     Caller
	metrics  metrics.Metrics
	inFlight metrics.Gauge
}

// Instrument decorates the caller with metrics: the "calls" counter labeled
// with method and result (ok, remote or transport) and the "in_flight" gauge.
func Instrument(next Caller, m metrics.Metrics) Caller {
	if m == nil {
		m = metrics.Dummy
	}

	return &instrument{
		next:     next,
		metrics:  m,
		inFlight: m.Gauge("in_flight", nil),
	}
}

func (i *instrument) Call(ctx context.Context, method string, args Args) (types.RawMessage, error) {
	i.inFlight.Inc()
	defer i.inFlight.Dec()

	result, err := i.next.Call(ctx, method, args)
	i.metrics.Counter("calls", metrics.Labels{
		"method": method,
		"result": Result(err),
	}).Inc()

	return result, err
}

// Result classifies the call outcome.
func Result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case IsTransport(err):
		return "transport"
	default:
		if _, ok := AsRemote(err); ok {
			return "remote"
		}

		return "error"
	}
}
