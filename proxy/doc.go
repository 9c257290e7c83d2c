// Package proxy provides a forwarding handler for aws lambda functions that sit
// between an aws api gateway (rest) integration and an http backend only
// reachable from inside a vpc. The gateway mapping template hands the lambda a
// structured Event describing the target; the handler resolves the path,
// issues a single outbound request and translates the outcome into an
// Envelope the integration response templates can read.
//
// The forwarder is designed to be as simplistic as possible. It never retries
// and keeps no state between invocations besides the warm container id used
// for logging.
package proxy
