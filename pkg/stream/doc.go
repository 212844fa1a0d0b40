// Package stream implements the real-time event stream of the Wataki platform.
//
// A Stream owns one websocket connection at a time to the instance stream
// endpoint, decodes every inbound frame into an Envelope and republishes it to
// the listeners registered for the envelope's kind. Lifecycle notifications
// (open, close, error) share the same dispatch surface as server events, so
// callers can wait for the stream to open, trigger a control-plane action and
// then wait for the correlated event:
//
//	s := stream.New(address)
//	defer s.Close()
//
//	if err := s.WaitOpen(ctx); err != nil {
//	    return err
//	}
//	// ... connect the instance through the control plane ...
//	ev, err := s.Await(ctx, stream.KindConnectionUpdate, func(ev stream.Event) bool {
//	    return true
//	})
//
// On abnormal closure the stream reconnects after a fixed interval until the
// configured number of attempts is used up, at which point a single error
// event wrapping ErrMaxReconnectAttempts is emitted and the stream stops.
package stream
