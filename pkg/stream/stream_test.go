//go:build unit || !integration

package stream_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/suite"

	"github.com/wataki/wataki-go/pkg/logger"
	"github.com/wataki/wataki-go/pkg/models"
	"github.com/wataki/wataki-go/pkg/stream"
)

const (
	testAddress = "ws://localhost:1234/v1/instances/inst-1/stream?api_key=secret"
	waitFor     = 2 * time.Second
	tick        = 5 * time.Millisecond
	interval    = 10 * time.Millisecond
)

var allKinds = []stream.Kind{
	stream.KindOpen,
	stream.KindClose,
	stream.KindError,
	stream.KindMessageReceived,
	stream.KindMessageStatus,
	stream.KindConnectionUpdate,
	stream.KindQRUpdated,
}

type StreamSuite struct {
	suite.Suite
	clock  *clock.Mock
	dialer *fakeDialer
	rec    *recorder
}

func TestStreamSuite(t *testing.T) {
	suite.Run(t, new(StreamSuite))
}

func (s *StreamSuite) SetupTest() {
	logger.ConfigureTestLogging(s.T())
	s.clock = clock.NewMock()
	s.dialer = newFakeDialer()
	s.rec = &recorder{}
}

func (s *StreamSuite) newStream(policy stream.Policy, extra ...stream.Option) *stream.Stream {
	opts := append([]stream.Option{
		stream.WithDialer(s.dialer),
		stream.WithClock(s.clock),
		stream.WithPolicy(policy),
	}, s.rec.options(allKinds...)...)
	opts = append(opts, extra...)
	st := stream.New(testAddress, opts...)
	s.T().Cleanup(func() { _ = st.Close() })
	return st
}

// advanceUntilDials moves the mock clock forward until the dialer has seen n
// dials. The reconnect timer is armed asynchronously, so a single Add could
// land before it exists.
func (s *StreamSuite) advanceUntilDials(n int) {
	s.Require().Eventually(func() bool {
		s.clock.Add(interval)
		return s.dialer.dialCount() >= n
	}, waitFor, tick)
}

func (s *StreamSuite) waitForKinds(kinds ...stream.Kind) {
	s.Require().Eventually(func() bool {
		return len(s.rec.all()) >= len(kinds)
	}, waitFor, tick, "got %v", s.rec.kinds())
	s.Require().Equal(kinds, s.rec.kinds())
}

func (s *StreamSuite) openStream() (*stream.Stream, *fakeConn) {
	conn := newFakeConn()
	s.dialer.succeed(conn)
	st := s.newStream(stream.Policy{Reconnect: true, Interval: interval, MaxAttempts: 3})
	s.Require().NoError(st.WaitOpen(context.Background()))
	return st, conn
}

func (s *StreamSuite) TestConnectsImmediatelyToAddress() {
	st, _ := s.openStream()
	s.Equal(stream.StateOpen, st.State())
	s.Equal(1, s.dialer.dialCount())
	s.Equal([]string{testAddress}, s.dialer.addresses)
	s.waitForKinds(stream.KindOpen)
}

func (s *StreamSuite) TestMaxReconnectAttempts() {
	refused := errors.New("connection refused")
	for i := 0; i < 3; i++ {
		s.dialer.refuse(refused)
	}
	st := s.newStream(stream.Policy{Reconnect: true, Interval: interval, MaxAttempts: 2})

	s.waitForKinds(stream.KindClose)
	s.advanceUntilDials(2)
	s.waitForKinds(stream.KindClose, stream.KindClose, stream.KindError)

	events := s.rec.all()
	s.Equal(stream.CloseAbnormalClosure, events[0].Code)
	s.Contains(events[0].Reason, "connection refused")
	s.ErrorIs(events[2].Err, stream.ErrMaxReconnectAttempts)
	s.EqualError(events[2].Err, "max reconnect attempts (2) reached")

	<-st.Done()
	s.ErrorIs(st.Err(), stream.ErrMaxReconnectAttempts)
	s.Equal(stream.StateClosed, st.State())

	// no third attempt, ever
	s.clock.Add(time.Hour)
	s.Never(func() bool { return s.dialer.dialCount() > 2 }, 50*time.Millisecond, tick)
	s.Len(s.rec.all(), 3)
}

func (s *StreamSuite) TestReconnectsBelowMaxAttempts() {
	s.dialer.refuse(errors.New("refused"))
	s.dialer.refuse(errors.New("refused"))
	conn := newFakeConn()
	s.dialer.succeed(conn)
	st := s.newStream(stream.Policy{Reconnect: true, Interval: interval, MaxAttempts: 3})

	s.advanceUntilDials(3)
	s.Require().NoError(st.WaitOpen(context.Background()))
	s.waitForKinds(stream.KindClose, stream.KindClose, stream.KindOpen)
}

func (s *StreamSuite) TestOpenResetsAttempts() {
	s.dialer.refuse(errors.New("refused"))
	conn := newFakeConn()
	s.dialer.succeed(conn)
	s.dialer.refuse(errors.New("refused"))
	st := s.newStream(stream.Policy{Reconnect: true, Interval: interval, MaxAttempts: 2})

	s.advanceUntilDials(2)
	s.Require().NoError(st.WaitOpen(context.Background()))
	conn.serverClose(stream.CloseGoingAway, "restarting")

	// the closure after a successful open counts as the first attempt again
	s.waitForKinds(stream.KindClose, stream.KindOpen, stream.KindClose)
	s.advanceUntilDials(3)
	s.waitForKinds(stream.KindClose, stream.KindOpen, stream.KindClose, stream.KindClose, stream.KindError)

	events := s.rec.all()
	s.Equal(stream.CloseGoingAway, events[2].Code)
	s.Equal("restarting", events[2].Reason)
	s.True(conn.isClosed())
}

func (s *StreamSuite) TestMalformedFrameIsNotFatal() {
	st, conn := s.openStream()

	conn.send("not-json")
	s.waitForKinds(stream.KindOpen, stream.KindError)

	var decodeErr *stream.DecodeError
	s.Require().ErrorAs(s.rec.all()[1].Err, &decodeErr)
	s.Equal("not-json", decodeErr.Raw)
	s.Contains(decodeErr.Error(), "not-json")
	s.Equal(stream.StateOpen, st.State())

	conn.send(`{"event":"qr.updated","data":{"qr":"2@abc"}}`)
	s.waitForKinds(stream.KindOpen, stream.KindError, stream.KindQRUpdated)
	s.Equal(1, s.rec.count(stream.KindError))
}

func (s *StreamSuite) TestMessageReceivedPayload() {
	st, conn := s.openStream()

	received := make(chan stream.MessageReceived, 2)
	st.OnMessageReceived(func(m stream.MessageReceived) { received <- m })

	conn.send(`{"event":"message.received","data":{"id":"m1","chat_id":"123@s.whatsapp.net","type":"text","content":{"text":"hello"}}}`)
	conn.send(`{"event":"message.received","data":{"instance_id":"inst-1","message":{"id":"m2","type":"image","content":{}}}}`)

	first := <-received
	s.Equal("m1", first.ID)
	s.Equal("hello", first.Text())
	s.Empty(first.InstanceID)

	second := <-received
	s.Equal("m2", second.ID)
	s.Equal("inst-1", second.InstanceID)
	s.Equal(models.MessageTypeImage, second.Type)
}

func (s *StreamSuite) TestTypedPayloads() {
	st, conn := s.openStream()

	statuses := make(chan stream.MessageStatusUpdate, 1)
	updates := make(chan stream.ConnectionUpdate, 2)
	qrs := make(chan stream.QRUpdate, 1)
	st.OnMessageStatus(func(u stream.MessageStatusUpdate) { statuses <- u })
	st.OnConnectionUpdate(func(u stream.ConnectionUpdate) { updates <- u })
	st.OnQRUpdated(func(u stream.QRUpdate) { qrs <- u })

	conn.send(`{"event":"message.status","data":{"message_id":"m1","status":"delivered"}}`)
	conn.send(`{"event":"connection.update","data":{"state":"qr_required"}}`)
	conn.send(`{"event":"connection.update","data":{"instance_id":"inst-1","status":{"state":"connected"}}}`)
	conn.send(`{"event":"qr.updated","data":{"qr":"2@abc"}}`)

	status := <-statuses
	s.Equal("m1", status.MessageID)
	s.Equal(models.MessageStatusDelivered, status.Status)

	s.Equal(models.InstanceStateQRRequired, (<-updates).State)
	wrapped := <-updates
	s.Equal(models.InstanceStateConnected, wrapped.State)
	s.Equal("inst-1", wrapped.InstanceID)

	s.Equal("2@abc", (<-qrs).QR)
}

func (s *StreamSuite) TestTypedPayloadMismatchReportsError() {
	st, conn := s.openStream()
	st.OnQRUpdated(func(stream.QRUpdate) { s.Fail("listener must not run") })

	conn.send(`{"event":"qr.updated","data":"not an object"}`)
	s.waitForKinds(stream.KindOpen, stream.KindQRUpdated, stream.KindError)

	var decodeErr *stream.DecodeError
	s.ErrorAs(s.rec.all()[2].Err, &decodeErr)
	s.Equal(stream.StateOpen, st.State())
}

func (s *StreamSuite) TestTypedPayloadMismatchReportedOncePerFrame() {
	st, conn := s.openStream()

	qrs := make(chan string, 4)
	st.OnQRUpdated(func(u stream.QRUpdate) { qrs <- "first:" + u.QR })
	st.OnQRUpdated(func(u stream.QRUpdate) { qrs <- "second:" + u.QR })

	conn.send(`{"event":"qr.updated","data":"bad"}`)
	conn.send(`{"event":"qr.updated","data":{"qr":"2@abc"}}`)
	s.waitForKinds(stream.KindOpen, stream.KindQRUpdated, stream.KindError, stream.KindQRUpdated)

	s.Equal(1, s.rec.count(stream.KindError))
	s.Equal("first:2@abc", <-qrs)
	s.Equal("second:2@abc", <-qrs)
	s.Empty(qrs)
}

func (s *StreamSuite) TestPayloadMismatchReportedWithoutTypedListeners() {
	_, conn := s.openStream()

	conn.send(`{"event":"connection.update","data":[1,2]}`)
	s.waitForKinds(stream.KindOpen, stream.KindConnectionUpdate, stream.KindError)

	var decodeErr *stream.DecodeError
	s.Require().ErrorAs(s.rec.all()[2].Err, &decodeErr)
	s.Equal("[1,2]", decodeErr.Raw)
}

func (s *StreamSuite) TestServerLifecycleFrames() {
	st, conn := s.openStream()

	errs := make(chan error, 3)
	closes := make(chan stream.Event, 1)
	st.OnError(func(err error) { errs <- err })
	st.OnClose(func(code int, reason string) {
		closes <- stream.Event{Code: code, Reason: reason}
	})

	conn.send(`{"event":"error","data":{"message":"boom"}}`)
	conn.send(`{"event":"error","data":"quota exceeded"}`)
	conn.send(`{"event":"error"}`)
	conn.send(`{"event":"close","data":{"code":4001,"reason":"instance deleted"}}`)

	var serverErr *stream.ServerError
	for _, want := range []string{"boom", "quota exceeded", "unspecified"} {
		err := <-errs
		s.Require().NotNil(err)
		s.Require().ErrorAs(err, &serverErr)
		s.Equal(want, serverErr.Message)
		s.Contains(err.Error(), want)
	}

	closed := <-closes
	s.Equal(4001, closed.Code)
	s.Equal("instance deleted", closed.Reason)

	// frames from the server do not end the connection
	s.Equal(stream.StateOpen, st.State())
	s.False(conn.isClosed())
}

func (s *StreamSuite) TestNilListenersAreIgnored() {
	conn := newFakeConn()
	s.dialer.succeed(conn)
	st := s.newStream(stream.DefaultPolicy(), stream.WithListener(stream.KindQRUpdated, nil))

	reg := st.OnQRUpdated(nil)
	s.NotNil(reg)
	reg.Remove()
	st.OnError(nil)
	st.On(stream.KindClose, nil)

	s.Require().NoError(st.WaitOpen(context.Background()))
	conn.send(`{"event":"qr.updated","data":{"qr":"x"}}`)
	conn.send(`{"event":"error","data":{"message":"boom"}}`)
	s.waitForKinds(stream.KindOpen, stream.KindQRUpdated, stream.KindError)
	s.Equal(stream.StateOpen, st.State())
}

func (s *StreamSuite) TestDataIsDeliveredVerbatim() {
	st, conn := s.openStream()

	got := make(chan stream.Event, 1)
	st.On("custom.kind", func(ev stream.Event) { got <- ev })

	conn.send(`{"event":"custom.kind","data":{"b": [true, null],  "a":1}}`)
	ev := <-got
	s.Equal(stream.Kind("custom.kind"), ev.Kind)
	s.Equal(`{"b": [true, null],  "a":1}`, string(ev.Data))
}

func (s *StreamSuite) TestUnknownKindsAreIgnored() {
	st, conn := s.openStream()

	conn.send(`{"event":"presence.update","data":{}}`)
	conn.send(`{"event":"qr.updated","data":{"qr":"x"}}`)
	s.waitForKinds(stream.KindOpen, stream.KindQRUpdated)
	s.Equal(stream.StateOpen, st.State())
}

func (s *StreamSuite) TestListenerAndFrameOrder() {
	st, conn := s.openStream()

	var order []string
	done := make(chan struct{})
	st.On(stream.KindMessageStatus, func(ev stream.Event) { order = append(order, "status-1") })
	st.On(stream.KindMessageStatus, func(ev stream.Event) { order = append(order, "status-2") })
	st.On(stream.KindQRUpdated, func(ev stream.Event) { order = append(order, "qr") })
	st.On("test.done", func(stream.Event) { close(done) })

	conn.send(`{"event":"message.status","data":{}}`)
	conn.send(`{"event":"qr.updated","data":{}}`)
	conn.send(`{"event":"message.status","data":{}}`)
	conn.send(`{"event":"test.done"}`)
	<-done

	s.Equal([]string{"status-1", "status-2", "qr", "status-1", "status-2"}, order)
}

func (s *StreamSuite) TestRemoveListener() {
	st, conn := s.openStream()

	calls := 0
	done := make(chan struct{}, 2)
	reg := st.On(stream.KindQRUpdated, func(stream.Event) { calls++ })
	st.On("test.done", func(stream.Event) { done <- struct{}{} })

	conn.send(`{"event":"qr.updated","data":{}}`)
	conn.send(`{"event":"test.done"}`)
	<-done
	reg.Remove()
	reg.Remove()
	conn.send(`{"event":"qr.updated","data":{}}`)
	conn.send(`{"event":"test.done"}`)
	<-done

	s.Equal(1, calls)
}

func (s *StreamSuite) TestOpenPrecedesApplicationEvents() {
	conn := newFakeConn()
	conn.send(`{"event":"message.status","data":{"message_id":"m1","status":"sent"}}`)
	s.dialer.succeed(conn)
	s.newStream(stream.DefaultPolicy())

	s.waitForKinds(stream.KindOpen, stream.KindMessageStatus)
}

func (s *StreamSuite) TestTransportErrorEmitsErrorThenClose() {
	_, conn := s.openStream()

	conn.fail(io.ErrUnexpectedEOF)
	s.waitForKinds(stream.KindOpen, stream.KindError, stream.KindClose)

	events := s.rec.all()
	s.ErrorIs(events[1].Err, io.ErrUnexpectedEOF)
	s.Equal(stream.CloseAbnormalClosure, events[2].Code)

	// and the policy kicks in
	next := newFakeConn()
	s.dialer.succeed(next)
	s.advanceUntilDials(2)
	s.waitForKinds(stream.KindOpen, stream.KindError, stream.KindClose, stream.KindOpen)
}

func (s *StreamSuite) TestCloseIsTerminalAndIdempotent() {
	st, conn := s.openStream()

	s.Require().NoError(st.Close())
	<-st.Done()
	s.waitForKinds(stream.KindOpen, stream.KindClose)
	s.Equal(stream.CloseNormalClosure, s.rec.all()[1].Code)
	s.True(conn.isClosed())

	s.Require().NoError(st.Close())
	s.clock.Add(time.Hour)
	s.Never(func() bool { return s.dialer.dialCount() > 1 }, 50*time.Millisecond, tick)
	s.Len(s.rec.all(), 2)
	s.ErrorIs(st.Err(), stream.ErrClosed)
	s.Equal(stream.StateClosed, st.State())
}

func (s *StreamSuite) TestCloseCancelsPendingReconnect() {
	s.dialer.refuse(errors.New("refused"))
	st := s.newStream(stream.Policy{Reconnect: true, Interval: interval, MaxAttempts: 5})

	s.waitForKinds(stream.KindClose)
	s.Require().NoError(st.Close())
	<-st.Done()

	s.clock.Add(time.Hour)
	s.Never(func() bool { return s.dialer.dialCount() > 1 }, 50*time.Millisecond, tick)
	s.Equal([]stream.Kind{stream.KindClose}, s.rec.kinds())
}

func (s *StreamSuite) TestCloseDuringDial() {
	st := s.newStream(stream.DefaultPolicy())
	s.Require().Eventually(func() bool { return s.dialer.dialCount() == 1 }, waitFor, tick)
	s.Equal(stream.StateConnecting, st.State())

	s.Require().NoError(st.Close())
	<-st.Done()
	s.waitForKinds(stream.KindClose)
	s.Equal(stream.CloseNormalClosure, s.rec.all()[0].Code)
	s.ErrorIs(st.Err(), stream.ErrClosed)
}

func (s *StreamSuite) TestCloseFromListener() {
	conn := newFakeConn()
	s.dialer.succeed(conn)
	var st *stream.Stream
	opened := make(chan struct{})
	st = s.newStream(stream.DefaultPolicy(), stream.WithListener(stream.KindOpen, func(stream.Event) {
		<-opened
		_ = st.Close()
	}))
	close(opened)

	<-st.Done()
	s.waitForKinds(stream.KindOpen, stream.KindClose)
}

func (s *StreamSuite) TestReconnectDisabled() {
	conn := newFakeConn()
	s.dialer.succeed(conn)
	st := s.newStream(stream.Policy{Reconnect: false, Interval: interval, MaxAttempts: 10})
	s.Require().NoError(st.WaitOpen(context.Background()))

	conn.serverClose(stream.CloseNormalClosure, "bye")
	<-st.Done()
	s.waitForKinds(stream.KindOpen, stream.KindClose)
	s.ErrorIs(st.Err(), stream.ErrDisconnected)

	s.clock.Add(time.Hour)
	s.Never(func() bool { return s.dialer.dialCount() > 1 }, 50*time.Millisecond, tick)
}

func (s *StreamSuite) TestWaitOpenReportsExhaustion() {
	s.dialer.refuse(errors.New("refused"))
	st := s.newStream(stream.Policy{Reconnect: true, Interval: interval, MaxAttempts: 1})

	err := st.WaitOpen(context.Background())
	s.ErrorIs(err, stream.ErrMaxReconnectAttempts)
}

func (s *StreamSuite) TestWaitOpenHonoursContext() {
	st := s.newStream(stream.DefaultPolicy())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	s.ErrorIs(st.WaitOpen(ctx), context.DeadlineExceeded)
}

func (s *StreamSuite) TestAwaitCorrelatedEvent() {
	st, conn := s.openStream()

	type result struct {
		ev  stream.Event
		err error
	}
	results := make(chan result, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), waitFor)
		defer cancel()
		ev, err := st.Await(ctx, stream.KindConnectionUpdate, func(ev stream.Event) bool {
			var u stream.ConnectionUpdate
			return ev.Decode(&u) == nil && u.State == models.InstanceStateConnected
		})
		results <- result{ev, err}
	}()

	// Await registers asynchronously, so keep the server talking until it matches
	var got result
	s.Require().Eventually(func() bool {
		conn.send(`{"event":"connection.update","data":{"state":"connecting"}}`)
		conn.send(`{"event":"connection.update","data":{"state":"connected"}}`)
		select {
		case got = <-results:
			return true
		default:
			return false
		}
	}, waitFor, 20*time.Millisecond)

	s.Require().NoError(got.err)
	s.JSONEq(`{"state":"connected"}`, string(got.ev.Data))
}

func (s *StreamSuite) TestAwaitTimesOut() {
	st, _ := s.openStream()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := st.Await(ctx, stream.KindQRUpdated, nil)
	s.ErrorIs(err, context.DeadlineExceeded)
}

func (s *StreamSuite) TestAwaitReturnsWhenStreamStops() {
	st, _ := s.openStream()

	result := make(chan error, 1)
	go func() {
		_, err := st.Await(context.Background(), stream.KindQRUpdated, nil)
		result <- err
	}()
	s.Require().NoError(st.Close())
	s.ErrorIs(<-result, stream.ErrClosed)
}
