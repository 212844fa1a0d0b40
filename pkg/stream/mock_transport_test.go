//go:build unit || !integration

package stream_test

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/wataki/wataki-go/pkg/logger"
	"github.com/wataki/wataki-go/pkg/stream"
	"github.com/wataki/wataki-go/pkg/stream/mock_stream"
)

func TestStreamWithMockTransport(t *testing.T) {
	logger.ConfigureTestLogging(t)
	ctrl := gomock.NewController(t)

	conn := mock_stream.NewMockConn(ctrl)
	dialer := mock_stream.NewMockDialer(ctrl)

	dialer.EXPECT().Dial(gomock.Any(), testAddress).Return(conn, nil).Times(1)
	gomock.InOrder(
		conn.EXPECT().ReadMessage().Return([]byte(`{"event":"qr.updated","data":{"qr":"2@abc"}}`), nil),
		conn.EXPECT().ReadMessage().Return(nil, &stream.CloseError{Code: stream.CloseNormalClosure, Text: "bye"}),
	)
	conn.EXPECT().Close().Return(nil).MinTimes(1)

	rec := &recorder{}
	opts := append([]stream.Option{
		stream.WithDialer(dialer),
		stream.WithClock(clock.NewMock()),
		stream.WithReconnect(false),
	}, rec.options(allKinds...)...)
	st := stream.New(testAddress, opts...)

	select {
	case <-st.Done():
	case <-time.After(waitFor):
		t.Fatal("stream did not stop")
	}

	require.ErrorIs(t, st.Err(), stream.ErrDisconnected)
	require.Equal(t, []stream.Kind{stream.KindOpen, stream.KindQRUpdated, stream.KindClose}, rec.kinds())

	closeEvent := rec.all()[2]
	require.Equal(t, stream.CloseNormalClosure, closeEvent.Code)
	require.Equal(t, "bye", closeEvent.Reason)
	require.ErrorIs(t, st.WaitOpen(context.Background()), stream.ErrDisconnected)
}

func TestStreamDialFailureWithMockTransport(t *testing.T) {
	logger.ConfigureTestLogging(t)
	ctrl := gomock.NewController(t)

	dialer := mock_stream.NewMockDialer(ctrl)
	dialer.EXPECT().Dial(gomock.Any(), gomock.Any()).Return(nil, context.DeadlineExceeded).Times(1)

	rec := &recorder{}
	opts := append([]stream.Option{
		stream.WithDialer(dialer),
		stream.WithClock(clock.NewMock()),
		stream.WithMaxReconnectAttempts(1),
	}, rec.options(allKinds...)...)
	st := stream.New(testAddress, opts...)

	<-st.Done()
	require.Equal(t, []stream.Kind{stream.KindClose, stream.KindError}, rec.kinds())
	require.Equal(t, stream.CloseAbnormalClosure, rec.all()[0].Code)
	require.Equal(t, context.DeadlineExceeded.Error(), rec.all()[0].Reason)
	require.ErrorIs(t, rec.all()[1].Err, stream.ErrMaxReconnectAttempts)
	require.ErrorIs(t, st.Err(), stream.ErrMaxReconnectAttempts)
}
