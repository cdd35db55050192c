package console

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

// fakeConn records overlapping Execute calls to prove serialization.
type fakeConn struct {
	inFlight int32
	overlaps int32
	calls    int32
	reply    string
	err      error
	delay    time.Duration
}

func (f *fakeConn) Execute(command string) (string, error) {
	if atomic.AddInt32(&f.inFlight, 1) > 1 {
		atomic.AddInt32(&f.overlaps, 1)
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	atomic.AddInt32(&f.inFlight, -1)
	atomic.AddInt32(&f.calls, 1)
	return f.reply, f.err
}

func (f *fakeConn) Close() error { return nil }

func TestClient_SendSerializesExchanges(t *testing.T) {
	conn := &fakeConn{reply: "ok", delay: 2 * time.Millisecond}
	client := &Client{conn: conn, logger: zap.NewNop()}

	const callers = 16
	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			if _, err := client.Send(context.Background(), "list"); err != nil {
				t.Errorf("Send() failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := atomic.LoadInt32(&conn.overlaps); got != 0 {
		t.Fatalf("expected serialized exchanges, observed %d overlaps", got)
	}
	if got := atomic.LoadInt32(&conn.calls); got != callers {
		t.Fatalf("expected %d exchanges, got %d", callers, got)
	}
}

func TestClient_SendReturnsReply(t *testing.T) {
	conn := &fakeConn{reply: "Added Notch to the whitelist"}
	client := &Client{conn: conn, logger: zap.NewNop()}

	got, err := client.Send(context.Background(), "whitelist add Notch")
	if err != nil {
		t.Fatalf("Send() failed: %v", err)
	}
	if got != conn.reply {
		t.Fatalf("expected reply %q, got %q", conn.reply, got)
	}
}

func TestClient_SendWrapsExecuteError(t *testing.T) {
	connErr := errors.New("connection reset")
	client := &Client{conn: &fakeConn{err: connErr}, logger: zap.NewNop()}

	_, err := client.Send(context.Background(), "whitelist add Notch")
	if !errors.Is(err, connErr) {
		t.Fatalf("expected wrapped connection error, got %v", err)
	}
}

func TestClient_SendHonorsCanceledContext(t *testing.T) {
	conn := &fakeConn{reply: "ok"}
	client := &Client{conn: conn, logger: zap.NewNop()}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.Send(ctx, "list"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if got := atomic.LoadInt32(&conn.calls); got != 0 {
		t.Fatalf("expected no exchange after cancellation, got %d", got)
	}
}

func TestDisabled_SendFails(t *testing.T) {
	_, err := Disabled().Send(context.Background(), "list")
	if !errors.Is(err, ErrDisabled) {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}
}
