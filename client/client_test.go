package client

import (
	"context"
	"errors"
	"testing"

	"github.com/certen/ledger-core/codec"
	"github.com/certen/ledger-core/protocol"
)

// fakeTransport is a scripted in-memory ClientTransport: each call to Recv
// returns the next queued response in order, letting tests drive a Client
// through retry scenarios without a real socket.
type fakeTransport struct {
	responses [][]byte
	sent      [][]byte
	recvIdx   int
}

func (f *fakeTransport) Connect(ctx context.Context, address string) error { return nil }

func (f *fakeTransport) Send(ctx context.Context, data []byte) error {
	f.sent = append(f.sent, data)
	return nil
}

func (f *fakeTransport) Recv(ctx context.Context) ([]byte, error) {
	if f.recvIdx >= len(f.responses) {
		return nil, errors.New("fakeTransport: no more responses queued")
	}
	resp := f.responses[f.recvIdx]
	f.recvIdx++
	return resp, nil
}

func (f *fakeTransport) Disconnect() error { return nil }

func newTestRequest(t *testing.T) protocol.Request {
	t.Helper()
	sender := protocol.NewNode("tcp://localhost:9000", nil)
	msg, err := protocol.NewMessage(protocol.MethodGet, protocol.ResourceCoin, sender, nil, nil)
	if err != nil {
		t.Fatalf("NewMessage: %v", err)
	}
	return protocol.Request{Message: msg}
}

func encodeResponse(t *testing.T, req protocol.Request, isError bool) []byte {
	t.Helper()
	msg := req.Message
	if isError {
		msg.Resource = protocol.ResourceError
	}
	b, err := codec.ToBytes(protocol.Response{Message: msg})
	if err != nil {
		t.Fatalf("ToBytes: %v", err)
	}
	return b
}

// TestClientRetryAndFailScenario exercises spec.md §8 scenario 3: a server
// that errors once on the first request then succeeds, with RetryAndFail(2).
func TestClientRetryAndFailScenario(t *testing.T) {
	r1 := newTestRequest(t)
	r2 := newTestRequest(t)

	ft := &fakeTransport{responses: [][]byte{
		encodeResponse(t, r1, true),  // R1 attempt 1: errors
		encodeResponse(t, r1, false), // R1 attempt 2: succeeds
		encodeResponse(t, r2, false), // R2 attempt 1: succeeds
	}}

	c := New()
	responses, remaining, err := c.Send(context.Background(), ft, []protocol.Request{r1, r2}, RetryAndFail(2))
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(responses) != 2 {
		t.Fatalf("expected 2 responses, got %d", len(responses))
	}
	if remaining != 1 {
		t.Fatalf("expected 1 retry remaining, got %d", remaining)
	}
	if len(ft.sent) != 3 {
		t.Fatalf("expected 3 messages sent, got %d", len(ft.sent))
	}
}

// TestClientRetryAndFailZeroEqualsFail checks invariant R3: RetryAndFail(0)
// behaves exactly like Fail.
func TestClientRetryAndFailZeroEqualsFail(t *testing.T) {
	r1 := newTestRequest(t)
	ft := &fakeTransport{responses: [][]byte{encodeResponse(t, r1, true)}}

	c := New()
	_, remaining, err := c.Send(context.Background(), ft, []protocol.Request{r1}, RetryAndFail(0))
	if !errors.Is(err, ErrErrorResponse) {
		t.Fatalf("expected ErrErrorResponse, got %v", err)
	}
	if remaining != 0 {
		t.Fatalf("expected 0 retries remaining, got %d", remaining)
	}
}

// TestClientRetryAndIgnoreZeroEqualsIgnore checks invariant R3:
// RetryAndIgnore(0) behaves exactly like Ignore.
func TestClientRetryAndIgnoreZeroEqualsIgnore(t *testing.T) {
	r1 := newTestRequest(t)
	ft := &fakeTransport{responses: [][]byte{encodeResponse(t, r1, true)}}

	c := New()
	responses, remaining, err := c.Send(context.Background(), ft, []protocol.Request{r1}, RetryAndIgnore(0))
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(responses) != 1 || !responses[0].IsError() {
		t.Fatalf("expected one accepted error response, got %+v", responses)
	}
	if remaining != 0 {
		t.Fatalf("expected 0 retries remaining, got %d", remaining)
	}
}

func TestClientFailStopsOnFirstError(t *testing.T) {
	r1 := newTestRequest(t)
	r2 := newTestRequest(t)
	ft := &fakeTransport{responses: [][]byte{
		encodeResponse(t, r1, true),
		encodeResponse(t, r2, false),
	}}

	c := New()
	responses, _, err := c.Send(context.Background(), ft, []protocol.Request{r1, r2}, Fail())
	if !errors.Is(err, ErrErrorResponse) {
		t.Fatalf("expected ErrErrorResponse, got %v", err)
	}
	if len(responses) != 0 {
		t.Fatalf("expected no responses collected, got %d", len(responses))
	}
}

func TestClientIgnoreCollectsEverything(t *testing.T) {
	r1 := newTestRequest(t)
	r2 := newTestRequest(t)
	ft := &fakeTransport{responses: [][]byte{
		encodeResponse(t, r1, true),
		encodeResponse(t, r2, false),
	}}

	c := New()
	responses, _, err := c.Send(context.Background(), ft, []protocol.Request{r1, r2}, Ignore())
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(responses) != 2 {
		t.Fatalf("expected 2 responses, got %d", len(responses))
	}
	if !responses[0].IsError() || responses[1].IsError() {
		t.Fatalf("unexpected error flags: %+v", responses)
	}
}
