package teststubs

import (
	"context"
	"errors"
	"testing"

	"ncaa-contests-service/internal/domain/contests"
	"ncaa-contests-service/internal/providers"
)

func TestStubProviderTracksCalls(t *testing.T) {
	stub := &StubProvider{Contests: []contests.Contest{{ID: "c1"}}}
	got, err := stub.FetchContests(context.Background(), providers.Query{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "c1" {
		t.Errorf("got %v", got)
	}
	if stub.Calls.Load() != 1 {
		t.Errorf("calls = %d", stub.Calls.Load())
	}
}

func TestStubProviderNotify(t *testing.T) {
	stub := &StubProvider{Notify: make(chan struct{})}
	_, _ = stub.FetchContests(context.Background(), providers.Query{})
	select {
	case <-stub.Notify:
	default:
		t.Error("notify channel not closed")
	}
}

func TestStubRefresher(t *testing.T) {
	stub := &StubRefresher{Count: 3, Err: errors.New("down")}
	count, err := stub.Refresh(context.Background())
	if count != 3 || err == nil {
		t.Errorf("count = %d, err = %v", count, err)
	}
	if stub.Calls.Load() != 1 {
		t.Errorf("calls = %d", stub.Calls.Load())
	}
}
