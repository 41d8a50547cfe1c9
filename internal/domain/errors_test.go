package domain

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
)

func TestClassify_Sentinels(t *testing.T) {
	cases := []struct {
		err  error
		want ErrorKind
	}{
		{fmt.Errorf("create: %w", ErrValidation), KindValidation},
		{fmt.Errorf("insert: %w", ErrDuplicate), KindDuplicate},
		{fmt.Errorf("insert: %w", ErrReference), KindReference},
		{fmt.Errorf("update: %w", ErrPermission), KindPermission},
		{fmt.Errorf("feed: %w", ErrSubscription), KindSubscription},
	}
	for _, tc := range cases {
		if got := Classify(tc.err); got != tc.want {
			t.Fatalf("Classify(%v): want %s, got %s", tc.err, tc.want, got)
		}
	}
}

func TestClassify_ContextAndNet(t *testing.T) {
	if got := Classify(fmt.Errorf("query: %w", context.DeadlineExceeded)); got != KindTimeout {
		t.Fatalf("deadline: want timeout, got %s", got)
	}

	var opErr error = &net.OpError{Op: "dial", Err: errors.New("connection refused")}
	if got := Classify(opErr); got != KindNetwork {
		t.Fatalf("net.OpError: want network, got %s", got)
	}

	var timeoutErr net.Error = &timeoutNetError{}
	if got := Classify(fmt.Errorf("wrap: %w", timeoutErr)); got != KindTimeout {
		t.Fatalf("net timeout: want timeout, got %s", got)
	}
}

func TestClassify_MessageSniffing(t *testing.T) {
	cases := []struct {
		msg  string
		want ErrorKind
	}{
		{"request timeout while waiting", KindTimeout},
		{"network unreachable", KindNetwork},
		{"failed to fetch rows", KindNetwork},
		{"permission denied for table orders", KindPermission},
		{"auth token expired", KindPermission},
		{"something completely else", KindUnknown},
	}
	for _, tc := range cases {
		if got := Classify(errors.New(tc.msg)); got != tc.want {
			t.Fatalf("Classify(%q): want %s, got %s", tc.msg, tc.want, got)
		}
	}

	if got := Classify(nil); got != KindUnknown {
		t.Fatalf("nil: want unknown, got %s", got)
	}
}

// timeoutNetError — минимальная net.Error с Timeout()==true.
type timeoutNetError struct{}

func (*timeoutNetError) Error() string   { return "i/o deadline reached" }
func (*timeoutNetError) Timeout() bool   { return true }
func (*timeoutNetError) Temporary() bool { return true }

var _ net.Error = (*timeoutNetError)(nil)
