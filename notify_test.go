// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package jabber_test

import (
	"errors"
	"reflect"
	"strconv"
	"testing"

	"mellium.im/jabber"
)

func TestMux(t *testing.T) {
	var got []string
	m := jabber.NewMux(
		jabber.HandleFunc(jabber.EventMessage, func(e jabber.Event) {
			got = append(got, "message:"+e.Message.Body)
		}),
		jabber.HandleFunc("", func(e jabber.Event) {
			got = append(got, "any:"+string(e.Name))
		}),
	)

	m.Notify(jabber.Event{Name: jabber.EventMessage, Message: &jabber.Message{Body: "hi"}})
	m.Notify(jabber.Event{Name: jabber.EventConnected})

	want := []string{"message:hi", "any:connected"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("wrong handlers called: want=%v, got=%v", want, got)
	}
}

func TestMuxReplace(t *testing.T) {
	var calls int
	m := jabber.NewMux(
		jabber.HandleFunc(jabber.EventRoster, func(jabber.Event) { t.Error("replaced handler should not be called") }),
		jabber.HandleFunc(jabber.EventRoster, func(jabber.Event) { calls++ }),
	)
	if _, ok := m.Notifier(jabber.EventSession); ok {
		t.Error("expected no notifier for an unregistered event")
	}
	m.Notify(jabber.Event{Name: jabber.EventRoster})
	m.Notify(jabber.Event{Name: jabber.EventSession})
	if calls != 1 {
		t.Errorf("wrong number of calls: want=1, got=%d", calls)
	}
}

func TestZeroMux(t *testing.T) {
	var m jabber.Mux
	m.Notify(jabber.Event{Name: jabber.EventConnected})
}

var errTests = [...]struct {
	err    error
	target error
	is     bool
	msg    string
}{
	0: {
		err:    &jabber.ConnectError{Host: "example.com", Port: 5222, Err: errors.New("refused")},
		target: jabber.ErrConnectionFailed,
		is:     true,
		msg:    "jabber: connection to example.com:5222 failed: refused",
	},
	1: {
		err:    &jabber.AuthError{Condition: "not-authorized", Text: "bad password"},
		target: jabber.ErrServerFailure,
		is:     true,
		msg:    "jabber: authentication failed: not-authorized (bad password)",
	},
	2: {
		err:    &jabber.AuthError{},
		target: jabber.ErrConnectionFailed,
		msg:    "jabber: authentication failed",
	},
	3: {
		err:    &jabber.ConnectError{Host: "::1", Port: 5223},
		target: jabber.ErrServerFailure,
		msg:    "jabber: connection to [::1]:5223 failed",
	},
}

func TestErrors(t *testing.T) {
	for i, tc := range errTests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			if is := errors.Is(tc.err, tc.target); is != tc.is {
				t.Errorf("errors.Is(%v, %v): want=%t, got=%t", tc.err, tc.target, tc.is, is)
			}
			if s := tc.err.Error(); s != tc.msg {
				t.Errorf("wrong message: want=%q, got=%q", tc.msg, s)
			}
		})
	}
}

func TestStateString(t *testing.T) {
	for s, want := range map[jabber.NegotiationState]string{
		jabber.NegotiationNoop:      "noop",
		jabber.NegotiationSuccess:   "success",
		jabber.NegotiationState(42): "NegotiationState(42)",
	} {
		if got := s.String(); got != want {
			t.Errorf("wrong string: want=%q, got=%q", want, got)
		}
	}
}
