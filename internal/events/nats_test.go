package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

type fakeConn struct {
	subject string
	data    []byte
	err     error
}

func (f *fakeConn) Publish(subj string, data []byte) error {
	f.subject = subj
	f.data = data
	return f.err
}

func TestNATSTransport_Send(t *testing.T) {
	conn := &fakeConn{}
	tr := NewNATSTransport(conn, "bidroom.test")

	env := Envelope{EventID: "evt_1", EventType: EventTrustLevelChanged, Data: TrustLevelChangedData{NewLevel: "good"}}
	if err := tr.Send(context.Background(), env); err != nil {
		t.Fatalf("Send() error: %v", err)
	}
	if conn.subject != "bidroom.test.trust.level_changed" {
		t.Errorf("subject = %q", conn.subject)
	}
	var decoded Envelope
	if err := json.Unmarshal(conn.data, &decoded); err != nil {
		t.Fatalf("payload not json: %v", err)
	}
	if decoded.EventID != "evt_1" {
		t.Errorf("EventID = %q", decoded.EventID)
	}
}

func TestNATSTransport_DefaultPrefix(t *testing.T) {
	tr := NewNATSTransport(&fakeConn{}, "")
	if got := tr.Subject(EventAlertsRaised); got != "bidroom.events.alerts.raised" {
		t.Errorf("Subject() = %q", got)
	}
}

func TestNATSTransport_Errors(t *testing.T) {
	boom := errors.New("no responders")
	tr := NewNATSTransport(&fakeConn{err: boom}, "p")
	if err := tr.Send(context.Background(), Envelope{EventType: "x"}); !errors.Is(err, boom) {
		t.Errorf("Send() error = %v, want wrapped %v", err, boom)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := tr.Send(ctx, Envelope{EventType: "x"}); !errors.Is(err, context.Canceled) {
		t.Errorf("Send() on cancelled ctx = %v", err)
	}
}
