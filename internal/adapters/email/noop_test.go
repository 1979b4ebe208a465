package email

import (
	"context"
	"testing"
)

func TestNoopSender_RecordsRequests(t *testing.T) {
	s := NewNoopSender()
	ctx := context.Background()

	if _, err := s.Send(ctx, SendRequest{To: []string{"a@example.com"}, Subject: "one"}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	results, err := s.SendBatch(ctx, []SendRequest{{Subject: "two"}, {Subject: "three"}})
	if err != nil {
		t.Fatalf("SendBatch: %v", err)
	}
	if len(results) != 2 || results[1].MessageID != "noop-3" {
		t.Errorf("batch results = %+v", results)
	}
	sent := s.Sent()
	if len(sent) != 3 || sent[0].Subject != "one" || sent[2].Subject != "three" {
		t.Errorf("sent = %+v", sent)
	}
}

func TestResendSender_Params(t *testing.T) {
	s := NewResendSender("re_test", "Venues <noreply@example.com>", "desk@example.com")
	p := s.params(SendRequest{To: []string{"c@example.com"}, Subject: "Hi", Text: "plain", Tags: map[string]string{"kind": "reminder"}})
	if p.From != "Venues <noreply@example.com>" || p.ReplyTo != "desk@example.com" {
		t.Errorf("defaults not applied: from=%q replyTo=%q", p.From, p.ReplyTo)
	}
	if p.Text != "plain" || len(p.Tags) != 1 || p.Tags[0].Name != "kind" {
		t.Errorf("params = %+v", p)
	}
	p = s.params(SendRequest{From: "other@example.com", ReplyTo: "r@example.com"})
	if p.From != "other@example.com" || p.ReplyTo != "r@example.com" {
		t.Errorf("explicit values overridden: %+v", p)
	}
}
