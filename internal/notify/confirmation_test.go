package notify

import (
	"context"
	"strings"
	"testing"
)

func TestConfirmationNotifier_SendsToSubmitter(t *testing.T) {
	stub := NewStubEmailSender(nil)
	n := NewConfirmationNotifier(stub, "", "https://calendly.com/webmcpsetup")

	if err := n.Notify(context.Background(), sampleRecord()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sent := stub.Sent()
	if len(sent) != 1 {
		t.Fatalf("expected one email, got %d", len(sent))
	}
	msg := sent[0]
	if msg.To != "jane@x.com" || msg.ToName != "Jane Doe" {
		t.Fatalf("unexpected recipient %q <%s>", msg.ToName, msg.To)
	}
	if !strings.Contains(msg.Subject, "LEAD-1700000000000-ABC123DEF") {
		t.Errorf("subject should carry the lead id, got %q", msg.Subject)
	}
	if !strings.Contains(msg.Body, "https://calendly.com/webmcpsetup") {
		t.Errorf("body should link the scheduler, got %q", msg.Body)
	}
	if !strings.Contains(msg.HTML, "webmcpsetup.ai") {
		t.Errorf("html should be signed with the default site name")
	}
}

func TestConfirmationNotifier_EscapesHTML(t *testing.T) {
	stub := NewStubEmailSender(nil)
	rec := sampleRecord()
	rec.FullName = "<script>x</script>"

	if err := NewConfirmationNotifier(stub, "site", "").Notify(context.Background(), rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(stub.Sent()[0].HTML, "<script>") {
		t.Fatal("expected name to be escaped in html body")
	}
}

func TestNewConfirmationNotifier_NilSender(t *testing.T) {
	if NewConfirmationNotifier(nil, "site", "") != nil {
		t.Fatal("expected nil notifier without a sender")
	}
}
