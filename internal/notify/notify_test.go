package notify

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"suitcase-cli/internal/model"
)

func TestItemMessage(t *testing.T) {
	got := ItemMessage(model.Snapshot{Name: "Kettle", Price: 29.99, Description: "Electric kettle"})
	want := "Item: Kettle\nPrice: 29.99\nDescription: Electric kettle"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestWriterNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := WriterNotifier{W: &buf}

	if err := n.Send(context.Background(), "555-0100", "Item: A"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "To: 555-0100") || !strings.Contains(out, "Item: A") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestWriterNotifierRejectsEmptyDestination(t *testing.T) {
	var buf bytes.Buffer
	n := WriterNotifier{W: &buf}

	if err := n.Send(context.Background(), "   ", "body"); err == nil {
		t.Fatalf("expected error for empty destination")
	}
	if buf.Len() != 0 {
		t.Fatalf("nothing should be written on error")
	}
}
