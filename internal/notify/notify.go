// Package notify composes the delegation message for an item and defines
// the delivery boundary. Actual SMS delivery is a host concern; the tool
// ships a writer-backed notifier that prints what would be sent.
package notify

import (
	"context"
	"fmt"
	"io"
	"strings"

	"suitcase-cli/internal/model"
)

// ItemMessage formats the delegation text for one item snapshot.
func ItemMessage(s model.Snapshot) string {
	return fmt.Sprintf("Item: %s\nPrice: %v\nDescription: %s", s.Name, s.Price, s.Description)
}

// Notifier delivers a delegation message to a destination address.
type Notifier interface {
	Send(ctx context.Context, to, body string) error
}

// WriterNotifier writes the outgoing message to w instead of delivering it.
type WriterNotifier struct {
	W io.Writer
}

func (n WriterNotifier) Send(_ context.Context, to, body string) error {
	to = strings.TrimSpace(to)
	if to == "" {
		return fmt.Errorf("notify: empty destination")
	}
	_, err := fmt.Fprintf(n.W, "To: %s\n%s\n", to, body)
	return err
}
