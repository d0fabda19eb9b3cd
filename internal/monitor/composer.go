package monitor

import (
	"fmt"
	"strings"
	"time"
)

// Message is a rendered notification for one cycle.
type Message struct {
	Subject string
	Body    string
}

// kindLabels are the human-readable prefixes used in notification bodies.
var kindLabels = map[Kind]string{
	KindFirstSeen:   "FIRST SEEN",
	KindAlert:       "ALERT",
	KindRecovery:    "RECOVERY",
	KindStateChange: "STATE CHANGE",
}

// Composer renders a cycle's transition batch into a single notification.
type Composer struct {
	// Server is the host label included in subjects and bodies so that
	// alerts from multiple monitored hosts are distinguishable.
	Server string
}

// Compose renders the batch into one message, or nil for an empty batch.
// Notifications are sent only when at least one transition occurred; the
// whole cycle is summarized as one unit rather than one message per event.
// Events render one line each, in batch order.
func (c Composer) Compose(batch []Transition) *Message {
	if len(batch) == 0 {
		return nil
	}

	subject := fmt.Sprintf("[dockpulse %s] %d container status transition(s)", c.Server, len(batch))

	var b strings.Builder
	fmt.Fprintf(&b, "Container status transitions on %s as of %s:\n\n",
		c.Server, batch[0].At.Format(time.RFC3339))
	for _, t := range batch {
		fmt.Fprintf(&b, "%s: %s is now %s\n",
			kindLabels[t.Kind], t.Container, strings.ToUpper(string(t.To)))
	}
	b.WriteString("\nPlease check the container logs and take necessary action.\n")

	return &Message{Subject: subject, Body: b.String()}
}
