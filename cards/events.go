package cards

import (
	"time"

	notify "github.com/bitly/go-notify"
)

// Card lifecycle notification keys. Observers register with notify.Start;
// posts time out after a millisecond so an unobserved card never blocks.
const (
	EventExecuted    = "card:executed"
	EventCompleted   = "card:completed"
	EventInterrupted = "card:interrupted"
)

func postCardEvent(event string, card *GoodSection) {
	notify.PostTimeout(event, card.Name, time.Millisecond)
}
