package domain

import "time"

type HelpContentKind string

const (
	HelpGeneral        HelpContentKind = "help"
	HelpEventTypeGuide HelpContentKind = "guide"
)

// HelpContent is an opaque rich-text blob with a monotonically increasing
// version counter. The core never interprets the body.
type HelpContent struct {
	ID          uint
	Kind        HelpContentKind
	EventTypeID *uint // set for event-type guides
	Title       string
	Body        string
	Version     int
	ModifiedBy  string
	UpdatedAt   time.Time
}

// HelpRevision is one row of the append-only revision log, storing the blob
// as it was before the version it is keyed by replaced it.
type HelpRevision struct {
	ID         uint
	ContentID  uint
	Version    int
	Body       string
	ModifiedBy string
	ChangeNote string
	CreatedAt  time.Time
}
