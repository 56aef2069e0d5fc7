package domain

import "time"

// EventType controls game visibility in listings.
type EventType string

const (
	EventPublic  EventType = "public"
	EventPrivate EventType = "private"
)

// MaxParticipants caps how many players may join a game.
const MaxParticipants = 10

// Game is a scheduled pick-up game organized by a user.
type Game struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	CreatorID     string    `json:"creator_id"`
	Participants  []string  `json:"participants"`
	ScheduledDate time.Time `json:"scheduled_date"`
	StartTime     string    `json:"start_time"` // HH:MM
	EndTime       string    `json:"end_time"`   // HH:MM
	Location      string    `json:"location"`
	EventType     EventType `json:"event_type"`
	SportType     CourtType `json:"sport_type"`
	CreatedAt     time.Time `json:"created_at"`
}

// IsFull reports whether the game reached its participant cap.
func (g *Game) IsFull() bool {
	return len(g.Participants) >= MaxParticipants
}

// HasParticipant reports whether userID already joined.
func (g *Game) HasParticipant(userID string) bool {
	for _, p := range g.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// Validate checks invariants before a game is created or updated.
func (g *Game) Validate() error {
	switch {
	case g.Title == "":
		return Invalid("game title is required")
	case g.Location == "":
		return Invalid("game location is required")
	case g.ScheduledDate.IsZero():
		return Invalid("scheduled date is required")
	case g.StartTime == "" || g.EndTime == "":
		return Invalid("start and end time are required")
	case g.EventType != EventPublic && g.EventType != EventPrivate:
		return Invalid("event type must be public or private")
	case !g.SportType.Known():
		return Invalid("unknown sport type: " + string(g.SportType))
	}
	return nil
}
