package feed

import (
	"time"

	"github.com/google/uuid"
)

// Item is a candidate feed entry supplied by the host application.
// The ranker scores and reorders items, it never mutates them.
type Item struct {
	ID        string     `json:"id"`
	Type      string     `json:"type"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	GroupID   *uuid.UUID `json:"group_id,omitempty"`
}

type RankedItem struct {
	Item
	Score float64 `json:"score"`
}

type RankRequest struct {
	Items []Item `json:"items"`
}
