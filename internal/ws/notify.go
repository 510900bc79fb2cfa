package ws

import (
	"encoding/json"
	"time"
)

type SkillsUpdatedEvent struct {
	Type      string `json:"type"`
	Action    string `json:"action"`
	SkillID   string `json:"skill_id"`
	Timestamp string `json:"timestamp"`
}

// PublishSkillChange broadcasts a skills_updated event to every connected client.
func (h *Hub) PublishSkillChange(action string, skillID string) {
	if h == nil {
		return
	}

	evt := SkillsUpdatedEvent{
		Type:      "skills_updated",
		Action:    action,
		SkillID:   skillID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	h.Broadcast(b)
}
