package models

// Event is the envelope published on the Redis event channel whenever a
// domain write worth notifying about happens.
type Event struct {
	EntityType string `json:"entity_type"`
	Method     string `json:"method"`
	EntityID   string `json:"entity_id"`
	ActorID    string `json:"actor_id,omitempty"`
	TargetID   string `json:"target_id,omitempty"`
	Extra      string `json:"extra,omitempty"`
}
