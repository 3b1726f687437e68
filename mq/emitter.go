package mq

import (
	"context"
	"encoding/json"
	"log"

	"agora/models"
	"agora/rdx"
)

const eventChannel = "agora-events"

// Emit publishes a domain event to the Redis event channel. Failures are
// logged and swallowed; event delivery is best-effort.
func Emit(ctx context.Context, eventName string, content models.Event) {
	if rdx.Conn == nil {
		return
	}
	data, err := json.Marshal(content)
	if err != nil {
		log.Printf("[mq] marshal %s: %v", eventName, err)
		return
	}

	if err := rdx.Conn.Publish(ctx, eventChannel, data).Err(); err != nil {
		log.Printf("[mq] publish %s: %v", eventName, err)
	}
}

// StartNotificationWorker consumes domain events and fans them out to the
// relevant users' notification lists.
func StartNotificationWorker() {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, eventChannel)
	ch := sub.Channel()

	log.Println("[mq] notification worker listening")

	for msg := range ch {
		var event models.Event
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("[mq] bad event payload: %v", err)
			continue
		}
		handleEvent(ctx, event)
	}
}

func handleEvent(ctx context.Context, event models.Event) {
	if event.TargetID == "" {
		return
	}
	data, _ := json.Marshal(event)
	key := "notify:" + event.TargetID
	if err := rdx.Conn.RPush(ctx, key, data).Err(); err != nil {
		log.Printf("[mq] notify push: %v", err)
		return
	}
	// keep each user's backlog bounded
	rdx.Conn.LTrim(ctx, key, -200, -1)
}
