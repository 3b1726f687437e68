package rdx

import (
	"encoding/json"
	"log"
	"time"

	"agora/db"
	"agora/globals"
	"agora/models"
)

// FlushChatMessages drains buffered chat messages from Redis into MongoDB in
// bulk. Runs forever; start it in its own goroutine.
func FlushChatMessages() {
	ticker := time.NewTicker(30 * time.Second)
	for range ticker.C {
		keys, err := Conn.Keys(globals.Ctx, "chat:*:messages").Result()
		if err != nil {
			log.Println("Redis scan error:", err)
			continue
		}
		for _, key := range keys {
			msgs, err := Conn.LRange(globals.Ctx, key, 0, -1).Result()
			if err != nil {
				log.Println("Redis LRange error:", err)
				continue
			}
			if len(msgs) == 0 {
				continue
			}

			var bulk []interface{}
			for _, mStr := range msgs {
				var m models.Message
				if err := json.Unmarshal([]byte(mStr), &m); err != nil {
					log.Println("JSON unmarshal error:", err)
					continue
				}
				bulk = append(bulk, m)
			}
			if len(bulk) == 0 {
				continue
			}

			if _, err := db.MessagesCollection.InsertMany(globals.Ctx, bulk); err != nil {
				log.Println("MongoDB InsertMany error:", err)
				continue
			}
			Conn.Del(globals.Ctx, key)
		}
	}
}
