package chat

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"agora/db"
	"agora/models"
	"agora/rdx"
	"agora/utils"

	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson"
)

type Client struct {
	Conn   *websocket.Conn
	Send   chan []byte
	Room   string
	UserID string
}

// inboundPayload is what connected clients send the socket.
type inboundPayload struct {
	Action  string `json:"action"` // "chat", "edit", "delete"
	ID      string `json:"id,omitempty"`
	Content string `json:"content,omitempty"`
}

// outboundPayload is what the hub broadcasts to every client in a room.
type outboundPayload struct {
	Action    string `json:"action"`
	ID        string `json:"id"`
	Room      string `json:"room,omitempty"`
	SenderID  string `json:"senderId,omitempty"`
	Content   string `json:"content,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

func writePump(c *Client) {
	defer c.Conn.Close()
	for msg := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}

func readPump(c *Client, hub *Hub) {
	defer func() {
		hub.unregister <- c
		c.Conn.Close()
	}()

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			break
		}

		var in inboundPayload
		if err := json.Unmarshal(raw, &in); err != nil {
			log.Println("chat: invalid payload:", err)
			continue
		}

		switch in.Action {
		case "chat":
			now := time.Now()
			msg := models.Message{
				MessageID: utils.NewID("msg"),
				ChatID:    c.Room,
				UserID:    c.UserID,
				Content:   in.Content,
				SentAt:    now,
			}
			// buffered in Redis; the flush worker batches it into Mongo
			if data, err := json.Marshal(msg); err == nil {
				if err := rdx.RdxPush("chat:"+c.Room+":messages", string(data)); err != nil {
					log.Println("chat: buffer push:", err)
					continue
				}
			}
			out := outboundPayload{
				Action:    "chat",
				ID:        msg.MessageID,
				Room:      c.Room,
				SenderID:  c.UserID,
				Content:   in.Content,
				Timestamp: now.Unix(),
			}
			if data, _ := json.Marshal(out); data != nil {
				hub.broadcast <- broadcastMsg{Room: c.Room, Data: data}
			}

		case "edit":
			if err := updateMessage(c.UserID, in.ID, in.Content); err != nil {
				log.Println("chat: edit failed:", err)
				continue
			}
			out := outboundPayload{
				Action:    "edit",
				ID:        in.ID,
				Content:   in.Content,
				Timestamp: time.Now().Unix(),
			}
			if data, _ := json.Marshal(out); data != nil {
				hub.broadcast <- broadcastMsg{Room: c.Room, Data: data}
			}

		case "delete":
			if err := deleteMessage(c.UserID, in.ID); err != nil {
				log.Println("chat: delete failed:", err)
				continue
			}
			out := outboundPayload{Action: "delete", ID: in.ID}
			if data, _ := json.Marshal(out); data != nil {
				hub.broadcast <- broadcastMsg{Room: c.Room, Data: data}
			}

		default:
			log.Println("chat: unknown action:", in.Action)
		}
	}
}

func updateMessage(userID, messageID, content string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_, err := db.MessagesCollection.UpdateOne(ctx,
		bson.M{"messageid": messageID, "userid": userID},
		bson.M{"$set": bson.M{"content": content}})
	return err
}

func deleteMessage(userID, messageID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_, err := db.MessagesCollection.DeleteOne(ctx,
		bson.M{"messageid": messageID, "userid": userID})
	return err
}
