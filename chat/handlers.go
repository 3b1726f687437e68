package chat

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"agora/db"
	"agora/middleware"
	"agora/models"
	"agora/rdx"
	"agora/utils"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// WebSocketHandler upgrades the connection, replays recent history, and joins
// the client to the room.
func WebSocketHandler(hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		room := ps.ByName("chatid")
		userID := utils.GetUserIDFromRequest(r)
		if userID == "" {
			// browsers cannot set Authorization on WebSocket requests, so
			// the token rides in the query string instead
			if claims, err := middleware.ValidateJWT("Bearer " + r.URL.Query().Get("token")); err == nil {
				userID = claims.UserID
			}
		}
		if userID == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if !isParticipant(userID, room) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("chat: upgrade:", err)
			return
		}
		client := &Client{
			Conn:   conn,
			Send:   make(chan []byte, 256),
			Room:   room,
			UserID: userID,
		}

		// seed before registering: once the hub owns the client it may close
		// Send on unregister, so no other goroutine is allowed to write it
		seedHistory(client, recentMessages(room, 30))

		hub.register <- client
		go writePump(client)
		go readPump(client, hub)
	}
}

// seedHistory buffers stored messages onto the client's send queue, oldest
// first. Frames beyond the buffer are dropped rather than blocking.
func seedHistory(client *Client, msgs []models.Message) {
	for _, m := range msgs {
		out := outboundPayload{
			Action:    "chat",
			ID:        m.MessageID,
			Room:      m.ChatID,
			SenderID:  m.UserID,
			Content:   m.Content,
			Timestamp: m.SentAt.Unix(),
		}
		data, err := json.Marshal(out)
		if err != nil {
			continue
		}
		select {
		case client.Send <- data:
		default:
			return
		}
	}
}

func isParticipant(userID, chatID string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	n, _ := db.ChatsCollection.CountDocuments(ctx, bson.M{"chatid": chatID, "participants": userID})
	return n > 0
}

func recentMessages(chatID string, limit int64) []models.Message {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "sentAt", Value: -1}}).
		SetLimit(limit)

	msgs, err := utils.FindAndDecode[models.Message](ctx, db.MessagesCollection, bson.M{"chatid": chatID}, opts)
	if err != nil {
		log.Println("chat: history:", err)
		return nil
	}
	// reverse into chronological order
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs
}

// CreateChat opens (or returns) the conversation between the caller and one
// other user.
func CreateChat(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var body struct {
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.UserID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "userId required")
		return
	}
	if body.UserID == userID {
		utils.RespondWithError(w, http.StatusBadRequest, "Cannot chat with yourself")
		return
	}

	var existing models.Chat
	err := db.ChatsCollection.FindOne(ctx, bson.M{
		"participants": bson.M{"$all": bson.A{userID, body.UserID}},
	}).Decode(&existing)
	if err == nil {
		utils.RespondWithJSON(w, http.StatusOK, map[string]any{"status": "success", "chat": existing})
		return
	}

	chat := models.Chat{
		ChatID:       utils.NewID("chat"),
		Participants: []string{userID, body.UserID},
		CreatedAt:    time.Now(),
	}
	if _, err := db.ChatsCollection.InsertOne(ctx, chat); err != nil {
		log.Printf("chat: create: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create chat")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, map[string]any{"status": "success", "chat": chat})
}

// ListChats returns the caller's conversations, most recently active first.
func ListChats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	opts := options.Find().SetSort(bson.D{{Key: "lastActivity", Value: -1}})
	chats, err := utils.FindAndDecode[models.Chat](ctx, db.ChatsCollection, bson.M{"participants": userID}, opts)
	if err != nil {
		log.Printf("chat: list: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch chats")
		return
	}
	if chats == nil {
		chats = []models.Chat{}
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"status": "success", "chats": chats})
}

// GetMessages returns a page of stored history. Messages still sitting in the
// Redis buffer are appended so callers see writes before the flush runs.
func GetMessages(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	chatID := ps.ByName("chatid")
	if !isParticipant(userID, chatID) {
		utils.RespondWithError(w, http.StatusForbidden, "Not a participant")
		return
	}

	skip, limit := utils.ParsePagination(r, 50, 200)
	opts := options.Find().
		SetSort(bson.D{{Key: "sentAt", Value: 1}}).
		SetSkip(skip).
		SetLimit(limit)

	msgs, err := utils.FindAndDecode[models.Message](ctx, db.MessagesCollection, bson.M{"chatid": chatID}, opts)
	if err != nil {
		log.Printf("chat: messages: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch messages")
		return
	}
	if msgs == nil {
		msgs = []models.Message{}
	}

	if buffered, err := rdx.Conn.LRange(ctx, "chat:"+chatID+":messages", 0, -1).Result(); err == nil {
		msgs = mergeBuffered(msgs, buffered)
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"status": "success", "messages": msgs})
}

// mergeBuffered appends Redis-buffered frames to the stored page, skipping
// IDs Mongo already returned. The flush worker inserts before it deletes the
// buffer key, so a message can briefly exist in both places.
func mergeBuffered(msgs []models.Message, buffered []string) []models.Message {
	seen := make(map[string]bool, len(msgs))
	for _, m := range msgs {
		seen[m.MessageID] = true
	}
	for _, raw := range buffered {
		var m models.Message
		if json.Unmarshal([]byte(raw), &m) != nil || seen[m.MessageID] {
			continue
		}
		seen[m.MessageID] = true
		msgs = append(msgs, m)
	}
	return msgs
}
