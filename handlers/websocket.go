package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"server/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	cmap "github.com/orcaman/concurrent-map/v2"
)

// Owner-facing views subscribe here for the lifetime of the view and get a
// push whenever the session state changes (login/logout), instead of acting
// on a stale session.

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// SendSocketFunc returns true if data was successfully sent
type SendSocketFunc func([]byte) bool
type ConnectedClient struct {
	fun SendSocketFunc
}

// ConnectedClients is needed as an owner may have more than one view open
type ConnectedClients []*ConnectedClient

var ConnectedOwners = cmap.New[ConnectedClients]()

type SessionEvent struct {
	Event  string `json:"event"` // "login" or "logout"
	UserID uint64 `json:"user_id"`
}

func ownerSocketID(userID uint64) string {
	return strconv.FormatUint(userID, 10)
}

func addClient(id string, c *ConnectedClient) {
	ConnectedOwners.Upsert(id, ConnectedClients{c}, func(exist bool, valueInMap, newValue ConnectedClients) ConnectedClients {
		if exist {
			return append(valueInMap, c)
		}
		return newValue
	})
}

func removeClient(id string, c *ConnectedClient) {
	ConnectedOwners.Upsert(id, ConnectedClients{}, func(exist bool, valueInMap, newValue ConnectedClients) ConnectedClients {
		if !exist {
			return newValue
		}
		for _, oc := range valueInMap {
			if oc == c {
				continue
			}
			newValue = append(newValue, oc)
		}
		return newValue
	})
}

// NotifySessionChange pushes a session event to every view the owner has
// open. Failed sends only mark that connection dead.
func NotifySessionChange(userID uint64, event string) {
	data, err := json.Marshal(SessionEvent{Event: event, UserID: userID})
	if err != nil {
		return
	}
	clients, ok := ConnectedOwners.Get(ownerSocketID(userID))
	if !ok {
		return
	}
	for _, client := range clients {
		client.fun(data)
	}
}

func SessionEvents(c *gin.Context, user *models.User) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Print("upgrade:", err)
		return
	}
	defer conn.Close()

	// Setup client
	isConnected := true
	id := ownerSocketID(user.ID)
	client := ConnectedClient{}
	client.fun = func(data []byte) bool {
		if !isConnected {
			return false
		}
		err := conn.WriteMessage(websocket.TextMessage, data)
		if err != nil {
			log.Println("write err:", err)
			isConnected = false
			return false
		}
		return true
	}
	addClient(id, &client)
	defer removeClient(id, &client)
	// Main read cycle - nothing to process beyond keep-alives
	for {
		mt, message, err := conn.ReadMessage()
		if err != nil {
			isConnected = false
			break
		}
		if string(message) == "ping" {
			conn.WriteMessage(mt, []byte("pong"))
		}
	}
}
