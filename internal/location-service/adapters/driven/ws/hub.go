package ws

import (
	"encoding/json"
	"sync"

	"trackmate/internal/location-service/core/domain/dto"
	"trackmate/internal/mylogger"
)

// Hub groups live subscribers by trip and fans ingested samples out to them.
// Delivery is best-effort: a slow subscriber drops messages instead of
// blocking the ingest path.
type Hub struct {
	mylog mylogger.Logger
	rooms map[string]map[*Subscriber]struct{}
	mu    sync.RWMutex
}

type Subscriber struct {
	TripId   string
	Outgoing chan []byte
}

func NewHub(mylog mylogger.Logger) *Hub {
	return &Hub{
		mylog: mylog,
		rooms: make(map[string]map[*Subscriber]struct{}),
	}
}

func (h *Hub) Subscribe(tripId string) *Subscriber {
	sub := &Subscriber{
		TripId:   tripId,
		Outgoing: make(chan []byte, 100),
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rooms[tripId] == nil {
		h.rooms[tripId] = make(map[*Subscriber]struct{})
	}
	h.rooms[tripId][sub] = struct{}{}
	return sub
}

func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if room, exists := h.rooms[sub.TripId]; exists {
		if _, member := room[sub]; member {
			delete(room, sub)
			close(sub.Outgoing)
		}
		if len(room) == 0 {
			delete(h.rooms, sub.TripId)
		}
	}
}

func (h *Hub) Broadcast(tripId string, location dto.ParticipantLocationDto) {
	message, err := json.Marshal(map[string]interface{}{
		"type":                "participantLocation",
		"tripId":              tripId,
		"participantLocation": location,
	})
	if err != nil {
		h.mylog.Error("Failed to encode location broadcast", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.rooms[tripId] {
		select {
		case sub.Outgoing <- message:
		default:
			// subscriber is not keeping up, drop
		}
	}
}

func (h *Hub) SubscriberCount(tripId string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[tripId])
}
