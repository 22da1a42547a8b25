package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeAttentionRegistered = "attention.registered"
	EventTypeClientCreated       = "client.created"
	EventTypeClientDeleted       = "client.deleted"
)

type AttentionRegisteredEvent struct {
	BaseEvent
	AttentionID     int64  `json:"attention_id"`
	ClientID        int64  `json:"client_id"`
	Plate           string `json:"plate"`
	AmountCLP       int64  `json:"amount_clp"`
	CertificatePath string `json:"certificate_path"`
}

func NewAttentionRegisteredEvent(attentionID, clientID int64, plate string, amountCLP int64, certificatePath string) *AttentionRegisteredEvent {
	return &AttentionRegisteredEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeAttentionRegistered,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"attention_id":     attentionID,
				"client_id":        clientID,
				"plate":            plate,
				"amount_clp":       amountCLP,
				"certificate_path": certificatePath,
			},
		},
		AttentionID:     attentionID,
		ClientID:        clientID,
		Plate:           plate,
		AmountCLP:       amountCLP,
		CertificatePath: certificatePath,
	}
}

type ClientCreatedEvent struct {
	BaseEvent
	ClientID int64  `json:"client_id"`
	Plate    string `json:"plate"`
}

func NewClientCreatedEvent(clientID int64, plate string) *ClientCreatedEvent {
	return &ClientCreatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeClientCreated,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"client_id": clientID,
				"plate":     plate,
			},
		},
		ClientID: clientID,
		Plate:    plate,
	}
}

type ClientDeletedEvent struct {
	BaseEvent
	ClientID int64 `json:"client_id"`
}

func NewClientDeletedEvent(clientID int64) *ClientDeletedEvent {
	return &ClientDeletedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeClientDeleted,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"client_id": clientID,
			},
		},
		ClientID: clientID,
	}
}
