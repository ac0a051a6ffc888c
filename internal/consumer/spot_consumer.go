package consumer

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/spotstay/booking-service/internal/dto"
	"github.com/spotstay/booking-service/internal/models"
	"github.com/spotstay/booking-service/internal/repository"
	"github.com/spotstay/booking-service/pkg/validation"
)

const (
	RoutingSpotCreated = "spot.created"
	RoutingSpotUpdated = "spot.updated"
	RoutingSpotDeleted = "spot.deleted"
)

// SpotConsumer keeps the local spots table in step with the listing service.
type SpotConsumer struct {
	spots     repository.SpotRepository
	validator *validation.Validator
}

func NewSpotConsumer(spots repository.SpotRepository, v *validation.Validator) *SpotConsumer {
	return &SpotConsumer{spots: spots, validator: v}
}

// Start listens for messages until the channel closes or ctx is done.
func (sc *SpotConsumer) Start(ctx context.Context, msgs <-chan amqp.Delivery) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				log.Println("[SpotConsumer] context cancelled, stopping consumer")
				return
			case msg, ok := <-msgs:
				if !ok {
					log.Println("[SpotConsumer] channel closed, stopping consumer")
					return
				}
				sc.handleMessage(ctx, msg)
			}
		}
	}()
}

func (sc *SpotConsumer) handleMessage(ctx context.Context, msg amqp.Delivery) {
	var payload dto.SpotMessage
	if err := json.Unmarshal(msg.Body, &payload); err != nil {
		log.Printf("[SpotConsumer] failed to unmarshal: %v", err)
		msg.Nack(false, false)
		return
	}

	switch msg.RoutingKey {
	case RoutingSpotCreated, RoutingSpotUpdated:
		if err := sc.validator.Validate(&payload); err != nil {
			log.Printf("[SpotConsumer] invalid spot payload: %v", err)
			msg.Nack(false, false)
			return
		}
		spot := toSpot(payload)
		if err := sc.spots.Upsert(ctx, &spot); err != nil {
			log.Printf("[SpotConsumer] failed to upsert spot %d: %v", payload.ID, err)
			msg.Nack(false, true) // requeue
			return
		}
		log.Printf("[SpotConsumer] synced spot %d (owner %d)", spot.ID, spot.OwnerID)

	case RoutingSpotDeleted:
		if payload.ID == 0 {
			log.Println("[SpotConsumer] spot.deleted without id")
			msg.Nack(false, false)
			return
		}
		if err := sc.spots.Delete(ctx, payload.ID); err != nil {
			log.Printf("[SpotConsumer] failed to delete spot %d: %v", payload.ID, err)
			msg.Nack(false, true)
			return
		}
		log.Printf("[SpotConsumer] removed spot %d", payload.ID)

	default:
		log.Printf("[SpotConsumer] ignoring routing key %q", msg.RoutingKey)
	}

	msg.Ack(false)
}

func toSpot(m dto.SpotMessage) models.Spot {
	return models.Spot{
		ID:          m.ID,
		OwnerID:     m.OwnerID,
		Address:     m.Address,
		City:        m.City,
		State:       m.State,
		Country:     m.Country,
		Lat:         m.Lat,
		Lng:         m.Lng,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
	}
}
