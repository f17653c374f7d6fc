package services

import (
	"encoding/json"
	"log"
	"sync/atomic"
	"time"

	"organizely/organizer/broker"
	"organizely/organizer/database"
	"organizely/organizer/models"
)

type EventDispatcherServiceInterface interface {
	Start()
	Stop()
	DispatchPendingEvents() error
}

// EventDispatcherService drains undispatched event rows to the broker.
// Events are written in the same transaction as the mutation they describe,
// so a broker outage delays delivery without losing anything.
type EventDispatcherService struct {
	db        *database.Database
	isRunning atomic.Bool
	ticker    *time.Ticker
	done      chan struct{}
}

func NewEventDispatcherService(db *database.Database) *EventDispatcherService {
	return &EventDispatcherService{
		db:     db,
		ticker: time.NewTicker(1 * time.Second),
		done:   make(chan struct{}),
	}
}

func (s *EventDispatcherService) Start() {
	if !s.isRunning.CompareAndSwap(false, true) {
		return
	}
	go s.run()
}

func (s *EventDispatcherService) Stop() {
	if !s.isRunning.CompareAndSwap(true, false) {
		return
	}
	s.ticker.Stop()
	close(s.done)
}

func (s *EventDispatcherService) run() {
	for {
		select {
		case <-s.done:
			return
		case <-s.ticker.C:
			if err := s.DispatchPendingEvents(); err != nil {
				log.Printf("Error dispatching events: %v", err)
			}
		}
	}
}

func (s *EventDispatcherService) DispatchPendingEvents() error {
	var events []models.Event
	if err := s.db.DB.Where("dispatched = ?", false).Find(&events).Error; err != nil {
		return err
	}

	for _, event := range events {
		if err := s.dispatchEvent(event); err != nil {
			log.Printf("Error dispatching event %s: %v", event.ID, err)
			continue
		}
	}

	return nil
}

func (s *EventDispatcherService) dispatchEvent(event models.Event) error {
	var dataMap map[string]interface{}
	if err := json.Unmarshal(event.Data, &dataMap); err != nil {
		log.Printf("Warning: Could not unmarshal event data: %v", err)
		dataMap = make(map[string]interface{})
	}

	payload := map[string]interface{}{
		"type": event.Event,
		"payload": map[string]interface{}{
			"event_id":  event.ID.String(),
			"timestamp": event.Timestamp,
			"type":      event.Event,
			"entity":    event.Entity,
			"data":      dataMap,
		},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	subject := broker.SubjectForEntity(event.Entity)
	if err := broker.PublishMessage(subject, event.Event, string(jsonData)); err != nil {
		return err
	}

	now := time.Now()
	return s.db.DB.Model(&event).Updates(map[string]interface{}{
		"dispatched":    true,
		"dispatched_at": now,
	}).Error
}

var EventDispatcherServiceInstance EventDispatcherServiceInterface
