package service

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	appErrors "github.com/unclebandit/fitkitchen-backend/internal/errors"
	"github.com/unclebandit/fitkitchen-backend/internal/model"
	"github.com/unclebandit/fitkitchen-backend/internal/queue"
	"github.com/unclebandit/fitkitchen-backend/internal/repository"
)

// CustomerService applies CRUD semantics on top of a CustomerStore.
//
// Every operation loads the full collection and, for mutations, saves it
// back before returning. mu serializes the whole load-mutate-save cycle so
// concurrent requests in one process cannot lose each other's writes.
type CustomerService struct {
	Store repository.CustomerStore
	// Events is optional; mutations are announced on Topic when set.
	Events queue.Queue
	Topic  string

	mu sync.Mutex
}

func NewCustomerService(store repository.CustomerStore, events queue.Queue, topic string) *CustomerService {
	return &CustomerService{Store: store, Events: events, Topic: topic}
}

// ListAll returns every customer in stored order.
func (s *CustomerService) ListAll() ([]model.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.Store.Load()
	if err != nil {
		return nil, err
	}
	return doc.Customers, nil
}

func (s *CustomerService) Get(id int) (*model.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.Store.Load()
	if err != nil {
		return nil, err
	}

	idx := doc.IndexOf(id)
	if idx < 0 {
		return nil, appErrors.NewCustomerNotFound(id)
	}
	c := doc.Customers[idx]
	return &c, nil
}

// Create stores payload under a freshly allocated ID and returns the stored record.
func (s *CustomerService) Create(payload model.CustomerPayload) (*model.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.Store.Load()
	if err != nil {
		return nil, err
	}

	c := payload.WithID(repository.NextID(doc.Customers))
	doc.Customers = append(doc.Customers, c)

	if err := s.Store.Save(doc); err != nil {
		return nil, err
	}

	s.publish(model.CustomerCreated, c.ID, &c)
	return &c, nil
}

// Update fully replaces the record with the given ID, keeping the ID.
func (s *CustomerService) Update(id int, payload model.CustomerPayload) (*model.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.Store.Load()
	if err != nil {
		return nil, err
	}

	idx := doc.IndexOf(id)
	if idx < 0 {
		return nil, appErrors.NewCustomerNotFound(id)
	}

	c := payload.WithID(id)
	doc.Customers[idx] = c

	if err := s.Store.Save(doc); err != nil {
		return nil, err
	}

	s.publish(model.CustomerUpdated, id, &c)
	return &c, nil
}

func (s *CustomerService) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.Store.Load()
	if err != nil {
		return err
	}

	idx := doc.IndexOf(id)
	if idx < 0 {
		return appErrors.NewCustomerNotFound(id)
	}

	doc.Customers = append(doc.Customers[:idx], doc.Customers[idx+1:]...)

	if err := s.Store.Save(doc); err != nil {
		return err
	}

	s.publish(model.CustomerDeleted, id, nil)
	return nil
}

// publish is best-effort: the change is already persisted, so a failure is
// only logged.
func (s *CustomerService) publish(eventType string, id int, c *model.Customer) {
	if s.Events == nil {
		return
	}

	event := model.CustomerEvent{
		EventID:    uuid.NewString(),
		Type:       eventType,
		CustomerID: id,
		Customer:   c,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.Events.Publish(s.Topic, event); err != nil {
		log.Printf("⚠️ Failed to publish %s for customer %d: %v", eventType, id, err)
	}
}
