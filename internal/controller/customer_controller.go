// internal/controller/customer_controller.go
package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	appErrors "github.com/unclebandit/fitkitchen-backend/internal/errors"
	"github.com/unclebandit/fitkitchen-backend/internal/model"
	"github.com/unclebandit/fitkitchen-backend/internal/service"
)

// CustomerService is what the controller needs from the collection service.
type CustomerService interface {
	ListAll() ([]model.Customer, error)
	Get(id int) (*model.Customer, error)
	Create(payload model.CustomerPayload) (*model.Customer, error)
	Update(id int, payload model.CustomerPayload) (*model.Customer, error)
	Delete(id int) error
}

var _ CustomerService = (*service.CustomerService)(nil)

type CustomerController struct {
	CustomerService CustomerService
}

// RegisterRoutes mounts the customer endpoints on r.
func (c *CustomerController) RegisterRoutes(r chi.Router) {
	r.Route("/customers", func(r chi.Router) {
		r.Get("/", c.ListCustomers)
		r.Post("/", c.CreateCustomer)
		r.Get("/{id}", c.GetCustomer)
		r.Put("/{id}", c.UpdateCustomer)
		r.Delete("/{id}", c.DeleteCustomer)
	})
}

func (c *CustomerController) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := c.CustomerService.ListAll()
	if err != nil {
		respondServiceError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, customers)
}

func (c *CustomerController) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := customerID(w, r)
	if !ok {
		return
	}

	customer, err := c.CustomerService.Get(id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, customer)
}

func (c *CustomerController) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	payload, ok := decodePayload(w, r)
	if !ok {
		return
	}

	customer, err := c.CustomerService.Create(payload)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, customer)
}

func (c *CustomerController) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := customerID(w, r)
	if !ok {
		return
	}
	payload, ok := decodePayload(w, r)
	if !ok {
		return
	}

	customer, err := c.CustomerService.Update(id, payload)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, customer)
}

func (c *CustomerController) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := customerID(w, r)
	if !ok {
		return
	}

	if err := c.CustomerService.Delete(id); err != nil {
		respondServiceError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]string{"message": "Customer deleted successfully"})
}

// customerRequest mirrors CustomerPayload with pointers so missing fields
// can be told apart from zero values. Unknown fields, including id, are ignored.
type customerRequest struct {
	Name        *string  `json:"name"`
	Age         *int     `json:"age"`
	Height      *float64 `json:"height"`
	Weight      *float64 `json:"weight"`
	HealthGoals *string  `json:"health_goals"`
}

func (req customerRequest) validate() (model.CustomerPayload, error) {
	var missing []string
	if req.Name == nil {
		missing = append(missing, "name")
	}
	if req.Age == nil {
		missing = append(missing, "age")
	}
	if req.Height == nil {
		missing = append(missing, "height")
	}
	if req.Weight == nil {
		missing = append(missing, "weight")
	}
	if req.HealthGoals == nil {
		missing = append(missing, "health_goals")
	}
	if len(missing) > 0 {
		return model.CustomerPayload{}, fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}

	payload := model.CustomerPayload{
		Name:        *req.Name,
		Age:         *req.Age,
		Height:      *req.Height,
		Weight:      *req.Weight,
		HealthGoals: *req.HealthGoals,
	}
	if err := payload.Validate(); err != nil {
		return model.CustomerPayload{}, err
	}
	return payload, nil
}

// maxBodyBytes caps a customer request body.
const maxBodyBytes = 1 << 20

func decodePayload(w http.ResponseWriter, r *http.Request) (model.CustomerPayload, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)

	var req customerRequest
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			RespondError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return model.CustomerPayload{}, false
		}
		RespondError(w, http.StatusUnprocessableEntity, "invalid request body: "+err.Error())
		return model.CustomerPayload{}, false
	}
	if dec.More() {
		RespondError(w, http.StatusUnprocessableEntity, "invalid request body: unexpected data after JSON object")
		return model.CustomerPayload{}, false
	}

	payload, err := req.validate()
	if err != nil {
		RespondError(w, http.StatusUnprocessableEntity, err.Error())
		return model.CustomerPayload{}, false
	}
	return payload, true
}

func customerID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		RespondError(w, http.StatusUnprocessableEntity, "invalid customer id")
		return 0, false
	}
	return id, true
}

// respondServiceError maps NotFound to 404 and everything else to a generic
// 500; storage details are logged, never returned.
func respondServiceError(w http.ResponseWriter, err error) {
	var notFound *appErrors.ErrCustomerNotFound
	if errors.As(err, &notFound) {
		RespondError(w, http.StatusNotFound, "Customer not found")
		return
	}

	var readErr *appErrors.StorageReadError
	var writeErr *appErrors.StorageWriteError
	switch {
	case errors.As(err, &readErr):
		log.Println("❌ Storage read failed:", err)
	case errors.As(err, &writeErr):
		log.Println("❌ Storage write failed:", err)
	default:
		log.Println("❌ Unexpected error:", err)
	}
	RespondError(w, http.StatusInternalServerError, "internal server error")
}
