package repository

import (
	"database/sql"
	"fmt"
	"sync"

	appErrors "github.com/unclebandit/fitkitchen-backend/internal/errors"
	"github.com/unclebandit/fitkitchen-backend/internal/model"
)

const pgLocation = "postgres:customers"

const createCustomersTable = `
    CREATE TABLE IF NOT EXISTS customers (
        id           INTEGER PRIMARY KEY,
        position     INTEGER NOT NULL,
        name         TEXT NOT NULL,
        age          INTEGER NOT NULL,
        height       DOUBLE PRECISION NOT NULL,
        weight       DOUBLE PRECISION NOT NULL,
        health_goals TEXT NOT NULL
    )
`

// CustomerPostgresRepository stores the collection in a Postgres table.
// The position column keeps insertion order; Save replaces the table contents
// in one transaction.
type CustomerPostgresRepository struct {
	DB *sql.DB

	mu          sync.Mutex
	initialized bool
}

func NewCustomerPostgresRepository(db *sql.DB) *CustomerPostgresRepository {
	return &CustomerPostgresRepository{DB: db}
}

func (r *CustomerPostgresRepository) EnsureInitialized() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.initialized {
		return nil
	}
	if _, err := r.DB.Exec(createCustomersTable); err != nil {
		return &appErrors.StorageWriteError{Path: pgLocation, Err: fmt.Errorf("create table: %w", err)}
	}
	r.initialized = true
	return nil
}

func (r *CustomerPostgresRepository) Load() (*model.CustomerDocument, error) {
	if err := r.EnsureInitialized(); err != nil {
		return nil, err
	}

	query := `
        SELECT id, name, age, height, weight, health_goals
        FROM customers
        ORDER BY position
    `
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, &appErrors.StorageReadError{Path: pgLocation, Err: err}
	}
	defer rows.Close()

	doc := model.NewCustomerDocument()
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Age, &c.Height, &c.Weight, &c.HealthGoals); err != nil {
			return nil, &appErrors.StorageReadError{Path: pgLocation, Err: err}
		}
		doc.Customers = append(doc.Customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, &appErrors.StorageReadError{Path: pgLocation, Err: err}
	}
	return doc, nil
}

func (r *CustomerPostgresRepository) Save(doc *model.CustomerDocument) error {
	if err := r.EnsureInitialized(); err != nil {
		return err
	}

	tx, err := r.DB.Begin()
	if err != nil {
		return &appErrors.StorageWriteError{Path: pgLocation, Err: err}
	}

	if err := replaceCustomers(tx, doc.Customers); err != nil {
		tx.Rollback()
		return &appErrors.StorageWriteError{Path: pgLocation, Err: err}
	}

	if err := tx.Commit(); err != nil {
		return &appErrors.StorageWriteError{Path: pgLocation, Err: err}
	}
	return nil
}

func replaceCustomers(tx *sql.Tx, customers []model.Customer) error {
	if _, err := tx.Exec(`DELETE FROM customers`); err != nil {
		return err
	}

	query := `
        INSERT INTO customers (id, position, name, age, height, weight, health_goals)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `
	for i, c := range customers {
		if _, err := tx.Exec(query, c.ID, i, c.Name, c.Age, c.Height, c.Weight, c.HealthGoals); err != nil {
			return fmt.Errorf("insert customer %d: %w", c.ID, err)
		}
	}
	return nil
}

var _ CustomerStore = (*CustomerPostgresRepository)(nil)
