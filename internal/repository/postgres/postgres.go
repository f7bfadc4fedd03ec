package postgres

import (
	"database/sql"

	"campus-events-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.EventRepository
	repository.RegistrationRepository
	repository.CredentialRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		EventRepository:        NewEventRepository(db),
		RegistrationRepository: NewRegistrationRepository(db),
		CredentialRepository:   NewCredentialRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
