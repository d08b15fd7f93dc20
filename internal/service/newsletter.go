package service

import "inkwell/internal/models"

// NewsletterService records newsletter signups. Subscribing twice with
// the same address is idempotent.
type NewsletterService struct {
	subs SubscriberRepository
}

// NewNewsletterService creates a NewsletterService backed by the given repository.
func NewNewsletterService(subs SubscriberRepository) *NewsletterService {
	return &NewsletterService{subs: subs}
}

type subscribeInput struct {
	Email string `json:"email" validate:"required,email"`
}

// Subscribe validates the address and records it.
func (s *NewsletterService) Subscribe(email string) (*models.Subscriber, error) {
	if err := validateInput(subscribeInput{Email: email}); err != nil {
		return nil, err
	}

	sub, err := s.subs.Subscribe(email)
	if err != nil {
		return nil, models.NewPersistenceError(err)
	}
	return sub, nil
}

// Subscribers returns all recorded signups for admin export.
func (s *NewsletterService) Subscribers() ([]models.Subscriber, error) {
	subs, err := s.subs.List()
	if err != nil {
		return nil, models.NewPersistenceError(err)
	}
	return subs, nil
}
