package store

import (
	"errors"

	"billing-app/internal/domain/users"

	"gorm.io/gorm"
)

func (s *Store) UserByID(id uint) (*users.User, error) {
	var user users.User
	err := s.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) UserByStripeCustomerID(customerID string) (*users.User, error) {
	if customerID == "" {
		return nil, nil
	}
	var user users.User
	err := s.db.Where("stripe_customer_id = ?", customerID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// SetStripeCustomerID persists ONLY the customer id column.
func (s *Store) SetStripeCustomerID(userID uint, customerID string) error {
	return s.db.Model(&users.User{}).Where("id = ?", userID).
		Update("stripe_customer_id", customerID).Error
}

func (s *Store) AllUsers() ([]users.User, error) {
	var list []users.User
	err := s.db.Order("created_at DESC").Find(&list).Error
	return list, err
}

func (s *Store) CountUsers() (int64, error) {
	var count int64
	err := s.db.Model(&users.User{}).Count(&count).Error
	return count, err
}
