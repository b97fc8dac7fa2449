package store

import (
	"errors"

	"billing-app/internal/domain/plans"

	"gorm.io/gorm"
)

// ActivePlans returns the publicly listable plans in display order.
func (s *Store) ActivePlans() ([]plans.Plan, error) {
	var list []plans.Plan
	err := s.db.Where("is_active = ?", true).
		Order("sort_order ASC, id ASC").
		Find(&list).Error
	return list, err
}

// AllPlans returns every plan, active or not, in display order.
func (s *Store) AllPlans() ([]plans.Plan, error) {
	var list []plans.Plan
	err := s.db.Order("sort_order ASC, id ASC").Find(&list).Error
	return list, err
}

func (s *Store) PlanByID(id uint) (*plans.Plan, error) {
	var plan plans.Plan
	err := s.db.First(&plan, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (s *Store) PlanBySlug(slug string) (*plans.Plan, error) {
	var plan plans.Plan
	err := s.db.Where("slug = ?", slug).First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// PlanByPriceID resolves a plan from either of its provider price ids and
// reports which billing interval the id belongs to.
func (s *Store) PlanByPriceID(priceID string) (*plans.Plan, string, error) {
	if priceID == "" {
		return nil, "", nil
	}
	var plan plans.Plan
	err := s.db.Where("stripe_price_monthly_id = ? OR stripe_price_yearly_id = ?", priceID, priceID).
		First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", err
	}
	return &plan, plan.MatchPriceID(priceID), nil
}

// SlugTaken checks slug uniqueness across ALL plans, active or not.
// excludeID ignores the plan being edited.
func (s *Store) SlugTaken(slug string, excludeID uint) (bool, error) {
	var count int64
	q := s.db.Model(&plans.Plan{}).Where("slug = ?", slug)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) CreatePlan(plan *plans.Plan) error {
	return s.db.Create(plan).Error
}

func (s *Store) SavePlan(plan *plans.Plan) error {
	return s.db.Save(plan).Error
}

// DeactivatePlan is the soft delete: the row stays for historical
// subscriptions, it just disappears from public listings.
func (s *Store) DeactivatePlan(id uint) error {
	return s.db.Model(&plans.Plan{}).Where("id = ?", id).
		Update("is_active", false).Error
}
