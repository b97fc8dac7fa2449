package store

import (
	"errors"
	"time"

	"billing-app/internal/domain/subscriptions"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (s *Store) InvoiceByStripeID(invoiceID string) (*subscriptions.Invoice, error) {
	if invoiceID == "" {
		return nil, nil
	}
	var inv subscriptions.Invoice
	err := s.db.Where("stripe_invoice_id = ?", invoiceID).First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// CreateInvoiceIfAbsent inserts the invoice unless a row with the same
// provider invoice id already exists. Reports whether the insert happened.
func (s *Store) CreateInvoiceIfAbsent(inv *subscriptions.Invoice) (bool, error) {
	res := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "stripe_invoice_id"}},
		DoNothing: true,
	}).Create(inv)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *Store) SaveInvoice(inv *subscriptions.Invoice) error {
	return s.db.Save(inv).Error
}

// InvoicesForUser returns the user's billing history, newest first.
func (s *Store) InvoicesForUser(userID uint, limit int) ([]subscriptions.Invoice, error) {
	var list []subscriptions.Invoice
	q := s.db.Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&list).Error
	return list, err
}

func (s *Store) AllInvoices(limit int) ([]subscriptions.Invoice, error) {
	var list []subscriptions.Invoice
	q := s.db.Preload("User").Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&list).Error
	return list, err
}

// PaidRevenue sums AmountPaid over paid invoices, in minor units.
func (s *Store) PaidRevenue() (int64, error) {
	var total int64
	err := s.db.Model(&subscriptions.Invoice{}).
		Where("status = ?", subscriptions.InvoiceStatusPaid).
		Select("COALESCE(SUM(amount_paid), 0)").
		Scan(&total).Error
	return total, err
}

// PaidRevenueSince sums AmountPaid over invoices paid after the cutoff.
func (s *Store) PaidRevenueSince(since time.Time) (int64, error) {
	var total int64
	err := s.db.Model(&subscriptions.Invoice{}).
		Where("status = ? AND created_at >= ?", subscriptions.InvoiceStatusPaid, since).
		Select("COALESCE(SUM(amount_paid), 0)").
		Scan(&total).Error
	return total, err
}
