// Package store is the typed data-access layer over gorm. Single-row lookups
// return (nil, nil) when no row matches; callers decide whether absence is an
// error in their context.
package store

import (
	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}
