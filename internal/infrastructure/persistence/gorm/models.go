// Package gorm provides GORM model definitions for the application
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ItemModel represents the GORM model for pantry items
type ItemModel struct {
	ID        uuid.UUID       `gorm:"type:char(36);primaryKey"`
	Owner     string          `gorm:"type:varchar(64);not null;index"`
	Name      string          `gorm:"type:varchar(200);not null;index"`
	Quantity  decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0"`
	Unit      string          `gorm:"type:varchar(32)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RecipeModel represents the GORM model for recipes. Ingredients are kept
// as a JSON document on the row.
type RecipeModel struct {
	ID          uuid.UUID               `gorm:"type:char(36);primaryKey"`
	Owner       string                  `gorm:"type:varchar(64);not null;index"`
	Name        string                  `gorm:"type:varchar(200);not null"`
	Ingredients JSONList[IngredientDoc] `gorm:"type:json"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IngredientDoc is one stored recipe ingredient
type IngredientDoc struct {
	ItemID uuid.UUID       `json:"item_id"`
	Amount decimal.Decimal `json:"amount"`
}

// PlanModel represents the GORM model for one planned day
type PlanModel struct {
	ID        uuid.UUID              `gorm:"type:char(36);primaryKey"`
	Owner     string                 `gorm:"type:varchar(64);not null;uniqueIndex:idx_plans_owner_date"`
	Date      time.Time              `gorm:"type:date;not null;uniqueIndex:idx_plans_owner_date"`
	IsDone    bool                   `gorm:"not null;default:false;index"`
	Entries   JSONList[PlanEntryDoc] `gorm:"type:json"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PlanEntryDoc is one stored plan entry
type PlanEntryDoc struct {
	ID       uuid.UUID `json:"id"`
	RecipeID uuid.UUID `json:"recipe_id"`
	IsDone   bool      `json:"is_done"`
}

// ShoppingListModel represents the GORM model for shopping lists
type ShoppingListModel struct {
	ID        uuid.UUID         `gorm:"type:char(36);primaryKey"`
	Owner     string            `gorm:"type:varchar(64);not null;index"`
	Name      string            `gorm:"type:varchar(200);not null"`
	CreatedOn time.Time         `gorm:"not null;index"`
	IsDone    bool              `gorm:"not null;default:false;index"`
	Mandatory JSONList[LineDoc] `gorm:"type:json"`
	Optional  JSONList[LineDoc] `gorm:"type:json"`
	UpdatedAt time.Time
}

// LineDoc is one stored shopping-list line
type LineDoc struct {
	ItemID      uuid.UUID       `json:"item_id"`
	Amount      decimal.Decimal `json:"amount"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	IsDone      bool            `json:"is_done"`
	Recipes     []uuid.UUID     `json:"recipes"`
}

// MustBuyFlagModel represents the GORM model for must-buy flags
type MustBuyFlagModel struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey"`
	Owner     string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_must_buy_owner_item"`
	ItemID    uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:idx_must_buy_owner_item"`
	CreatedAt time.Time
}

// JSONList stores a slice as a JSON array column
type JSONList[T any] []T

// Scan implements the sql.Scanner interface
func (l *JSONList[T]) Scan(value interface{}) error {
	if value == nil {
		*l = JSONList[T]{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into JSONList", value)
	}
}

// Value implements the driver.Valuer interface
func (l JSONList[T]) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal([]T(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// BeforeCreate hook for ItemModel
func (m *ItemModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for RecipeModel
func (m *RecipeModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for PlanModel
func (m *PlanModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for ShoppingListModel
func (m *ShoppingListModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for MustBuyFlagModel
func (m *MustBuyFlagModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (ItemModel) TableName() string {
	return "items"
}

func (RecipeModel) TableName() string {
	return "recipes"
}

func (PlanModel) TableName() string {
	return "plans"
}

func (ShoppingListModel) TableName() string {
	return "shopping_lists"
}

func (MustBuyFlagModel) TableName() string {
	return "must_buy_flags"
}

// AllModels lists the models managed by AutoMigrate
func AllModels() []interface{} {
	return []interface{}{
		&ItemModel{},
		&RecipeModel{},
		&PlanModel{},
		&ShoppingListModel{},
		&MustBuyFlagModel{},
	}
}
