package domain

import (
	"time"
)

// CREATE TABLE public.products (
//     id               BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     product_id       BIGINT UNIQUE,
//     product_name     TEXT,
//     product_category TEXT,
//     unit             TEXT,
//     normal_price     NUMERIC,
//     quantity         NUMERIC,
//     created_at       TIMESTAMPTZ DEFAULT NOW()
// );

type Product struct {
	ID              uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID       uint64    `gorm:"column:product_id;uniqueIndex" json:"product_id"`
	ProductName     string    `gorm:"column:product_name;type:text" json:"product_name"`
	ProductCategory string    `gorm:"column:product_category;type:text" json:"product_category"`
	Unit            string    `gorm:"column:unit;type:text" json:"unit"`
	NormalPrice     float64   `gorm:"column:normal_price;type:numeric" json:"normal_price"`
	Quantity        float64   `gorm:"column:quantity;type:numeric" json:"quantity"`
	CreatedAt       time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Product) TableName() string {
	return "products"
}
