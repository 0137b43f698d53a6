package models

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"unique;not null"          json:"username"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Role         string `gorm:"not null;default:user"    json:"role"`
}

// Product is a row of the fashion table. SKU is stored upper-cased.
type Product struct {
	SKU         string `gorm:"column:sku;primaryKey"            json:"sku"`
	ProductName string `gorm:"column:product_name;not null"     json:"productName"`
	Price       int64  `gorm:"column:price;not null"            json:"price"`
	IsAvailable bool   `gorm:"column:is_available;not null"     json:"isAvailable"`
}

func (Product) TableName() string { return "fashion" }
