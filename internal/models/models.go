package models

import (
	"time"
)

// Order statuses as stored in the orders table.
const (
	OrderStatusPending   = "Pending"
	OrderStatusConfirmed = "Confirmed"
	OrderStatusCancelled = "Cancelled"
	OrderStatusCompleted = "Completed"
)

type Order struct {
	ID              uint        `gorm:"primaryKey;autoIncrement"    json:"id"`
	FullName        string      `gorm:"size:100;not null"           json:"full_name"`
	ShippingAddress string      `gorm:"type:text;not null"          json:"shipping_address"`
	MobileNumber    string      `gorm:"size:20;index;not null"      json:"mobile_number"`
	Quantity        int         `gorm:"default:1"                   json:"quantity"`
	TotalPrice      int64       `gorm:"not null"                    json:"total_price"`
	Status          string      `gorm:"size:20;default:Pending"     json:"status"`
	Timestamp       time.Time   `gorm:"index;not null"              json:"timestamp"`
	ConsignmentID   string      `gorm:"size:50"                     json:"consignment_id"`
	CourierStatus   string      `gorm:"size:50"                     json:"courier_status"`
	Items           []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// OrderItem is a snapshot taken at order time. Catalog price changes must
// never alter historical orders, so name and price are copied, not joined.
type OrderItem struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID     uint   `gorm:"index;not null"           json:"order_id"`
	ProductName string `gorm:"size:200;not null"        json:"product_name"`
	Price       int64  `gorm:"not null"                 json:"price"`
	Quantity    int    `gorm:"default:1"                json:"quantity"`
}

type Product struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"size:200;index;not null"  json:"name"`
	Description string    `gorm:"type:text"                json:"description"`
	Price       int64     `gorm:"not null"                 json:"price"`
	OldPrice    int64     `json:"old_price"`
	ImagePath   string    `gorm:"size:500"                 json:"image_path"`
	Stock       int       `gorm:"default:0"                json:"stock"`
	IsActive    bool      `gorm:"default:true"             json:"is_active"`
	Timestamp   time.Time `gorm:"index"                    json:"timestamp"`
}

// Traffic rows are append-only; nothing in the application mutates them.
type Traffic struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	IPAddress string    `gorm:"size:45"                  json:"ip_address"`
	UserAgent string    `gorm:"type:text"                json:"user_agent"`
	Referrer  string    `gorm:"size:500"                 json:"referrer"`
	Path      string    `gorm:"size:500"                 json:"path"`
	Timestamp time.Time `gorm:"index;not null"           json:"timestamp"`
}

// ProductSetting is the shop-wide configuration. Exactly one row exists;
// access goes through the settings service, never a raw table scan.
type ProductSetting struct {
	ID                 uint      `gorm:"primaryKey"         json:"id"`
	ProductName        string    `gorm:"size:200;not null"  json:"product_name"`
	ProductDescription string    `gorm:"type:text;not null" json:"product_description"`
	Price              int64     `gorm:"not null"           json:"price"`
	OldPrice           int64     `gorm:"not null"           json:"old_price"`
	ImagePath          string    `gorm:"size:500"           json:"image_path"`
	LogoPath           string    `gorm:"size:500"           json:"logo_path"`
	GTMID              string    `gorm:"size:50"            json:"gtm_id"`
	PixelID            string    `gorm:"size:50"            json:"pixel_id"`
	ShopName           string    `gorm:"size:100"           json:"shop_name"`
	SupportPhone       string    `gorm:"size:20"            json:"support_phone"`
	WhatsappNumber     string    `gorm:"size:20"            json:"whatsapp_number"`
	FacebookURL        string    `gorm:"size:200"           json:"facebook_url"`
	CourierAPIKey      string    `gorm:"size:100"           json:"-"`
	CourierSecretKey   string    `gorm:"size:100"           json:"-"`
	LandingPageTheme   string    `gorm:"size:50"            json:"landing_page_theme"`
	ThankYouPageTheme  string    `gorm:"size:50"            json:"thank_you_page_theme"`
	VideoURL           string    `gorm:"size:500"           json:"video_url"`
	ProductWeight      string    `gorm:"size:50"            json:"product_weight"`
	DiscountAmount     int64     `gorm:"default:100"        json:"discount_amount"`
	DiscountAmount3    int64     `gorm:"default:200"        json:"discount_amount_3"`
	CustomHeadScript   string    `gorm:"type:text"          json:"custom_head_script"`
	CustomBodyScript   string    `gorm:"type:text"          json:"custom_body_script"`
	UpdatedAt          time.Time `gorm:"index"              json:"updated_at"`
}

type Review struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerName   string    `gorm:"size:100"                 json:"customer_name"`
	Rating         int       `gorm:"default:5"                json:"rating"`
	Comment        string    `gorm:"type:text"                json:"comment"`
	ImagePath      string    `gorm:"size:500"                 json:"image_path"`
	ProfilePicPath string    `gorm:"size:500"                 json:"profile_pic_path"`
	Timestamp      time.Time `gorm:"index"                    json:"timestamp"`
}

type Admin struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"size:80;unique;not null"  json:"username"`
	PasswordHash string `gorm:"size:120;not null"        json:"-"`
}
