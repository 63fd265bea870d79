package models

// User is an account registered with the service.
// Password holds whatever the registration path stored (a bcrypt hash) and is never serialized.
type User struct {
	ID       int    `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name     string `gorm:"size:64;not null" json:"name"`
	Email    string `gorm:"size:255;index" json:"email"`
	IsActive bool   `gorm:"not null" json:"isActive"`
	Password string `gorm:"size:255" json:"-"`
}

// TableName pins the mirror table name.
func (User) TableName() string {
	return "users"
}
