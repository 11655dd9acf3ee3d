package models

type Admin struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Email    string `gorm:"unique" json:"email"`
	Name     string `json:"name"`
	Approved bool   `json:"approved"`
}
