package models

// Reward grants a Discord role when a member reaches Level. One role per level.
type Reward struct {
	Level    int    `gorm:"primaryKey;autoIncrement:false" json:"level"`
	RoleID   string `gorm:"not null" json:"role_id"`
	RoleName string `json:"role_name"`
}
