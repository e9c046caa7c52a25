package models

// ConfigEntry is an opaque key/value row, used to persist per-person OAuth
// refresh tokens among other runtime settings.
type ConfigEntry struct {
	Key   string `json:"key" gorm:"primaryKey"`
	Value string `json:"value"`
}

// TableName specifies the table name for ConfigEntry Model
func (ConfigEntry) TableName() string {
	return "config"
}
