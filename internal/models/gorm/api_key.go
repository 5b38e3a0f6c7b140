package gorm

// ApiKey is a kiosk credential. Keys are minted by cmd/api_key_gen and
// looked up on every X-API-Key request.
type ApiKey struct {
	ID       string `gorm:"column:id;primaryKey;type:varchar(64)"`
	BranchID string `gorm:"column:branch_id;type:varchar(30);index"`
	Label    string `gorm:"column:label;type:varchar(100)"`
	Status   bool   `gorm:"column:status;default:true"`
}

func (ApiKey) TableName() string {
	return "api_keys"
}
