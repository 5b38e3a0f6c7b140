package entities

// ApiKey is a kiosk credential tied to a branch entrance device.
type ApiKey struct {
	ApiKey   string `db:"id"`
	BranchID string `db:"branch_id"`
	Label    string `db:"label"`
	Status   bool   `db:"status"`
}
