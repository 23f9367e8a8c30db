package entities

type NewsSource struct {
	Name            string `gorm:"primaryKey"`
	FeedType        string
	PrimaryURL      string
	BackupURL       string
	RateLimitMillis int64 `gorm:"not null; default:60000"`
}
