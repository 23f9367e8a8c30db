package constants

const (
	ExternalName = "Pocket News"
	InternalName = "pocket-news"
	Version      = "1.0.0"
)
