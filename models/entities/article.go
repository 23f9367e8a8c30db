package entities

type Article struct {
	Title      string `json:"title"`
	URL        string `json:"url"`
	Source     string `json:"source"`
	Timestamp  int64  `json:"timestamp"`
	Author     string `json:"author,omitempty"`
	CoverImage string `json:"coverImage,omitempty"`
}
