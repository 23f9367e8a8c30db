package sources

import (
	"pocket-news/models/entities"
	"pocket-news/utils/databases"
)

type Repository interface {
	GetSources() ([]entities.NewsSource, error)
	GetSource(name string) (entities.NewsSource, error)
	Create(source entities.NewsSource) error
	Count() int64
}

type Impl struct {
	db databases.SqlConnection
}
