package sources

import (
	"pocket-news/models/entities"
	"pocket-news/utils/databases"
)

func New(db databases.SqlConnection) *Impl {
	return &Impl{db: db}
}

func (repo *Impl) GetSources() ([]entities.NewsSource, error) {
	var newsSources []entities.NewsSource
	response := repo.db.GetDB().Model(&entities.NewsSource{}).Find(&newsSources)
	return newsSources, response.Error
}

func (repo *Impl) GetSource(name string) (entities.NewsSource, error) {
	var source entities.NewsSource
	result := repo.db.GetDB().Where("name = ?", name).First(&source)

	return source, result.Error
}

func (repo *Impl) Create(source entities.NewsSource) error {
	return repo.db.GetDB().Create(&source).Error
}

func (repo *Impl) Count() int64 {
	count := new(int64)
	repo.db.GetDB().Model(&entities.NewsSource{}).Count(count)

	return *count
}
