package db

import (
	"log"

	"github.com/dgraph-io/ristretto"

	"fintrack-server/src/models"
)

// Categories are global seed data and read on almost every dashboard load,
// so the whole list is cached as a single entry.
const categoryCacheKey = "categories:all"

var Cache *ristretto.Cache

func InitCache() {
	var err error
	Cache, err = ristretto.NewCache(&ristretto.Config{
		NumCounters: 1000, // number of keys to track frequency of
		MaxCost:     1000,
		BufferItems: 64, // number of keys per Get buffer
	})
	if err != nil {
		log.Fatalf("failed to initialize cache: %v", err)
	}
}

func GetCachedCategories() ([]models.Category, bool) {
	if Cache == nil {
		return nil, false
	}
	value, found := Cache.Get(categoryCacheKey)
	if !found {
		return nil, false
	}
	categories, ok := value.([]models.Category)
	return categories, ok
}

func SetCachedCategories(categories []models.Category) {
	if Cache == nil {
		return
	}
	Cache.Set(categoryCacheKey, categories, 1)
	Cache.Wait()
}
