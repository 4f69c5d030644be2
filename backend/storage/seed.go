package storage

import (
	_ "embed"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"coursehub/backend/models"
)

//go:embed seed/catalog.yaml
var seedCatalog []byte

type seedData struct {
	Courses []models.Course `yaml:"courses"`
	Reviews []models.Review `yaml:"reviews"`
}

func loadSeed() (*seedData, error) {
	var data seedData
	if err := yaml.Unmarshal(seedCatalog, &data); err != nil {
		return nil, fmt.Errorf("failed to parse seed catalog: %w", err)
	}
	return &data, nil
}

// InitSampleData seeds courses and reviews whose keys are absent. Keys that
// already exist are left alone, so it is safe to call on every start.
func (g *Gateway) InitSampleData() error {
	data, err := loadSeed()
	if err != nil {
		return err
	}

	seeded, err := g.seedKey(KeyCourses, data.Courses)
	if err != nil {
		return err
	}
	if seeded {
		g.log.Info("seeded sample courses", zap.Int("count", len(data.Courses)))
	}

	seeded, err = g.seedKey(KeyReviews, data.Reviews)
	if err != nil {
		return err
	}
	if seeded {
		g.log.Info("seeded sample reviews", zap.Int("count", len(data.Reviews)))
	}
	return nil
}

func (g *Gateway) seedKey(key string, v any) (bool, error) {
	_, ok, err := g.store.Get(key)
	if err != nil {
		return false, fmt.Errorf("failed to check %s: %w", key, err)
	}
	if ok {
		return false, nil
	}
	if err := g.write("initSampleData", key, "Could not seed sample data", v); err != nil {
		return false, err
	}
	return true, nil
}
