package ledger

import (
	"sync"
	"time"

	"cloud.google.com/go/civil"
	"github.com/Lixing-Zhang/shop-backend/internal/models"
	"github.com/brianvoe/gofakeit/v7"
)

// Clock provides current time (for testability).
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// GeneratorConfig sizes the synthetic sales history.
type GeneratorConfig struct {
	SeedCount        int
	SeedDays         int
	SeedMaxQuantity  int
	BurstCount       int
	BurstDays        int
	BurstMaxQuantity int
	// RandomSeed of 0 picks a random seed.
	RandomSeed uint64
}

// DefaultGeneratorConfig mirrors the reference deployment.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		SeedCount:        5000,
		SeedDays:         360,
		SeedMaxQuantity:  100,
		BurstCount:       20,
		BurstDays:        30,
		BurstMaxQuantity: 50,
	}
}

// Generator fabricates sales records: a year of history at startup and a
// short burst for every newly created product.
type Generator struct {
	mu    sync.Mutex
	faker *gofakeit.Faker
	clock Clock
	cfg   GeneratorConfig
}

// NewGenerator creates a generator. A nil clock uses the system time.
func NewGenerator(cfg GeneratorConfig, clock Clock) *Generator {
	if clock == nil {
		clock = systemClock{}
	}
	return &Generator{
		faker: gofakeit.New(cfg.RandomSeed),
		clock: clock,
		cfg:   cfg,
	}
}

// History generates SeedCount records over randomly chosen products, dated
// within the trailing SeedDays.
func (g *Generator) History(products []models.Product) []models.SalesRecord {
	if len(products) == 0 || g.cfg.SeedCount <= 0 {
		return nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.clock.Now()
	records := make([]models.SalesRecord, 0, g.cfg.SeedCount)
	for i := 0; i < g.cfg.SeedCount; i++ {
		p := products[g.faker.IntRange(0, len(products)-1)]
		records = append(records, g.record(p, g.cfg.SeedMaxQuantity, g.cfg.SeedDays, now))
	}
	return records
}

// Burst generates BurstCount recent records for a single product.
func (g *Generator) Burst(p models.Product) []models.SalesRecord {
	if g.cfg.BurstCount <= 0 {
		return nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.clock.Now()
	records := make([]models.SalesRecord, 0, g.cfg.BurstCount)
	for i := 0; i < g.cfg.BurstCount; i++ {
		records = append(records, g.record(p, g.cfg.BurstMaxQuantity, g.cfg.BurstDays, now))
	}
	return records
}

func (g *Generator) record(p models.Product, maxQty, days int, now time.Time) models.SalesRecord {
	if maxQty < 1 {
		maxQty = 1
	}
	if days < 0 {
		days = 0
	}
	qty := g.faker.IntRange(1, maxQty)
	date := civil.DateOf(now.AddDate(0, 0, -g.faker.IntRange(0, days)))
	return models.NewSalesRecord(p.ID, p.Price, qty, date)
}
