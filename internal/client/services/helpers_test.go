package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrijs2005/coinkeeper/internal/client/models"
	"github.com/dmitrijs2005/coinkeeper/internal/client/repositories/usercoins"
	"github.com/dmitrijs2005/coinkeeper/internal/common"
	"github.com/dmitrijs2005/coinkeeper/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// fakeRemote keeps documents in memory and counts calls so tests can
// assert how often the backend was touched.
type fakeRemote struct {
	mu   sync.Mutex
	docs map[string]*models.CollectionDocument

	fetchErr   error
	replaceErr error

	fetchCalls   int
	replaceCalls int
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{docs: map[string]*models.CollectionDocument{}}
}

func (f *fakeRemote) Fetch(ctx context.Context, userID string) (*models.CollectionDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetchCalls++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	doc, ok := f.docs[userID]
	if !ok {
		return nil, nil
	}
	// Deep copy, as a real transport would.
	cp := *doc
	cp.Coins = append([]models.RemoteCoin(nil), doc.Coins...)
	return &cp, nil
}

func (f *fakeRemote) Replace(ctx context.Context, userID string, doc *models.CollectionDocument) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replaceCalls++
	if f.replaceErr != nil {
		return f.replaceErr
	}
	cp := *doc
	cp.Coins = append([]models.RemoteCoin(nil), doc.Coins...)
	f.docs[userID] = &cp
	return nil
}

func (f *fakeRemote) Ping(ctx context.Context) error { return nil }

func (f *fakeRemote) document(userID string) *models.CollectionDocument {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.docs[userID]
}

// fakeMetadata is an in-memory metadata.Repository.
type fakeMetadata struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newFakeMetadata() *fakeMetadata {
	return &fakeMetadata{data: map[string][]byte{}}
}

func (f *fakeMetadata) Get(ctx context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.data[key], nil
}

func (f *fakeMetadata) Set(ctx context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	return nil
}

func (f *fakeMetadata) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	return nil
}

func (f *fakeMetadata) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data = map[string][]byte{}
	return nil
}

// fakeCatalog resolves only the coins it was seeded with.
type fakeCatalog struct {
	coins map[string]*models.CatalogCoin
}

func newFakeCatalog(coins ...*models.CatalogCoin) *fakeCatalog {
	m := make(map[string]*models.CatalogCoin, len(coins))
	for _, c := range coins {
		m[c.ID] = c
	}
	return &fakeCatalog{coins: m}
}

func (f *fakeCatalog) GetCoinByID(ctx context.Context, id string) (*models.CatalogCoin, error) {
	c, ok := f.coins[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return c, nil
}

func (f *fakeCatalog) GetCountries(ctx context.Context) ([]*models.Country, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeCatalog) GetPeriodsByCountry(ctx context.Context, countryID string) ([]*models.Period, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeCatalog) GetRulersByPeriod(ctx context.Context, periodID string) ([]*models.Ruler, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeCatalog) GetCoinsByRuler(ctx context.Context, rulerID string) ([]*models.CatalogCoin, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeCatalog) SearchCoins(ctx context.Context, query string, limit int) ([]*models.CatalogCoin, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeCatalog) UpsertCountry(ctx context.Context, c *models.Country) error {
	return errors.New("not implemented")
}

func (f *fakeCatalog) UpsertPeriod(ctx context.Context, p *models.Period) error {
	return errors.New("not implemented")
}

func (f *fakeCatalog) UpsertRuler(ctx context.Context, r *models.Ruler) error {
	return errors.New("not implemented")
}

func (f *fakeCatalog) UpsertCoin(ctx context.Context, c *models.CatalogCoin) error {
	return errors.New("not implemented")
}

// env bundles everything a service test needs.
type env struct {
	userID     string
	coins      *usercoins.MemoryRepository
	meta       *fakeMetadata
	remote     *fakeRemote
	collection CollectionService
	sync       SyncService
}

func newEnv(catalogCoins ...*models.CatalogCoin) *env {
	return newEnvSharing(newFakeRemote(), catalogCoins...)
}

// newEnvSharing simulates a second device syncing against the same backend.
func newEnvSharing(remote *fakeRemote, catalogCoins ...*models.CatalogCoin) *env {
	e := &env{
		userID: "u1",
		coins:  usercoins.NewMemoryRepository(),
		meta:   newFakeMetadata(),
		remote: remote,
	}
	logger := testLogger()
	e.collection = NewCollectionService(e.userID, e.coins, newFakeCatalog(catalogCoins...), e.remote, logger)
	e.sync = NewSyncService(e.userID, e.coins, e.meta, e.remote, logger)
	return e
}

func strPtr(s string) *string        { return &s }
func floatPtr(f float64) *float64    { return &f }
func timePtr(t time.Time) *time.Time { return &t }
