package kb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickdesk/concierge/internal/common"
	"github.com/quickdesk/concierge/internal/interfaces"
	"github.com/quickdesk/concierge/internal/models"
	"github.com/quickdesk/concierge/internal/storage/badger"
)

const sampleHTML = `<html><body>
<section>
<h2>Opening Hours</h2>
<p>We are open daily from 10 am to 10 pm. Walk-ins are welcome on weekdays.</p>
</section>
<section>
<h2>Pricing</h2>
<p>A 60 minute massage costs 250 AED. We accept Visa and Mastercard.</p>
</section>
</body></html>`

func newTestService(t *testing.T) (interfaces.KnowledgeService, interfaces.StorageManager, *common.Config) {
	t.Helper()

	logger := common.GetLogger()
	manager, err := badger.NewManager(logger, &common.BadgerConfig{Path: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { manager.Close() })

	config := common.NewDefaultConfig()
	config.Ingest.FixturePath = "testdata/does-not-exist.html"

	return NewService(manager, config, logger), manager, config
}

func createTenant(t *testing.T, manager interfaces.StorageManager) *models.Tenant {
	t.Helper()

	tenant := &models.Tenant{
		ID:      common.NewTenantID(),
		Name:    "Serenity Spa",
		Email:   "owner@example.com",
		Website: "https://example.com",
	}
	require.NoError(t, manager.TenantStorage().SaveTenant(context.Background(), tenant))
	return tenant
}

func TestIngestAndSearch(t *testing.T) {
	svc, manager, _ := newTestService(t)
	tenant := createTenant(t, manager)
	ctx := context.Background()

	result, err := svc.Ingest(ctx, tenant.ID, sampleHTML)
	require.NoError(t, err)
	assert.Greater(t, result.Chunks, 0)

	count, err := manager.ChunkStorage().CountChunks(ctx, tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, result.Chunks, count)

	results, err := svc.Search(ctx, tenant.ID, "what are your opening hours", 3)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Contains(t, results[0].Text, "10 am to 10 pm")
}

func TestIngestReplacesPreviousChunks(t *testing.T) {
	svc, manager, _ := newTestService(t)
	tenant := createTenant(t, manager)
	ctx := context.Background()

	_, err := svc.Ingest(ctx, tenant.ID, sampleHTML)
	require.NoError(t, err)

	second, err := svc.Ingest(ctx, tenant.ID, "<p>Only this now.</p>")
	require.NoError(t, err)

	count, err := manager.ChunkStorage().CountChunks(ctx, tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, second.Chunks, count)
}

func TestIngestUnknownTenant(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Ingest(context.Background(), "tenant_missing", sampleHTML)
	assert.ErrorIs(t, err, ErrTenantNotFound)
}

func TestIngestMissingFixture(t *testing.T) {
	svc, manager, _ := newTestService(t)
	tenant := createTenant(t, manager)

	// Empty body falls back to the fixture, which does not exist here
	_, err := svc.Ingest(context.Background(), tenant.ID, "")
	assert.ErrorIs(t, err, ErrFixtureUnavailable)
}

func TestIngestNoUsableText(t *testing.T) {
	svc, manager, _ := newTestService(t)
	tenant := createTenant(t, manager)

	_, err := svc.Ingest(context.Background(), tenant.ID, "<script>var x = 1;</script>")
	assert.ErrorIs(t, err, ErrNoChunks)
}

func TestSearchEmptyKnowledgeBase(t *testing.T) {
	svc, manager, _ := newTestService(t)
	tenant := createTenant(t, manager)

	results, err := svc.Search(context.Background(), tenant.ID, "opening hours", 3)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchUnknownTenant(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Search(context.Background(), "tenant_missing", "anything", 3)
	assert.ErrorIs(t, err, ErrTenantNotFound)
}

func TestSearchDefaultTopK(t *testing.T) {
	svc, manager, config := newTestService(t)
	tenant := createTenant(t, manager)
	ctx := context.Background()

	_, err := svc.Ingest(ctx, tenant.ID, sampleHTML)
	require.NoError(t, err)

	results, err := svc.Search(ctx, tenant.ID, "massage hours", 0)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(results), config.Search.TopK)
}
