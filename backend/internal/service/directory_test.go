package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/romashorodok/content-site/backend/internal/model"
	"github.com/romashorodok/content-site/pkg/cmsclient"
	"github.com/romashorodok/content-site/pkg/natsinfo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedChains(s *testServices) {
	s.cms.SetCollection(cmsclient.ENDPOINT_SUPPORTED_CHAINS,
		cmsclient.DirectoryRecord{ID: 1, Slug: "ethereum", Name: "Ethereum", Category: "EVM", Order: 1,
			Tags: []cmsclient.Taxonomy{{Name: "Layer 1", Slug: "layer-1"}}},
		cmsclient.DirectoryRecord{ID: 2, Slug: "arbitrum", Name: "Arbitrum", Category: "EVM", Order: 2,
			Tags: []cmsclient.Taxonomy{{Name: "Rollup", Slug: "rollup"}}},
		cmsclient.DirectoryRecord{ID: 3, Slug: "solana", Name: "Solana", Category: "SVM", Order: 3},
	)
}

func titles(entries []model.DirectoryEntry) []string {
	result := make([]string, 0, len(entries))
	for _, entry := range entries {
		result = append(result, entry.Title)
	}
	return result
}

func TestDirectorySearch(t *testing.T) {
	s := newTestServices(t)
	seedChains(s)
	ctx := context.Background()

	entries, err := s.directories.Search(ctx, model.DIRECTORY_CHAINS, "", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Ethereum", "Arbitrum", "Solana"}, titles(entries))

	entries, err = s.directories.Search(ctx, model.DIRECTORY_CHAINS, "ROLL", "all")
	require.NoError(t, err)
	assert.Equal(t, []string{"Arbitrum"}, titles(entries))

	entries, err = s.directories.Search(ctx, model.DIRECTORY_CHAINS, "", "svm")
	require.NoError(t, err)
	assert.Equal(t, []string{"Solana"}, titles(entries))

	entries, err = s.directories.Search(ctx, model.DIRECTORY_CHAINS, "bitcoin", "")
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.NotNil(t, entries)

	categories, err := s.directories.Categories(ctx, model.DIRECTORY_CHAINS)
	require.NoError(t, err)
	assert.Equal(t, []string{"EVM", "SVM"}, categories)

	assert.Equal(t, 1, s.cms.RequestCount(cmsclient.ENDPOINT_SUPPORTED_CHAINS), "one snapshot load")
}

func TestDirectoryGet(t *testing.T) {
	s := newTestServices(t)
	seedChains(s)
	ctx := context.Background()

	entry, err := s.directories.Get(ctx, model.DIRECTORY_CHAINS, "solana")
	require.NoError(t, err)
	assert.Equal(t, "Solana", entry.Title)

	_, err = s.directories.Get(ctx, model.DIRECTORY_CHAINS, "bitcoin")
	assert.ErrorIs(t, err, ErrEntryNotFound)

	_, err = s.directories.Get(ctx, "exchanges", "solana")
	assert.ErrorIs(t, err, ErrUnknownDirectoryKind)
}

func TestDirectoryWalksAllPages(t *testing.T) {
	s := newTestServices(t)
	records := make([]any, 0, cmsclient.MAX_PAGE_SIZE+5)
	for i := 0; i < cmsclient.MAX_PAGE_SIZE+5; i++ {
		records = append(records, cmsclient.DirectoryRecord{ID: i + 1, Slug: "wallet-" + strconv.Itoa(i), Title: "Wallet", Order: i})
	}
	s.cms.SetCollection(cmsclient.ENDPOINT_SUPPORTED_WALLETS, records...)

	entries, err := s.directories.Entries(context.Background(), model.DIRECTORY_WALLETS)
	require.NoError(t, err)
	assert.Len(t, entries, cmsclient.MAX_PAGE_SIZE+5)
	assert.Equal(t, 2, s.cms.RequestCount(cmsclient.ENDPOINT_SUPPORTED_WALLETS))
}

func TestDirectorySnapshotExpiresAndInvalidates(t *testing.T) {
	s := newTestServices(t)
	seedChains(s)
	ctx := context.Background()

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.directories.snapshots.now = func() time.Time { return now }

	_, err := s.directories.Entries(ctx, model.DIRECTORY_CHAINS)
	require.NoError(t, err)

	now = now.Add(30 * time.Second)
	_, err = s.directories.Entries(ctx, model.DIRECTORY_CHAINS)
	require.NoError(t, err)
	assert.Equal(t, 1, s.cms.RequestCount(cmsclient.ENDPOINT_SUPPORTED_CHAINS))

	now = now.Add(time.Minute)
	_, err = s.directories.Entries(ctx, model.DIRECTORY_CHAINS)
	require.NoError(t, err)
	assert.Equal(t, 2, s.cms.RequestCount(cmsclient.ENDPOINT_SUPPORTED_CHAINS), "expired snapshot reloads")

	require.NoError(t, s.invalidator.Invalidate(natsinfo.CMSEvent{Model: CMS_MODEL_SUPPORTED_CHAIN}))
	_, err = s.directories.Entries(ctx, model.DIRECTORY_CHAINS)
	require.NoError(t, err)
	assert.Equal(t, 3, s.cms.RequestCount(cmsclient.ENDPOINT_SUPPORTED_CHAINS))
}

func TestFAQSearch(t *testing.T) {
	s := newTestServices(t)
	s.cms.SetCollection(cmsclient.ENDPOINT_FAQ,
		cmsclient.FAQSectionRecord{ID: 2, Slug: "fees", Title: "Fees", Order: 2, Items: []cmsclient.FAQItemRecord{
			{ID: 3, Question: "How much does a swap cost?", Answer: "A flat **0.3%** fee."},
		}},
		cmsclient.FAQSectionRecord{ID: 1, Slug: "general", Title: "General", Order: 1, Items: []cmsclient.FAQItemRecord{
			{ID: 1, Question: "What is the app?", Answer: "A wallet."},
			{ID: 2, Question: "Is it free?", Answer: "Yes, apart from network fee costs."},
		}},
	)
	ctx := context.Background()

	sections, err := s.faq.Search(ctx, "")
	require.NoError(t, err)
	require.Len(t, sections, 2)
	assert.Equal(t, "general", sections[0].Slug)
	assert.Contains(t, string(sections[1].Items[0].Answer.HTML), "<strong>0.3%</strong>")

	sections, err = s.faq.Search(ctx, "fee")
	require.NoError(t, err)
	require.Len(t, sections, 2)
	assert.Len(t, sections[0].Items, 1)
	assert.Equal(t, "Is it free?", sections[0].Items[0].Question)

	sections, err = s.faq.Search(ctx, "wallet")
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, "What is the app?", sections[0].Items[0].Question)

	all, err := s.faq.Sections(ctx)
	require.NoError(t, err)
	assert.Len(t, all[0].Items, 2, "search leaves the snapshot intact")
}

func TestLegalDocument(t *testing.T) {
	s := newTestServices(t)
	s.cms.SetCollection(cmsclient.ENDPOINT_TERMS_SECTIONS,
		cmsclient.LegalSectionRecord{ID: 2, Title: "Liability", Content: "We are not liable.", Order: 2},
		cmsclient.LegalSectionRecord{ID: 1, Slug: "acceptance", Title: "Acceptance", Content: "By using the site...", Order: 1},
	)
	ctx := context.Background()

	document, err := s.legal.Document(ctx, model.LEGAL_TERMS)
	require.NoError(t, err)
	require.Len(t, document.Sections, 2)
	assert.Equal(t, []model.Heading{
		{ID: "acceptance", Text: "Acceptance", Level: 2},
		{ID: "liability", Text: "Liability", Level: 2},
	}, document.Contents)

	_, err = s.legal.Document(ctx, "cookies")
	assert.ErrorIs(t, err, ErrUnknownLegalDocumentKind)

	_, err = s.legal.Document(ctx, model.LEGAL_PRIVACY)
	assert.ErrorIs(t, err, cmsclient.ErrNotFound)
}
