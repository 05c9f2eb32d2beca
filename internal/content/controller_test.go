package content

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/moizhassan7/crisp-cms/internal/store"
	"github.com/moizhassan7/crisp-cms/pkg/metrics"
)

func newTestController[T any](t *testing.T, res Resource[T]) (*Controller[T], *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	ctrl := NewController(res, st, zap.NewNop(), metrics.NewCollector())
	return ctrl, st
}

func TestCreateFiltersBlankListEntries(t *testing.T) {
	ctrl, st := newTestController(t, ServiceResource())
	ctx := context.Background()

	id, err := ctrl.Create(ctx, Service{
		Title:       "Managed IT",
		Description: "Support",
		IconName:    "Server",
		Features:    StringList{"  monitoring ", "", "   ", "helpdesk"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := ctrl.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, StringList{"monitoring", "helpdesk"}, got.Features)

	// The stored document carries timestamps stamped by the submit.
	doc, err := st.Get(ctx, CollectionServices, id)
	require.NoError(t, err)
	require.NotEmpty(t, doc["createdAt"])
	require.NotEmpty(t, doc["updatedAt"])
}

func TestCreateRejectsMissingRequiredFields(t *testing.T) {
	ctrl, st := newTestController(t, ServiceResource())
	ctx := context.Background()

	_, err := ctrl.Create(ctx, Service{Description: "no title"})
	require.ErrorIs(t, err, ErrValidation)

	records, err := st.List(ctx, CollectionServices, store.ListOptions{})
	require.NoError(t, err)
	require.Empty(t, records, "a rejected submit must not write")
}

func TestGalleryRequiresUploadedImage(t *testing.T) {
	ctrl, st := newTestController(t, GalleryImageResource())
	ctx := context.Background()

	_, err := ctrl.Create(ctx, GalleryImage{Title: "Office", AltText: "Our office"})
	require.ErrorIs(t, err, ErrValidation)
	require.Contains(t, err.Error(), "upload an image")

	records, err := st.List(ctx, CollectionGallery, store.ListOptions{})
	require.NoError(t, err)
	require.Empty(t, records)

	id, err := ctrl.Create(ctx, GalleryImage{
		Title:    "Office",
		AltText:  "Our office",
		ImageURL: "https://objects.test/gallery/1_office.png",
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)
}

func TestDefaultsPersistUnchanged(t *testing.T) {
	ctrl, _ := newTestController(t, PricingPlanResource())
	ctx := context.Background()

	draft := ctrl.NewDraft()
	draft.Name = "Starter"
	draft.Description = "Entry plan"
	draft.AssociatedServices[0].Label = "Helpdesk"

	id, err := ctrl.Create(ctx, draft)
	require.NoError(t, err)

	got, err := ctrl.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Wifi", got.IconName)
	require.Equal(t, "from-blue-500 to-indigo-500", got.Color)
	require.Equal(t, []AssociatedService{{IconName: "Network", Label: "Helpdesk"}}, got.AssociatedServices)
}

func TestPricingNormalizationDropsUnlabeledServices(t *testing.T) {
	ctrl, _ := newTestController(t, PricingPlanResource())
	ctx := context.Background()

	id, err := ctrl.Create(ctx, PricingPlan{
		Name:        "Business",
		Description: "Full coverage",
		Features:    StringList{"support", ""},
		AssociatedServices: []AssociatedService{
			{IconName: "Network", Label: "  "},
			{IconName: "Shield", Label: "Security"},
		},
	})
	require.NoError(t, err)

	got, err := ctrl.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, StringList{"support"}, got.Features)
	require.Equal(t, []AssociatedService{{IconName: "Shield", Label: "Security"}}, got.AssociatedServices)
}

func TestUpdateRewritesWholeDocument(t *testing.T) {
	ctrl, _ := newTestController(t, ProjectResource())
	ctx := context.Background()

	id, err := ctrl.Create(ctx, Project{
		Title:        "Network rollout",
		Category:     "Infrastructure",
		Technologies: StringList{"Cisco", "MikroTik"},
	})
	require.NoError(t, err)

	got, err := ctrl.Get(ctx, id)
	require.NoError(t, err)
	got.Technologies = StringList{"Cisco", "", "Ubiquiti"}
	require.NoError(t, ctrl.Update(ctx, id, got))

	updated, err := ctrl.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, StringList{"Cisco", "Ubiquiti"}, updated.Technologies)
}

func TestUpdateMissingDocument(t *testing.T) {
	ctrl, _ := newTestController(t, ProjectResource())

	err := ctrl.Update(context.Background(), "no-such-id", Project{Title: "x", Category: "y"})
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestDelete(t *testing.T) {
	ctrl, _ := newTestController(t, TeamMemberResource())
	ctx := context.Background()

	id, err := ctrl.Create(ctx, TeamMember{Name: "Ali", Role: "Engineer"})
	require.NoError(t, err)

	require.NoError(t, ctrl.Delete(ctx, id))
	_, err = ctrl.Get(ctx, id)
	require.ErrorIs(t, err, store.ErrNotFound)

	require.ErrorIs(t, ctrl.Delete(ctx, id), store.ErrNotFound)
}

func TestSingletonSeedsOnMissing(t *testing.T) {
	ctrl, _ := newTestController(t, AboutResource())
	ctx := context.Background()

	about, exists, err := ctrl.GetSingleton(ctx)
	require.NoError(t, err)
	require.False(t, exists)
	require.Empty(t, about.MainTitle)
	require.NotNil(t, about.Values)

	about.MainTitle = "About us"
	require.NoError(t, ctrl.UpsertSingleton(ctx, about))

	got, exists, err := ctrl.GetSingleton(ctx)
	require.NoError(t, err)
	require.True(t, exists)
	require.Equal(t, "About us", got.MainTitle)
}

func TestSingletonKeepsDefaultRecords(t *testing.T) {
	ctrl, _ := newTestController(t, AboutResource())
	ctx := context.Background()

	draft := ctrl.NewDraft()
	draft.MainTitle = "About us"
	draft.Values = append(draft.Values, AboutResource().ListDefaults["values"].(AboutValue))
	draft.Stats = append(draft.Stats, AboutResource().ListDefaults["stats"].(AboutStat))

	require.NoError(t, ctrl.UpsertSingleton(ctx, draft))

	got, _, err := ctrl.GetSingleton(ctx)
	require.NoError(t, err)
	require.Len(t, got.Values, 1, "a freshly added record persists even with blank text fields")
	require.Equal(t, AboutValue{IconName: "Target", Color: "bg-gradient-to-br from-blue-500 to-indigo-600"}, got.Values[0])
	require.Len(t, got.Stats, 1)
	require.Equal(t, AboutStat{IconName: "CheckCircle"}, got.Stats[0])
}

func TestListSkipsUndecodableDocuments(t *testing.T) {
	ctrl, st := newTestController(t, ServiceResource())
	ctx := context.Background()

	_, err := ctrl.Create(ctx, Service{Title: "Good", Description: "ok"})
	require.NoError(t, err)
	_, err = st.Add(ctx, CollectionServices, store.Document{"title": 42})
	require.NoError(t, err)

	entries, err := ctrl.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "Good", entries[0].Item.Title)
}

func TestListOrder(t *testing.T) {
	ctrl, _ := newTestController(t, PricingPlanResource())
	ctx := context.Background()

	for _, plan := range []PricingPlan{
		{Name: "Business", Description: "d", MonthlyPrice: 40000},
		{Name: "Starter", Description: "d", MonthlyPrice: 15000},
		{Name: "Enterprise", Description: "d", MonthlyPrice: 90000},
	} {
		_, err := ctrl.Create(ctx, plan)
		require.NoError(t, err)
	}

	entries, err := ctrl.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.Equal(t, "Starter", entries[0].Item.Name)
	require.Equal(t, "Business", entries[1].Item.Name)
	require.Equal(t, "Enterprise", entries[2].Item.Name)
}
