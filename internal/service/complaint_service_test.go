package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/getaroom/rental-service/internal/auth"
	"github.com/getaroom/rental-service/internal/domain"
	"github.com/getaroom/rental-service/internal/events"
)

func TestFileComplaint(t *testing.T) {
	ctx := context.Background()
	tenant := auth.TenantPrincipal(&domain.Tenant{
		Account: domain.Account{ID: "tenant-1", Name: "Thea"},
	})
	target := domain.ComplaintTarget{ID: "landlord-1", Name: "Lars", Type: domain.PartyLandlord}

	t.Run("files a pending complaint dated now", func(t *testing.T) {
		repo := newFakeComplaintRepo()
		dispatcher := &recordingDispatcher{}
		svc := NewComplaintService(repo, dispatcher)

		before := time.Now()
		complaint, err := svc.File(ctx, tenant, target, "deposit never returned")
		require.NoError(t, err)
		require.Equal(t, domain.ComplaintStatusPending, complaint.Status)
		require.Equal(t, "tenant-1", complaint.FiledByID)
		require.False(t, complaint.Date.Before(before))
		require.Len(t, dispatcher.published(events.EventComplaintFiled), 1)
	})

	t.Run("requires a reason", func(t *testing.T) {
		svc := NewComplaintService(newFakeComplaintRepo(), &recordingDispatcher{})

		_, err := svc.File(ctx, tenant, target, "   ")
		require.Error(t, err)
	})

	t.Run("rejects unknown target type", func(t *testing.T) {
		svc := NewComplaintService(newFakeComplaintRepo(), &recordingDispatcher{})

		bad := domain.ComplaintTarget{ID: "x", Name: "y", Type: "Platform"}
		_, err := svc.File(ctx, tenant, bad, "reason")
		require.Error(t, err)
	})

	t.Run("trustees cannot file", func(t *testing.T) {
		svc := NewComplaintService(newFakeComplaintRepo(), &recordingDispatcher{})

		trustee := auth.TrusteePrincipal(&domain.TrusteeView{ID: "grant-1"})
		_, err := svc.File(ctx, trustee, target, "reason")
		require.Error(t, err)
	})
}

func TestComplaintListings(t *testing.T) {
	ctx := context.Background()
	repo := newFakeComplaintRepo()
	svc := NewComplaintService(repo, &recordingDispatcher{})

	tenant := auth.TenantPrincipal(&domain.Tenant{
		Account: domain.Account{ID: "tenant-1", Name: "Thea"},
	})
	landlord := auth.LandlordPrincipal(&domain.Landlord{
		Account: domain.Account{ID: "landlord-1", Name: "Lars"},
	})

	_, err := svc.File(ctx, tenant, domain.ComplaintTarget{
		ID: "landlord-1", Name: "Lars", Type: domain.PartyLandlord,
	}, "deposit never returned")
	require.NoError(t, err)

	t.Run("filer sees own complaints", func(t *testing.T) {
		list, err := svc.ListFiled(ctx, tenant)
		require.NoError(t, err)
		require.Len(t, list, 1)
		// Filed complaints stay Pending; no operation resolves them.
		require.Equal(t, domain.ComplaintStatusPending, list[0].Status)
	})

	t.Run("target sees complaints against them", func(t *testing.T) {
		list, err := svc.ListAgainst(ctx, landlord)
		require.NoError(t, err)
		require.Len(t, list, 1)
	})
}
