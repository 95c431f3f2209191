package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fernwood-labs/donorpulse/internal/model"
	"github.com/fernwood-labs/donorpulse/internal/service"
)

// stubStorage satisfies service.Storage for engine tests; only the
// evaluation feed is exercised.
type stubStorage struct {
	histories []model.DonorHistory
	err       error
}

func (s *stubStorage) SaveOrganization(context.Context, *model.Organization) error { return nil }
func (s *stubStorage) GetOrganization(context.Context, string) (*model.Organization, error) {
	return nil, nil
}
func (s *stubStorage) ListOrganizations(context.Context) ([]model.Organization, error) {
	return nil, nil
}
func (s *stubStorage) SaveDonors(context.Context, []model.Donor) error { return nil }
func (s *stubStorage) GetDonorByID(context.Context, string) (*model.Donor, error) {
	return nil, nil
}
func (s *stubStorage) GetDonorByName(context.Context, string, string) (*model.Donor, error) {
	return nil, nil
}
func (s *stubStorage) ListDonors(context.Context, service.DonorFilter) ([]model.Donor, error) {
	return nil, nil
}
func (s *stubStorage) SaveDonations(context.Context, []model.Donation) error { return nil }
func (s *stubStorage) GetDonationsByDonor(context.Context, string) ([]model.Donation, error) {
	return nil, nil
}
func (s *stubStorage) GetDonorHistories(context.Context, string) ([]model.DonorHistory, error) {
	return s.histories, s.err
}
func (s *stubStorage) Migrate(context.Context) error { return nil }
func (s *stubStorage) Close() error                  { return nil }

func TestEngineBuildReport(t *testing.T) {
	store := &stubStorage{
		histories: []model.DonorHistory{
			donorHistory("d1", "Alice Adams", giftDaysAgo("d1", 800, 100)),
			donorHistory("d2", "Grace Park",
				giftDaysAgo("d2", 400, 2000),
				giftDaysAgo("d2", 200, 2000),
				giftDaysAgo("d2", 10, 2000),
			),
		},
	}

	engine, err := New(store)
	require.NoError(t, err)

	report, err := engine.BuildReport(context.Background(), "org-1", reportNow)
	require.NoError(t, err)

	assert.Equal(t, "org-1", report.OrganizationID)
	assert.Equal(t, reportNow, report.SnapshotAt)
	assert.Equal(t, 2, report.Summary.TotalDonors)
	assert.Equal(t, 1, report.Summary.MajorDonors)
	require.Len(t, report.AtRiskDonors, 1)
	assert.Equal(t, "Alice Adams", report.AtRiskDonors[0].DonorName)
}

func TestEngineBuildReport_Validation(t *testing.T) {
	engine, err := New(&stubStorage{})
	require.NoError(t, err)

	t.Run("missing organization", func(t *testing.T) {
		_, err := engine.BuildReport(context.Background(), "", reportNow)
		assert.Error(t, err)
	})

	t.Run("missing instant", func(t *testing.T) {
		_, err := engine.BuildReport(context.Background(), "org-1", time.Time{})
		assert.Error(t, err)
	})
}

func TestEngineBuildReport_StorageError(t *testing.T) {
	wantErr := errors.New("database locked")
	engine, err := New(&stubStorage{err: wantErr})
	require.NoError(t, err)

	_, err = engine.BuildReport(context.Background(), "org-1", reportNow)
	require.Error(t, err)
	assert.ErrorIs(t, err, wantErr)
}

func TestNewWithConfig_RejectsInvalid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RiskThreshold = "bogus"

	_, err := NewWithConfig(&stubStorage{}, cfg)
	assert.Error(t, err)
}
