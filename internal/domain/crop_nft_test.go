package domain

import (
	"testing"

	"github.com/agrichain-lab/backend/internal/entity"
	"github.com/agrichain-lab/backend/internal/model"
	"github.com/agrichain-lab/backend/internal/repository"
	"github.com/agrichain-lab/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newCropNFTDomainForTest() (*cropNFTDomain, *greenPointsDomain) {
	pointsDomain := NewGreenPointsDomain(
		repository.NewPointAccountRepository(), &testutil.MockPublisher{}, &testutil.MockRedisClient{})

	cropDomain := NewCropNFTDomain(
		repository.NewCropBatchRepository(),
		repository.NewCropEngagementRepository(),
		repository.NewCropAccountRepository(),
		pointsDomain,
		&testutil.MockPublisher{},
	)

	return cropDomain, pointsDomain
}

func Test_cropNFTDomain_CreateBatch(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	cropDomain, _ := newCropNFTDomainForTest()

	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	resp, err := cropDomain.CreateBatch(ctxUser1, &model.CreateCropBatchRequest{
		CropType:    "coffee",
		Location:    "Dalat",
		IsOrganic:   true,
		Quantity:    500,
		HarvestDate: "2026-05-01",
	})
	require.NoError(t, err)
	require.NotZero(t, resp.TokenID)

	// Token ids are monotonically increasing.
	resp2, err := cropDomain.CreateBatch(ctxUser1, &model.CreateCropBatchRequest{CropType: "rice"})
	require.NoError(t, err)
	require.Greater(t, resp2.TokenID, resp.TokenID)

	batch, err := cropDomain.Get(ctxUser1, &model.GetCropBatchRequest{TokenID: resp.TokenID})
	require.NoError(t, err)
	require.Equal(t, testutil.User1.ID, batch.FarmerID)
	require.Equal(t, string(entity.StagePlanted), batch.Stage)
	require.Equal(t, uint64(0), batch.Engagement.TotalScans)

	// Cannot create a batch without a crop type.
	_, err = cropDomain.CreateBatch(ctxUser1, &model.CreateCropBatchRequest{})
	require.Equal(t, "Not allow empty crop type", err.Error())

	// Cannot create a batch with a malformed harvest date.
	_, err = cropDomain.CreateBatch(ctxUser1, &model.CreateCropBatchRequest{
		CropType:    "maize",
		HarvestDate: "next spring",
	})
	require.Equal(t, "Invalid harvest date", err.Error())
}

func Test_cropNFTDomain_Scan(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	cropDomain, pointsDomain := newCropNFTDomainForTest()

	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	created, err := cropDomain.CreateBatch(ctxUser1, &model.CreateCropBatchRequest{CropType: "coffee"})
	require.NoError(t, err)

	// Scan successfully, the scanner earns points.
	ctxUser2 := testutil.MockContextWithUserID(ctx, testutil.User2.ID)
	resp, err := cropDomain.Scan(ctxUser2, &model.ScanCropRequest{TokenID: created.TokenID})
	require.NoError(t, err)
	require.Equal(t, uint64(1), resp.TotalScans)

	balance, err := pointsDomain.GetBalance(ctx, &model.GetBalanceRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)
	require.Equal(t, testutil.PointAccount2.Balance+10, balance.Balance)
	require.Equal(t, uint64(1), balance.TotalScans)

	// Cannot scan an unknown token.
	_, err = cropDomain.Scan(ctxUser2, &model.ScanCropRequest{TokenID: 99999})
	require.Equal(t, "Not found crop batch", err.Error())
}

func Test_cropNFTDomain_Rate(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	cropDomain, _ := newCropNFTDomainForTest()

	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	created, err := cropDomain.CreateBatch(ctxUser1, &model.CreateCropBatchRequest{CropType: "coffee"})
	require.NoError(t, err)

	// The first rating sets the average directly.
	ctxUser2 := testutil.MockContextWithUserID(ctx, testutil.User2.ID)
	resp, err := cropDomain.Rate(ctxUser2, &model.RateCropRequest{TokenID: created.TokenID, Rating: 4})
	require.NoError(t, err)
	require.Equal(t, uint64(1), resp.TotalRatings)
	require.Equal(t, uint64(400), resp.AverageRating)

	// Subsequent ratings move the running mean.
	resp, err = cropDomain.Rate(ctxUser1, &model.RateCropRequest{TokenID: created.TokenID, Rating: 2})
	require.NoError(t, err)
	require.Equal(t, uint64(2), resp.TotalRatings)
	require.Equal(t, uint64(300), resp.AverageRating)

	// Ratings outside 1..5 are rejected.
	_, err = cropDomain.Rate(ctxUser2, &model.RateCropRequest{TokenID: created.TokenID, Rating: 0})
	require.Error(t, err)
	_, err = cropDomain.Rate(ctxUser2, &model.RateCropRequest{TokenID: created.TokenID, Rating: 6})
	require.Error(t, err)
}

func Test_cropNFTDomain_Share(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	cropDomain, pointsDomain := newCropNFTDomainForTest()

	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	created, err := cropDomain.CreateBatch(ctxUser1, &model.CreateCropBatchRequest{CropType: "coffee"})
	require.NoError(t, err)

	ctxUser2 := testutil.MockContextWithUserID(ctx, testutil.User2.ID)
	resp, err := cropDomain.Share(ctxUser2, &model.ShareCropRequest{TokenID: created.TokenID})
	require.NoError(t, err)
	require.Equal(t, uint64(1), resp.SocialShares)

	balance, err := pointsDomain.GetBalance(ctx, &model.GetBalanceRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)
	require.Equal(t, testutil.PointAccount2.Balance+20, balance.Balance)
	require.Equal(t, uint64(1), balance.TotalShares)
}

func Test_cropNFTDomain_FarmerOnlyUpdates(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	cropDomain, _ := newCropNFTDomainForTest()

	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	created, err := cropDomain.CreateBatch(ctxUser1, &model.CreateCropBatchRequest{CropType: "coffee"})
	require.NoError(t, err)

	// The farmer moves the batch along its stages.
	_, err = cropDomain.UpdateStage(ctxUser1, &model.UpdateCropStageRequest{
		TokenID: created.TokenID,
		Stage:   string(entity.StageGrowing),
	})
	require.NoError(t, err)

	// Somebody else cannot.
	ctxUser2 := testutil.MockContextWithUserID(ctx, testutil.User2.ID)
	_, err = cropDomain.UpdateStage(ctxUser2, &model.UpdateCropStageRequest{
		TokenID: created.TokenID,
		Stage:   string(entity.StageHarvested),
	})
	require.Equal(t, "Permission denied", err.Error())

	_, err = cropDomain.AddCertification(ctxUser2, &model.AddCropCertificationRequest{
		TokenID:       created.TokenID,
		Certification: "EU-Organic",
	})
	require.Equal(t, "Permission denied", err.Error())

	// Certifications accumulate.
	_, err = cropDomain.AddCertification(ctxUser1, &model.AddCropCertificationRequest{
		TokenID:       created.TokenID,
		Certification: "EU-Organic",
	})
	require.NoError(t, err)

	_, err = cropDomain.AddCertification(ctxUser1, &model.AddCropCertificationRequest{
		TokenID:       created.TokenID,
		Certification: "Fairtrade",
	})
	require.NoError(t, err)

	batch, err := cropDomain.Get(ctxUser1, &model.GetCropBatchRequest{TokenID: created.TokenID})
	require.NoError(t, err)
	require.Equal(t, string(entity.StageGrowing), batch.Stage)
	require.Equal(t, []string{"EU-Organic", "Fairtrade"}, batch.Certifications)
}

func Test_cropNFTDomain_GetList(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	cropDomain, _ := newCropNFTDomainForTest()

	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	ctxUser2 := testutil.MockContextWithUserID(ctx, testutil.User2.ID)

	_, err := cropDomain.CreateBatch(ctxUser1, &model.CreateCropBatchRequest{CropType: "coffee"})
	require.NoError(t, err)
	_, err = cropDomain.CreateBatch(ctxUser1, &model.CreateCropBatchRequest{CropType: "rice"})
	require.NoError(t, err)
	_, err = cropDomain.CreateBatch(ctxUser2, &model.CreateCropBatchRequest{CropType: "mango"})
	require.NoError(t, err)

	resp, err := cropDomain.GetList(ctx, &model.GetListCropBatchRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Batches, 3)

	resp, err = cropDomain.GetList(ctx, &model.GetListCropBatchRequest{FarmerID: testutil.User1.ID})
	require.NoError(t, err)
	require.Len(t, resp.Batches, 2)
}
