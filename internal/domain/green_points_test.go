package domain

import (
	"testing"

	"github.com/agrichain-lab/backend/internal/entity"
	"github.com/agrichain-lab/backend/internal/model"
	"github.com/agrichain-lab/backend/internal/repository"
	"github.com/agrichain-lab/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_greenPointsDomain_Award(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	pointsDomain := NewGreenPointsDomain(
		repository.NewPointAccountRepository(), &testutil.MockPublisher{}, &testutil.MockRedisClient{})

	// Award successfully.
	resp, err := pointsDomain.Award(ctx, &model.AwardPointsRequest{
		UserID: testutil.User1.ID,
		Amount: 10,
		Action: "scan",
	})
	require.NoError(t, err)
	require.Equal(t, testutil.PointAccount1.Balance+10, resp.Balance)

	// The matching activity counter moves together with the balance.
	balance, err := pointsDomain.GetBalance(ctx, &model.GetBalanceRequest{UserID: testutil.User1.ID})
	require.NoError(t, err)
	require.Equal(t, uint64(1), balance.TotalScans)
	require.Equal(t, uint64(0), balance.TotalRatings)

	// Cannot award a zero amount.
	_, err = pointsDomain.Award(ctx, &model.AwardPointsRequest{
		UserID: testutil.User1.ID,
		Amount: 0,
		Action: "scan",
	})
	require.Equal(t, "Not allow non-positive amount", err.Error())

	// Cannot award with an unknown action.
	_, err = pointsDomain.Award(ctx, &model.AwardPointsRequest{
		UserID: testutil.User1.ID,
		Amount: 10,
		Action: "teleport",
	})
	require.Equal(t, "Invalid action", err.Error())

	// Cannot award to an uninitialized account.
	_, err = pointsDomain.Award(ctx, &model.AwardPointsRequest{
		UserID: "nobody",
		Amount: 10,
		Action: "scan",
	})
	require.Equal(t, "Not found point account", err.Error())
}

func Test_greenPointsDomain_Redeem(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	pointsDomain := NewGreenPointsDomain(
		repository.NewPointAccountRepository(), &testutil.MockPublisher{}, &testutil.MockRedisClient{})

	// Redeem successfully.
	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	resp, err := pointsDomain.Redeem(ctxUser1, &model.RedeemPointsRequest{
		Amount:     40,
		Redemption: "seed-discount",
	})
	require.NoError(t, err)
	require.Equal(t, testutil.PointAccount1.Balance-40, resp.Balance)

	// Cannot redeem more than the remaining balance.
	_, err = pointsDomain.Redeem(ctxUser1, &model.RedeemPointsRequest{Amount: 1000})
	require.Equal(t, "Insufficient balance", err.Error())

	// The failed redemption must not change the balance.
	balance, err := pointsDomain.GetBalance(ctxUser1, &model.GetBalanceRequest{})
	require.NoError(t, err)
	require.Equal(t, testutil.PointAccount1.Balance-40, balance.Balance)

	// Cannot redeem a zero amount.
	_, err = pointsDomain.Redeem(ctxUser1, &model.RedeemPointsRequest{Amount: 0})
	require.Equal(t, "Not allow non-positive amount", err.Error())

	// Cannot redeem from an uninitialized account.
	ctxNobody := testutil.MockContextWithUserID(ctx, "nobody")
	_, err = pointsDomain.Redeem(ctxNobody, &model.RedeemPointsRequest{Amount: 10})
	require.Equal(t, "Not found point account", err.Error())
}

func Test_greenPointsDomain_GetBalance_uninitialized(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	pointsDomain := NewGreenPointsDomain(
		repository.NewPointAccountRepository(), &testutil.MockPublisher{}, &testutil.MockRedisClient{})

	resp, err := pointsDomain.GetBalance(ctx, &model.GetBalanceRequest{UserID: "nobody"})
	require.NoError(t, err)
	require.Equal(t, uint64(0), resp.Balance)
	require.Equal(t, "nobody", resp.UserID)
}

func Test_greenPointsDomain_GetLeaderboard(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	pointsDomain := NewGreenPointsDomain(
		repository.NewPointAccountRepository(), &testutil.MockPublisher{}, &testutil.MockRedisClient{})

	// A cold leaderboard is seeded from database.
	resp, err := pointsDomain.GetLeaderboard(ctx, &model.GetPointLeaderboardRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Leaderboard, 2)
	require.Equal(t, testutil.User1.ID, resp.Leaderboard[0].UserID)
	require.Equal(t, testutil.PointAccount1.Balance, resp.Leaderboard[0].Balance)
	require.Equal(t, 1, resp.Leaderboard[0].Rank)
	require.Equal(t, testutil.User2.ID, resp.Leaderboard[1].UserID)

	// A warm leaderboard follows awards.
	_, err = pointsDomain.Award(ctx, &model.AwardPointsRequest{
		UserID: testutil.User2.ID,
		Amount: 200,
		Action: "referral",
	})
	require.NoError(t, err)

	resp, err = pointsDomain.GetLeaderboard(ctx, &model.GetPointLeaderboardRequest{})
	require.NoError(t, err)
	require.Equal(t, testutil.User2.ID, resp.Leaderboard[0].UserID)
	require.Equal(t, testutil.PointAccount2.Balance+200, resp.Leaderboard[0].Balance)
}

func Test_greenPointsDomain_AwardForAction(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	pointsDomain := NewGreenPointsDomain(
		repository.NewPointAccountRepository(), &testutil.MockPublisher{}, &testutil.MockRedisClient{})

	// A first-time actor gets an account created on the fly.
	err := pointsDomain.AwardForAction(ctx, "newcomer", entity.ActionScan)
	require.NoError(t, err)

	balance, err := pointsDomain.GetBalance(ctx, &model.GetBalanceRequest{UserID: "newcomer"})
	require.NoError(t, err)
	require.Equal(t, uint64(10), balance.Balance)
	require.Equal(t, uint64(1), balance.TotalScans)
}
