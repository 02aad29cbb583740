package domain

import (
	"testing"
	"time"

	"github.com/agrichain-lab/backend/internal/entity"
	"github.com/agrichain-lab/backend/internal/model"
	"github.com/agrichain-lab/backend/internal/repository"
	"github.com/agrichain-lab/backend/pkg/testutil"
	"github.com/agrichain-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newBountyDomainForTest() *bountyDomain {
	return NewBountyDomain(
		repository.NewBountyRepository(),
		repository.NewSubmissionRepository(),
		repository.NewBountyAccountRepository(),
		&testutil.MockPublisher{},
	)
}

func Test_bountyDomain_Create(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	bountyDomain := newBountyDomainForTest()

	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	resp, err := bountyDomain.Create(ctxUser1, &model.CreateBountyRequest{
		Title:        "Trace the coffee harvest",
		Requirements: "Photos of every processing step",
		Category:     "traceability",
		Reward:       "100000000000000000000",
		DurationDays: 7,
	})
	require.NoError(t, err)
	require.NotZero(t, resp.ID)

	// 2.5% of 100e18.
	require.Equal(t, "2500000000000000000", resp.PlatformFee)

	got, err := bountyDomain.Get(ctxUser1, &model.GetBountyRequest{ID: resp.ID})
	require.NoError(t, err)
	require.Equal(t, testutil.User1.ID, got.Bounty.CreatorID)
	require.Equal(t, string(entity.BountyActive), got.Bounty.Status)
	require.Equal(t, "100000000000000000000", got.Bounty.Reward)

	// Cannot create below the reward floor.
	_, err = bountyDomain.Create(ctxUser1, &model.CreateBountyRequest{
		Title:        "Too cheap",
		Reward:       "1000000000000000000",
		DurationDays: 7,
	})
	require.Equal(t, "Reward must be at least 50000000000000000000", err.Error())

	// Cannot create with a malformed reward.
	_, err = bountyDomain.Create(ctxUser1, &model.CreateBountyRequest{
		Title:        "Bad reward",
		Reward:       "fifty",
		DurationDays: 7,
	})
	require.Equal(t, "Invalid reward amount", err.Error())

	// Cannot create outside the duration window.
	_, err = bountyDomain.Create(ctxUser1, &model.CreateBountyRequest{
		Title:        "Too short",
		Reward:       "100000000000000000000",
		DurationDays: 0,
	})
	require.Error(t, err)
	_, err = bountyDomain.Create(ctxUser1, &model.CreateBountyRequest{
		Title:        "Too long",
		Reward:       "100000000000000000000",
		DurationDays: 366,
	})
	require.Error(t, err)

	// A year-long bounty sits exactly on the upper bound.
	_, err = bountyDomain.Create(ctxUser1, &model.CreateBountyRequest{
		Title:        "Document a full growing season",
		Reward:       "100000000000000000000",
		DurationDays: 365,
	})
	require.NoError(t, err)

	// The creator counter moves once per successful create.
	account, err := bountyDomain.GetAccount(ctx, &model.GetBountyAccountRequest{UserID: testutil.User1.ID})
	require.NoError(t, err)
	require.Equal(t, uint64(2), account.BountiesCreated)
}

func Test_bountyDomain_SubmitAndVote(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	bountyDomain := newBountyDomainForTest()

	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	created, err := bountyDomain.Create(ctxUser1, &model.CreateBountyRequest{
		Title:        "Trace the coffee harvest",
		Reward:       "100000000000000000000",
		DurationDays: 7,
	})
	require.NoError(t, err)

	// Submit successfully.
	ctxUser2 := testutil.MockContextWithUserID(ctx, testutil.User2.ID)
	submitted, err := bountyDomain.Submit(ctxUser2, &model.SubmitToBountyRequest{
		BountyID:       created.ID,
		SubmissionData: "ipfs://qm-harvest-photos",
	})
	require.NoError(t, err)
	require.NotZero(t, submitted.ID)

	// The creator may submit to their own bounty.
	_, err = bountyDomain.Submit(ctxUser1, &model.SubmitToBountyRequest{
		BountyID:       created.ID,
		SubmissionData: "ipfs://qm-own-entry",
	})
	require.NoError(t, err)

	got, err := bountyDomain.Get(ctx, &model.GetBountyRequest{ID: created.ID})
	require.NoError(t, err)
	require.Equal(t, uint64(2), got.Bounty.SubmissionCount)
	require.Len(t, got.Submissions, 2)

	// Cannot submit empty data or to an unknown bounty.
	_, err = bountyDomain.Submit(ctxUser2, &model.SubmitToBountyRequest{BountyID: created.ID})
	require.Equal(t, "Not allow empty submission data", err.Error())
	_, err = bountyDomain.Submit(ctxUser2, &model.SubmitToBountyRequest{
		BountyID:       99999,
		SubmissionData: "ipfs://qm-nowhere",
	})
	require.Equal(t, "Not found bounty", err.Error())

	// Votes move up and down but never below zero.
	votes, err := bountyDomain.Vote(ctxUser1, &model.VoteOnSubmissionRequest{
		SubmissionID: submitted.ID,
		Support:      true,
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), votes.Votes)

	votes, err = bountyDomain.Vote(ctxUser1, &model.VoteOnSubmissionRequest{
		SubmissionID: submitted.ID,
		Support:      false,
	})
	require.NoError(t, err)
	require.Equal(t, int64(0), votes.Votes)

	votes, err = bountyDomain.Vote(ctxUser1, &model.VoteOnSubmissionRequest{
		SubmissionID: submitted.ID,
		Support:      false,
	})
	require.NoError(t, err)
	require.Equal(t, int64(0), votes.Votes)
}

func Test_bountyDomain_Complete(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	bountyDomain := newBountyDomainForTest()

	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	created, err := bountyDomain.Create(ctxUser1, &model.CreateBountyRequest{
		Title:        "Trace the coffee harvest",
		Reward:       "100000000000000000000",
		DurationDays: 7,
	})
	require.NoError(t, err)

	ctxUser2 := testutil.MockContextWithUserID(ctx, testutil.User2.ID)
	submitted, err := bountyDomain.Submit(ctxUser2, &model.SubmitToBountyRequest{
		BountyID:       created.ID,
		SubmissionData: "ipfs://qm-harvest-photos",
	})
	require.NoError(t, err)

	// Only the creator completes.
	_, err = bountyDomain.Complete(ctxUser2, &model.CompleteBountyRequest{
		BountyID:     created.ID,
		SubmissionID: submitted.ID,
	})
	require.Equal(t, "Permission denied", err.Error())

	_, err = bountyDomain.Complete(ctxUser1, &model.CompleteBountyRequest{
		BountyID:     created.ID,
		SubmissionID: submitted.ID,
		Feedback:     "clean documentation",
	})
	require.NoError(t, err)

	got, err := bountyDomain.Get(ctx, &model.GetBountyRequest{ID: created.ID})
	require.NoError(t, err)
	require.Equal(t, string(entity.BountyCompleted), got.Bounty.Status)
	require.Equal(t, testutil.User2.ID, got.Bounty.WinnerID)
	require.True(t, got.Bounty.RewardDistributed)
	require.True(t, got.Submissions[0].Selected)
	require.Equal(t, "clean documentation", got.Submissions[0].Feedback)

	// The winner stats move.
	account, err := bountyDomain.GetAccount(ctx, &model.GetBountyAccountRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)
	require.Equal(t, uint64(1), account.BountiesWon)
	require.Equal(t, uint64(1), account.Reputation)
	require.Equal(t, "100000000000000000000", account.TotalEarned)

	// A completed bounty is terminal.
	_, err = bountyDomain.Complete(ctxUser1, &model.CompleteBountyRequest{
		BountyID:     created.ID,
		SubmissionID: submitted.ID,
	})
	require.Equal(t, "Bounty is not active", err.Error())
	_, err = bountyDomain.Submit(ctxUser2, &model.SubmitToBountyRequest{
		BountyID:       created.ID,
		SubmissionData: "ipfs://qm-late-entry",
	})
	require.Equal(t, "Bounty is not active", err.Error())
}

func Test_bountyDomain_Cancel(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	bountyDomain := newBountyDomainForTest()

	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	created, err := bountyDomain.Create(ctxUser1, &model.CreateBountyRequest{
		Title:        "Trace the coffee harvest",
		Reward:       "100000000000000000000",
		DurationDays: 7,
	})
	require.NoError(t, err)

	// Only the creator cancels.
	ctxUser2 := testutil.MockContextWithUserID(ctx, testutil.User2.ID)
	_, err = bountyDomain.Cancel(ctxUser2, &model.CancelBountyRequest{BountyID: created.ID})
	require.Equal(t, "Permission denied", err.Error())

	_, err = bountyDomain.Cancel(ctxUser1, &model.CancelBountyRequest{
		BountyID: created.ID,
		Reason:   "requirements changed",
	})
	require.NoError(t, err)

	got, err := bountyDomain.Get(ctx, &model.GetBountyRequest{ID: created.ID})
	require.NoError(t, err)
	require.Equal(t, string(entity.BountyCancelled), got.Bounty.Status)

	// A cancelled bounty is terminal.
	_, err = bountyDomain.Cancel(ctxUser1, &model.CancelBountyRequest{BountyID: created.ID})
	require.Equal(t, "Bounty is not active", err.Error())

	// Cannot cancel once a submission exists.
	withSubmission, err := bountyDomain.Create(ctxUser1, &model.CreateBountyRequest{
		Title:        "Map the irrigation network",
		Reward:       "100000000000000000000",
		DurationDays: 7,
	})
	require.NoError(t, err)

	_, err = bountyDomain.Submit(ctxUser2, &model.SubmitToBountyRequest{
		BountyID:       withSubmission.ID,
		SubmissionData: "ipfs://qm-irrigation-map",
	})
	require.NoError(t, err)

	_, err = bountyDomain.Cancel(ctxUser1, &model.CancelBountyRequest{BountyID: withSubmission.ID})
	require.Equal(t, "Bounty already has submissions", err.Error())
}

func Test_bountyDomain_DeadlineGuard(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	bountyDomain := newBountyDomainForTest()

	// Insert an overdue active bounty directly, Create refuses past deadlines.
	reward, err := entity.NewBigInt("100000000000000000000")
	require.NoError(t, err)

	overdue := &entity.Bounty{
		SnowFlakeBase: entity.SnowFlakeBase{ID: xcontext.SnowFlake(ctx).Generate().Int64()},
		CreatorID:     testutil.User1.ID,
		Title:         "Trace the coffee harvest",
		Reward:        reward,
		Status:        entity.BountyActive,
		Deadline:      time.Now().Add(-time.Hour),
	}
	err = repository.NewBountyRepository().Create(ctx, overdue, &entity.BountySettings{})
	require.NoError(t, err)

	// Submitting past the deadline expires the bounty instead.
	ctxUser2 := testutil.MockContextWithUserID(ctx, testutil.User2.ID)
	_, err = bountyDomain.Submit(ctxUser2, &model.SubmitToBountyRequest{
		BountyID:       overdue.ID,
		SubmissionData: "ipfs://qm-too-late",
	})
	require.Equal(t, "Bounty is expired", err.Error())

	got, err := bountyDomain.Get(ctx, &model.GetBountyRequest{ID: overdue.ID})
	require.NoError(t, err)
	require.Equal(t, string(entity.BountyExpired), got.Bounty.Status)

	// The deadline itself is exclusive, a submission at exactly the
	// deadline is already too late.
	atDeadline := &entity.Bounty{
		SnowFlakeBase: entity.SnowFlakeBase{ID: xcontext.SnowFlake(ctx).Generate().Int64()},
		CreatorID:     testutil.User1.ID,
		Title:         "Trace the coffee harvest",
		Reward:        reward,
		Status:        entity.BountyActive,
		Deadline:      time.Now(),
	}
	err = repository.NewBountyRepository().Create(ctx, atDeadline, &entity.BountySettings{})
	require.NoError(t, err)

	_, err = bountyDomain.Submit(ctxUser2, &model.SubmitToBountyRequest{
		BountyID:       atDeadline.ID,
		SubmissionData: "ipfs://qm-on-the-buzzer",
	})
	require.Equal(t, "Bounty is expired", err.Error())
}

func Test_bountyDomain_GetList(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	bountyDomain := newBountyDomainForTest()

	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	first, err := bountyDomain.Create(ctxUser1, &model.CreateBountyRequest{
		Title:        "First",
		Category:     "traceability",
		Reward:       "100000000000000000000",
		DurationDays: 7,
	})
	require.NoError(t, err)

	_, err = bountyDomain.Create(ctxUser1, &model.CreateBountyRequest{
		Title:        "Second",
		Category:     "education",
		Reward:       "100000000000000000000",
		DurationDays: 7,
	})
	require.NoError(t, err)

	_, err = bountyDomain.Cancel(ctxUser1, &model.CancelBountyRequest{BountyID: first.ID})
	require.NoError(t, err)

	resp, err := bountyDomain.GetList(ctx, &model.GetListBountyRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Bounties, 2)

	resp, err = bountyDomain.GetList(ctx, &model.GetListBountyRequest{Status: "active"})
	require.NoError(t, err)
	require.Len(t, resp.Bounties, 1)
	require.Equal(t, "Second", resp.Bounties[0].Title)

	resp, err = bountyDomain.GetList(ctx, &model.GetListBountyRequest{Category: "traceability"})
	require.NoError(t, err)
	require.Len(t, resp.Bounties, 1)
	require.Equal(t, "First", resp.Bounties[0].Title)
}
