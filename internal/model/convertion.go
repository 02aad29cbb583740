package model

import (
	"time"

	"github.com/agrichain-lab/backend/internal/entity"
)

const DefaultTimeLayout string = time.RFC3339Nano
const DefaultDateLayout string = "2006-01-02"

func ConvertUser(user *entity.User) User {
	if user == nil {
		return User{}
	}

	return User{
		ID:            user.ID,
		WalletAddress: user.WalletAddress,
		Name:          user.Name,
		ReferralCode:  user.ReferralCode,
	}
}

func ConvertPointAccount(account *entity.PointAccount) PointAccount {
	if account == nil {
		return PointAccount{}
	}

	return PointAccount{
		UserID:         account.UserID,
		Balance:        account.Balance,
		TotalScans:     account.TotalScans,
		TotalRatings:   account.TotalRatings,
		TotalShares:    account.TotalShares,
		TotalReferrals: account.TotalReferrals,
	}
}

func ConvertCropBatch(batch *entity.CropBatch, engagement *entity.CropEngagement) CropBatch {
	if batch == nil {
		return CropBatch{}
	}

	result := CropBatch{
		TokenID:        batch.TokenID,
		FarmerID:       batch.FarmerID,
		CropType:       batch.CropType,
		Location:       batch.Location,
		IsOrganic:      batch.IsOrganic,
		Quantity:       batch.Quantity,
		CreatedAt:      batch.CreatedAt.Format(DefaultTimeLayout),
		HarvestDate:    batch.HarvestDate.Format(DefaultDateLayout),
		Stage:          batch.Stage,
		Certifications: batch.Certifications,
		CropImage:      batch.CropImage,
	}

	if engagement != nil {
		result.Engagement = CropEngagement{
			TotalScans:    engagement.TotalScans,
			TotalRatings:  engagement.TotalRatings,
			AverageRating: engagement.AverageRating,
			SocialShares:  engagement.SocialShares,
		}
	}

	return result
}

func ConvertBounty(bounty *entity.Bounty, settings *entity.BountySettings) Bounty {
	if bounty == nil {
		return Bounty{}
	}

	result := Bounty{
		ID:                bounty.ID,
		CreatorID:         bounty.CreatorID,
		Title:             bounty.Title,
		Requirements:      bounty.Requirements,
		Category:          bounty.Category,
		Reward:            bounty.Reward.String(),
		Status:            string(bounty.Status),
		CreatedAt:         bounty.CreatedAt.Format(DefaultTimeLayout),
		Deadline:          bounty.Deadline.Format(DefaultTimeLayout),
		SubmissionCount:   bounty.SubmissionCount,
		RewardDistributed: bounty.RewardDistributed,
	}

	if bounty.WinnerID.Valid {
		result.WinnerID = bounty.WinnerID.String
	}

	if settings != nil {
		result.PlatformFee = settings.PlatformFee.String()
	}

	return result
}

func ConvertSubmission(submission *entity.Submission) Submission {
	if submission == nil {
		return Submission{}
	}

	return Submission{
		ID:             submission.ID,
		BountyID:       submission.BountyID,
		SubmitterID:    submission.SubmitterID,
		SubmissionData: submission.SubmissionData,
		CreatedAt:      submission.CreatedAt.Format(DefaultTimeLayout),
		Selected:       submission.Selected,
		Votes:          submission.Votes,
		Feedback:       submission.Feedback,
		IsActive:       submission.IsActive,
	}
}

func ConvertBountyAccount(account *entity.BountyAccount) BountyAccount {
	if account == nil {
		return BountyAccount{}
	}

	return BountyAccount{
		UserID:          account.UserID,
		Reputation:      account.Reputation,
		BountiesCreated: account.BountiesCreated,
		BountiesWon:     account.BountiesWon,
		SubmissionsMade: account.SubmissionsMade,
		TotalEarned:     account.TotalEarned.String(),
		IsVerified:      account.IsVerified,
	}
}
