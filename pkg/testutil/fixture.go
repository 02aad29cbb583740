package testutil

import (
	"context"

	"github.com/agrichain-lab/backend/internal/entity"
	"github.com/agrichain-lab/backend/pkg/xcontext"
)

var (
	User1 = entity.User{
		Base:          entity.Base{ID: "user1"},
		WalletAddress: "0x1111111111111111111111111111111111111111",
		Name:          "alice-farm",
		ReferralCode:  "alicecode",
	}

	User2 = entity.User{
		Base:          entity.Base{ID: "user2"},
		WalletAddress: "0x2222222222222222222222222222222222222222",
		Name:          "bob-coop",
		ReferralCode:  "bobcode",
	}

	PointAccount1 = entity.PointAccount{UserID: User1.ID, Balance: 100}
	PointAccount2 = entity.PointAccount{UserID: User2.ID, Balance: 30}
)

// CreateFixtureDb seeds the database behind ctx with two users holding
// initialized point accounts.
func CreateFixtureDb(ctx context.Context) {
	insertUsers(ctx)
	insertPointAccounts(ctx)
}

func insertUsers(ctx context.Context) {
	for _, u := range []entity.User{User1, User2} {
		u := u
		if err := xcontext.DB(ctx).Create(&u).Error; err != nil {
			panic(err)
		}
	}
}

func insertPointAccounts(ctx context.Context) {
	for _, a := range []entity.PointAccount{PointAccount1, PointAccount2} {
		a := a
		if err := xcontext.DB(ctx).Create(&a).Error; err != nil {
			panic(err)
		}
	}
}
