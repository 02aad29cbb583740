package domain

import (
	"context"
	"crypto/ecdsa"
	"testing"

	"github.com/agrichain-lab/backend/internal/model"
	"github.com/agrichain-lab/backend/internal/repository"
	"github.com/agrichain-lab/backend/pkg/testutil"
	"github.com/agrichain-lab/backend/pkg/xcontext"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

func newAuthDomainForTest() (*authDomain, *greenPointsDomain) {
	pointsDomain := NewGreenPointsDomain(
		repository.NewPointAccountRepository(), &testutil.MockPublisher{}, &testutil.MockRedisClient{})
	authDomain := NewAuthDomain(
		repository.NewUserRepository(),
		repository.NewPointAccountRepository(),
		repository.NewCropAccountRepository(),
		repository.NewBountyAccountRepository(),
		pointsDomain,
		&testutil.MockRedisClient{},
	)

	return authDomain, pointsDomain
}

func newWalletForTest(t *testing.T) (*ecdsa.PrivateKey, string) {
	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	return key, ethcrypto.PubkeyToAddress(key.PublicKey).Hex()
}

func signLoginNonce(t *testing.T, key *ecdsa.PrivateKey, nonce string) string {
	signature, err := ethcrypto.Sign(accounts.TextHash([]byte(nonce)), key)
	require.NoError(t, err)
	return hexutil.Encode(signature)
}

func loginWalletForTest(
	t *testing.T, ctx context.Context, authDomain *authDomain,
	key *ecdsa.PrivateKey, address, name, referralCode string,
) *model.WalletVerifyResponse {
	login, err := authDomain.WalletLogin(ctx, &model.WalletLoginRequest{WalletAddress: address})
	require.NoError(t, err)
	require.NotEmpty(t, login.Nonce)

	resp, err := authDomain.WalletVerify(ctx, &model.WalletVerifyRequest{
		WalletAddress: address,
		Signature:     signLoginNonce(t, key, login.Nonce),
		Name:          name,
		ReferralCode:  referralCode,
	})
	require.NoError(t, err)
	return resp
}

func Test_authDomain_WalletLogin(t *testing.T) {
	ctx := testutil.MockContext()
	authDomain, pointsDomain := newAuthDomainForTest()

	// First login registers the wallet.
	key, address := newWalletForTest(t)
	resp := loginWalletForTest(t, ctx, authDomain, key, address, "carol-agro", "")
	require.NotEmpty(t, resp.User.ID)
	require.NotEmpty(t, resp.AccessToken)

	// The token carries the user id.
	info, err := xcontext.TokenEngine(ctx).Verify(resp.AccessToken)
	require.NoError(t, err)
	require.Equal(t, resp.User.ID, info.ID)

	// All three ledger accounts are default-initialized.
	_, err = pointsDomain.Redeem(
		testutil.MockContextWithUserID(ctx, resp.User.ID),
		&model.RedeemPointsRequest{Amount: 1})
	require.Equal(t, "Insufficient balance", err.Error())

	bountyDomain := newBountyDomainForTest()
	account, err := bountyDomain.GetAccount(ctx, &model.GetBountyAccountRequest{UserID: resp.User.ID})
	require.NoError(t, err)
	require.Equal(t, "0", account.TotalEarned)

	// Second login reuses the same user.
	again := loginWalletForTest(t, ctx, authDomain, key, address, "", "")
	require.Equal(t, resp.User.ID, again.User.ID)

	// A referral code credits the referrer on first login.
	require.NotEmpty(t, resp.User.ReferralCode)
	otherKey, otherAddress := newWalletForTest(t)
	loginWalletForTest(t, ctx, authDomain, otherKey, otherAddress, "", resp.User.ReferralCode)

	balance, err := pointsDomain.GetBalance(ctx, &model.GetBalanceRequest{UserID: resp.User.ID})
	require.NoError(t, err)
	require.Equal(t, uint64(50), balance.Balance)
	require.Equal(t, uint64(1), balance.TotalReferrals)

	// An unknown referral code is rejected.
	thirdKey, thirdAddress := newWalletForTest(t)
	login, err := authDomain.WalletLogin(ctx, &model.WalletLoginRequest{WalletAddress: thirdAddress})
	require.NoError(t, err)
	_, err = authDomain.WalletVerify(ctx, &model.WalletVerifyRequest{
		WalletAddress: thirdAddress,
		Signature:     signLoginNonce(t, thirdKey, login.Nonce),
		ReferralCode:  "doesnotexist",
	})
	require.Equal(t, "Not found referral code", err.Error())

	// Cannot login without a wallet address.
	_, err = authDomain.WalletLogin(ctx, &model.WalletLoginRequest{})
	require.Equal(t, "Not allow empty wallet address", err.Error())
	_, err = authDomain.WalletVerify(ctx, &model.WalletVerifyRequest{})
	require.Equal(t, "Not allow empty wallet address", err.Error())
}

func Test_authDomain_WalletVerify_rejectsForgeries(t *testing.T) {
	ctx := testutil.MockContext()
	authDomain, _ := newAuthDomainForTest()

	victimKey, victimAddress := newWalletForTest(t)
	loginWalletForTest(t, ctx, authDomain, victimKey, victimAddress, "victim-farm", "")

	// Knowing a public address is not enough, the signature must recover to
	// the claimed wallet.
	attackerKey, _ := newWalletForTest(t)
	login, err := authDomain.WalletLogin(ctx, &model.WalletLoginRequest{WalletAddress: victimAddress})
	require.NoError(t, err)
	_, err = authDomain.WalletVerify(ctx, &model.WalletVerifyRequest{
		WalletAddress: victimAddress,
		Signature:     signLoginNonce(t, attackerKey, login.Nonce),
	})
	require.Equal(t, "Mismatched address", err.Error())

	// A failed verify consumes the nonce, the flow restarts from WalletLogin.
	_, err = authDomain.WalletVerify(ctx, &model.WalletVerifyRequest{
		WalletAddress: victimAddress,
		Signature:     signLoginNonce(t, victimKey, login.Nonce),
	})
	require.Equal(t, "Not found login nonce", err.Error())

	// Garbage signatures are rejected before recovery.
	login, err = authDomain.WalletLogin(ctx, &model.WalletLoginRequest{WalletAddress: victimAddress})
	require.NoError(t, err)
	_, err = authDomain.WalletVerify(ctx, &model.WalletVerifyRequest{
		WalletAddress: victimAddress,
		Signature:     "0xdeadbeef",
	})
	require.Equal(t, "Invalid signature", err.Error())

	// A signature cannot be replayed, each verify consumes its nonce.
	login, err = authDomain.WalletLogin(ctx, &model.WalletLoginRequest{WalletAddress: victimAddress})
	require.NoError(t, err)
	signature := signLoginNonce(t, victimKey, login.Nonce)
	_, err = authDomain.WalletVerify(ctx, &model.WalletVerifyRequest{
		WalletAddress: victimAddress,
		Signature:     signature,
	})
	require.NoError(t, err)
	_, err = authDomain.WalletVerify(ctx, &model.WalletVerifyRequest{
		WalletAddress: victimAddress,
		Signature:     signature,
	})
	require.Equal(t, "Not found login nonce", err.Error())
}

func Test_authDomain_GetMe(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	authDomain, _ := newAuthDomainForTest()

	resp, err := authDomain.GetMe(
		testutil.MockContextWithUserID(ctx, testutil.User1.ID), &model.GetMeRequest{})
	require.NoError(t, err)
	require.Equal(t, testutil.User1.WalletAddress, resp.User.WalletAddress)

	_, err = authDomain.GetMe(
		testutil.MockContextWithUserID(ctx, "ghost"), &model.GetMeRequest{})
	require.Equal(t, "Not found user", err.Error())
}
