package domain

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/agrichain-lab/backend/internal/entity"
	"github.com/agrichain-lab/backend/internal/model"
	"github.com/agrichain-lab/backend/internal/repository"
	"github.com/agrichain-lab/backend/pkg/crypto"
	"github.com/agrichain-lab/backend/pkg/errorx"
	"github.com/agrichain-lab/backend/pkg/xcontext"
	"github.com/agrichain-lab/backend/pkg/xredis"
	"github.com/ethereum/go-ethereum/accounts"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type AuthDomain interface {
	WalletLogin(context.Context, *model.WalletLoginRequest) (*model.WalletLoginResponse, error)
	WalletVerify(context.Context, *model.WalletVerifyRequest) (*model.WalletVerifyResponse, error)
	GetMe(context.Context, *model.GetMeRequest) (*model.GetMeResponse, error)
}

const (
	referralCodeLength = 8
	walletNonceTTL     = 5 * time.Minute
)

type authDomain struct {
	userRepo          repository.UserRepository
	pointAccountRepo  repository.PointAccountRepository
	cropAccountRepo   repository.CropAccountRepository
	bountyAccountRepo repository.BountyAccountRepository
	pointsMethod      PointsMethod
	redisClient       xredis.Client
}

func NewAuthDomain(
	userRepo repository.UserRepository,
	pointAccountRepo repository.PointAccountRepository,
	cropAccountRepo repository.CropAccountRepository,
	bountyAccountRepo repository.BountyAccountRepository,
	pointsMethod PointsMethod,
	redisClient xredis.Client,
) *authDomain {
	return &authDomain{
		userRepo:          userRepo,
		pointAccountRepo:  pointAccountRepo,
		cropAccountRepo:   cropAccountRepo,
		bountyAccountRepo: bountyAccountRepo,
		pointsMethod:      pointsMethod,
		redisClient:       redisClient,
	}
}

// WalletLogin begins a login by issuing a short-lived nonce the wallet must
// sign. WalletVerify checks the signature and issues the access token.
func (d *authDomain) WalletLogin(
	ctx context.Context, req *model.WalletLoginRequest,
) (*model.WalletLoginResponse, error) {
	if req.WalletAddress == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty wallet address")
	}

	nonce, err := crypto.GenerateRandomString()
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate random string: %v", err)
		return nil, errorx.Unknown
	}

	err = d.redisClient.Set(ctx, walletNonceKey(req.WalletAddress), nonce, walletNonceTTL)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot store login nonce: %v", err)
		return nil, errorx.Unknown
	}

	return &model.WalletLoginResponse{
		WalletAddress: req.WalletAddress,
		Nonce:         nonce,
	}, nil
}

// WalletVerify registers the wallet on first sight, then issues an access
// token. The signature must cover the nonce issued by WalletLogin.
func (d *authDomain) WalletVerify(
	ctx context.Context, req *model.WalletVerifyRequest,
) (*model.WalletVerifyResponse, error) {
	if req.WalletAddress == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty wallet address")
	}

	nonce, err := d.redisClient.GetDel(ctx, walletNonceKey(req.WalletAddress))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errorx.New(errorx.Unauthenticated, "Not found login nonce")
		}

		xcontext.Logger(ctx).Errorf("Cannot get login nonce: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.verifyWalletAnswer(ctx, req.Signature, nonce, req.WalletAddress); err != nil {
		return nil, err
	}

	user, err := d.userRepo.GetByWalletAddress(ctx, req.WalletAddress)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
			return nil, errorx.Unknown
		}

		user, err = d.register(ctx, req)
		if err != nil {
			return nil, err
		}
	}

	token, err := xcontext.TokenEngine(ctx).Generate(user.ID, model.AccessToken{
		ID:      user.ID,
		Address: user.WalletAddress,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.WalletVerifyResponse{
		User:        model.ConvertUser(user),
		AccessToken: token,
	}, nil
}

func (d *authDomain) verifyWalletAnswer(
	ctx context.Context, hexSignature, nonce, walletAddress string,
) error {
	hash := accounts.TextHash([]byte(nonce))
	signature, err := hexutil.Decode(hexSignature)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot decode signature: %v", err)
		return errorx.New(errorx.Unauthenticated, "Invalid signature")
	}

	if len(signature) != ethcrypto.SignatureLength {
		return errorx.New(errorx.Unauthenticated, "Invalid signature")
	}

	// Browser wallets produce a recovery id of 27/28, SigToPub wants 0/1.
	if signature[ethcrypto.RecoveryIDOffset] == 27 || signature[ethcrypto.RecoveryIDOffset] == 28 {
		signature[ethcrypto.RecoveryIDOffset] -= 27
	}

	recovered, err := ethcrypto.SigToPub(hash, signature)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot recover signature to address: %v", err)
		return errorx.New(errorx.Unauthenticated, "Invalid signature")
	}

	recoveredAddr := ethcrypto.PubkeyToAddress(*recovered)
	if !bytes.Equal(recoveredAddr.Bytes(), ethcommon.HexToAddress(walletAddress).Bytes()) {
		return errorx.New(errorx.Unauthenticated, "Mismatched address")
	}

	return nil
}

func walletNonceKey(walletAddress string) string {
	return "login:nonce:" + strings.ToLower(walletAddress)
}

func (d *authDomain) GetMe(
	ctx context.Context, req *model.GetMeRequest,
) (*model.GetMeResponse, error) {
	user, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetMeResponse{User: model.ConvertUser(user)}, nil
}

// register creates the user together with a default-initialized account row
// in each sibling ledger, and credits the referrer if a code was given.
func (d *authDomain) register(ctx context.Context, req *model.WalletVerifyRequest) (*entity.User, error) {
	var referrer *entity.User
	if req.ReferralCode != "" {
		var err error
		referrer, err = d.userRepo.GetByReferralCode(ctx, req.ReferralCode)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.NotFound, "Not found referral code")
			}

			xcontext.Logger(ctx).Errorf("Cannot get referrer: %v", err)
			return nil, errorx.Unknown
		}
	}

	user := &entity.User{
		Base:          entity.Base{ID: uuid.NewString()},
		WalletAddress: req.WalletAddress,
		Name:          req.Name,
		ReferralCode:  crypto.GenerateRandomAlphabet(referralCodeLength),
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.userRepo.Create(ctx, user); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.pointAccountRepo.Create(ctx, &entity.PointAccount{UserID: user.ID}); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create point account: %v", err)
		return nil, errorx.Unknown
	}

	err := d.cropAccountRepo.Create(ctx, &entity.CropAccount{
		UserID:       user.ID,
		OwnedBatches: entity.Array[int64]{},
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create crop account: %v", err)
		return nil, errorx.Unknown
	}

	var zero entity.BigInt
	zero.SetInt64(0)
	err = d.bountyAccountRepo.Create(ctx, &entity.BountyAccount{
		UserID:      user.ID,
		TotalEarned: zero,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create bounty account: %v", err)
		return nil, errorx.Unknown
	}

	if referrer != nil {
		err := d.pointsMethod.AwardForAction(ctx, referrer.ID, entity.ActionReferral)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot award referral points: %v", err)
			return nil, errorx.Unknown
		}
	}

	xcontext.WithCommitDBTransaction(ctx)
	return user, nil
}
