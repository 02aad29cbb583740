package model

type User struct {
	ID            string `json:"id"`
	WalletAddress string `json:"wallet_address"`
	Name          string `json:"name"`
	ReferralCode  string `json:"referral_code"`
}

type AccessToken struct {
	ID      string `json:"id"`
	Address string `json:"address"`
}

type WalletLoginRequest struct {
	WalletAddress string `json:"wallet_address"`
}

type WalletLoginResponse struct {
	WalletAddress string `json:"wallet_address"`

	// Nonce must be signed by the wallet and sent back with WalletVerify.
	Nonce string `json:"nonce"`
}

type WalletVerifyRequest struct {
	WalletAddress string `json:"wallet_address"`
	Signature     string `json:"signature"`
	Name          string `json:"name"`

	// ReferralCode optionally credits the referring user on first login.
	ReferralCode string `json:"referral_code"`
}

type WalletVerifyResponse struct {
	User        User   `json:"user"`
	AccessToken string `json:"access_token"`
}

type GetMeRequest struct{}

type GetMeResponse struct {
	User User `json:"user"`
}
