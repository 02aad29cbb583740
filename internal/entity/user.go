package entity

type User struct {
	Base

	WalletAddress string `gorm:"unique"`
	Name          string

	// ReferralCode is handed out at registration and is what other users
	// submit to credit this user with a referral.
	ReferralCode string `gorm:"unique"`
}
