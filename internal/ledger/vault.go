package ledger

import (
	"github.com/yourname/savecircle/internal"
)

// vaultView projects the Vault from the user record and the stored extras.
// The liquid pool always comes from the user's totalSaved; only the
// investment, membership and chat fields live in the circle list.
func vaultView(user *internal.User, stored *internal.Circle) internal.Circle {
	var v internal.Circle
	if stored != nil {
		v = *stored
	} else {
		v = defaultVault()
	}
	v.ID = internal.VaultID
	v.PoolTotal = user.TotalSaved
	normalize(&v)
	return v
}

// vaultIndex returns the position of the stored Vault extras, inserting the
// default extras at the front of the list when none are stored yet.
func vaultIndex(circles *[]internal.Circle, user *internal.User) int {
	if i := indexOf(*circles, internal.VaultID); i >= 0 {
		return i
	}
	v := defaultVault()
	v.PoolTotal = user.TotalSaved
	*circles = append([]internal.Circle{v}, *circles...)
	return 0
}
