package jobs

import (
	"context"
	"time"

	"aguagestor/cmd/internal/utils"

	"github.com/labstack/gommon/log"
)

const ExpireInterval = 15 * time.Minute

type VoucherRepository interface {
	ExpireDue(now int64) (int64, error)
}

// VoucherExpirer flips ACTIVE vouchers past their expiry date to EXPIRED.
// Redemption is never undone; only the ACTIVE -> EXPIRED transition is automatic.
type VoucherExpirer struct {
	voucherRepo VoucherRepository
}

func NewVoucherExpirer(repo VoucherRepository) *VoucherExpirer {
	return &VoucherExpirer{voucherRepo: repo}
}

func (v *VoucherExpirer) Start(ctx context.Context) {
	ticker := time.NewTicker(ExpireInterval)
	defer ticker.Stop()

	log.Info("Voucher expirer cron started")

	for {
		select {
		case <-ctx.Done():
			log.Info("Stopping voucher expirer...")
			return
		case <-ticker.C:
			v.sweep()
		}
	}
}

func (v *VoucherExpirer) sweep() {
	expired, err := v.voucherRepo.ExpireDue(utils.NowUTC())
	if err != nil {
		log.Errorf("Expirer: failed to expire due vouchers: %v", err)
		return
	}

	if expired > 0 {
		log.Infof("Expirer: marked %d vouchers as expired", expired)
	}
}
