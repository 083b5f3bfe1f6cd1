package cart

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// User-facing rejection messages. Front ends match on these strings, so they
// are fixed verbatim.
const (
	MsgStockExceeded = "requested quantity exceeds available stock"
	MsgAddFailed     = "error adding product"
	MsgRemoveFailed  = "error removing product"
	MsgUpdateFailed  = "error updating product quantity"
)

// Notifier receives the human-readable messages the store emits when a
// mutation is rejected or fails. Implementations render them to the user.
type Notifier interface {
	ReportError(msg string)
}

// LogNotifier writes notices to the service log. Each notice gets an id so a
// support ticket can point at one specific occurrence.
type LogNotifier struct {
	Log *zap.Logger
}

func (n *LogNotifier) ReportError(msg string) {
	if n.Log == nil {
		return
	}
	n.Log.Warn("user notice",
		zap.String("notice_id", uuid.NewString()),
		zap.String("message", msg),
	)
}
