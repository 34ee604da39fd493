package worker

import (
	"github.com/spec-kit/brokerage-crm/internal/service"
)

// StartOutboundWorker registers outbound delivery handlers.
func StartOutboundWorker(outboundService *service.OutboundService) {
	if outboundService == nil {
		return
	}
	outboundService.RegisterHandlers()
}
