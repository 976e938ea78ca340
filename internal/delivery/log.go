package delivery

import (
	"context"
	"fmt"
	"log/slog"

	"polisflow/internal/submission"
)

// LogDelivery is the development adapter: it records every outbound dispatch
// instead of talking to a real e-signature provider or carrier endpoint.
// Production deployments swap in provider-specific implementations.
type LogDelivery struct {
	logger *slog.Logger
}

func NewLogDelivery(logger *slog.Logger) *LogDelivery {
	return &LogDelivery{logger: logger}
}

func (d *LogDelivery) SendEmail(ctx context.Context, dispatch SignatureDispatch) error {
	d.logger.InfoContext(ctx, "signature request email dispatched",
		"document_id", dispatch.DocumentID,
		"recipient", dispatch.Recipient,
	)
	return nil
}

func (d *LogDelivery) SendSMS(ctx context.Context, dispatch SignatureDispatch) error {
	d.logger.InfoContext(ctx, "signature request sms dispatched",
		"document_id", dispatch.DocumentID,
		"recipient", dispatch.Recipient,
	)
	return nil
}

func (d *LogDelivery) GenerateSignatureLink(ctx context.Context, documentID string) (string, error) {
	d.logger.InfoContext(ctx, "signature link generated", "document_id", documentID)
	return fmt.Sprintf("https://sign.polisflow.local/d/%s", documentID), nil
}

func (d *LogDelivery) SubmitViaEmail(ctx context.Context, sub submission.Submission) error {
	return d.logSubmit(ctx, sub)
}

func (d *LogDelivery) SubmitViaPortal(ctx context.Context, sub submission.Submission) error {
	return d.logSubmit(ctx, sub)
}

func (d *LogDelivery) SubmitViaAPI(ctx context.Context, sub submission.Submission) error {
	return d.logSubmit(ctx, sub)
}

func (d *LogDelivery) logSubmit(ctx context.Context, sub submission.Submission) error {
	d.logger.InfoContext(ctx, "carrier submission dispatched",
		"document_id", sub.DocumentID,
		"company_id", sub.CompanyID,
		"method", string(sub.Method),
	)
	return nil
}

var (
	_ ContactDelivery = (*LogDelivery)(nil)
	_ CarrierDelivery = (*LogDelivery)(nil)
)
