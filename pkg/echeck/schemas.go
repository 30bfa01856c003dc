package echeck

import "github.com/greenlyst/greenmoney/pkg/transport"

// Result field names. Order matters: the remote service answers
// positionally in exactly this order.
var (
	DraftSchema = transport.Schema{
		"Result", "ResultDescription",
		"VerifyResult", "VerifyResultDescription",
		"CheckNumber", "Check_ID",
	}

	CheckStatusSchema = transport.Schema{
		"Result", "ResultDescription",
		"VerifyResult", "VerifyResultDescription", "VerifyOverridden",
		"Deleted", "DeletedDate",
		"Processed", "ProcessedDate",
		"Rejected", "RejectedDate",
		"CheckNumber", "Check_ID",
	}

	StatusSchema = transport.Schema{"Result", "ResultDescription"}

	RefundSchema = transport.Schema{
		"Result", "ResultDescription",
		"RefundCheckNumber", "RefundCheck_ID",
	}

	BillPaySchema = transport.Schema{
		"Result", "ResultDescription",
		"CheckNumber", "Check_ID",
	}

	InvoiceSchema = transport.Schema{
		"Result", "ResultDescription",
		"PaymentResult", "PaymentResultDescription",
		"Invoice_ID", "Check_ID",
	}
)

var (
	opOneTimeDraftRTV                  = transport.Operation{Name: "OneTimeDraftRTV"}
	opOneTimeDraftBV                   = transport.Operation{Name: "OneTimeDraftBV"}
	opRecurringDraftRTV                = transport.Operation{Name: "RecurringDraftRTV"}
	opRecurringDraftBV                 = transport.Operation{Name: "RecurringDraftBV"}
	opOneTimeDraftWithSignatureImage   = transport.Operation{Name: "OneTimeDraftWithSignatureImage", Attachment: true}
	opRecurringDraftWithSignatureImage = transport.Operation{Name: "RecurringDraftWithSignatureImage", Attachment: true}
	opCheckStatus                      = transport.Operation{Name: "CheckStatus", ReadOnly: true}
	opCancelCheck                      = transport.Operation{Name: "CancelCheck"}
	opRefundCheck                      = transport.Operation{Name: "RefundCheck"}
	opCheckNote                        = transport.Operation{Name: "CheckNote"}
	opUploadSignatureImage             = transport.Operation{Name: "UploadSignatureImage", Attachment: true}
	opVerificationResult               = transport.Operation{Name: "VerificationResult", ReadOnly: true}
	opVerificationOverride             = transport.Operation{Name: "VerificationOverride"}
	opBillPayCheck                     = transport.Operation{Name: "BillPayCheck"}
	opBillPayCheckNoBankInfo           = transport.Operation{Name: "BillPayCheckNoBankInfo"}
	opRecurringBillPayCheck            = transport.Operation{Name: "RecurringBillPayCheck"}
	opOneTimeInvoice                   = transport.Operation{Name: "OneTimeInvoice"}
	opRecurringInvoice                 = transport.Operation{Name: "RecurringInvoice"}
	opCombinationInvoice               = transport.Operation{Name: "CombinationInvoice"}
	opInvoiceStatus                    = transport.Operation{Name: "InvoiceStatus", ReadOnly: true}
)
