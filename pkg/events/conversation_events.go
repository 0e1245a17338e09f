package events

import "time"

const (
	TypeHandoffRequested = "HANDOFF_REQUESTED"
	TypeReportGenerated  = "REPORT_GENERATED"
)

// HandoffRequested is emitted when a conversation reaches a point where a
// lawyer must take over.
type HandoffRequested struct {
	ConversationID string
	ClientName     string
	Reason         string
	Details        string
	OccurredAt     time.Time
}

func (e HandoffRequested) EventType() string { return TypeHandoffRequested }

func (e HandoffRequested) Payload() map[string]interface{} {
	return map[string]interface{}{
		"conversation_id": e.ConversationID,
		"client_name":     e.ClientName,
		"reason":          e.Reason,
		"details":         e.Details,
	}
}

func (e HandoffRequested) Timestamp() time.Time { return e.OccurredAt }

// ReportGenerated is emitted after a PDF artifact was rendered and sent.
type ReportGenerated struct {
	ConversationID string
	Filename       string
	ProcessCodes   []string
	OccurredAt     time.Time
}

func (e ReportGenerated) EventType() string { return TypeReportGenerated }

func (e ReportGenerated) Payload() map[string]interface{} {
	return map[string]interface{}{
		"conversation_id": e.ConversationID,
		"filename":        e.Filename,
		"process_codes":   e.ProcessCodes,
	}
}

func (e ReportGenerated) Timestamp() time.Time { return e.OccurredAt }
