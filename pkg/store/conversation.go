package store

import "legalbot-be/pkg/legal"

// Stage identifies the current node of the dialogue state machine.
type Stage string

const (
	StageIdle                 Stage = "IDLE"
	StageWelcome              Stage = "WELCOME"
	StageConsentRequest       Stage = "CONSENT_REQUEST"
	StageDocumentCapture      Stage = "DOCUMENT_CAPTURE"
	StageProcessTypeSelection Stage = "PROCESS_TYPE_SELECTION"
	StageProcessListActive    Stage = "PROCESS_LIST_ACTIVE"
	StageProcessListFinalized Stage = "PROCESS_LIST_FINALIZED"
	StagePdfConfirmation      Stage = "PDF_CONFIRMATION"
	StagePdfSummary           Stage = "PDF_SUMMARY"
	StageMainOptions          Stage = "MAIN_OPTIONS"
	StageNewProcessProfile    Stage = "NEW_PROCESS_PROFILE"
)

// Intent options picked on the welcome menu.
const (
	OptionExistingProcess = "existing"
	OptionNewProcess      = "new"
)

// Process list being browsed.
const (
	TypeActive    = "active"
	TypeFinalized = "finalized"
)

// Conversation is the per-user dialogue state. Mutated only by the
// orchestrator, exactly once per successfully processed inbound message.
// Stage determines which optional fields are expected to be populated;
// a mismatch is recoverable, never fatal.
type Conversation struct {
	ID          string `json:"id"` // conversation id (WhatsApp chat id)
	ProfileName string `json:"profile_name"`
	Stage       Stage  `json:"stage"`

	// Welcome intent ("existing" | "new").
	SelectedOption string `json:"selected_option,omitempty"`

	// Client document used to query the legal gateway.
	Document string `json:"document,omitempty"`

	// THE WAITING ROOM: last gateway query result, order frozen so the user
	// can refer to entries by 1-based position.
	Processes *legal.ProcessSet `json:"processes,omitempty"`

	// Sub-list being browsed ("active" | "finalized").
	SelectedType string `json:"selected_type,omitempty"`

	// THE WORKBENCH: full detail held only during the PDF confirmation
	// sub-flow, discarded on return to the main menu.
	Selected *legal.ProcessDetail `json:"selected,omitempty"`

	// Set once the operator was alerted for this conversation's hand-off,
	// so re-entering the hand-off stage never re-notifies.
	HandoffNotified bool `json:"handoff_notified,omitempty"`

	// Transport id of the last message that was fully processed. A
	// retransmission carrying the same id must be dropped, not re-captured.
	LastMessageID string `json:"last_message_id,omitempty"`
}

// NewConversation returns the default state for an unknown conversation id.
func NewConversation(id string) *Conversation {
	return &Conversation{ID: id, Stage: StageIdle}
}

// Reset clears all accumulated context back to Welcome-equivalent defaults,
// keeping only the identity fields.
func (c *Conversation) Reset() {
	c.Stage = StageIdle
	c.SelectedOption = ""
	c.Document = ""
	c.Processes = nil
	c.SelectedType = ""
	c.Selected = nil
	c.HandoffNotified = false
}

// Clone returns a deep-enough copy for the transition to mutate while the
// stored state stays untouched until the orchestrator persists.
func (c *Conversation) Clone() *Conversation {
	copied := *c
	return &copied
}
