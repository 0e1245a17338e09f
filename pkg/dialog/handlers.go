package dialog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"legalbot-be/internal/constant"
	"legalbot-be/pkg/events"
	"legalbot-be/pkg/legal"
	"legalbot-be/pkg/notify"
	"legalbot-be/pkg/store"
)

// --- Entry / global handlers ---

func (o *Orchestrator) enterWelcome(conv *store.Conversation) Transition {
	return transition(conv, store.StageWelcome, text(constant.MsgWelcome))
}

// requestHuman handles the global "talk to a lawyer" keywords. The
// HandoffNotified flag survives the transition so repeated requests in the
// same session alert the operator only once.
func (o *Orchestrator) requestHuman(conv *store.Conversation) Transition {
	stage := string(conv.Stage)
	tr := transition(conv, store.StageIdle, text(constant.MsgHumanHandoff))
	if !conv.HandoffNotified {
		conv.HandoffNotified = true
		name := clientName(conv)
		id := conv.ID
		tr.After = func(ctx context.Context) {
			o.notifier.Notify(ctx, notify.Event{
				ConversationID: id,
				ClientName:     name,
				Reason:         notify.ReasonSpeakToHuman,
				Details:        "Solicitado durante o estágio " + stage,
				OccurredAt:     time.Now(),
			})
		}
	}
	return tr
}

// --- Stage capture handlers ---

func (o *Orchestrator) captureWelcome(conv *store.Conversation, normalized string) Transition {
	switch normalized {
	case "1":
		conv.SelectedOption = store.OptionExistingProcess
	case "2":
		conv.SelectedOption = store.OptionNewProcess
	default:
		return stay(conv, text(constant.MsgWelcomeInvalid), text(constant.MsgWelcome))
	}
	return transition(conv, store.StageConsentRequest, text(constant.MsgConsentRequest))
}

func (o *Orchestrator) captureConsent(conv *store.Conversation, normalized string) Transition {
	switch {
	case isAffirmative(normalized):
		if conv.SelectedOption == store.OptionNewProcess {
			return transition(conv, store.StageNewProcessProfile, text(constant.MsgAskNewProcessProfile))
		}
		return transition(conv, store.StageDocumentCapture, text(constant.MsgAskDocument))
	case isNegative(normalized):
		conv.Reset()
		return transition(conv, store.StageIdle, text(constant.MsgConsentDeclined))
	default:
		return stay(conv, text(constant.MsgConsentInvalid))
	}
}

func (o *Orchestrator) captureDocument(ctx context.Context, conv *store.Conversation, input string) Transition {
	document := strings.ReplaceAll(input, " ", "")

	set, err := o.gateway.ListByDocument(ctx, document)
	if err != nil {
		o.logger.Warn("Dialog", "Process lookup failed", map[string]interface{}{
			"conversation_id": conv.ID,
			"error":           err.Error(),
		})
		return stay(conv, text(constant.MsgGatewayError))
	}

	if set.Total() == 0 {
		conv.Reset()
		return transition(conv, store.StageIdle, text(constant.MsgNoProcessesFound))
	}

	conv.Document = document
	conv.Processes = set
	menu := renderMenu(constant.MsgChooseOption, processTypeOptions(set))
	found := fmt.Sprintf(constant.MsgFoundProcesses, set.Total())
	return transition(conv, store.StageProcessTypeSelection, text(found+"\n\n"+menu))
}

func (o *Orchestrator) captureProcessType(conv *store.Conversation, input string) Transition {
	if conv.Processes.Total() == 0 {
		return o.recoverContext(conv)
	}

	options := processTypeOptions(conv.Processes)
	option, ok := selectMenuOption(options, input)
	if !ok {
		menu := renderMenu(constant.MsgChooseOption, options)
		return stay(conv, text(constant.MsgInvalidMenuOption+"\n\n"+menu))
	}

	switch option.Key {
	case optActive:
		conv.SelectedType = store.TypeActive
		return transition(conv, store.StageProcessListActive, text(renderProcessList(store.TypeActive, conv.Processes.Active)))
	case optFinalized:
		conv.SelectedType = store.TypeFinalized
		return transition(conv, store.StageProcessListFinalized, text(renderProcessList(store.TypeFinalized, conv.Processes.Finalized)))
	default:
		return transition(conv, store.StagePdfSummary, text(constant.MsgPdfSummaryConfirm))
	}
}

func (o *Orchestrator) captureProcessList(ctx context.Context, conv *store.Conversation, listType, normalized string) Transition {
	if conv.Processes.Total() == 0 {
		return o.recoverContext(conv)
	}

	list := conv.Processes.Active
	if listType == store.TypeFinalized {
		list = conv.Processes.Finalized
	}

	// Keyword aliases jump between the sub-lists without going through the
	// type menu again.
	switch normalized {
	case "pdf":
		return transition(conv, store.StagePdfSummary, text(constant.MsgPdfSummaryConfirm))
	case "finalizados", "finalizadas", "finalizado":
		if listType == store.TypeActive && len(conv.Processes.Finalized) > 0 {
			conv.SelectedType = store.TypeFinalized
			return transition(conv, store.StageProcessListFinalized, text(renderProcessList(store.TypeFinalized, conv.Processes.Finalized)))
		}
	case "ativos", "andamento", "ativo":
		if listType == store.TypeFinalized && len(conv.Processes.Active) > 0 {
			conv.SelectedType = store.TypeActive
			return transition(conv, store.StageProcessListActive, text(renderProcessList(store.TypeActive, conv.Processes.Active)))
		}
	}

	index, ok := selectListIndex(normalized, len(list))
	if !ok {
		return stay(conv, text(constant.MsgInvalidMenuOption+"\n\n"+renderProcessList(listType, list)))
	}

	summary := list[index-1]
	detail, err := o.gateway.GetDetail(ctx, summary.Code)
	if err != nil {
		if errors.Is(err, legal.ErrProcessNotFound) {
			return stay(conv, text(constant.MsgProcessNotFound))
		}
		o.logger.Warn("Dialog", "Detail fetch failed", map[string]interface{}{
			"conversation_id": conv.ID,
			"code":            summary.Code,
			"error":           err.Error(),
		})
		return stay(conv, text(constant.MsgGatewayError))
	}

	conv.SelectedType = listType
	conv.Selected = detail
	return transition(conv, store.StagePdfConfirmation,
		text(renderDetail(detail)),
		text(constant.MsgPdfConfirm),
	)
}

func (o *Orchestrator) capturePdfConfirmation(ctx context.Context, conv *store.Conversation, normalized string) Transition {
	if conv.Selected == nil {
		return o.recoverContext(conv)
	}

	switch {
	case isNegative(normalized):
		conv.Selected = nil
		return o.enterMainOptions(conv)
	case isAffirmative(normalized):
		return o.sendReport(ctx, conv, []legal.ProcessDetail{*conv.Selected})
	default:
		return stay(conv, text(constant.MsgYesNoInvalid))
	}
}

func (o *Orchestrator) capturePdfSummary(ctx context.Context, conv *store.Conversation, normalized string) Transition {
	if conv.Processes.Total() == 0 {
		return o.recoverContext(conv)
	}

	switch {
	case isNegative(normalized):
		return o.enterMainOptions(conv)
	case isAffirmative(normalized):
		details, err := o.fetchAllDetails(ctx, conv.Processes)
		if err != nil {
			o.logger.Warn("Dialog", "Summary detail fetch failed", map[string]interface{}{
				"conversation_id": conv.ID,
				"error":           err.Error(),
			})
			return stay(conv, text(constant.MsgGatewayError))
		}
		return o.sendReport(ctx, conv, details)
	default:
		return stay(conv, text(constant.MsgYesNoInvalid))
	}
}

func (o *Orchestrator) captureMainOptions(conv *store.Conversation, input string) Transition {
	options := mainOptions(conv.Processes)
	option, ok := selectMenuOption(options, input)
	if !ok {
		menu := renderMenu(constant.MsgChooseOption, options)
		return stay(conv, text(constant.MsgInvalidMenuOption+"\n\n"+menu))
	}

	switch option.Key {
	case optActive:
		conv.SelectedType = store.TypeActive
		return transition(conv, store.StageProcessListActive, text(renderProcessList(store.TypeActive, conv.Processes.Active)))
	case optFinalized:
		conv.SelectedType = store.TypeFinalized
		return transition(conv, store.StageProcessListFinalized, text(renderProcessList(store.TypeFinalized, conv.Processes.Finalized)))
	case optPdfSummary:
		return transition(conv, store.StagePdfSummary, text(constant.MsgPdfSummaryConfirm))
	case optNewDocument:
		// Full lookup context reset, consent stays granted.
		conv.Document = ""
		conv.Processes = nil
		conv.SelectedType = ""
		conv.Selected = nil
		return transition(conv, store.StageDocumentCapture, text(constant.MsgAskDocument))
	default: // optEnd
		conv.Reset()
		return transition(conv, store.StageIdle, text(constant.MsgGoodbye))
	}
}

func (o *Orchestrator) captureNewProcessProfile(conv *store.Conversation, input string) Transition {
	tr := transition(conv, store.StageIdle, text(constant.MsgHandoffConfirmed))
	if !conv.HandoffNotified {
		conv.HandoffNotified = true
		name := clientName(conv)
		id := conv.ID
		description := input
		tr.After = func(ctx context.Context) {
			o.notifier.Notify(ctx, notify.Event{
				ConversationID: id,
				ClientName:     name,
				Reason:         notify.ReasonNewProcess,
				Details:        description,
				OccurredAt:     time.Now(),
			})
		}
	}
	return tr
}

// --- Shared steps ---

func (o *Orchestrator) enterMainOptions(conv *store.Conversation) Transition {
	menu := renderMenu(constant.MsgChooseOption, mainOptions(conv.Processes))
	return transition(conv, store.StageMainOptions, text(menu))
}

// recoverContext handles a stage/field mismatch (e.g. a list stage with no
// cached processes): recoverable, never a crash. The user goes back to the
// document capture stage.
func (o *Orchestrator) recoverContext(conv *store.Conversation) Transition {
	o.logger.Warn("Dialog", "Stage context mismatch", map[string]interface{}{
		"conversation_id": conv.ID,
		"stage":           string(conv.Stage),
	})
	conv.Document = ""
	conv.Processes = nil
	conv.SelectedType = ""
	conv.Selected = nil
	return transition(conv, store.StageDocumentCapture,
		text(constant.MsgContextLost),
		text(constant.MsgAskDocument),
	)
}

// sendReport renders the artifact, replies with the media message plus the
// main menu, and schedules cleanup after delivery.
func (o *Orchestrator) sendReport(ctx context.Context, conv *store.Conversation, details []legal.ProcessDetail) Transition {
	artifact, err := o.reports.Generate(ctx, details, clientName(conv))
	if err != nil {
		o.logger.Error("Dialog", "Report generation failed", map[string]interface{}{
			"conversation_id": conv.ID,
			"error":           err.Error(),
		})
		return stay(conv, text(constant.MsgPdfFailed))
	}

	codes := make([]string, 0, len(details))
	for _, d := range details {
		codes = append(codes, d.Code)
	}

	conv.Selected = nil
	tr := o.enterMainOptions(conv)
	tr.Messages = append([]Outbound{{
		Document: &Attachment{
			URL:      artifact.URL,
			Filename: artifact.Filename,
			Caption:  constant.MsgPdfCaption,
		},
	}}, tr.Messages...)

	id := conv.ID
	tr.After = func(ctx context.Context) {
		o.scheduleDelete(artifact.Filename)
		o.publishEvent(ctx, events.ReportGenerated{
			ConversationID: id,
			Filename:       artifact.Filename,
			ProcessCodes:   codes,
			OccurredAt:     time.Now(),
		})
	}
	return tr
}

// fetchAllDetails resolves every summary of the set into a full detail.
// The lookups are independent, so they run concurrently (bounded) and are
// joined before the transition completes; output order mirrors the set.
func (o *Orchestrator) fetchAllDetails(ctx context.Context, set *legal.ProcessSet) ([]legal.ProcessDetail, error) {
	summaries := append(append([]legal.ProcessSummary{}, set.Active...), set.Finalized...)
	details := make([]legal.ProcessDetail, len(summaries))
	errs := make([]error, len(summaries))

	maxConcurrent := 4
	sem := make(chan struct{}, maxConcurrent)
	var wg sync.WaitGroup

	for i, summary := range summaries {
		wg.Add(1)
		go func(i int, code string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			detail, err := o.gateway.GetDetail(ctx, code)
			if err != nil {
				errs[i] = err
				return
			}
			details[i] = *detail
		}(i, summary.Code)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return details, nil
}

// --- Rendering ---

func clientName(conv *store.Conversation) string {
	if conv.ProfileName != "" {
		return conv.ProfileName
	}
	return "Cliente"
}

func renderProcessList(listType string, list []legal.ProcessSummary) string {
	var b strings.Builder
	if listType == store.TypeFinalized {
		b.WriteString(constant.MsgFinalizedListHeader)
	} else {
		b.WriteString(constant.MsgActiveListHeader)
	}
	b.WriteString("\n\n")

	for i, p := range list {
		fmt.Fprintf(&b, "%d - %s\n", i+1, summaryLabel(p))
		if p.Status != "" {
			fmt.Fprintf(&b, "    Situação: %s\n", p.Status)
		}
		if !p.UpdatedAt.IsZero() {
			fmt.Fprintf(&b, "    Atualizado em: %s\n", p.UpdatedAt.Format("02/01/2006"))
		}
	}

	b.WriteString("\n")
	b.WriteString(constant.MsgProcessListFooter)
	return b.String()
}

func summaryLabel(p legal.ProcessSummary) string {
	if p.Tag != "" {
		return p.Tag
	}
	if p.Registration != "" {
		return p.Registration
	}
	return p.Code
}

func renderDetail(detail *legal.ProcessDetail) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📄 *%s*\n", summaryLabel(detail.ProcessSummary))
	if detail.Registration != "" {
		fmt.Fprintf(&b, "Número: %s\n", detail.Registration)
	}
	if detail.Court != "" {
		fmt.Fprintf(&b, "Vara: %s\n", detail.Court)
	}
	if detail.City != "" {
		fmt.Fprintf(&b, "Comarca: %s\n", detail.City)
	}
	if detail.Status != "" {
		fmt.Fprintf(&b, "Situação atual: %s\n", detail.Status)
	}
	if !detail.UpdatedAt.IsZero() {
		fmt.Fprintf(&b, "Última atualização: %s\n", detail.UpdatedAt.Format("02/01/2006"))
	}
	if len(detail.Performances) > 0 {
		fmt.Fprintf(&b, "Andamentos registrados: %d\n", len(detail.Performances))
	}
	return strings.TrimRight(b.String(), "\n")
}
