package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"legalbot-be/internal/pkg/logger"
	"legalbot-be/internal/repository/memory"
	"legalbot-be/pkg/dialog"
	"legalbot-be/pkg/legal"
	"legalbot-be/pkg/notify"
	"legalbot-be/pkg/report"

	"github.com/fatih/color"
)

// Offline conversation console. Runs the full dialogue engine against
// canned records, so flows can be exercised without WhatsApp, Redis or
// the records API.

var (
	userColor = color.New(color.FgGreen, color.Bold)
	botColor  = color.New(color.FgCyan)
	sysColor  = color.New(color.FgYellow)
)

type consoleTransport struct{}

func (t *consoleTransport) SendText(_ context.Context, _, body string) error {
	botColor.Printf("BOT: %s\n\n", body)
	return nil
}

func (t *consoleTransport) SendDocument(_ context.Context, _, fileURL, filename, caption string) error {
	sysColor.Printf("BOT: [documento] %s (%s)\n", filename, fileURL)
	if caption != "" {
		botColor.Printf("BOT: %s\n", caption)
	}
	fmt.Println()
	return nil
}

func (t *consoleTransport) SendTyping(_ context.Context, _ string) error {
	return nil
}

type cannedGateway struct {
	sets    map[string]*legal.ProcessSet
	details map[string]*legal.ProcessDetail
}

func (g *cannedGateway) ListByDocument(_ context.Context, document string) (*legal.ProcessSet, error) {
	set, ok := g.sets[document]
	if !ok {
		return &legal.ProcessSet{}, nil
	}
	return set, nil
}

func (g *cannedGateway) GetDetail(_ context.Context, code string) (*legal.ProcessDetail, error) {
	detail, ok := g.details[code]
	if !ok {
		return nil, legal.ErrProcessNotFound
	}
	return detail, nil
}

func newCannedGateway() *cannedGateway {
	now := time.Now()
	active := legal.ProcessSummary{
		Code:            "PRC-001",
		Status:          "Aguardando audiência",
		Tag:             "Trabalhista",
		Registration:    "0001234-56.2024.5.02.0011",
		Court:           "2ª Vara do Trabalho",
		City:            "São Paulo",
		LastPerformance: "Audiência designada",
		UpdatedAt:       now.AddDate(0, 0, -3),
	}
	finalized := legal.ProcessSummary{
		Code:            "PRC-002",
		Status:          "Arquivado",
		Tag:             "Cível",
		Registration:    "0009876-54.2022.8.26.0100",
		Court:           "11ª Vara Cível",
		City:            "São Paulo",
		LastPerformance: "Baixa definitiva",
		UpdatedAt:       now.AddDate(0, -6, 0),
	}

	return &cannedGateway{
		sets: map[string]*legal.ProcessSet{
			"12345678900": {
				Active:    []legal.ProcessSummary{active},
				Finalized: []legal.ProcessSummary{finalized},
			},
		},
		details: map[string]*legal.ProcessDetail{
			"PRC-001": {
				ProcessSummary: active,
				Plaintiffs:     []legal.Party{{Name: "Maria da Silva"}},
				Defendants:     []legal.Party{{Name: "Acme Ltda"}},
				NextMilestone:  "Audiência em 15 dias",
				Performances: []legal.Performance{
					{Type: "Audiência designada", Responsible: "Dr. Souza", UpdatedAt: now.AddDate(0, 0, -3)},
					{Type: "Petição inicial", Responsible: "Dr. Souza", UpdatedAt: now.AddDate(0, -2, 0)},
				},
			},
			"PRC-002": {
				ProcessSummary: finalized,
				Plaintiffs:     []legal.Party{{Name: "Maria da Silva"}},
				Defendants:     []legal.Party{{Name: "Beta S.A."}},
				Performances: []legal.Performance{
					{Type: "Baixa definitiva", Responsible: "Cartório", UpdatedAt: now.AddDate(0, -6, 0)},
				},
			},
		},
	}
}

func main() {
	fmt.Println("=== LegalBot Conversation Simulator ===")
	fmt.Println("CPF with records: 12345678900")
	fmt.Println("Type 'sair' to quit.")
	fmt.Println()

	simLogger := logger.NewIsolatedLogger("logs/simulate.log")
	repo := memory.NewConversationRepository(1 * time.Hour)
	reportsDir, err := os.MkdirTemp("", "legalbot-reports-*")
	if err != nil {
		sysColor.Printf("Failed to create reports dir: %v\n", err)
		os.Exit(1)
	}
	generator := report.NewGenerator(reportsDir, "http://localhost:3000", simLogger)
	notifier := notify.NewNotifier(nil, "", nil, simLogger)

	orchestrator := dialog.NewOrchestrator(
		repo,
		newCannedGateway(),
		generator,
		&consoleTransport{},
		notifier,
		nil,
		simLogger,
		1*time.Minute,
	)

	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)
	seq := 0

	userColor.Print("VOCÊ: ")
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if strings.EqualFold(text, "sair") {
			break
		}

		seq++
		err := orchestrator.Handle(ctx, dialog.InboundMessage{
			ConversationID: "5511999990000",
			Text:           text,
			ProfileName:    "Maria",
			MessageID:      fmt.Sprintf("sim-%d", seq),
		})
		if err != nil {
			sysColor.Printf("delivery error: %v\n", err)
		}

		userColor.Print("VOCÊ: ")
	}

	fmt.Println("\nBye.")
}
