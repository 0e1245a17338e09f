package dialog

import (
	"fmt"
	"strconv"
	"strings"

	"legalbot-be/internal/constant"
	"legalbot-be/pkg/legal"
)

// Menu option keys. The options actually offered are data-dependent, so the
// same builder is used to render a menu and to validate the answer to it.
const (
	optActive      = "active"
	optFinalized   = "finalized"
	optPdfSummary  = "pdf"
	optNewDocument = "new_document"
	optEnd         = "end"
)

type menuOption struct {
	Key   string
	Label string
}

// processTypeOptions builds the menu shown right after a successful lookup.
// Empty sub-lists are omitted entirely.
func processTypeOptions(set *legal.ProcessSet) []menuOption {
	options := []menuOption{}
	if set == nil {
		return options
	}
	if len(set.Active) > 0 {
		options = append(options, menuOption{Key: optActive, Label: constant.MenuLabelActive})
	}
	if len(set.Finalized) > 0 {
		options = append(options, menuOption{Key: optFinalized, Label: constant.MenuLabelFinalized})
	}
	if set.Total() > 0 {
		options = append(options, menuOption{Key: optPdfSummary, Label: constant.MenuLabelPdfSummary})
	}
	return options
}

// mainOptions builds the post-report menu. Process entries depend on the
// cached lookup; the document and goodbye entries are always offered.
func mainOptions(set *legal.ProcessSet) []menuOption {
	options := processTypeOptions(set)
	options = append(options,
		menuOption{Key: optNewDocument, Label: constant.MenuLabelNewDocument},
		menuOption{Key: optEnd, Label: constant.MenuLabelEnd},
	)
	return options
}

func renderMenu(header string, options []menuOption) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n\n")
	for i, opt := range options {
		fmt.Fprintf(&b, "%d - %s\n", i+1, opt.Label)
	}
	return strings.TrimRight(b.String(), "\n")
}

// selectMenuOption validates a numeric answer against the options that are
// currently offered, never against a fixed constant: an index that was
// valid on a previous render is rejected if the current menu shrank.
func selectMenuOption(options []menuOption, input string) (menuOption, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n < 1 || n > len(options) {
		return menuOption{}, false
	}
	return options[n-1], true
}

// selectListIndex validates a 1-based position into an ordered process list.
func selectListIndex(input string, size int) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n < 1 || n > size {
		return 0, false
	}
	return n, true
}
