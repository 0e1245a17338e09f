package dialog

import (
	"testing"

	"legalbot-be/internal/constant"
	"legalbot-be/pkg/legal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func summaries(n int) []legal.ProcessSummary {
	out := make([]legal.ProcessSummary, n)
	for i := range out {
		out[i] = legal.ProcessSummary{Code: "PRC"}
	}
	return out
}

func TestProcessTypeOptionsOmitEmptyLists(t *testing.T) {
	both := &legal.ProcessSet{Active: summaries(2), Finalized: summaries(1)}
	options := processTypeOptions(both)
	require.Len(t, options, 3)
	assert.Equal(t, optActive, options[0].Key)
	assert.Equal(t, optFinalized, options[1].Key)
	assert.Equal(t, optPdfSummary, options[2].Key)

	activeOnly := &legal.ProcessSet{Active: summaries(1)}
	options = processTypeOptions(activeOnly)
	require.Len(t, options, 2)
	assert.Equal(t, optActive, options[0].Key)
	assert.Equal(t, optPdfSummary, options[1].Key)

	finalizedOnly := &legal.ProcessSet{Finalized: summaries(3)}
	options = processTypeOptions(finalizedOnly)
	require.Len(t, options, 2)
	assert.Equal(t, optFinalized, options[0].Key)

	assert.Empty(t, processTypeOptions(&legal.ProcessSet{}))
	assert.Empty(t, processTypeOptions(nil))
}

func TestMainOptionsAlwaysOfferExit(t *testing.T) {
	options := mainOptions(nil)
	require.Len(t, options, 2)
	assert.Equal(t, optNewDocument, options[0].Key)
	assert.Equal(t, optEnd, options[1].Key)

	options = mainOptions(&legal.ProcessSet{Active: summaries(1), Finalized: summaries(1)})
	require.Len(t, options, 5)
	assert.Equal(t, optEnd, options[4].Key)
}

func TestSelectMenuOptionValidatesAgainstCurrentMenu(t *testing.T) {
	options := []menuOption{
		{Key: optFinalized, Label: constant.MenuLabelFinalized},
		{Key: optPdfSummary, Label: constant.MenuLabelPdfSummary},
	}

	picked, ok := selectMenuOption(options, "1")
	require.True(t, ok)
	assert.Equal(t, optFinalized, picked.Key)

	picked, ok = selectMenuOption(options, " 2 ")
	require.True(t, ok)
	assert.Equal(t, optPdfSummary, picked.Key)

	// An index valid on a larger, earlier menu is rejected here.
	_, ok = selectMenuOption(options, "3")
	assert.False(t, ok)

	_, ok = selectMenuOption(options, "0")
	assert.False(t, ok)
	_, ok = selectMenuOption(options, "sim")
	assert.False(t, ok)
}

func TestSelectListIndexBounds(t *testing.T) {
	n, ok := selectListIndex("2", 3)
	require.True(t, ok)
	assert.Equal(t, 2, n)

	_, ok = selectListIndex("4", 3)
	assert.False(t, ok)
	_, ok = selectListIndex("-1", 3)
	assert.False(t, ok)
	_, ok = selectListIndex("x", 3)
	assert.False(t, ok)
}

func TestRenderMenuNumbersSequentially(t *testing.T) {
	menu := renderMenu(constant.MsgChooseOption, []menuOption{
		{Key: optActive, Label: constant.MenuLabelActive},
		{Key: optEnd, Label: constant.MenuLabelEnd},
	})

	assert.Contains(t, menu, constant.MsgChooseOption)
	assert.Contains(t, menu, "1 - "+constant.MenuLabelActive)
	assert.Contains(t, menu, "2 - "+constant.MenuLabelEnd)
}
