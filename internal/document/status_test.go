package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionLegalPairs(t *testing.T) {
	legal := [][2]Status{
		{StatusDraft, StatusPendingSignature},
		{StatusPendingSignature, StatusSigned},
		{StatusPendingSignature, StatusExpired},
		{StatusExpired, StatusPendingSignature},
		{StatusSigned, StatusPendingSend},
		{StatusSigned, StatusSent},
		{StatusPendingSend, StatusSent},
		{StatusSent, StatusProcessing},
		{StatusProcessing, StatusApproved},
		{StatusProcessing, StatusRejected},
		{StatusRejected, StatusSent},
	}
	for _, pair := range legal {
		assert.True(t, CanTransition(pair[0], pair[1]), "%s -> %s", pair[0], pair[1])
	}
}

// Every pair not in the table is illegal, including self transitions and
// anything out of a terminal status.
func TestCanTransitionRejectsEverythingElse(t *testing.T) {
	legal := map[[2]Status]bool{
		{StatusDraft, StatusPendingSignature}:   true,
		{StatusPendingSignature, StatusSigned}:  true,
		{StatusPendingSignature, StatusExpired}: true,
		{StatusExpired, StatusPendingSignature}: true,
		{StatusSigned, StatusPendingSend}:       true,
		{StatusSigned, StatusSent}:              true,
		{StatusPendingSend, StatusSent}:         true,
		{StatusSent, StatusProcessing}:          true,
		{StatusProcessing, StatusApproved}:      true,
		{StatusProcessing, StatusRejected}:      true,
		{StatusRejected, StatusSent}:            true,
	}
	for _, from := range AllStatuses() {
		for _, to := range AllStatuses() {
			got := CanTransition(from, to)
			assert.Equal(t, legal[[2]Status{from, to}], got, "%s -> %s", from, to)
		}
	}
}

func TestApprovedIsTerminal(t *testing.T) {
	for _, to := range AllStatuses() {
		assert.False(t, CanTransition(StatusApproved, to), "approved -> %s", to)
	}
}

func TestValid(t *testing.T) {
	for _, s := range AllStatuses() {
		assert.True(t, s.Valid())
	}
	assert.False(t, Status("archived").Valid())
	assert.False(t, Status("").Valid())
}
