//go:build integration

package events_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"polisflow/internal/events"
	"polisflow/pkg/testutil/containers"
)

func TestKafkaSinkProducesEvents(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	broker := containers.NewRedpandaContainer(t).Broker
	const topic = "polisflow.document-events.test"

	sink, err := events.NewKafkaSink([]string{broker}, topic)
	require.NoError(t, err)
	t.Cleanup(sink.Close)

	documentID := uuid.NewString()
	evt := events.Event{
		ID:         uuid.NewString(),
		DocumentID: documentID,
		Type:       events.TypeSignatureRequestSigned,
		From:       "pending_signature",
		To:         "signed",
		Timestamp:  time.Now().UTC().Truncate(time.Millisecond),
	}
	require.NoError(t, sink.Append(context.Background(), evt))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(broker),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	t.Cleanup(consumer.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	fetches := consumer.PollFetches(ctx)
	require.NoError(t, fetches.Err())

	records := fetches.Records()
	require.Len(t, records, 1)
	require.Equal(t, documentID, string(records[0].Key), "events are keyed by document id")

	var got events.Event
	require.NoError(t, json.Unmarshal(records[0].Value, &got))
	require.Equal(t, evt.ID, got.ID)
	require.Equal(t, events.TypeSignatureRequestSigned, got.Type)
	require.Equal(t, "signed", got.To)

	// The sink is write-only; reading the stream back is a consumer concern.
	_, err = sink.ListByDocument(context.Background(), documentID)
	require.Error(t, err)
}
