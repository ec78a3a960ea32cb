package kafka_client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/sentiscope/internal/models"
)

func TestNewPublisher_NoBrokerIsNoop(t *testing.T) {
	p, err := NewPublisher(KafkaConfig{})
	require.NoError(t, err)
	assert.IsType(t, NoopPublisher{}, p)

	err = p.PublishAnalysisCompleted(context.Background(), models.AnalysisCompletedEvent{RunID: "r1"})
	assert.NoError(t, err)
	p.Close()
}

func TestKafkaConfig_Topic(t *testing.T) {
	assert.Equal(t, KAFKA_TOPIC_ANALYSIS_RESULTS, KafkaConfig{}.topic())
	assert.Equal(t, "custom", KafkaConfig{Topic: "custom"}.topic())
	assert.False(t, KafkaConfig{}.Enabled())
	assert.True(t, KafkaConfig{Broker: "localhost:29092"}.Enabled())
}
