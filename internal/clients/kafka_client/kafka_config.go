package kafka_client

type KafkaConfig struct {
	Broker string
	Topic  string
	// TransactionalID is left empty for a plain idempotent producer.
	TransactionalID string
}

// Enabled reports whether a broker is configured at all.
func (c KafkaConfig) Enabled() bool {
	return c.Broker != ""
}

func (c KafkaConfig) topic() string {
	if c.Topic == "" {
		return KAFKA_TOPIC_ANALYSIS_RESULTS
	}
	return c.Topic
}
