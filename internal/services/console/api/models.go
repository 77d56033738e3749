package api

// ClusterInfo is a registered Kafka cluster and its connection settings.
type ClusterInfo struct {
	ID               int64  `json:"id,omitempty"`
	Name             string `json:"name" validate:"required"`
	BootstrapServers string `json:"bootstrapServers" validate:"required"`
	KafkaVersion     string `json:"kafkaVersion,omitempty"`
	SecurityProtocol string `json:"securityProtocol,omitempty" validate:"omitempty,oneof=PLAINTEXT SASL_PLAINTEXT SASL_SSL SSL"`
	SASLMechanism    string `json:"saslMechanism,omitempty"`
	SASLJAASConfig   string `json:"saslJaasConfig,omitempty"`
	Username         string `json:"username,omitempty"`
	Password         string `json:"password,omitempty"`
	// Timeout is the admin client timeout in milliseconds; the backend
	// defaults it to 15000.
	Timeout          int    `json:"timeout,omitempty" validate:"gte=0"`
	VersionSupported *bool  `json:"versionSupported,omitempty"`
	CreatedAt        string `json:"createdAt,omitempty"`
}

// ClusterMetrics is the monitor summary for one cluster.
type ClusterMetrics struct {
	BrokerCount               int      `json:"brokerCount"`
	TopicCount                int      `json:"topicCount"`
	PartitionCount            int      `json:"partitionCount"`
	UnderReplicatedPartitions int      `json:"underReplicatedPartitions"`
	UnderReplicatedReplicas   int      `json:"underReplicatedReplicas"`
	OfflinePartitions         int      `json:"offlinePartitions"`
	TotalDiskUsageBytes       int64    `json:"totalDiskUsageBytes"`
	CPUUsage                  *float64 `json:"cpuUsage"`
	HeapMemoryUsed            *int64   `json:"heapMemoryUsed"`
	HeapMemoryMax             *int64   `json:"heapMemoryMax"`
	AvgReplicationFactor      float64  `json:"avgReplicationFactor"`
}

// TopicInfo summarizes one topic in a topic listing.
type TopicInfo struct {
	Name               string `json:"name"`
	PartitionCount     int    `json:"partitionCount"`
	ReplicationFactor  int    `json:"replicationFactor"`
	MessageCount       int64  `json:"messageCount"`
	MinOffset          int64  `json:"minOffset"`
	MaxOffset          int64  `json:"maxOffset"`
	ConsumerGroupCount int    `json:"consumerGroupCount"`
	BrokerIDs          []int  `json:"brokerIds"`
}

// TopicPartitionDetail describes one partition of a topic.
type TopicPartitionDetail struct {
	Partition    int      `json:"partition"`
	Leader       string   `json:"leader"`
	Replicas     []string `json:"replicas"`
	ISR          []string `json:"isr"`
	StartOffset  int64    `json:"startOffset"`
	EndOffset    int64    `json:"endOffset"`
	MessageCount int64    `json:"messageCount"`
}

// TopicConfigEntry is one topic-level configuration value.
type TopicConfigEntry struct {
	Name      string `json:"name"`
	Value     string `json:"value"`
	Default   bool   `json:"default"`
	Sensitive bool   `json:"sensitive"`
	ReadOnly  bool   `json:"readOnly"`
}

// ProducerInfo is an active idempotent or transactional producer.
type ProducerInfo struct {
	Partition                     int    `json:"partition"`
	ProducerID                    int64  `json:"producerId"`
	ProducerEpoch                 int    `json:"producerEpoch"`
	LastSequence                  int64  `json:"lastSequence"`
	LastTimestamp                 int64  `json:"lastTimestamp"`
	CurrentTransactionStartOffset *int64 `json:"currentTransactionStartOffset"`
}

// TopicMessage is one record read from a topic.
type TopicMessage struct {
	Partition     int    `json:"partition"`
	Offset        int64  `json:"offset"`
	Timestamp     int64  `json:"timestamp"`
	Key           string `json:"key"`
	Value         string `json:"value"`
	TimestampType string `json:"timestampType"`
}

// PartitionOffsetRange is the offset window of one partition.
type PartitionOffsetRange struct {
	Partition int   `json:"partition"`
	MinOffset int64 `json:"minOffset"`
	MaxOffset int64 `json:"maxOffset"`
}

// MessageSearchResult is one page of a message search plus the offset ranges
// of the scanned partitions.
type MessageSearchResult struct {
	List             []TopicMessage               `json:"list"`
	Total            int64                        `json:"total"`
	Page             int                          `json:"page"`
	PageSize         int                          `json:"pageSize"`
	PartitionOffsets map[int]PartitionOffsetRange `json:"partitionOffsets"`
}

// MessageHistory is a message previously sent through the console.
type MessageHistory struct {
	ID           int64  `json:"id"`
	ClusterID    int64  `json:"clusterId"`
	TopicName    string `json:"topicName"`
	PartitionID  *int   `json:"partitionId"`
	KeyContent   string `json:"keyContent"`
	ValueContent string `json:"valueContent"`
	CreatedAt    string `json:"createdAt"`
}

// ConsumerGroupInfo summarizes one consumer group.
type ConsumerGroupInfo struct {
	GroupID           string       `json:"groupId"`
	State             string       `json:"state"`
	ProtocolType      string       `json:"protocolType"`
	Coordinator       string       `json:"coordinator"`
	Members           []MemberInfo `json:"members"`
	TotalLag          *int64       `json:"totalLag"`
	CurrentOffset     *int64       `json:"currentOffset"`
	LogStartOffset    *int64       `json:"logStartOffset"`
	LogEndOffset      *int64       `json:"logEndOffset"`
	TopicMessageCount *int64       `json:"topicMessageCount"`
}

// MemberInfo is one member of a consumer group.
type MemberInfo struct {
	MemberID   string   `json:"memberId"`
	ClientID   string   `json:"clientId"`
	Host       string   `json:"host"`
	Assignment []string `json:"assignment"`
}

// CreateTopicRequest is the body of a topic creation call.
type CreateTopicRequest struct {
	Name              string `json:"name" validate:"required"`
	Partitions        int    `json:"partitions" validate:"min=1"`
	ReplicationFactor int    `json:"replicationFactor" validate:"min=1,max=32767"`
}

// SendMessageRequest is the body of a produce call. A nil Partition lets the
// backend pick one; Count repeats the message.
type SendMessageRequest struct {
	Partition *int   `json:"partition,omitempty" validate:"omitempty,min=0"`
	Key       string `json:"key,omitempty"`
	Value     string `json:"value"`
	Count     int    `json:"count,omitempty" validate:"min=0"`
}

// PageResult is one page of a paged listing.
type PageResult[T any] struct {
	List     []T   `json:"list"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
}
