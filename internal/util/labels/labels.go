package labels

// Standard label keys for clusters.
const (
	// KeyManagedBy identifies the management system
	KeyManagedBy = "colonyctl.io/managed-by"

	// KeyColony identifies the colony (grouping) a cluster belongs to
	KeyColony = "colonyctl.io/colony"

	// KeyWorkloadType tells the backend what the cluster is prepared for
	KeyWorkloadType = "colonyctl.io/workload-type"

	// KeyLLMInference marks clusters prepared for LLM inference
	KeyLLMInference = "colonyctl.io/llm-inference"
)

// Label values.
const (
	ManagedByColonyctl = "colonyctl"

	WorkloadMultinodeTraining = "multinode-training"

	LLMInferencePrepared = "prepared"
)

// LabelBuilder provides a fluent interface for building cluster labels.
type LabelBuilder struct {
	labels map[string]string
}

// NewLabelBuilder creates a new label builder with the manager pre-set.
func NewLabelBuilder() *LabelBuilder {
	return &LabelBuilder{
		labels: map[string]string{
			KeyManagedBy: ManagedByColonyctl,
		},
	}
}

// WithColony adds the colony label when colonyID is non-empty.
func (lb *LabelBuilder) WithColony(colonyID string) *LabelBuilder {
	if colonyID != "" {
		lb.labels[KeyColony] = colonyID
	}
	return lb
}

// WithMultinodeTraining sets the workload type for multinode training when enabled.
func (lb *LabelBuilder) WithMultinodeTraining(enabled bool) *LabelBuilder {
	if enabled {
		lb.labels[KeyWorkloadType] = WorkloadMultinodeTraining
	}
	return lb
}

// WithLLMInference marks the cluster for LLM inference preparation when enabled.
func (lb *LabelBuilder) WithLLMInference(enabled bool) *LabelBuilder {
	if enabled {
		lb.labels[KeyLLMInference] = LLMInferencePrepared
	}
	return lb
}

// Merge adds all labels from the provided map.
func (lb *LabelBuilder) Merge(extra map[string]string) *LabelBuilder {
	for k, v := range extra {
		lb.labels[k] = v
	}
	return lb
}

// Build returns a copy of the labels map.
func (lb *LabelBuilder) Build() map[string]string {
	result := make(map[string]string, len(lb.labels))
	for k, v := range lb.labels {
		result[k] = v
	}
	return result
}
