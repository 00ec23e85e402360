package domain

// EntityFeatures é o vetor de atributos agregados de uma loja
type EntityFeatures struct {
	Entity string    `json:"entity"`
	Values []float64 `json:"values"`
}

type FeatureSet struct {
	Names []string         `json:"names"`
	Rows  []EntityFeatures `json:"rows"`
}

func (f FeatureSet) Len() int {
	return len(f.Rows)
}

const SingleClusterLabel = "Single Cluster"

type SegmentAssignment struct {
	Entity    string    `json:"entity"`
	Values    []float64 `json:"values"`
	ClusterID int       `json:"cluster_id"`
	Label     string    `json:"label"`
}

type SegmentSummary struct {
	ClusterID int       `json:"cluster_id"`
	Label     string    `json:"label"`
	Size      int       `json:"size"`
	Means     []float64 `json:"means"`
}

type Segmentation struct {
	K             int                 `json:"k"`
	Features      []string            `json:"features"`
	LabelPolicy   string              `json:"label_policy"`
	SingleCluster bool                `json:"single_cluster"`
	Inertia       float64             `json:"inertia"`
	Assignments   []SegmentAssignment `json:"assignments"`
	Summaries     []SegmentSummary    `json:"summaries"`
}
