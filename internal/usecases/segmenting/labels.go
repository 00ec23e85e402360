package segmenting

import (
	"sort"
	"strings"

	"github.com/vfg2006/sales-intelligence-api/internal/domain"
)

type LabelPolicy string

const (
	// PolicyValueRank renumera os grupos pela média do primeiro atributo, do menor para o maior
	PolicyValueRank LabelPolicy = "value_rank"
	// PolicyClusterID mantém os ids do k-means e rotula 0, 1 e 2 fixamente
	PolicyClusterID LabelPolicy = "cluster_id"

	otherLabel = "Other"
)

var rankLadders = map[int][]string{
	2: {"Low Value", "High Value"},
	3: {"Low Value", "Medium Value", "High Value"},
	4: {"Low Value", "Medium Value", "High Value", "Top Value"},
	5: {"Very Low Value", "Low Value", "Medium Value", "High Value", "Top Value"},
	6: {"Very Low Value", "Low Value", "Medium Value", "High Value", "Very High Value", "Top Value"},
}

var clusterIDLabels = map[int]string{
	0: "Low Value",
	1: "Medium Value",
	2: "High Value",
}

func ParseLabelPolicy(value string) (LabelPolicy, error) {
	switch LabelPolicy(strings.ToLower(value)) {
	case PolicyValueRank:
		return PolicyValueRank, nil
	case PolicyClusterID:
		return PolicyClusterID, nil
	default:
		return "", domain.NewInvalidValueError("label_policy", value, "expected value_rank or cluster_id")
	}
}

// applyLabelPolicy retorna os ids finais de cada entidade e o rótulo de cada id
func applyLabelPolicy(policy LabelPolicy, features domain.FeatureSet, clusters []int, k int) ([]int, func(int) string) {
	if policy == PolicyClusterID {
		return clusters, func(cluster int) string {
			if label, ok := clusterIDLabels[cluster]; ok {
				return label
			}
			return otherLabel
		}
	}

	sums := make([]float64, k)
	counts := make([]float64, k)
	for i, row := range features.Rows {
		sums[clusters[i]] += row.Values[0]
		counts[clusters[i]]++
	}

	order := make([]int, k)
	for c := range order {
		order[c] = c
	}
	mean := func(c int) float64 {
		if counts[c] == 0 {
			return 0
		}
		return sums[c] / counts[c]
	}
	sort.SliceStable(order, func(i, j int) bool {
		return mean(order[i]) < mean(order[j])
	})

	rank := make([]int, k)
	for position, cluster := range order {
		rank[cluster] = position
	}

	ranked := make([]int, len(clusters))
	for i, cluster := range clusters {
		ranked[i] = rank[cluster]
	}

	ladder := rankLadders[k]
	return ranked, func(cluster int) string {
		if cluster < len(ladder) {
			return ladder[cluster]
		}
		return otherLabel
	}
}
