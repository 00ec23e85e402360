package segmenting

import (
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-intelligence-api/internal/domain"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	MinClusters = 2
	// MaxClusters é o teto aceito para k, mesmo com configuração maior
	MaxClusters = 6

	defaultSeed          = 42
	defaultRestarts      = 10
	defaultMaxIterations = 300
	convergenceTolerance = 1e-4
)

type Options struct {
	Seed          int64
	Restarts      int
	MaxIterations int
	MaxClusters   int
	LabelPolicy   LabelPolicy
}

func DefaultOptions() Options {
	return Options{
		Seed:          defaultSeed,
		Restarts:      defaultRestarts,
		MaxIterations: defaultMaxIterations,
		MaxClusters:   MaxClusters,
		LabelPolicy:   PolicyValueRank,
	}
}

type clustering struct {
	assignments []int
	centers     [][]float64
	inertia     float64
}

// Segment padroniza os atributos e particiona as entidades em k grupos.
// Com menos entidades que k, todas recebem o segmento único.
func Segment(features domain.FeatureSet, k int, opts Options) (*domain.Segmentation, error) {
	opts = withDefaults(opts)

	if err := domain.CheckRange("cluster_count", k, MinClusters, opts.MaxClusters); err != nil {
		return nil, err
	}
	policy, err := ParseLabelPolicy(string(opts.LabelPolicy))
	if err != nil {
		return nil, err
	}

	segmentation := &domain.Segmentation{
		K:           k,
		Features:    features.Names,
		LabelPolicy: string(policy),
	}

	if features.Len() < k {
		logrus.WithFields(logrus.Fields{
			"entities": features.Len(),
			"k":        k,
		}).Info("segmentation: entidades insuficientes, segmento único")

		segmentation.SingleCluster = true
		assignments := make([]int, features.Len())
		segmentation.Assignments = buildAssignments(features, assignments, func(int) string { return domain.SingleClusterLabel })
		segmentation.Summaries = []domain.SegmentSummary{summarize(features, assignments, 0, domain.SingleClusterLabel)}
		return segmentation, nil
	}

	points := standardize(features)
	rng := rand.New(rand.NewSource(opts.Seed))

	var best *clustering
	for restart := 0; restart < opts.Restarts; restart++ {
		candidate := lloyd(points, seedCenters(points, k, rng), opts.MaxIterations)
		if best == nil || candidate.inertia < best.inertia {
			best = candidate
		}
	}

	assignments, labelFor := applyLabelPolicy(policy, features, best.assignments, k)

	segmentation.Inertia = best.inertia
	segmentation.Assignments = buildAssignments(features, assignments, labelFor)
	for cluster := 0; cluster < k; cluster++ {
		segmentation.Summaries = append(segmentation.Summaries, summarize(features, assignments, cluster, labelFor(cluster)))
	}

	logrus.WithFields(logrus.Fields{
		"entities": features.Len(),
		"k":        k,
		"inertia":  best.inertia,
		"policy":   policy,
	}).Debug("segmentation: k-means concluído")

	return segmentation, nil
}

func withDefaults(opts Options) Options {
	defaults := DefaultOptions()
	if opts.Restarts < 1 {
		opts.Restarts = defaults.Restarts
	}
	if opts.MaxIterations < 1 {
		opts.MaxIterations = defaults.MaxIterations
	}
	if opts.MaxClusters < MinClusters || opts.MaxClusters > MaxClusters {
		opts.MaxClusters = defaults.MaxClusters
	}
	if opts.LabelPolicy == "" {
		opts.LabelPolicy = defaults.LabelPolicy
	}
	return opts
}

// standardize aplica z-score com desvio populacional; variância zero vira 0
func standardize(features domain.FeatureSet) [][]float64 {
	n, dims := features.Len(), len(features.Names)
	points := make([][]float64, n)
	for i := range points {
		points[i] = make([]float64, dims)
	}

	column := make([]float64, n)
	for d := 0; d < dims; d++ {
		for i, row := range features.Rows {
			column[i] = row.Values[d]
		}
		mean, variance := stat.PopMeanVariance(column, nil)
		std := math.Sqrt(variance)
		for i := range points {
			if std == 0 {
				continue
			}
			points[i][d] = (column[i] - mean) / std
		}
	}

	return points
}

// seedCenters escolhe centros iniciais pelo k-means++
func seedCenters(points [][]float64, k int, rng *rand.Rand) [][]float64 {
	centers := make([][]float64, 0, k)
	centers = append(centers, clone(points[rng.Intn(len(points))]))

	distances := make([]float64, len(points))
	for len(centers) < k {
		total := 0.0
		for i, point := range points {
			distances[i] = nearestDistance(point, centers)
			total += distances[i]
		}

		if total == 0 {
			centers = append(centers, clone(points[rng.Intn(len(points))]))
			continue
		}

		target := rng.Float64() * total
		chosen := len(points) - 1
		for i, distance := range distances {
			target -= distance
			if target < 0 {
				chosen = i
				break
			}
		}
		centers = append(centers, clone(points[chosen]))
	}

	return centers
}

func lloyd(points [][]float64, centers [][]float64, maxIterations int) *clustering {
	k := len(centers)
	assignments := make([]int, len(points))

	for iteration := 0; iteration < maxIterations; iteration++ {
		for i, point := range points {
			assignments[i] = nearestCenter(point, centers)
		}
		relocateEmpty(points, centers, assignments)

		next := means(points, assignments, k)
		shift := 0.0
		for c := range centers {
			shift += squaredDistance(centers[c], next[c])
		}
		centers = next
		if shift <= convergenceTolerance*convergenceTolerance {
			break
		}
	}

	result := &clustering{assignments: assignments, centers: centers}
	for i, point := range points {
		assignments[i] = nearestCenter(point, centers)
		result.inertia += squaredDistance(point, centers[assignments[i]])
	}
	return result
}

// relocateEmpty move para cada grupo vazio o ponto mais distante do próprio centro
func relocateEmpty(points [][]float64, centers [][]float64, assignments []int) {
	sizes := make([]int, len(centers))
	for _, cluster := range assignments {
		sizes[cluster]++
	}

	for cluster, size := range sizes {
		if size > 0 {
			continue
		}

		farthest, distance := -1, -1.0
		for i, point := range points {
			if sizes[assignments[i]] < 2 {
				continue
			}
			if d := squaredDistance(point, centers[assignments[i]]); d > distance {
				farthest, distance = i, d
			}
		}
		if farthest < 0 {
			return
		}

		sizes[assignments[farthest]]--
		assignments[farthest] = cluster
		sizes[cluster]++
		centers[cluster] = clone(points[farthest])
	}
}

func means(points [][]float64, assignments []int, k int) [][]float64 {
	dims := len(points[0])
	centers := make([][]float64, k)
	counts := make([]float64, k)
	for c := range centers {
		centers[c] = make([]float64, dims)
	}

	for i, point := range points {
		floats.Add(centers[assignments[i]], point)
		counts[assignments[i]]++
	}
	for c := range centers {
		if counts[c] > 0 {
			floats.Scale(1/counts[c], centers[c])
		}
	}
	return centers
}

func nearestCenter(point []float64, centers [][]float64) int {
	best, bestDistance := 0, math.Inf(1)
	for c, center := range centers {
		if d := squaredDistance(point, center); d < bestDistance {
			best, bestDistance = c, d
		}
	}
	return best
}

func nearestDistance(point []float64, centers [][]float64) float64 {
	return squaredDistance(point, centers[nearestCenter(point, centers)])
}

func squaredDistance(a, b []float64) float64 {
	d := floats.Distance(a, b, 2)
	return d * d
}

func clone(values []float64) []float64 {
	return append([]float64(nil), values...)
}

func buildAssignments(features domain.FeatureSet, clusters []int, labelFor func(int) string) []domain.SegmentAssignment {
	assignments := make([]domain.SegmentAssignment, features.Len())
	for i, row := range features.Rows {
		assignments[i] = domain.SegmentAssignment{
			Entity:    row.Entity,
			Values:    row.Values,
			ClusterID: clusters[i],
			Label:     labelFor(clusters[i]),
		}
	}
	return assignments
}

// summarize calcula tamanho e média de cada atributo na escala original
func summarize(features domain.FeatureSet, clusters []int, cluster int, label string) domain.SegmentSummary {
	summary := domain.SegmentSummary{
		ClusterID: cluster,
		Label:     label,
		Means:     make([]float64, len(features.Names)),
	}

	for i, row := range features.Rows {
		if clusters[i] != cluster {
			continue
		}
		summary.Size++
		floats.Add(summary.Means, row.Values)
	}
	if summary.Size > 0 {
		floats.Scale(1/float64(summary.Size), summary.Means)
	}
	return summary
}
