package analysis

import (
	"math"
	"math/rand"
	"sort"
)

// CommunityOptions bounds the k-means clustering loop.
type CommunityOptions struct {
	// MaxIterations caps the assignment/update loop; hitting the cap is
	// treated as converged so detection never runs unbounded.
	MaxIterations int
	// Seed fixes the k-means++ centroid selection.
	Seed int64
}

// DefaultCommunityOptions returns the bounds used when the caller does not
// care.
func DefaultCommunityOptions() CommunityOptions {
	return CommunityOptions{MaxIterations: 50, Seed: 1}
}

// DetectCommunities clusters node embeddings into k communities with
// k-means, seeded by k-means++: the first centroid is drawn uniformly, each
// subsequent one with probability proportional to the squared distance to
// the nearest centroid already chosen. Iteration stops when assignments no
// longer change or MaxIterations is reached.
//
// The result maps every embedded node id to a community index in [0, k).
// k is capped at the number of nodes.
func DetectCommunities(embeddings map[string][]float64, k int, opts CommunityOptions) map[string]int {
	if len(embeddings) == 0 || k < 1 {
		return map[string]int{}
	}
	if opts.MaxIterations < 1 {
		opts.MaxIterations = DefaultCommunityOptions().MaxIterations
	}

	ids := make([]string, 0, len(embeddings))
	for id := range embeddings {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	if k > len(ids) {
		k = len(ids)
	}

	points := make([][]float64, len(ids))
	for i, id := range ids {
		points[i] = embeddings[id]
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	centroids := seedCentroids(points, k, rng)

	assignments := make([]int, len(points))
	for iter := 0; iter < opts.MaxIterations; iter++ {
		changed := false
		for i, p := range points {
			best := nearestCentroid(p, centroids)
			if assignments[i] != best {
				assignments[i] = best
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}
		updateCentroids(points, assignments, centroids)
	}

	result := make(map[string]int, len(ids))
	for i, id := range ids {
		result[id] = assignments[i]
	}
	return result
}

// seedCentroids implements k-means++ initialization.
func seedCentroids(points [][]float64, k int, rng *rand.Rand) [][]float64 {
	centroids := make([][]float64, 0, k)
	first := points[rng.Intn(len(points))]
	centroids = append(centroids, cloneVector(first))

	for len(centroids) < k {
		distances := make([]float64, len(points))
		var total float64
		for i, p := range points {
			d := math.Inf(1)
			for _, c := range centroids {
				if sq := squaredDistance(p, c); sq < d {
					d = sq
				}
			}
			distances[i] = d
			total += d
		}

		var chosen int
		if total == 0 {
			// All points coincide with a centroid; any choice works.
			chosen = rng.Intn(len(points))
		} else {
			target := rng.Float64() * total
			var cumulative float64
			for i, d := range distances {
				cumulative += d
				if cumulative >= target {
					chosen = i
					break
				}
			}
		}
		centroids = append(centroids, cloneVector(points[chosen]))
	}
	return centroids
}

func nearestCentroid(p []float64, centroids [][]float64) int {
	best := 0
	bestDist := math.Inf(1)
	for i, c := range centroids {
		if d := squaredDistance(p, c); d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

func updateCentroids(points [][]float64, assignments []int, centroids [][]float64) {
	dim := len(points[0])
	counts := make([]int, len(centroids))
	sums := make([][]float64, len(centroids))
	for i := range sums {
		sums[i] = make([]float64, dim)
	}
	for i, p := range points {
		c := assignments[i]
		counts[c]++
		for j := range p {
			sums[c][j] += p[j]
		}
	}
	for c := range centroids {
		if counts[c] == 0 {
			// Empty cluster: re-seed it on the point farthest from its
			// centroid so k communities survive.
			far, farDist := 0, -1.0
			for i, p := range points {
				if d := squaredDistance(p, centroids[assignments[i]]); d > farDist {
					farDist = d
					far = i
				}
			}
			centroids[c] = cloneVector(points[far])
			continue
		}
		for j := range sums[c] {
			centroids[c][j] = sums[c][j] / float64(counts[c])
		}
	}
}

func squaredDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

func cloneVector(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)
	return out
}
