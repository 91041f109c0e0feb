// Package model implements the binary random-forest classifier served by the
// prediction API and fitted by the offline training pipeline.
package model

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/veridian-ai/scorix/internal/domain"
)

// Node is one decision-tree node. Exported fields keep the structure
// serializable by both gob and JSON artifact strategies.
type Node struct {
	Leaf      bool       `json:"leaf"`
	Feature   int        `json:"feature,omitempty"`
	Threshold float64    `json:"threshold,omitempty"`
	Left      *Node      `json:"left,omitempty"`
	Right     *Node      `json:"right,omitempty"`
	Probs     [2]float64 `json:"probs,omitempty"`
}

// Forest is a trained ensemble of CART trees over gini impurity.
type Forest struct {
	Trees       []*Node                `json:"trees"`
	NumFeatures int                    `json:"num_features"`
	Params      domain.Hyperparameters `json:"params"`
}

// Train fits a forest on encoded feature vectors and binary labels {0,1}.
// Trees are grown on bootstrap samples with sqrt(d) feature subsampling; the
// seed makes training deterministic.
func Train(features [][]float64, labels []int, hp domain.Hyperparameters) (*Forest, error) {
	if len(features) == 0 {
		return nil, fmt.Errorf("training set is empty")
	}
	if len(features) != len(labels) {
		return nil, fmt.Errorf("feature/label length mismatch: %d vs %d", len(features), len(labels))
	}
	for i, y := range labels {
		if y != 0 && y != 1 {
			return nil, fmt.Errorf("label %d: expected 0 or 1, got %d", i, y)
		}
	}
	if hp.Trees <= 0 {
		return nil, fmt.Errorf("trees must be positive, got %d", hp.Trees)
	}

	dim := len(features[0])
	for i, x := range features {
		if len(x) != dim {
			return nil, fmt.Errorf("row %d: expected %d features, got %d", i, dim, len(x))
		}
	}

	rng := rand.New(rand.NewSource(hp.Seed))
	g := grower{
		features: features,
		labels:   labels,
		hp:       hp,
		mtry:     max(1, int(math.Sqrt(float64(dim)))),
		dim:      dim,
		rng:      rng,
	}

	trees := make([]*Node, hp.Trees)
	for t := range trees {
		sample := make([]int, len(features))
		for i := range sample {
			sample[i] = rng.Intn(len(features))
		}
		trees[t] = g.grow(sample, 0)
	}

	return &Forest{Trees: trees, NumFeatures: dim, Params: hp}, nil
}

// PredictProba returns calibrated class probabilities for {bad, good},
// averaged over per-tree leaf distributions. The pair sums to 1.
func (f *Forest) PredictProba(x []float64) ([2]float64, error) {
	if len(x) != f.NumFeatures {
		return [2]float64{}, fmt.Errorf("expected %d features, got %d", f.NumFeatures, len(x))
	}
	if len(f.Trees) == 0 {
		return [2]float64{}, fmt.Errorf("forest has no trees")
	}

	var acc [2]float64
	for _, root := range f.Trees {
		leaf, err := descend(root, x)
		if err != nil {
			return [2]float64{}, err
		}
		acc[0] += leaf.Probs[0]
		acc[1] += leaf.Probs[1]
	}

	n := float64(len(f.Trees))
	probs := [2]float64{acc[0] / n, acc[1] / n}

	// Guard against accumulated float error so the pair sums to exactly 1.
	total := probs[0] + probs[1]
	if total == 0 {
		return [2]float64{}, fmt.Errorf("degenerate leaf distribution")
	}
	probs[0] /= total
	probs[1] /= total
	return probs, nil
}

// Predict returns the hard decision: 1 (good credit) or 0 (bad credit).
func (f *Forest) Predict(x []float64) (int, error) {
	probs, err := f.PredictProba(x)
	if err != nil {
		return 0, err
	}
	if probs[1] >= 0.5 {
		return domain.LabelGoodCredit, nil
	}
	return domain.LabelBadCredit, nil
}

func descend(n *Node, x []float64) (*Node, error) {
	for !n.Leaf {
		if n.Feature < 0 || n.Feature >= len(x) {
			return nil, fmt.Errorf("corrupt tree: split on feature %d of %d", n.Feature, len(x))
		}
		if x[n.Feature] <= n.Threshold {
			n = n.Left
		} else {
			n = n.Right
		}
		if n == nil {
			return nil, fmt.Errorf("corrupt tree: missing child node")
		}
	}
	return n, nil
}

// grower holds shared training state for one forest fit.
type grower struct {
	features [][]float64
	labels   []int
	hp       domain.Hyperparameters
	mtry     int
	dim      int
	rng      *rand.Rand
}

func (g *grower) grow(sample []int, depth int) *Node {
	count := g.classCounts(sample)

	if depth >= g.hp.MaxDepth ||
		len(sample) < g.hp.MinSamplesSplit ||
		count[0] == 0 || count[1] == 0 {
		return leaf(count)
	}

	feature, threshold, ok := g.bestSplit(sample, count)
	if !ok {
		return leaf(count)
	}

	var left, right []int
	for _, i := range sample {
		if g.features[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) < g.hp.MinSamplesLeaf || len(right) < g.hp.MinSamplesLeaf {
		return leaf(count)
	}

	return &Node{
		Feature:   feature,
		Threshold: threshold,
		Left:      g.grow(left, depth+1),
		Right:     g.grow(right, depth+1),
	}
}

func (g *grower) classCounts(sample []int) [2]int {
	var count [2]int
	for _, i := range sample {
		count[g.labels[i]]++
	}
	return count
}

func leaf(count [2]int) *Node {
	total := float64(count[0] + count[1])
	if total == 0 {
		return &Node{Leaf: true, Probs: [2]float64{0.5, 0.5}}
	}
	return &Node{Leaf: true, Probs: [2]float64{float64(count[0]) / total, float64(count[1]) / total}}
}

// bestSplit searches mtry random features for the gini-optimal threshold.
func (g *grower) bestSplit(sample []int, count [2]int) (feature int, threshold float64, ok bool) {
	parentGini := gini(count)
	bestGain := 0.0

	for _, f := range g.pickFeatures() {
		values := make(map[float64]bool, len(sample))
		for _, i := range sample {
			values[g.features[i][f]] = true
		}
		if len(values) < 2 {
			continue
		}

		for v := range values {
			var leftCount, rightCount [2]int
			for _, i := range sample {
				if g.features[i][f] <= v {
					leftCount[g.labels[i]]++
				} else {
					rightCount[g.labels[i]]++
				}
			}
			nl := leftCount[0] + leftCount[1]
			nr := rightCount[0] + rightCount[1]
			if nl == 0 || nr == 0 {
				continue
			}

			n := float64(nl + nr)
			weighted := float64(nl)/n*gini(leftCount) + float64(nr)/n*gini(rightCount)
			if gain := parentGini - weighted; gain > bestGain {
				bestGain = gain
				feature = f
				threshold = v
				ok = true
			}
		}
	}
	return feature, threshold, ok
}

// pickFeatures samples mtry distinct feature indices.
func (g *grower) pickFeatures() []int {
	perm := g.rng.Perm(g.dim)
	return perm[:g.mtry]
}

func gini(count [2]int) float64 {
	total := float64(count[0] + count[1])
	if total == 0 {
		return 0
	}
	p0 := float64(count[0]) / total
	p1 := float64(count[1]) / total
	return 1 - p0*p0 - p1*p1
}
