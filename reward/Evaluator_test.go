package reward

import (
	"errors"
	"math"
	"testing"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat/distuv"

	"sfneuman.com/gogait/rewardconfig"
	"sfneuman.com/gogait/state"
)

// validSnapshot returns a structurally valid snapshot of a quadruped
// standing still under zero command.
func validSnapshot() state.Snapshot {
	return state.Snapshot{
		Base:                state.Transform{Rot: quat.Number{Real: 1}},
		Joints:              zeroJoints(),
		PrevJointVelocities: mat.NewVecDense(state.NumJoints, nil),
		Action:              mat.NewVecDense(state.NumJoints, nil),
		PrevAction:          mat.NewVecDense(state.NumJoints, nil),
		AirTime:             mat.NewVecDense(state.NumLegs, nil),
		FirstContact:        make([]bool, state.NumLegs),
		FootContact:         make([]bool, state.NumLegs),
		FeetSitePos:         make([]r3.Vec, state.NumLegs),
		LowerLegPos:         make([]r3.Vec, state.NumLegs),
		LowerLegBodyID:      []int{2, 3, 4, 5},
		BodyMotions:         make([]state.Motion, 5),
		Step:                10,
		StepThreshold:       500,
	}
}

func zeroJoints() state.JointState {
	return state.JointState{
		Angles:     mat.NewVecDense(state.NumJoints, nil),
		Velocities: mat.NewVecDense(state.NumJoints, nil),
		Torques:    mat.NewVecDense(state.NumJoints, nil),
	}
}

func testParams() Params {
	return Params{
		Dt:               0.004,
		MinAirTime:       0.1,
		CommandThreshold: 0.1,
		CollisionGeomIDs: []int{7},
		BodyGeomIDs:      []int{1},
		KneeGeomIDs:      []int{3, 11},
	}
}

func testEvaluator(t *testing.T) *Evaluator {
	t.Helper()
	e, err := NewEvaluator(rewardconfig.Quadruped(), testParams())
	if err != nil {
		t.Fatalf("cannot build evaluator: %v", err)
	}
	return e
}

func TestEvaluateMatchesBreakdown(t *testing.T) {
	e := testEvaluator(t)
	snap := validSnapshot()
	snap.BaseMotion.Vel = r3.Vec{X: 0.4, Z: 0.3}
	snap.Command = state.Command{VelX: 0.5}

	total, err := e.Evaluate(&snap)
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}

	b, err := e.Breakdown(&snap)
	if err != nil {
		t.Fatalf("breakdown failed: %v", err)
	}

	var sum float64
	for _, term := range b.Terms {
		sum += term.Weighted
	}
	if math.Abs(total-b.Total) > tolerance || math.Abs(total-sum) > tolerance {
		t.Errorf("total %v, breakdown total %v, weighted sum %v", total,
			b.Total, sum)
	}
}

func TestBreakdownWeights(t *testing.T) {
	profile := rewardconfig.Quadruped()
	e, err := NewEvaluator(profile, testParams())
	if err != nil {
		t.Fatalf("cannot build evaluator: %v", err)
	}

	snap := validSnapshot()
	b, err := e.Breakdown(&snap)
	if err != nil {
		t.Fatalf("breakdown failed: %v", err)
	}

	if len(b.Terms) != len(Terms()) {
		t.Fatalf("expected %v terms, got %v", len(Terms()), len(b.Terms))
	}
	for _, term := range b.Terms {
		want := profile.Scale(term.ID) * term.Value
		if math.Abs(term.Weighted-want) > tolerance {
			t.Errorf("term %v: weighted %v, want %v", term.ID, term.Weighted,
				want)
		}
	}
}

func TestMissingScaleKeyDisablesTerm(t *testing.T) {
	snap := validSnapshot()
	for i := 0; i < state.NumJoints; i++ {
		snap.Joints.Torques.(*mat.VecDense).SetVec(i, 5.0)
	}

	with := rewardconfig.Profile{
		Name:          "with",
		Convention:    rewardconfig.UnitInterval,
		TrackingSigma: 0.25,
		Scales: rewardconfig.RewardScales{
			TermTorques:        -0.5,
			TermTrackingLinVel: 1.0,
		},
	}
	without := rewardconfig.Profile{
		Name:          "without",
		Convention:    rewardconfig.UnitInterval,
		TrackingSigma: 0.25,
		Scales: rewardconfig.RewardScales{
			TermTrackingLinVel: 1.0,
		},
	}

	eWith, err := NewEvaluator(with, testParams())
	if err != nil {
		t.Fatalf("cannot build evaluator: %v", err)
	}
	eWithout, err := NewEvaluator(without, testParams())
	if err != nil {
		t.Fatalf("cannot build evaluator: %v", err)
	}

	totalWith, err := eWith.Evaluate(&snap)
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	totalWithout, err := eWithout.Evaluate(&snap)
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}

	b, err := eWith.Breakdown(&snap)
	if err != nil {
		t.Fatalf("breakdown failed: %v", err)
	}
	var torqueWeighted float64
	for _, term := range b.Terms {
		if term.ID == TermTorques {
			torqueWeighted = term.Weighted
		}
	}
	if torqueWeighted == 0 {
		t.Fatal("expected a non-zero torque contribution")
	}

	want := totalWith - torqueWeighted
	if math.Abs(totalWithout-want) > tolerance {
		t.Errorf("expected %v without torques, got %v", want, totalWithout)
	}
}

func TestUnknownScaleKey(t *testing.T) {
	profile := rewardconfig.Profile{
		Name:          "bad",
		Convention:    rewardconfig.UnitInterval,
		TrackingSigma: 0.25,
		Scales:        rewardconfig.RewardScales{"wheel_slip": -1.0},
	}

	_, err := NewEvaluator(profile, testParams())
	var confErr *rewardconfig.ConfigValidationError
	if !errors.As(err, &confErr) {
		t.Errorf("expected ConfigValidationError, got %v", err)
	}
}

func TestEvaluateRejectsMalformedSnapshot(t *testing.T) {
	e := testEvaluator(t)

	snap := validSnapshot()
	snap.Joints.Torques.(*mat.VecDense).SetVec(3, math.NaN())

	_, err := e.Evaluate(&snap)
	var stateErr *state.StateValidationError
	if !errors.As(err, &stateErr) {
		t.Errorf("expected StateValidationError, got %v", err)
	}
}

func TestZeroSigmaGuarded(t *testing.T) {
	profile := rewardconfig.Quadruped()
	profile.TrackingSigma = math.SmallestNonzeroFloat64

	e, err := NewEvaluator(profile, testParams())
	if err != nil {
		t.Fatalf("cannot build evaluator: %v", err)
	}

	snap := validSnapshot()
	total, err := e.Evaluate(&snap)
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if math.IsNaN(total) || math.IsInf(total, 0) {
		t.Errorf("expected finite total under vanishing sigma, got %v", total)
	}
}

func TestEvaluateBatchMatchesSingle(t *testing.T) {
	e := testEvaluator(t)

	src := rand.NewSource(42)
	dist := distuv.Uniform{Min: -2.0, Max: 2.0, Src: src}
	snaps := make([]state.Snapshot, 16)
	for i := range snaps {
		snaps[i] = extremeSnapshot(dist)
	}

	totals, err := e.EvaluateBatch(snaps)
	if err != nil {
		t.Fatalf("batch evaluate failed: %v", err)
	}
	if len(totals) != len(snaps) {
		t.Fatalf("expected %v totals, got %v", len(snaps), len(totals))
	}

	for i := range snaps {
		single, err := e.Evaluate(&snaps[i])
		if err != nil {
			t.Fatalf("evaluate failed: %v", err)
		}
		if totals[i] != single {
			t.Errorf("instance %v: batch %v, single %v", i, totals[i], single)
		}
	}
}

func TestBreakdownBatchTensor(t *testing.T) {
	e := testEvaluator(t)

	src := rand.NewSource(7)
	dist := distuv.Uniform{Min: -1.0, Max: 1.0, Src: src}
	snaps := make([]state.Snapshot, 4)
	for i := range snaps {
		snaps[i] = extremeSnapshot(dist)
	}

	totals, breakdown, err := e.BreakdownBatch(snaps)
	if err != nil {
		t.Fatalf("batch breakdown failed: %v", err)
	}

	shape := breakdown.Shape()
	if shape[0] != len(snaps) || shape[1] != len(Terms()) {
		t.Fatalf("expected shape (%v, %v), got %v", len(snaps), len(Terms()),
			shape)
	}

	for i := range snaps {
		b, err := e.Breakdown(&snaps[i])
		if err != nil {
			t.Fatalf("breakdown failed: %v", err)
		}
		if totals[i] != b.Total {
			t.Errorf("instance %v: batch total %v, single %v", i, totals[i],
				b.Total)
		}

		for j, term := range b.Terms {
			cell, err := breakdown.At(i, j)
			if err != nil {
				t.Fatalf("cannot index breakdown tensor: %v", err)
			}
			if cell.(float64) != term.Value {
				t.Errorf("instance %v term %v: tensor %v, breakdown %v",
					i, term.ID, cell, term.Value)
			}
		}
	}
}

func TestEvaluatorIgnoresLaterProfileMutation(t *testing.T) {
	profile := rewardconfig.Quadruped()
	e, err := NewEvaluator(profile, testParams())
	if err != nil {
		t.Fatalf("cannot build evaluator: %v", err)
	}

	snap := validSnapshot()
	before, err := e.Evaluate(&snap)
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}

	profile.Scales[TermTrackingLinVel] = 1000.0
	after, err := e.Evaluate(&snap)
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if before != after {
		t.Errorf("mutating the source profile changed the total: %v vs %v",
			before, after)
	}
}
