// 指示: miu200521358
package mmath

import (
	"math"
	"testing"
)

func TestVec3AddedSubed(t *testing.T) {
	v := NewVec3(1, 2, 3).Added(NewVec3(4, 5, 6))
	if !v.NearEquals(NewVec3(5, 7, 9), 1e-12) {
		t.Fatalf("added mismatch: %+v", v)
	}
	v = v.Subed(NewVec3(5, 7, 9))
	if !v.IsZero() {
		t.Fatalf("subed mismatch: %+v", v)
	}
}

func TestVec3NormalizedZero(t *testing.T) {
	if !NewVec3(0, 0, 0).Normalized().IsZero() {
		t.Fatalf("expected zero vector")
	}
	n := NewVec3(0, 3, 4).Normalized()
	if math.Abs(n.Length()-1.0) > 1e-12 {
		t.Fatalf("length mismatch: %f", n.Length())
	}
}

func TestVec3Lerped(t *testing.T) {
	mid := NewVec3(0, 0, 0).Lerped(NewVec3(2, 4, 6), 0.5)
	if !mid.NearEquals(NewVec3(1, 2, 3), 1e-12) {
		t.Fatalf("lerp mismatch: %+v", mid)
	}
	if !NewVec3(1, 1, 1).Lerped(NewVec3(9, 9, 9), 0).NearEquals(NewVec3(1, 1, 1), 1e-12) {
		t.Fatalf("t=0 should keep start")
	}
}

func TestQuaternionMulVec3(t *testing.T) {
	q := NewQuaternionFromDegrees(0, 0, 90)
	rotated := q.MulVec3(UNIT_X_VEC3)
	if !rotated.NearEquals(UNIT_Y_VEC3, 1e-9) {
		t.Fatalf("rotated mismatch: %+v", rotated)
	}
}

func TestQuaternionSlerpedShortestPath(t *testing.T) {
	q0 := NewQuaternionFromDegrees(0, 0, 0)
	q1 := NewQuaternionFromDegrees(0, 0, 90)
	half := q0.Slerped(q1, 0.5)
	want := NewQuaternionFromDegrees(0, 0, 45)
	if !half.NearEquals(want, 1e-9) {
		t.Fatalf("slerp mismatch: %+v", half)
	}

	// 符号反転した同一回転に対しても遠回りしない。
	negated := Quaternion{Quat: q1.Quat.Scale(-1)}
	halfNeg := q0.Slerped(negated, 0.5)
	if !halfNeg.NearEquals(want, 1e-9) {
		t.Fatalf("shortest path not taken: %+v", halfNeg)
	}
}

func TestQuaternionSlerpedEndpoints(t *testing.T) {
	q0 := NewQuaternionFromDegrees(10, 20, 30)
	q1 := NewQuaternionFromDegrees(-40, 5, 60)
	if !q0.Slerped(q1, 0).NearEquals(q0, 1e-9) {
		t.Fatalf("t=0 should keep start")
	}
	if !q0.Slerped(q1, 1).NearEquals(q1, 1e-9) {
		t.Fatalf("t=1 should reach end")
	}
}

func TestNewTransformIsIdentity(t *testing.T) {
	tr := NewTransform()
	if !tr.Translation.IsZero() {
		t.Fatalf("translation not zero: %+v", tr.Translation)
	}
	if !tr.Rotation.IsIdent() {
		t.Fatalf("rotation not identity: %+v", tr.Rotation)
	}
	if !tr.Scale.NearEquals(ONE_VEC3, 1e-12) {
		t.Fatalf("scale not one: %+v", tr.Scale)
	}
}

func TestClamped(t *testing.T) {
	if Clamped(-1, 0, 1) != 0 || Clamped(2, 0, 1) != 1 || Clamped(0.5, 0, 1) != 0.5 {
		t.Fatalf("clamp mismatch")
	}
}
