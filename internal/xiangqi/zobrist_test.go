package xiangqi

import "testing"

func TestHashInitializedFromInitialAndFEN(t *testing.T) {
	pos := NewInitialPosition()
	if pos.Hash != pos.CalculateHash() {
		t.Fatalf("initial hash mismatch: got=%d want=%d", pos.Hash, pos.CalculateHash())
	}

	decoded, err := DecodePosition(InitialFEN[:len(InitialFEN)-1] + "b")
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded.Hash == pos.Hash {
		t.Fatalf("side to move not part of hash")
	}
}

func TestApplyMoveHashIncrementalMatchesFullRecompute(t *testing.T) {
	pos := NewInitialPosition()
	for ply := 0; ply < 24; ply++ {
		moves := pos.GenerateLegalMoves()
		if len(moves) == 0 {
			return
		}
		mv := moves[len(moves)/2]
		next, ok := pos.ApplyMove(mv)
		if !ok {
			t.Fatalf("apply move failed at ply %d: %+v", ply, mv)
		}
		if got, want := next.Hash, next.CalculateHash(); got != want {
			t.Fatalf("hash mismatch at ply %d: got=%d want=%d move=%+v", ply, got, want, mv)
		}
		pos = next
	}
}

func TestMakeUnmakeRestoresPosition(t *testing.T) {
	pos := NewInitialPosition()
	before := *pos
	for _, mv := range pos.GenerateLegalMoves() {
		undo, err := pos.MakeMove(mv)
		if err != nil {
			t.Fatalf("make %+v: %v", mv, err)
		}
		if pos.SideToMove != Black {
			t.Fatalf("side not switched after %+v", mv)
		}
		pos.UnmakeMove(mv, undo)
		if *pos != before {
			t.Fatalf("unmake %+v did not restore position", mv)
		}
	}

	if _, err := pos.MakeMove(Move{From: sq(0, 0), To: sq(1, 0)}); err != ErrWrongSide {
		t.Fatalf("expected ErrWrongSide, got %v", err)
	}
	if _, err := pos.MakeMove(NoMove); err != ErrOutOfRange {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
}
