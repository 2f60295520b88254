package transport

import (
	"bytes"
	"testing"
)

func TestSimRecordsFrames(t *testing.T) {
	s := NewSim()
	if err := s.Write([]byte{1}); err == nil {
		t.Fatal("write before open should fail")
	}

	if err := s.Open(); err != nil {
		t.Fatal(err)
	}
	f1 := []byte{'A', 'd', 'a', 0, 0, 1, 9, 9, 9}
	if err := s.Write(f1); err != nil {
		t.Fatal(err)
	}
	f1[6] = 0 // sink must have copied, not aliased
	got := s.LastFrame()
	if !bytes.Equal(got, []byte{'A', 'd', 'a', 0, 0, 1, 9, 9, 9}) {
		t.Fatalf("recorded frame %v", got)
	}

	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if err := s.Write([]byte{2}); err == nil {
		t.Fatal("write after close should fail")
	}
	if n := len(s.Frames()); n != 1 {
		t.Fatalf("recorded %d frames", n)
	}
}
