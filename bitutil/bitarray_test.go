package bitutil

import "testing"

func TestBitArrayGetSet(t *testing.T) {
	ba := NewBitArray(33)
	for i := 0; i < 33; i++ {
		if ba.Get(i) {
			t.Errorf("bit %d should not be set", i)
		}
	}
	ba.Set(0)
	ba.Set(31)
	ba.Set(32)
	if !ba.Get(0) || !ba.Get(31) || !ba.Get(32) {
		t.Error("bits should be set")
	}
	if ba.Get(1) || ba.Get(30) {
		t.Error("bits should not be set")
	}
}

func TestBitArrayAppendBit(t *testing.T) {
	ba := &BitArray{}
	ba.AppendBit(true)
	ba.AppendBit(false)
	ba.AppendBit(true)
	if ba.Size() != 3 {
		t.Errorf("size = %d, want 3", ba.Size())
	}
	if !ba.Get(0) || ba.Get(1) || !ba.Get(2) {
		t.Error("incorrect bits after append")
	}
}

func TestBitArrayAppendBits(t *testing.T) {
	ba := &BitArray{}
	ba.AppendBits(0x1E, 6) // 011110
	if ba.Size() != 6 {
		t.Fatalf("size = %d, want 6", ba.Size())
	}
	want := []bool{false, true, true, true, true, false}
	for i, w := range want {
		if ba.Get(i) != w {
			t.Errorf("bit %d = %v, want %v", i, ba.Get(i), w)
		}
	}
}

func TestBitArrayAppendBitsGrows(t *testing.T) {
	ba := &BitArray{}
	for i := 0; i < 10; i++ {
		ba.AppendBits(0xFF, 8)
	}
	if ba.Size() != 80 {
		t.Fatalf("size = %d, want 80", ba.Size())
	}
	for i := 0; i < 80; i++ {
		if !ba.Get(i) {
			t.Errorf("bit %d should be set", i)
		}
	}
}

func TestBitArrayAppendBitArray(t *testing.T) {
	a := &BitArray{}
	a.AppendBits(0x05, 3) // 101
	b := &BitArray{}
	b.AppendBits(0x03, 2) // 11
	a.AppendBitArray(b)
	if a.Size() != 5 {
		t.Fatalf("size = %d, want 5", a.Size())
	}
	want := []bool{true, false, true, true, true}
	for i, w := range want {
		if a.Get(i) != w {
			t.Errorf("bit %d = %v, want %v", i, a.Get(i), w)
		}
	}
}

func TestBitArrayToBytes(t *testing.T) {
	ba := &BitArray{}
	ba.AppendBits(0xA5, 8)
	ba.AppendBits(0x3C, 8)
	out := make([]byte, 2)
	ba.ToBytes(0, out, 0, 2)
	if out[0] != 0xA5 || out[1] != 0x3C {
		t.Errorf("ToBytes = %#v, want [0xA5 0x3C]", out)
	}
}

func TestBitArrayXor(t *testing.T) {
	a := NewBitArray(8)
	b := NewBitArray(8)
	a.Set(0)
	a.Set(3)
	b.Set(3)
	b.Set(7)
	a.Xor(b)
	if !a.Get(0) || a.Get(3) || !a.Get(7) {
		t.Error("xor result incorrect")
	}
}

func TestBitArrayClone(t *testing.T) {
	ba := NewBitArray(16)
	ba.Set(5)
	c := ba.Clone()
	c.Set(6)
	if ba.Get(6) {
		t.Error("clone should not share storage")
	}
	if !c.Get(5) {
		t.Error("clone should carry original bits")
	}
}

func TestBitArrayString(t *testing.T) {
	ba := NewBitArray(8)
	ba.Set(0)
	ba.Set(7)
	if got := ba.String(); got != " X......X" {
		t.Errorf("String() = %q", got)
	}
}
