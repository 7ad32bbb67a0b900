package avrdude

import (
	"reflect"
	"testing"

	"github.com/buckleypaul/avrup/internal/board"
)

func TestArgsOrder(t *testing.T) {
	got := Args(board.SelectParameters(board.Mega), "/tmp/a.hex", "/etc/avrdude.conf", "/dev/ttyUSB0")
	want := []string{
		"-v",
		"-D",
		"-patmega2560",
		"-cwiring",
		"-Uflash:w:/tmp/a.hex:i",
		"-C/etc/avrdude.conf",
		"-P/dev/ttyUSB0",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Args mismatch\n got: %v\nwant: %v", got, want)
	}
}

func TestArgsEraseFlagLast(t *testing.T) {
	got := Args(board.SelectParameters(board.Bob3), "fw.hex", "avrdude.conf", "COM4")
	if len(got) != 8 {
		t.Fatalf("expected 8 args with erase flag, got %d: %v", len(got), got)
	}
	if got[7] != "-e" {
		t.Fatalf("expected -e as last argument, got %q", got[7])
	}
	if got[2] != "-patmega88" || got[3] != "-cavrisp2" {
		t.Fatalf("unexpected part/protocol: %v", got[2:4])
	}
}

func TestArgsNoEmptyArguments(t *testing.T) {
	for _, v := range append([]board.Variant{board.Unknown}, board.Variants...) {
		for i, a := range Args(board.SelectParameters(v), "fw.hex", "c.conf", "/dev/ttyACM0") {
			if a == "" {
				t.Errorf("variant %s: empty argument at index %d", v, i)
			}
		}
	}
}

func TestArgsDistinctInputsDoNotCollide(t *testing.T) {
	p := board.DefaultParams
	inputs := [][3]string{
		{"a.hex", "c.conf", "/dev/ttyUSB0"},
		{"b.hex", "c.conf", "/dev/ttyUSB0"},
		{"a.hex", "d.conf", "/dev/ttyUSB0"},
		{"a.hex", "c.conf", "/dev/ttyUSB1"},
		{"a.hex:i", "c.conf", "/dev/ttyUSB0"},
	}

	seen := map[string][3]string{}
	for _, in := range inputs {
		args := Args(p, in[0], in[1], in[2])
		key := args[4] + "\x00" + args[5] + "\x00" + args[6]
		if prev, ok := seen[key]; ok {
			t.Fatalf("inputs %v and %v produced the same operands %v", prev, in, args[4:7])
		}
		seen[key] = in
	}
}
