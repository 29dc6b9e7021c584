package profile

import "testing"

func TestMake(t *testing.T) {
	c := Make(WithMode("cpu"), WithPath("/tmp/prof"), WithQuiet(true))

	want := Config{Mode: "cpu", Path: "/tmp/prof", Quiet: true}
	if c != want {
		t.Errorf("Make() = %+v, want %+v", c, want)
	}

	if c := Make(); c != (Config{}) {
		t.Errorf("Make() = %+v, want zero value", c)
	}
}

func TestStartDisabled(t *testing.T) {
	ctrl := Make(WithPath(t.TempDir())).Start()
	if _, ok := ctrl.(ignore); !ok {
		t.Errorf("Start() with empty mode = %T, want no-op", ctrl)
	}

	ctrl.Stop()
}

func TestStartUnknownMode(t *testing.T) {
	ctrl := Make(WithMode("bogus"), WithPath(t.TempDir())).Start()
	if _, ok := ctrl.(ignore); !ok {
		t.Errorf("Start() with unknown mode = %T, want no-op", ctrl)
	}

	ctrl.Stop()
}
