package flow

import "testing"

func TestHappyPath(t *testing.T) {
	var m Machine
	steps := []struct {
		e    Event
		want Screen
	}{
		{PhotoLoaded, Nickname},
		{NicknameSubmitted, Editor},
		{Proceed, Processing},
		{ExportDone, Preview},
		{Downloaded, ThankYou},
		{StartOver, Upload},
	}
	for _, st := range steps {
		if !m.Fire(st.e) {
			t.Fatalf("%v rejected on %v", st.e, m.Current())
		}
		if m.Current() != st.want {
			t.Fatalf("after %v: %v, want %v", st.e, m.Current(), st.want)
		}
	}
}

func TestDecodeFailureStaysOnUpload(t *testing.T) {
	next, ok := Next(Upload, DecodeFailed)
	if !ok || next != Upload {
		t.Fatalf("Next(Upload, DecodeFailed) = %v, %v", next, ok)
	}
}

func TestRejectedEvents(t *testing.T) {
	cases := []struct {
		s Screen
		e Event
	}{
		{Upload, Proceed},
		{Upload, NicknameSubmitted},
		{Nickname, Proceed},
		{Editor, ExportDone},
		{Processing, Back},
		{Processing, Proceed},
		{ThankYou, Downloaded},
	}
	for _, c := range cases {
		next, ok := Next(c.s, c.e)
		if ok || next != c.s {
			t.Errorf("Next(%v, %v) = %v, %v; want unchanged", c.s, c.e, next, ok)
		}
	}
}

func TestBack(t *testing.T) {
	for s, want := range map[Screen]Screen{Nickname: Upload, Editor: Upload, Preview: Editor} {
		if got, ok := Next(s, Back); !ok || got != want {
			t.Errorf("Next(%v, Back) = %v, %v; want %v", s, got, ok, want)
		}
	}
}

func TestStrings(t *testing.T) {
	if ThankYou.String() != "thank-you" || Screen(42).String() != "screen(42)" {
		t.Fatalf("unexpected names %q %q", ThankYou, Screen(42))
	}
	if Proceed.String() != "proceed" {
		t.Fatalf("unexpected event name %q", Proceed)
	}
}
