package plan

import "testing"

var limits = Limits{MaxSampleRate: 44100, MaxBitDepth: 16, MaxBitRate: 320000}

func TestDecideFLACConvertsToAIFF(t *testing.T) {
	decision, err := Decide(Source{FormatName: "flac", SampleRate: 44100, BitDepth: 16}, limits)
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	// FLAC is never deck-playable, even within the limits.
	if decision.Action != ActionConvert {
		t.Fatalf("expected convert, got %v", decision.Action)
	}
	if decision.TargetFormat != "aiff" || decision.Codec != "pcm_s16le" {
		t.Fatalf("unexpected target: %+v", decision)
	}
	if decision.SampleRate != 44100 || decision.BitDepth != 16 {
		t.Fatalf("unexpected caps: %+v", decision)
	}
}

func TestDecideCapsHighResolutionSources(t *testing.T) {
	decision, err := Decide(Source{FormatName: "flac", SampleRate: 96000, BitDepth: 24}, limits)
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if decision.SampleRate != 44100 || decision.BitDepth != 16 {
		t.Fatalf("high-res source not capped: %+v", decision)
	}
}

func TestDecidePreservesLowerSourceDepth(t *testing.T) {
	decision, err := Decide(Source{FormatName: "flac", SampleRate: 96000, BitDepth: 8}, limits)
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if decision.BitDepth != 8 || decision.Codec != "pcm_s8le" {
		t.Fatalf("lower source depth should carry through: %+v", decision)
	}
}

func TestDecideCompliantWAVSkips(t *testing.T) {
	decision, err := Decide(Source{FormatName: "wav", SampleRate: 44100, BitDepth: 16}, limits)
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if decision.Action != ActionSkipCompliant {
		t.Fatalf("compliant wav should skip, got %+v", decision)
	}
}

func TestDecideHighResWAVConverts(t *testing.T) {
	decision, err := Decide(Source{FormatName: "wav", SampleRate: 48000, BitDepth: 24}, limits)
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if decision.Action != ActionConvert || decision.TargetFormat != "aiff" {
		t.Fatalf("high-res wav should convert to aiff: %+v", decision)
	}
}

func TestDecideLossySources(t *testing.T) {
	decision, err := Decide(Source{FormatName: "mp3", SampleRate: 44100, BitRate: 320000}, limits)
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if decision.Action != ActionSkipCompliant {
		t.Fatalf("320k mp3 should skip: %+v", decision)
	}

	decision, err = Decide(Source{FormatName: "ogg", SampleRate: 44100, BitRate: 192000}, limits)
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	// OGG never plays on deck hardware, so it converts even at modest rates.
	if decision.Action != ActionConvert || decision.TargetFormat != "mp3" {
		t.Fatalf("ogg should convert to mp3: %+v", decision)
	}
	if decision.BitRate != 192000 {
		t.Fatalf("source bit rate below the cap should carry through: %+v", decision)
	}

	decision, err = Decide(Source{FormatName: "mp3", SampleRate: 48000, BitRate: 320000}, limits)
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if decision.Action != ActionConvert || decision.SampleRate != 44100 {
		t.Fatalf("48k mp3 should convert with capped rate: %+v", decision)
	}
}

func TestDecideUnsupportedContainer(t *testing.T) {
	if _, err := Decide(Source{FormatName: "wma"}, limits); err == nil {
		t.Fatal("expected error for unsupported container")
	}
}

func TestClassify(t *testing.T) {
	cases := map[string]Class{
		"flac": ClassLossless,
		"aiff": ClassLossless,
		"aif":  ClassLossless,
		"wav":  ClassLossless,
		"mp3":  ClassLossy,
		"ogg":  ClassLossy,
		"aac":  ClassLossy,
		"wma":  ClassUnsupported,
		"":     ClassUnsupported,
	}
	for name, want := range cases {
		if got := Classify(name); got != want {
			t.Fatalf("Classify(%q) = %v, want %v", name, got, want)
		}
	}
}
