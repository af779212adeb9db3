package taxonomy

import (
	"encoding/json"
	"testing"
)

func TestLayerOrdering(t *testing.T) {
	if !(Peripheral < Intermediate && Intermediate < Core) {
		t.Errorf("layer ordinals out of order: %d %d %d", Peripheral, Intermediate, Core)
	}
}

func TestLayerString(t *testing.T) {
	cases := map[DisclosureLayer]string{
		Peripheral:         "PERIPHERAL",
		Intermediate:       "INTERMEDIATE",
		Core:               "CORE",
		DisclosureLayer(9): "UNKNOWN",
	}
	for layer, want := range cases {
		if got := layer.String(); got != want {
			t.Errorf("String(%d) = %q, want %q", layer, got, want)
		}
	}
}

func TestLayerJSON(t *testing.T) {
	data, err := json.Marshal(Core)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"CORE"` {
		t.Errorf("marshal Core = %s, want \"CORE\"", data)
	}

	var l DisclosureLayer
	if err := json.Unmarshal([]byte(`"INTERMEDIATE"`), &l); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if l != Intermediate {
		t.Errorf("unmarshal INTERMEDIATE = %v", l)
	}

	if err := json.Unmarshal([]byte(`"DEEP"`), &l); err == nil {
		t.Error("expected error for unknown layer name")
	}
}

func TestCategoriesOrder(t *testing.T) {
	got := Categories()
	want := []Category{Intimacy, Boundary, Manipulation}
	if len(got) != len(want) {
		t.Fatalf("got %d categories, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("category[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
