package scoring

import (
	"reflect"
	"testing"
)

func TestNormalize_Idempotent(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"React", "react"},
		{"  Node.js ", "node.js"},
		{"SQL", "sql"},
		{"", ""},
		{"  ", ""},
	}
	for _, c := range cases {
		got := Normalize(c.in)
		if got != c.want {
			t.Fatalf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
		if again := Normalize(got); again != got {
			t.Fatalf("Normalize not idempotent: %q -> %q", got, again)
		}
	}
}

func TestCovers_Bidirectional(t *testing.T) {
	pairs := [][2]string{
		{"React", "React.js"},
		{"  node ", "Node.js"},
		{"Java", "JavaScript"}, // known false positive, kept on purpose
		{"postgresql", "SQL"},
	}
	for _, p := range pairs {
		if !Covers(p[0], p[1]) {
			t.Fatalf("Covers(%q, %q) = false, want true", p[0], p[1])
		}
		if !Covers(p[1], p[0]) {
			t.Fatalf("Covers(%q, %q) = false, want true", p[1], p[0])
		}
	}
}

func TestCovers_NoMatch(t *testing.T) {
	if Covers("Go", "Rust") {
		t.Fatalf("Covers(Go, Rust) = true, want false")
	}
	if Covers("", "Go") {
		t.Fatalf("Covers with empty candidate should be false")
	}
	if Covers("Go", "") {
		t.Fatalf("Covers with empty requirement should be false")
	}
}

func TestMatchSkills_PartitionsRequired(t *testing.T) {
	candidate := []string{"React", "Node.js"}
	required := []string{"react", "Node", "SQL"}

	matched, missing := MatchSkills(candidate, required)

	if !reflect.DeepEqual(matched, []string{"react", "node"}) {
		t.Fatalf("matched = %v, want [react node]", matched)
	}
	if !reflect.DeepEqual(missing, []string{"sql"}) {
		t.Fatalf("missing = %v, want [sql]", missing)
	}
	if len(matched)+len(missing) != len(required) {
		t.Fatalf("matched+missing = %d, want %d", len(matched)+len(missing), len(required))
	}
}

func TestMatchSkills_OrderFollowsRequired(t *testing.T) {
	candidate := []string{"Docker", "Go"}
	required := []string{"Go", "Kubernetes", "Docker"}

	matched, missing := MatchSkills(candidate, required)

	if !reflect.DeepEqual(matched, []string{"go", "docker"}) {
		t.Fatalf("matched = %v, want required-skill order [go docker]", matched)
	}
	if !reflect.DeepEqual(missing, []string{"kubernetes"}) {
		t.Fatalf("missing = %v, want [kubernetes]", missing)
	}
}

func TestMatchSkills_EmptyRequired(t *testing.T) {
	matched, missing := MatchSkills([]string{"Go"}, nil)
	if len(matched) != 0 || len(missing) != 0 {
		t.Fatalf("expected empty matched and missing, got %v / %v", matched, missing)
	}
}

func TestMatchSkills_EmptyCandidate(t *testing.T) {
	matched, missing := MatchSkills(nil, []string{"SQL"})
	if len(matched) != 0 {
		t.Fatalf("matched = %v, want empty", matched)
	}
	if !reflect.DeepEqual(missing, []string{"sql"}) {
		t.Fatalf("missing = %v, want [sql]", missing)
	}
}

func TestMatchPercentage(t *testing.T) {
	cases := []struct {
		matched, required, want int
	}{
		{0, 0, 0},
		{3, 0, 0}, // empty required set never divides by zero
		{2, 3, 67},
		{1, 3, 33},
		{3, 3, 100},
		{0, 5, 0},
	}
	for _, c := range cases {
		if got := MatchPercentage(c.matched, c.required); got != c.want {
			t.Fatalf("MatchPercentage(%d, %d) = %d, want %d", c.matched, c.required, got, c.want)
		}
		if got := MatchPercentage(c.matched, c.required); got < 0 || got > 100 {
			t.Fatalf("MatchPercentage out of range: %d", got)
		}
	}
}
